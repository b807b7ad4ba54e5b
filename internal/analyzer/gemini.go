package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"lifehub/spending/internal/apperrors"
	"lifehub/spending/internal/logging"
	"lifehub/spending/internal/models"
)

const systemPrompt = `You are a blunt, no-nonsense financial consultant.
Analyze the user's card transactions for the given month and respond with
STRICT JSON only (no Markdown, no code fences, no extra text).

The JSON object must have exactly these fields:
- "summary": string, three sentences on the overall spending behavior
- "trends": array of { "type": "increase"|"decrease"|"stable", "category": string, "change": string, "description": string }
- "recommendations": array of { "title": string, "description": string, "priority": "high"|"medium"|"low" }
- "budgetHealth": { "score": integer 0-100, "status": "Critical"|"Warning"|"Good"|"Excellent", "description": string }

Name concrete merchants and patterns; never give generic advice. Treat
payment-gateway names (Toss, KakaoPay, NaverPay) as payment channels, not
spending destinations.`

// GeminiEngine implements Engine on the Gemini API. Every call runs under
// the configured timeout; a deadline hit, a transport failure, or output
// that does not decode into the response shape all surface as EngineError
// and nothing is persisted by the caller.
type GeminiEngine struct {
	apiKey  string
	model   string
	timeout time.Duration
	logger  logging.Logger
}

// NewGeminiEngine builds a Gemini-backed analysis engine.
func NewGeminiEngine(apiKey, model string, timeout time.Duration, logger logging.Logger) *GeminiEngine {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &GeminiEngine{apiKey: apiKey, model: model, timeout: timeout, logger: logger}
}

// Analyze sends the month's transactions to the model and decodes its JSON
// verdict. The returned response is stamped with month regardless of what
// the model echoed back.
func (e *GeminiEngine) Analyze(ctx context.Context, transactions []models.Transaction, month string) (models.AnalysisResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	payload, err := json.Marshal(transactions)
	if err != nil {
		return models.AnalysisResponse{}, &apperrors.EngineError{Stage: "request", Err: err}
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: e.apiKey})
	if err != nil {
		return models.AnalysisResponse{}, &apperrors.EngineError{Stage: "request", Err: err}
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: systemPrompt},
				{Text: fmt.Sprintf("Month: %s\nTransactions:\n%s", month, payload)},
			},
		},
	}
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}

	resp, err := client.Models.GenerateContent(ctx, e.model, contents, config)
	if err != nil {
		stage := "request"
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			stage = "timeout"
		}
		return models.AnalysisResponse{}, &apperrors.EngineError{Stage: stage, Err: err}
	}

	raw := resp.Text()
	if raw == "" {
		return models.AnalysisResponse{}, &apperrors.EngineError{
			Stage: "decode",
			Err:   errors.New("empty response from model"),
		}
	}

	var result models.AnalysisResponse
	if err := json.Unmarshal([]byte(cleanModelJSON(raw)), &result); err != nil {
		e.logger.WithError(err).Warn("Analysis engine returned unparsable output",
			logging.Field{Key: "month", Value: month})
		return models.AnalysisResponse{}, &apperrors.EngineError{Stage: "decode", Err: err}
	}

	result.Month = month
	return result, nil
}

// cleanModelJSON strips Markdown fences and surrounding junk when the model
// ignores the strict-JSON instruction.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}
		if idx := strings.LastIndex(s, "```"); idx != -1 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}

	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}

	return s
}
