package models

import "time"

// Trend is one notable spending movement reported by the analysis engine.
type Trend struct {
	Type        string `json:"type"` // increase, decrease, stable
	Category    string `json:"category"`
	Change      string `json:"change"`
	Description string `json:"description"`
}

// Recommendation is one concrete action item reported by the engine.
type Recommendation struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"` // high, medium, low
}

// BudgetHealth is the engine's overall verdict for the month.
type BudgetHealth struct {
	Score       int    `json:"score"` // 0..100
	Status      string `json:"status"`
	Description string `json:"description"`
}

// AnalysisResponse is the structured result of one monthly analysis. It is
// both the engine's output contract and the shape returned to callers.
type AnalysisResponse struct {
	Month           string           `json:"month"`
	Summary         string           `json:"summary"`
	Trends          []Trend          `json:"trends"`
	Recommendations []Recommendation `json:"recommendations"`
	BudgetHealth    BudgetHealth     `json:"budgetHealth"`
}

// AnalysisHistory is the persisted analysis record. At most one row exists
// per (Owner, Month); repeated analyses overwrite the mutable fields in place.
type AnalysisHistory struct {
	ID                string
	Owner             string
	Month             string // "2026-01"
	Summary           string
	Score             int
	HealthStatus      string
	HealthDescription string
	Trends            []Trend
	Recommendations   []Recommendation
	CreatedAt         time.Time
}

// Response converts a stored history row back to the response shape.
func (h *AnalysisHistory) Response() AnalysisResponse {
	return AnalysisResponse{
		Month:           h.Month,
		Summary:         h.Summary,
		Trends:          h.Trends,
		Recommendations: h.Recommendations,
		BudgetHealth: BudgetHealth{
			Score:       h.Score,
			Status:      h.HealthStatus,
			Description: h.HealthDescription,
		},
	}
}

// Apply overwrites the mutable fields of the history row from a fresh engine
// response, leaving identity and CreatedAt untouched.
func (h *AnalysisHistory) Apply(resp AnalysisResponse) {
	h.Summary = resp.Summary
	h.Score = resp.BudgetHealth.Score
	h.HealthStatus = resp.BudgetHealth.Status
	h.HealthDescription = resp.BudgetHealth.Description
	h.Trends = resp.Trends
	h.Recommendations = resp.Recommendations
}
