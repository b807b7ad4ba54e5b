package service

import (
	"context"

	"lifehub/spending/internal/analyzer"
	"lifehub/spending/internal/apperrors"
	"lifehub/spending/internal/logging"
	"lifehub/spending/internal/models"
	"lifehub/spending/internal/store"
)

// AnalysisService orchestrates the monthly spending analysis: it invokes the
// external engine and maintains one history row per (owner, month).
type AnalysisService struct {
	analyses store.AnalysisStore
	users    store.UserStore
	engine   analyzer.Engine
	logger   logging.Logger
}

// NewAnalysisService wires the analysis flow.
func NewAnalysisService(
	analyses store.AnalysisStore,
	users store.UserStore,
	engine analyzer.Engine,
	logger logging.Logger,
) *AnalysisService {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &AnalysisService{
		analyses: analyses,
		users:    users,
		engine:   engine,
		logger:   logger,
	}
}

// AnalyzeMonth runs the engine over the given transactions and upserts the
// (owner, month) history row. An empty transaction list is rejected before
// the engine is ever invoked; an engine failure writes nothing.
func (s *AnalysisService) AnalyzeMonth(ctx context.Context, email, month string, transactions []models.Transaction) (models.AnalysisResponse, error) {
	if len(transactions) == 0 {
		return models.AnalysisResponse{}, &apperrors.ValidationError{
			Field:  "transactions",
			Reason: "no transactions to analyze",
		}
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return models.AnalysisResponse{}, err
	}

	result, err := s.engine.Analyze(ctx, transactions, month)
	if err != nil {
		return models.AnalysisResponse{}, err
	}
	result.Month = month

	// A losing create in a concurrent race converts into an update on the
	// single transparent retry; only a second failure surfaces.
	if err := s.analyses.Upsert(ctx, user.ID, month, result); err != nil {
		if !apperrors.IsConflict(err) {
			return models.AnalysisResponse{}, err
		}
		s.logger.WithError(err).Warn("Analysis upsert conflicted, retrying once",
			logging.Field{Key: "month", Value: month})
		if err := s.analyses.Upsert(ctx, user.ID, month, result); err != nil {
			return models.AnalysisResponse{}, err
		}
	}

	s.logger.Info("Stored monthly analysis",
		logging.Field{Key: "owner", Value: user.Email},
		logging.Field{Key: "month", Value: month},
		logging.Field{Key: "score", Value: result.BudgetHealth.Score})

	return result, nil
}

// ListAnalyses returns every stored analysis for the owner, newest month
// last, converted to the response shape. An owner with no history gets an
// empty list; only a failed owner lookup is an error.
func (s *AnalysisService) ListAnalyses(ctx context.Context, email string) ([]models.AnalysisResponse, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	histories, err := s.analyses.ListByOwner(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	responses := make([]models.AnalysisResponse, 0, len(histories))
	for i := range histories {
		responses = append(responses, histories[i].Response())
	}
	return responses, nil
}
