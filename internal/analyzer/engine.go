// Package analyzer calls the external AI engine that turns one month of
// transactions into a structured spending analysis.
package analyzer

import (
	"context"

	"lifehub/spending/internal/models"
)

// Engine is the external analysis collaborator. Implementations must return
// either a fully populated response or an apperrors.EngineError; there is no
// partially valid output and no automatic retry.
type Engine interface {
	Analyze(ctx context.Context, transactions []models.Transaction, month string) (models.AnalysisResponse, error)
}
