// Package parser defines the statement parser capability and the factory
// that selects a concrete parser by bank-export format identifier.
package parser

import (
	"lifehub/spending/internal/models"
)

// Parser converts one spreadsheet-like sheet in a specific bank-export
// layout into normalized candidate transactions, in row order.
//
// Implementations skip rows with a zero or unparsable withdrawal amount and
// fail the whole batch with an apperrors.ParseError when a row is
// structurally broken (a missing required cell). Candidates carry their
// deduplication key but no owner; the ingestion pipeline attaches ownership.
type Parser interface {
	Parse(sheet models.Sheet) ([]models.Transaction, error)
}
