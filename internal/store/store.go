// Package store defines the persistence interfaces for transactions,
// analysis history, keywords and users, together with a sqlite-backed
// implementation and an in-memory implementation used by tests.
package store

import (
	"context"

	"lifehub/spending/internal/models"
)

// TransactionStore persists normalized transaction records.
type TransactionStore interface {
	// InsertNew inserts the candidates whose dedup key is not already
	// present and reports how many were written. A concurrent import
	// racing on the same key silently loses; the duplicate is dropped,
	// not an error.
	InsertNew(ctx context.Context, txs []models.Transaction) (int, error)

	// ExistingKeys reports which of the given dedup keys are already in
	// the store.
	ExistingKeys(ctx context.Context, keys []string) (map[string]struct{}, error)

	// CategoriesByMerchants returns the most recently dated category
	// previously recorded for each of the given merchant names. The
	// lookup spans all owners; see the categorization design notes.
	CategoriesByMerchants(ctx context.Context, merchants []string) (map[string]string, error)

	// ListActiveByOwner returns the owner's non-deleted transactions.
	ListActiveByOwner(ctx context.Context, owner string) ([]models.Transaction, error)

	Get(ctx context.Context, id string) (*models.Transaction, error)
	UpdateAmount(ctx context.Context, id string, amount int) error
	UpdateCategory(ctx context.Context, id, category string) error

	// MarkDeleted flips the record into the deleted state; the row stays
	// in the store.
	MarkDeleted(ctx context.Context, id string) error

	// DeleteByOwner is the bulk clear: a true removal of every record the
	// owner has, deleted or not.
	DeleteByOwner(ctx context.Context, owner string) error
}

// AnalysisStore persists at most one analysis row per (owner, month).
type AnalysisStore interface {
	// Upsert atomically creates the (owner, month) row or overwrites its
	// mutable fields in place.
	Upsert(ctx context.Context, owner, month string, resp models.AnalysisResponse) error

	// ListByOwner returns all history rows for the owner. An owner with
	// no history yields an empty slice, not an error.
	ListByOwner(ctx context.Context, owner string) ([]models.AnalysisHistory, error)
}

// KeywordStore loads the keyword fragment→category mapping consumed by the
// keyword table snapshot.
type KeywordStore interface {
	Load(ctx context.Context) (map[string]string, error)
}

// UserStore resolves owner identities.
type UserStore interface {
	// FindByEmail returns the user or an apperrors.NotFoundError.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}
