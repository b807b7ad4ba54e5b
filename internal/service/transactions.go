// Package service orchestrates the statement ingestion pipeline and the
// monthly analysis flow on top of the store interfaces.
package service

import (
	"context"
	"io"

	"github.com/gocarina/gocsv"

	"lifehub/spending/internal/apperrors"
	"lifehub/spending/internal/categorizer"
	"lifehub/spending/internal/logging"
	"lifehub/spending/internal/models"
	"lifehub/spending/internal/parser"
	"lifehub/spending/internal/sheet"
	"lifehub/spending/internal/store"
)

// TransactionService runs the import pipeline and the single-record
// transaction mutations.
type TransactionService struct {
	transactions store.TransactionStore
	users        store.UserStore
	resolver     *categorizer.Resolver
	logger       logging.Logger
}

// NewTransactionService wires the ingestion pipeline.
func NewTransactionService(
	transactions store.TransactionStore,
	users store.UserStore,
	resolver *categorizer.Resolver,
	logger logging.Logger,
) *TransactionService {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &TransactionService{
		transactions: transactions,
		users:        users,
		resolver:     resolver,
		logger:       logger,
	}
}

// ImportStatement parses the uploaded statement, categorizes the candidates,
// drops the ones whose dedup key already exists, persists the rest for the
// owner, and returns the owner's full non-deleted transaction list.
//
// Existing records are never updated by an import; re-importing the same
// sheet is a no-op beyond the read.
func (s *TransactionService) ImportStatement(ctx context.Context, email string, format parser.Format, r io.Reader) ([]models.Transaction, error) {
	if r == nil {
		return nil, &apperrors.ValidationError{Field: "file", Reason: "statement file is missing"}
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	rows, err := sheet.Read(r)
	if err != nil {
		return nil, err
	}

	p, err := parser.Get(format, s.logger)
	if err != nil {
		return nil, &apperrors.ValidationError{Field: "format", Reason: err.Error()}
	}

	candidates, err := p.Parse(rows)
	if err != nil {
		return nil, err
	}

	if err := s.categorize(ctx, candidates); err != nil {
		return nil, err
	}

	fresh, err := s.dropExisting(ctx, candidates)
	if err != nil {
		return nil, err
	}

	for i := range fresh {
		fresh[i].Owner = user.ID
	}

	inserted, err := s.transactions.InsertNew(ctx, fresh)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Imported statement",
		logging.Field{Key: "owner", Value: user.Email},
		logging.Field{Key: "parsed", Value: len(candidates)},
		logging.Field{Key: "inserted", Value: inserted})

	return s.transactions.ListActiveByOwner(ctx, user.ID)
}

// categorize resolves a category for every candidate. The historical lookup
// covers only the batch's distinct non-ambiguous merchant names; ambiguous
// payment-gateway names go straight to keyword/default resolution.
func (s *TransactionService) categorize(ctx context.Context, candidates []models.Transaction) error {
	seen := make(map[string]struct{})
	var merchants []string
	for _, c := range candidates {
		if categorizer.IsAmbiguousMerchant(c.Merchant) {
			continue
		}
		if _, ok := seen[c.Merchant]; ok {
			continue
		}
		seen[c.Merchant] = struct{}{}
		merchants = append(merchants, c.Merchant)
	}

	history, err := s.transactions.CategoriesByMerchants(ctx, merchants)
	if err != nil {
		return err
	}

	for i := range candidates {
		var historical *string
		if category, ok := history[candidates[i].Merchant]; ok {
			historical = &category
		}
		candidates[i].Category = s.resolver.Resolve(candidates[i].Merchant, historical)
	}
	return nil
}

// dropExisting filters out candidates whose dedup key is already persisted.
func (s *TransactionService) dropExisting(ctx context.Context, candidates []models.Transaction) ([]models.Transaction, error) {
	keys := make([]string, len(candidates))
	for i, c := range candidates {
		keys[i] = c.Key
	}

	existing, err := s.transactions.ExistingKeys(ctx, keys)
	if err != nil {
		return nil, err
	}

	fresh := make([]models.Transaction, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := existing[c.Key]; ok {
			continue
		}
		fresh = append(fresh, c)
	}
	return fresh, nil
}

// ListTransactions returns the owner's non-deleted transactions.
func (s *TransactionService) ListTransactions(ctx context.Context, email string) ([]models.Transaction, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return s.transactions.ListActiveByOwner(ctx, user.ID)
}

// UpdateAmount changes the amount of one record.
func (s *TransactionService) UpdateAmount(ctx context.Context, id string, amount int) error {
	return s.transactions.UpdateAmount(ctx, id, amount)
}

// UpdateCategory changes the category of one record and returns it.
func (s *TransactionService) UpdateCategory(ctx context.Context, id, category string) (*models.Transaction, error) {
	if err := s.transactions.UpdateCategory(ctx, id, category); err != nil {
		return nil, err
	}
	return s.transactions.Get(ctx, id)
}

// DeleteTransaction soft-deletes one record; it disappears from listings but
// stays in the store.
func (s *TransactionService) DeleteTransaction(ctx context.Context, id string) error {
	return s.transactions.MarkDeleted(ctx, id)
}

// ClearTransactions hard-deletes every record the owner has.
func (s *TransactionService) ClearTransactions(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	return s.transactions.DeleteByOwner(ctx, user.ID)
}

// ExportCSV writes the owner's non-deleted transactions to w as CSV.
func (s *TransactionService) ExportCSV(ctx context.Context, email string, w io.Writer) error {
	transactions, err := s.ListTransactions(ctx, email)
	if err != nil {
		return err
	}
	return gocsv.Marshal(transactions, w)
}
