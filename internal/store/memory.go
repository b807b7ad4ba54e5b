package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"lifehub/spending/internal/apperrors"
	"lifehub/spending/internal/models"
)

// MemoryStore implements every store interface with mutex-guarded maps.
// Tests and local experiments use it in place of sqlite; the lock gives the
// same insert-if-absent and upsert atomicity the database constraints give.
type MemoryStore struct {
	mu sync.RWMutex

	users        map[string]*models.User // keyed by email
	transactions map[string]*models.Transaction
	txByKey      map[string]string // dedup key -> transaction ID
	analyses     map[string]*models.AnalysisHistory
	keywords     map[string]string
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:        make(map[string]*models.User),
		transactions: make(map[string]*models.Transaction),
		txByKey:      make(map[string]string),
		analyses:     make(map[string]*models.AnalysisHistory),
		keywords:     make(map[string]string),
	}
}

// AddUser registers a user, generating an ID when absent.
func (s *MemoryStore) AddUser(user models.User) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	s.users[user.Email] = &user
	return &user
}

// SetKeywords replaces the keyword mapping.
func (s *MemoryStore) SetKeywords(keywords map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keywords = make(map[string]string, len(keywords))
	for k, v := range keywords {
		s.keywords[k] = v
	}
}

func (s *MemoryStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[email]
	if !ok {
		return nil, &apperrors.NotFoundError{Kind: "user", Key: email}
	}
	copied := *user
	return &copied, nil
}

func (s *MemoryStore) Load(_ context.Context) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.keywords))
	for k, v := range s.keywords {
		out[k] = v
	}
	return out, nil
}

func (s *MemoryStore) InsertNew(_ context.Context, txs []models.Transaction) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inserted := 0
	for _, tx := range txs {
		if _, exists := s.txByKey[tx.Key]; exists {
			continue
		}
		if tx.ID == "" {
			tx.ID = uuid.NewString()
		}
		copied := tx
		s.transactions[copied.ID] = &copied
		s.txByKey[copied.Key] = copied.ID
		inserted++
	}
	return inserted, nil
}

func (s *MemoryStore) ExistingKeys(_ context.Context, keys []string) (map[string]struct{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	existing := make(map[string]struct{})
	for _, key := range keys {
		if _, ok := s.txByKey[key]; ok {
			existing[key] = struct{}{}
		}
	}
	return existing, nil
}

func (s *MemoryStore) CategoriesByMerchants(_ context.Context, merchants []string) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wanted := make(map[string]struct{}, len(merchants))
	for _, m := range merchants {
		wanted[m] = struct{}{}
	}

	// Most recent date wins per merchant, matching the sqlite query's
	// ORDER BY date DESC with first-row-wins collection.
	type dated struct {
		category string
		date     string
	}
	best := make(map[string]dated)
	for _, tx := range s.transactions {
		if _, ok := wanted[tx.Merchant]; !ok {
			continue
		}
		if cur, ok := best[tx.Merchant]; !ok || tx.Date > cur.date {
			best[tx.Merchant] = dated{category: tx.Category, date: tx.Date}
		}
	}

	out := make(map[string]string, len(best))
	for merchant, d := range best {
		out[merchant] = d.category
	}
	return out, nil
}

func (s *MemoryStore) ListActiveByOwner(_ context.Context, owner string) ([]models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Transaction
	for _, tx := range s.transactions {
		if tx.Owner == owner && tx.State == models.StateActive {
			out = append(out, *tx)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tx, ok := s.transactions[id]
	if !ok {
		return nil, &apperrors.NotFoundError{Kind: "transaction", Key: id}
	}
	copied := *tx
	return &copied, nil
}

func (s *MemoryStore) UpdateAmount(_ context.Context, id string, amount int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, ok := s.transactions[id]
	if !ok {
		return &apperrors.NotFoundError{Kind: "transaction", Key: id}
	}
	tx.Amount = amount
	return nil
}

func (s *MemoryStore) UpdateCategory(_ context.Context, id, category string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, ok := s.transactions[id]
	if !ok {
		return &apperrors.NotFoundError{Kind: "transaction", Key: id}
	}
	tx.Category = category
	return nil
}

func (s *MemoryStore) MarkDeleted(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, ok := s.transactions[id]
	if !ok {
		return &apperrors.NotFoundError{Kind: "transaction", Key: id}
	}
	tx.State = models.StateDeleted
	return nil
}

func (s *MemoryStore) DeleteByOwner(_ context.Context, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, tx := range s.transactions {
		if tx.Owner == owner {
			delete(s.txByKey, tx.Key)
			delete(s.transactions, id)
		}
	}
	return nil
}

// CountByOwner reports how many records the owner has in the store,
// including soft-deleted ones. Tests use it to tell soft delete apart from
// the bulk clear.
func (s *MemoryStore) CountByOwner(owner string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, tx := range s.transactions {
		if tx.Owner == owner {
			n++
		}
	}
	return n
}

func (s *MemoryStore) Upsert(_ context.Context, owner, month string, resp models.AnalysisResponse) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := owner + "|" + month
	if existing, ok := s.analyses[key]; ok {
		existing.Apply(resp)
		return nil
	}

	history := &models.AnalysisHistory{
		ID:        uuid.NewString(),
		Owner:     owner,
		Month:     month,
		CreatedAt: time.Now(),
	}
	history.Apply(resp)
	s.analyses[key] = history
	return nil
}

func (s *MemoryStore) ListByOwner(_ context.Context, owner string) ([]models.AnalysisHistory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.AnalysisHistory
	for _, h := range s.analyses {
		if h.Owner == owner {
			out = append(out, *h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out, nil
}
