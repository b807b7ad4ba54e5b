package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"lifehub/spending/internal/apperrors"
	"lifehub/spending/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id    TEXT PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	name  TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS transactions (
	id             TEXT PRIMARY KEY,
	user_id        TEXT NOT NULL REFERENCES users(id),
	tx_key         TEXT NOT NULL UNIQUE,
	date           TEXT NOT NULL,
	merchant       TEXT NOT NULL,
	amount         INTEGER NOT NULL,
	category       TEXT NOT NULL,
	description    TEXT NOT NULL DEFAULT '',
	status         TEXT NOT NULL,
	payment_method TEXT NOT NULL,
	state          TEXT NOT NULL DEFAULT 'active',
	created_at     TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS analysis_history (
	id                 TEXT PRIMARY KEY,
	user_id            TEXT NOT NULL REFERENCES users(id),
	month              TEXT NOT NULL,
	summary            TEXT NOT NULL,
	score              INTEGER NOT NULL,
	health_status      TEXT NOT NULL,
	health_description TEXT NOT NULL,
	trends             TEXT NOT NULL DEFAULT '[]',
	recommendations    TEXT NOT NULL DEFAULT '[]',
	created_at         TEXT NOT NULL DEFAULT (datetime('now')),
	UNIQUE(user_id, month)
);

CREATE TABLE IF NOT EXISTS keywords (
	name     TEXT PRIMARY KEY,
	category TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transactions_owner ON transactions(user_id, state);
CREATE INDEX IF NOT EXISTS idx_transactions_merchant ON transactions(merchant);
`

// SQLiteStore implements the store interfaces on a sqlite database. The
// UNIQUE(tx_key) and UNIQUE(user_id, month) constraints make insert-if-absent
// and the analysis upsert atomic with respect to concurrent requests.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path and ensures the schema.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// EnsureUser creates the user row for email if it does not exist and returns
// it either way.
func (s *SQLiteStore) EnsureUser(ctx context.Context, email, name string) (*models.User, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, email, name) VALUES (?, ?, ?)
		 ON CONFLICT(email) DO NOTHING`,
		uuid.NewString(), email, name)
	if err != nil {
		return nil, fmt.Errorf("ensure user: %w", err)
	}
	return s.FindByEmail(ctx, email)
}

func (s *SQLiteStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.QueryRowContext(ctx,
		`SELECT id, email, name FROM users WHERE email = ?`, email).
		Scan(&user.ID, &user.Email, &user.Name)
	if err == sql.ErrNoRows {
		return nil, &apperrors.NotFoundError{Kind: "user", Key: email}
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

// ReplaceKeywords overwrites the keywords table with the given mapping.
func (s *SQLiteStore) ReplaceKeywords(ctx context.Context, keywords map[string]string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin keywords replace: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM keywords`); err != nil {
		return fmt.Errorf("clear keywords: %w", err)
	}
	for name, category := range keywords {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO keywords (name, category) VALUES (?, ?)`, name, category); err != nil {
			return fmt.Errorf("insert keyword %q: %w", name, err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) Load(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, category FROM keywords`)
	if err != nil {
		return nil, fmt.Errorf("load keywords: %w", err)
	}
	defer func() { _ = rows.Close() }()

	keywords := make(map[string]string)
	for rows.Next() {
		var name, category string
		if err := rows.Scan(&name, &category); err != nil {
			return nil, fmt.Errorf("scan keyword: %w", err)
		}
		keywords[name] = category
	}
	return keywords, rows.Err()
}

func (s *SQLiteStore) InsertNew(ctx context.Context, txs []models.Transaction) (int, error) {
	if len(txs) == 0 {
		return 0, nil
	}

	dbtx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin import: %w", err)
	}
	defer func() { _ = dbtx.Rollback() }()

	stmt, err := dbtx.PrepareContext(ctx,
		`INSERT INTO transactions
		 (id, user_id, tx_key, date, merchant, amount, category, description, status, payment_method, state)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(tx_key) DO NOTHING`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	inserted := 0
	for _, t := range txs {
		id := t.ID
		if id == "" {
			id = uuid.NewString()
		}
		res, err := stmt.ExecContext(ctx, id, t.Owner, t.Key, t.Date, t.Merchant,
			t.Amount, t.Category, t.Description, string(t.Status), t.PaymentMethod, string(t.State))
		if err != nil {
			return 0, fmt.Errorf("insert transaction %s: %w", t.Key, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}

	if err := dbtx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}
	return inserted, nil
}

func (s *SQLiteStore) ExistingKeys(ctx context.Context, keys []string) (map[string]struct{}, error) {
	existing := make(map[string]struct{})
	if len(keys) == 0 {
		return existing, nil
	}

	query := fmt.Sprintf(`SELECT tx_key FROM transactions WHERE tx_key IN (%s)`, placeholders(len(keys)))
	rows, err := s.db.QueryContext(ctx, query, stringArgs(keys)...)
	if err != nil {
		return nil, fmt.Errorf("query existing keys: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan key: %w", err)
		}
		existing[key] = struct{}{}
	}
	return existing, rows.Err()
}

func (s *SQLiteStore) CategoriesByMerchants(ctx context.Context, merchants []string) (map[string]string, error) {
	categories := make(map[string]string)
	if len(merchants) == 0 {
		return categories, nil
	}

	query := fmt.Sprintf(
		`SELECT merchant, category FROM transactions WHERE merchant IN (%s) ORDER BY date DESC`,
		placeholders(len(merchants)))
	rows, err := s.db.QueryContext(ctx, query, stringArgs(merchants)...)
	if err != nil {
		return nil, fmt.Errorf("query merchant categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var merchant, category string
		if err := rows.Scan(&merchant, &category); err != nil {
			return nil, fmt.Errorf("scan merchant category: %w", err)
		}
		// Rows arrive newest first; keep the first category per merchant.
		if _, ok := categories[merchant]; !ok {
			categories[merchant] = category
		}
	}
	return categories, rows.Err()
}

func (s *SQLiteStore) ListActiveByOwner(ctx context.Context, owner string) ([]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, tx_key, date, merchant, amount, category, description, status, payment_method, state
		 FROM transactions
		 WHERE user_id = ? AND state = ?
		 ORDER BY date, id`, owner, string(models.StateActive))
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, tx)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*models.Transaction, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, tx_key, date, merchant, amount, category, description, status, payment_method, state
		 FROM transactions WHERE id = ?`, id)

	var tx models.Transaction
	var status, state string
	err := row.Scan(&tx.ID, &tx.Owner, &tx.Key, &tx.Date, &tx.Merchant, &tx.Amount,
		&tx.Category, &tx.Description, &status, &tx.PaymentMethod, &state)
	if err == sql.ErrNoRows {
		return nil, &apperrors.NotFoundError{Kind: "transaction", Key: id}
	}
	if err != nil {
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	tx.Status = models.PaymentStatus(status)
	tx.State = models.RecordState(state)
	return &tx, nil
}

func (s *SQLiteStore) UpdateAmount(ctx context.Context, id string, amount int) error {
	return s.updateOne(ctx, `UPDATE transactions SET amount = ? WHERE id = ?`, id, amount, id)
}

func (s *SQLiteStore) UpdateCategory(ctx context.Context, id, category string) error {
	return s.updateOne(ctx, `UPDATE transactions SET category = ? WHERE id = ?`, id, category, id)
}

func (s *SQLiteStore) MarkDeleted(ctx context.Context, id string) error {
	return s.updateOne(ctx, `UPDATE transactions SET state = ? WHERE id = ?`, id, string(models.StateDeleted), id)
}

func (s *SQLiteStore) updateOne(ctx context.Context, query, id string, args ...interface{}) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if n == 0 {
		return &apperrors.NotFoundError{Kind: "transaction", Key: id}
	}
	return nil
}

func (s *SQLiteStore) DeleteByOwner(ctx context.Context, owner string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE user_id = ?`, owner)
	if err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Upsert(ctx context.Context, owner, month string, resp models.AnalysisResponse) error {
	trends, err := MarshalTrends(resp.Trends)
	if err != nil {
		return fmt.Errorf("marshal trends: %w", err)
	}
	recs, err := MarshalRecommendations(resp.Recommendations)
	if err != nil {
		return fmt.Errorf("marshal recommendations: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO analysis_history
		 (id, user_id, month, summary, score, health_status, health_description, trends, recommendations)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id, month) DO UPDATE SET
			summary            = excluded.summary,
			score              = excluded.score,
			health_status      = excluded.health_status,
			health_description = excluded.health_description,
			trends             = excluded.trends,
			recommendations    = excluded.recommendations`,
		uuid.NewString(), owner, month, resp.Summary, resp.BudgetHealth.Score,
		resp.BudgetHealth.Status, resp.BudgetHealth.Description, trends, recs)
	if err != nil {
		return fmt.Errorf("upsert analysis: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListByOwner(ctx context.Context, owner string) ([]models.AnalysisHistory, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, month, summary, score, health_status, health_description,
		        trends, recommendations, created_at
		 FROM analysis_history WHERE user_id = ? ORDER BY month`, owner)
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.AnalysisHistory
	for rows.Next() {
		var h models.AnalysisHistory
		var trends, recs, createdAt string
		if err := rows.Scan(&h.ID, &h.Owner, &h.Month, &h.Summary, &h.Score,
			&h.HealthStatus, &h.HealthDescription, &trends, &recs, &createdAt); err != nil {
			return nil, fmt.Errorf("scan analysis: %w", err)
		}
		h.Trends = UnmarshalTrends(trends)
		h.Recommendations = UnmarshalRecommendations(recs)
		out = append(out, h)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTransaction(row rowScanner) (models.Transaction, error) {
	var tx models.Transaction
	var status, state string
	err := row.Scan(&tx.ID, &tx.Owner, &tx.Key, &tx.Date, &tx.Merchant, &tx.Amount,
		&tx.Category, &tx.Description, &status, &tx.PaymentMethod, &state)
	if err != nil {
		return tx, fmt.Errorf("scan transaction: %w", err)
	}
	tx.Status = models.PaymentStatus(status)
	tx.State = models.RecordState(state)
	return tx, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func stringArgs(values []string) []interface{} {
	args := make([]interface{}, len(values))
	for i, v := range values {
		args[i] = v
	}
	return args
}
