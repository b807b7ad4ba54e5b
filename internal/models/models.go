// Package models defines the data types shared across parsing, categorization,
// persistence and analysis.
package models

// PaymentStatus describes the settlement state of a statement row.
type PaymentStatus string

const (
	StatusCompleted PaymentStatus = "completed"
	StatusPending   PaymentStatus = "pending"
	StatusCancelled PaymentStatus = "cancelled"
)

// RecordState is the lifecycle state of a persisted transaction. A deleted
// record is hidden from listings but stays in the store until the owner runs
// a bulk clear.
type RecordState string

const (
	StateActive  RecordState = "active"
	StateDeleted RecordState = "deleted"
)

// Transaction is one normalized bank-statement row.
//
// Date keeps the source format verbatim ("2024.02.14"); Amount is the
// withdrawal in the smallest currency unit. Key is the deduplication key
// derived from date, amount and merchant, unique across the store.
type Transaction struct {
	ID            string        `json:"id" csv:"id"`
	Owner         string        `json:"-" csv:"-"`
	Key           string        `json:"-" csv:"-"`
	Date          string        `json:"date" csv:"date"`
	Merchant      string        `json:"merchant" csv:"merchant"`
	Amount        int           `json:"amount" csv:"amount"`
	Category      string        `json:"category" csv:"category"`
	Description   string        `json:"description,omitempty" csv:"description"`
	Status        PaymentStatus `json:"status" csv:"status"`
	PaymentMethod string        `json:"paymentMethod" csv:"payment_method"`
	State         RecordState   `json:"-" csv:"-"`
}

// User is the owner identity resolved by the collaborator user store.
type User struct {
	ID    string
	Email string
	Name  string
}

// Sheet is a spreadsheet-like grid of cells, one row per statement line.
// Rows may have differing lengths; parsers index into the columns their
// bank layout fixes.
type Sheet [][]string

// Cell returns the cell at (row, col), and whether it exists.
func (s Sheet) Cell(row, col int) (string, bool) {
	if row < 0 || row >= len(s) {
		return "", false
	}
	if col < 0 || col >= len(s[row]) {
		return "", false
	}
	return s[row][col], true
}
