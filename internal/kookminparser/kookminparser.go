// Package kookminparser parses the KB Kookmin card spreadsheet export.
//
// The layout is fixed: five header rows, one trailing summary row, and the
// data columns 0=date, 2=merchant, 4=withdrawal amount, 7=payment method.
// Withdrawal amounts may carry thousands separators. Rows whose withdrawal
// is zero or not a number are informational (deposits, notices) and are
// skipped; a row missing a required cell fails the whole batch.
package kookminparser

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"lifehub/spending/internal/apperrors"
	"lifehub/spending/internal/logging"
	"lifehub/spending/internal/models"
)

const (
	formatName = "kookmin"

	headerRows  = 5
	trailerRows = 1

	colDate          = 0
	colMerchant      = 2
	colWithdrawal    = 4
	colPaymentMethod = 7
)

// Parser parses Kookmin card statements.
type Parser struct {
	logger logging.Logger
}

// New returns a Kookmin statement parser.
func New(logger logging.Logger) *Parser {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Parser{logger: logger}
}

// Parse converts the sheet into candidate transactions, one per data row
// with a non-zero withdrawal. Parsing is all-or-nothing: the first
// structurally broken row aborts the batch.
func (p *Parser) Parse(sheet models.Sheet) ([]models.Transaction, error) {
	last := len(sheet) - trailerRows
	if last < headerRows {
		return nil, &apperrors.ParseError{
			Format: formatName,
			Row:    0,
			Field:  "sheet",
			Err:    fmt.Errorf("sheet has %d rows, need at least %d", len(sheet), headerRows+trailerRows),
		}
	}

	var transactions []models.Transaction
	for i := headerRows; i < last; i++ {
		row := sheet[i]
		if len(row) == 0 {
			continue
		}

		withdrawal, err := requireCell(sheet, i, colWithdrawal, "withdrawal")
		if err != nil {
			return nil, err
		}

		amount, ok := parseAmount(withdrawal)
		if !ok || amount == 0 {
			p.logger.Debug("Skipping non-withdrawal row",
				logging.Field{Key: "row", Value: i},
				logging.Field{Key: "withdrawal", Value: withdrawal})
			continue
		}

		date, err := requireCell(sheet, i, colDate, "date")
		if err != nil {
			return nil, err
		}
		merchant, err := requireCell(sheet, i, colMerchant, "merchant")
		if err != nil {
			return nil, err
		}
		method, err := requireCell(sheet, i, colPaymentMethod, "payment method")
		if err != nil {
			return nil, err
		}

		transactions = append(transactions, models.Transaction{
			Key:           DedupKey(date, amount, merchant),
			Date:          date,
			Merchant:      merchant,
			Amount:        amount,
			Status:        models.StatusCompleted,
			PaymentMethod: method,
			State:         models.StateActive,
		})
	}

	p.logger.Info("Parsed Kookmin statement sheet",
		logging.Field{Key: "rows", Value: last - headerRows},
		logging.Field{Key: "transactions", Value: len(transactions)})

	return transactions, nil
}

// DedupKey derives the deduplication key "{date}_{amount}_{merchant}" with
// every whitespace character removed from the concatenated string, so the
// same transaction re-exported with different spacing still collides.
func DedupKey(date string, amount int, merchant string) string {
	key := fmt.Sprintf("%s_%d_%s", date, amount, merchant)
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, key)
}

// parseAmount parses a withdrawal cell, tolerating thousands separators.
// A non-numeric value reports ok=false so the caller can skip the row.
func parseAmount(raw string) (int, bool) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if cleaned == "" {
		return 0, false
	}
	amount, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0, false
	}
	return amount, true
}

func requireCell(sheet models.Sheet, row, col int, field string) (string, error) {
	value, ok := sheet.Cell(row, col)
	if !ok || strings.TrimSpace(value) == "" {
		return "", &apperrors.ParseError{
			Format: formatName,
			Row:    row,
			Field:  field,
			Err:    fmt.Errorf("missing required cell (column %d)", col),
		}
	}
	return value, nil
}
