package kookminparser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifehub/spending/internal/apperrors"
	"lifehub/spending/internal/logging"
	"lifehub/spending/internal/models"
)

// buildSheet wraps data rows in the fixed Kookmin layout: five header rows
// before the data and one summary row after it.
func buildSheet(dataRows ...[]string) models.Sheet {
	sheet := models.Sheet{
		{"카드이용내역"},
		{""},
		{"회원번호", "", "1234"},
		{""},
		{"이용일", "", "가맹점명", "", "출금액", "", "", "결제방법"},
	}
	sheet = append(sheet, dataRows...)
	sheet = append(sheet, []string{"합계", "", "", "", "12345"})
	return sheet
}

func dataRow(date, merchant, amount, method string) []string {
	return []string{date, "", merchant, "", amount, "", "", method}
}

func TestParseBasicRow(t *testing.T) {
	p := New(logging.NewNopLogger())

	sheet := buildSheet(dataRow("2024.02.14", "스타벅스 동백점", "5,000", "일시불"))
	transactions, err := p.Parse(sheet)
	require.NoError(t, err)
	require.Len(t, transactions, 1)

	tx := transactions[0]
	assert.Equal(t, "2024.02.14", tx.Date)
	assert.Equal(t, "스타벅스 동백점", tx.Merchant)
	assert.Equal(t, 5000, tx.Amount)
	assert.Equal(t, "일시불", tx.PaymentMethod)
	assert.Equal(t, models.StatusCompleted, tx.Status)
	assert.Equal(t, models.StateActive, tx.State)
}

func TestParseDedupKeyStripsWhitespace(t *testing.T) {
	p := New(nil)

	sheet := buildSheet(dataRow("2024.02.14", "스타벅스 동백점", "5,000", "일시불"))
	transactions, err := p.Parse(sheet)
	require.NoError(t, err)
	require.Len(t, transactions, 1)

	// The merchant name contains a space; the key must not.
	assert.Equal(t, "2024.02.14_5000_스타벅스동백점", transactions[0].Key)
}

func TestParseSkipsZeroAndUnparsableAmounts(t *testing.T) {
	p := New(nil)

	sheet := buildSheet(
		dataRow("2024.02.01", "배달의민족", "12,000", "일시불"),
		dataRow("2024.02.02", "연회비 안내", "0", "일시불"),
		dataRow("2024.02.03", "포인트 적립", "-", "일시불"),
		dataRow("2024.02.04", "GS25", "1,500", "일시불"),
	)
	transactions, err := p.Parse(sheet)
	require.NoError(t, err)
	require.Len(t, transactions, 2)
	assert.Equal(t, "배달의민족", transactions[0].Merchant)
	assert.Equal(t, "GS25", transactions[1].Merchant)
}

func TestParseSkipsHeaderAndTrailerRows(t *testing.T) {
	p := New(nil)

	// Header rows contain text in the amount column position; none of it
	// may leak into the output.
	sheet := buildSheet(dataRow("2024.02.14", "CGV", "15,000", "일시불"))
	transactions, err := p.Parse(sheet)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, "CGV", transactions[0].Merchant)
}

func TestParseMissingCellFailsBatch(t *testing.T) {
	p := New(nil)

	// Second data row has a withdrawal but no merchant cell.
	sheet := buildSheet(
		dataRow("2024.02.01", "배달의민족", "12,000", "일시불"),
		[]string{"2024.02.02", "", "", "", "9,000"},
	)
	transactions, err := p.Parse(sheet)
	require.Error(t, err)
	assert.Nil(t, transactions)

	var parseErr *apperrors.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, 6, parseErr.Row)
	assert.Equal(t, "merchant", parseErr.Field)
}

func TestParseTooShortSheet(t *testing.T) {
	p := New(nil)

	_, err := p.Parse(models.Sheet{{"헤더"}, {"만"}})
	var parseErr *apperrors.ParseError
	require.True(t, errors.As(err, &parseErr))
}

func TestParseEmptyRowsWithinRangeAreSkipped(t *testing.T) {
	p := New(nil)

	sheet := buildSheet(
		dataRow("2024.02.01", "쿠팡", "30,000", "일시불"),
		[]string{},
		dataRow("2024.02.03", "이마트 트레이더스", "84,200", "일시불"),
	)
	transactions, err := p.Parse(sheet)
	require.NoError(t, err)
	require.Len(t, transactions, 2)
}

func TestDedupKeyDeterminism(t *testing.T) {
	a := DedupKey("2024.02.14", 5000, "스타벅스 동백점")
	b := DedupKey("2024.02.14", 5000, "스타벅스동백점")
	assert.Equal(t, a, b, "whitespace in the merchant must not change the key")
}
