package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifehub/spending/internal/apperrors"
	"lifehub/spending/internal/categorizer"
	"lifehub/spending/internal/models"
	"lifehub/spending/internal/parser"
	"lifehub/spending/internal/store"
)

// statementCSV mirrors the bank export: five preamble lines, then data rows,
// then a trailing summary line. Amounts carry thousands separators and are
// quoted so the comma survives CSV.
const statementCSV = `카드이용내역
발급회원번호,,1234-****
,,,
조회기간,,2024.02.01 ~ 2024.02.29
이용일,,가맹점명,,출금액,,,결제방법
2024.02.01,,배달의민족,,"12,000",,,일시불
2024.02.03,,스타벅스 역삼점,,"5,500",,,일시불
2024.02.05,,카카오페이,,"30,000",,,일시불
2024.02.07,,동네 철물점,,"8,000",,,일시불
합계,,,,"55,500"
`

func newFixture(t *testing.T) (*TransactionService, *store.MemoryStore, *models.User) {
	t.Helper()

	mem := store.NewMemoryStore()
	user := mem.AddUser(models.User{Email: "suhyun@lifehub.dev", Name: "수현"})

	resolver := categorizer.NewResolver(categorizer.NewKeywordTable(map[string]string{
		"스타벅스": "Food",
		"배달의민족": "Food",
		"카카오페이": "Transfers",
	}))

	return NewTransactionService(mem, mem, resolver, nil), mem, user
}

func TestImportStatement(t *testing.T) {
	svc, _, _ := newFixture(t)
	ctx := context.Background()

	listed, err := svc.ImportStatement(ctx, "suhyun@lifehub.dev", parser.Kookmin, strings.NewReader(statementCSV))
	require.NoError(t, err)
	require.Len(t, listed, 4)

	byMerchant := make(map[string]models.Transaction, len(listed))
	for _, tx := range listed {
		byMerchant[tx.Merchant] = tx
	}

	assert.Equal(t, 12000, byMerchant["배달의민족"].Amount)
	assert.Equal(t, "Food", byMerchant["스타벅스 역삼점"].Category)
	assert.Equal(t, "Transfers", byMerchant["카카오페이"].Category)
	assert.Equal(t, "Other", byMerchant["동네 철물점"].Category)
}

func TestImportStatementIsIdempotent(t *testing.T) {
	svc, mem, user := newFixture(t)
	ctx := context.Background()

	first, err := svc.ImportStatement(ctx, "suhyun@lifehub.dev", parser.Kookmin, strings.NewReader(statementCSV))
	require.NoError(t, err)

	second, err := svc.ImportStatement(ctx, "suhyun@lifehub.dev", parser.Kookmin, strings.NewReader(statementCSV))
	require.NoError(t, err)

	assert.Len(t, second, len(first), "re-importing the same sheet adds nothing")
	assert.Equal(t, len(first), mem.CountByOwner(user.ID))
}

func TestImportStatementHistoricalCategoryWins(t *testing.T) {
	svc, mem, _ := newFixture(t)
	ctx := context.Background()

	// A past record holds a manual category; later imports of the same
	// merchant must inherit it instead of the keyword's.
	_, err := mem.InsertNew(ctx, []models.Transaction{{
		Owner: "someone-else", Key: "old", Date: "2024.01.10",
		Merchant: "스타벅스 역삼점", Amount: 4500, Category: "Coffee",
		Status: models.StatusCompleted, State: models.StateActive,
	}})
	require.NoError(t, err)

	listed, err := svc.ImportStatement(ctx, "suhyun@lifehub.dev", parser.Kookmin, strings.NewReader(statementCSV))
	require.NoError(t, err)

	for _, tx := range listed {
		if tx.Merchant == "스타벅스 역삼점" {
			assert.Equal(t, "Coffee", tx.Category)
			return
		}
	}
	t.Fatal("expected merchant missing from import result")
}

func TestImportStatementAmbiguousMerchantIgnoresHistory(t *testing.T) {
	svc, mem, _ := newFixture(t)
	ctx := context.Background()

	// History exists for the gateway, but gateways carry no merchant
	// signal, so the keyword table decides.
	_, err := mem.InsertNew(ctx, []models.Transaction{{
		Owner: "someone-else", Key: "old-pay", Date: "2024.01.02",
		Merchant: "카카오페이", Amount: 9900, Category: "Shopping",
		Status: models.StatusCompleted, State: models.StateActive,
	}})
	require.NoError(t, err)

	listed, err := svc.ImportStatement(ctx, "suhyun@lifehub.dev", parser.Kookmin, strings.NewReader(statementCSV))
	require.NoError(t, err)

	for _, tx := range listed {
		if tx.Merchant == "카카오페이" {
			assert.Equal(t, "Transfers", tx.Category)
			return
		}
	}
	t.Fatal("expected merchant missing from import result")
}

func TestImportStatementUnknownUser(t *testing.T) {
	svc, _, _ := newFixture(t)

	_, err := svc.ImportStatement(context.Background(), "stranger@lifehub.dev", parser.Kookmin, strings.NewReader(statementCSV))
	assert.True(t, apperrors.IsNotFound(err))
}

func TestImportStatementNilReader(t *testing.T) {
	svc, _, _ := newFixture(t)

	_, err := svc.ImportStatement(context.Background(), "suhyun@lifehub.dev", parser.Kookmin, nil)
	assert.True(t, apperrors.IsValidation(err))
}

func TestImportStatementUnknownFormat(t *testing.T) {
	svc, _, _ := newFixture(t)

	_, err := svc.ImportStatement(context.Background(), "suhyun@lifehub.dev", parser.Format("shinhan"), strings.NewReader(statementCSV))
	assert.True(t, apperrors.IsValidation(err))
}

func TestUpdateCategoryReturnsRecord(t *testing.T) {
	svc, _, _ := newFixture(t)
	ctx := context.Background()

	listed, err := svc.ImportStatement(ctx, "suhyun@lifehub.dev", parser.Kookmin, strings.NewReader(statementCSV))
	require.NoError(t, err)
	require.NotEmpty(t, listed)

	updated, err := svc.UpdateCategory(ctx, listed[0].ID, "Hobby")
	require.NoError(t, err)
	assert.Equal(t, "Hobby", updated.Category)

	_, err = svc.UpdateCategory(ctx, "missing-id", "Hobby")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUpdateAmount(t *testing.T) {
	svc, _, _ := newFixture(t)
	ctx := context.Background()

	listed, err := svc.ImportStatement(ctx, "suhyun@lifehub.dev", parser.Kookmin, strings.NewReader(statementCSV))
	require.NoError(t, err)
	require.NotEmpty(t, listed)

	require.NoError(t, svc.UpdateAmount(ctx, listed[0].ID, 99999))

	after, err := svc.ListTransactions(ctx, "suhyun@lifehub.dev")
	require.NoError(t, err)
	found := false
	for _, tx := range after {
		if tx.ID == listed[0].ID {
			assert.Equal(t, 99999, tx.Amount)
			found = true
		}
	}
	assert.True(t, found)
}

func TestDeleteVersusClear(t *testing.T) {
	svc, mem, user := newFixture(t)
	ctx := context.Background()

	listed, err := svc.ImportStatement(ctx, "suhyun@lifehub.dev", parser.Kookmin, strings.NewReader(statementCSV))
	require.NoError(t, err)
	require.Len(t, listed, 4)

	require.NoError(t, svc.DeleteTransaction(ctx, listed[0].ID))

	after, err := svc.ListTransactions(ctx, "suhyun@lifehub.dev")
	require.NoError(t, err)
	assert.Len(t, after, 3, "the soft-deleted record leaves the listing")
	assert.Equal(t, 4, mem.CountByOwner(user.ID), "but is still stored")

	require.NoError(t, svc.ClearTransactions(ctx, "suhyun@lifehub.dev"))
	assert.Equal(t, 0, mem.CountByOwner(user.ID))
}

func TestExportCSV(t *testing.T) {
	svc, _, _ := newFixture(t)
	ctx := context.Background()

	_, err := svc.ImportStatement(ctx, "suhyun@lifehub.dev", parser.Kookmin, strings.NewReader(statementCSV))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(ctx, "suhyun@lifehub.dev", &buf))

	out := buf.String()
	assert.Contains(t, out, "배달의민족")
	assert.Contains(t, out, "스타벅스 역삼점")
}
