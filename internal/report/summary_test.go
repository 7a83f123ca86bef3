package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahiyapatil/smart-financial-parser/internal/model"
)

func txn(day int, merchant, category, amount string) *model.Transaction {
	return &model.Transaction{
		Date:               time.Date(2023, 1, day, 0, 0, 0, 0, time.UTC),
		MerchantName:       merchant,
		NormalizedMerchant: merchant,
		Amount:             decimal.RequireFromString(amount),
		Currency:           "USD",
		Category:           category,
		IsRefund:           decimal.RequireFromString(amount).IsNegative(),
	}
}

func TestSummarize(t *testing.T) {
	txns := []*model.Transaction{
		txn(1, "Amazon", "Shopping", "100.00"),
		txn(2, "Starbucks", "Food", "20.00"),
		txn(3, "Amazon", "Shopping", "-30.00"),
		txn(5, "Netflix", "Entertainment", "15.49"),
	}
	txns[0].Flag(model.SeverityHigh, "large purchase")

	summary := Summarize(txns)
	require.NotNil(t, summary)

	assert.Equal(t, 4, summary.TotalTransactions)
	assert.Equal(t, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), summary.DateStart)
	assert.Equal(t, time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC), summary.DateEnd)
	assert.Equal(t, "135.49", summary.TotalSpending.StringFixed(2))
	assert.Equal(t, "30.00", summary.TotalRefunds.StringFixed(2))
	assert.Equal(t, "105.49", summary.NetSpending.StringFixed(2))
	assert.Equal(t, "Shopping", summary.TopCategory)
	assert.Equal(t, "100.00", summary.TopCategorySpending.StringFixed(2))
	assert.Equal(t, 1, summary.AnomaliesDetected)
}

func TestSummarize_Empty(t *testing.T) {
	assert.Nil(t, Summarize(nil))
}

func TestSummarize_AllRefunds(t *testing.T) {
	txns := []*model.Transaction{
		txn(1, "A", "Shopping", "-50.00"),
		txn(2, "B", "Shopping", "-50.00"),
	}

	summary := Summarize(txns)
	require.NotNil(t, summary)
	assert.Equal(t, "0.00", summary.TotalSpending.StringFixed(2))
	assert.Equal(t, "100.00", summary.TotalRefunds.StringFixed(2))
	assert.Equal(t, "-100.00", summary.NetSpending.StringFixed(2))
}

func TestCategoryBreakdown_SortedDescending(t *testing.T) {
	txns := []*model.Transaction{
		txn(1, "A", "Food", "10.00"),
		txn(2, "B", "Shopping", "100.00"),
		txn(3, "C", "Food", "15.00"),
		txn(4, "D", "Entertainment", "-20.00"),
	}

	breakdown := CategoryBreakdown(txns)
	require.Len(t, breakdown, 2, "refund-only categories carry no spending")
	assert.Equal(t, "Shopping", breakdown[0].Name)
	assert.Equal(t, "100.00", breakdown[0].Amount.StringFixed(2))
	assert.Equal(t, "Food", breakdown[1].Name)
	assert.Equal(t, "25.00", breakdown[1].Amount.StringFixed(2))
}

func TestMerchantBreakdown_CoversAllSpendingMerchants(t *testing.T) {
	txns := []*model.Transaction{
		txn(1, "Amazon", "Shopping", "50.00"),
		txn(2, "Amazon", "Shopping", "25.00"),
		txn(3, "Target", "Shopping", "60.00"),
	}

	breakdown := MerchantBreakdown(txns)
	require.Len(t, breakdown, 2)
	assert.Equal(t, "Target", breakdown[1].Name)
	assert.Equal(t, "Amazon", breakdown[0].Name)
	assert.Equal(t, "75.00", breakdown[0].Amount.StringFixed(2))
}
