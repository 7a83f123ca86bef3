package ingest

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahiyapatil/smart-financial-parser/internal/common"
	"github.com/mahiyapatil/smart-financial-parser/internal/model"
)

func TestReadRecords(t *testing.T) {
	input := `date,merchant_name,amount,category
2023-01-15,UBER *TRIP HELP.UBER.CO,$45.99,
01/16/2023,AMZN Mktp US*RT4Y67,(50.00),Shopping
Jan 17th 2023,Starbucks,5.75,Food
`

	records, err := ReadRecords(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, model.RawRecord{
		Date:         "2023-01-15",
		MerchantName: "UBER *TRIP HELP.UBER.CO",
		Amount:       "$45.99",
	}, records[0])
	assert.Equal(t, "Shopping", records[1].Category)
	assert.Equal(t, "Jan 17th 2023", records[2].Date)
}

func TestReadRecords_HeaderAliases(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{name: "spaced merchant column", header: "Date,Merchant Name,Amount"},
		{name: "underscored merchant column", header: "date,merchant_name,amount"},
		{name: "bare merchant column", header: "DATE,MERCHANT,AMOUNT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := tt.header + "\n2023-01-15,Uber,45.99\n"
			records, err := ReadRecords(strings.NewReader(input))
			require.NoError(t, err)
			require.Len(t, records, 1)
			assert.Equal(t, "Uber", records[0].MerchantName)
		})
	}
}

func TestReadRecords_MissingCategoryColumn(t *testing.T) {
	input := "date,merchant,amount\n2023-01-15,Uber,45.99\n"

	records, err := ReadRecords(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Empty(t, records[0].Category)
}

func TestReadRecords_ShortRowsPadded(t *testing.T) {
	input := "date,merchant,amount,category\n2023-01-15,Uber\n"

	records, err := ReadRecords(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Uber", records[0].MerchantName)
	assert.Empty(t, records[0].Amount)
}

func TestReadRecords_MissingRequiredColumn(t *testing.T) {
	input := "date,merchant\n2023-01-15,Uber\n"

	_, err := ReadRecords(strings.NewReader(input))
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
	assert.Contains(t, err.Error(), `"amount"`)
}

func TestReadRecords_Empty(t *testing.T) {
	_, err := ReadRecords(strings.NewReader(""))
	assert.ErrorIs(t, err, common.ErrNoRecords)

	_, err = ReadRecords(strings.NewReader("date,merchant,amount\n"))
	assert.ErrorIs(t, err, common.ErrNoRecords)
}

func TestWriteRecords(t *testing.T) {
	txn := &model.Transaction{
		Date:               time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC),
		MerchantName:       "UBER *TRIP HELP.UBER.CO",
		NormalizedMerchant: "Uber",
		Amount:             decimal.RequireFromString("45.99"),
		Currency:           "USD",
		Category:           "Transportation",
	}
	txn.Flag(model.SeverityHigh, "rapid spending burst")

	var buf strings.Builder
	require.NoError(t, WriteRecords(&buf, []*model.Transaction{txn}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t,
		"date,normalized_merchant,merchant_name,amount,currency,category,is_refund,is_anomaly,anomaly_reason",
		lines[0])
	assert.Equal(t,
		"2023-01-15T00:00:00Z,Uber,UBER *TRIP HELP.UBER.CO,45.99,USD,Transportation,false,true,HIGH: rapid spending burst",
		lines[1])
}

func TestWriteRecords_RoundTrip(t *testing.T) {
	txns := []*model.Transaction{
		{
			Date:               time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC),
			MerchantName:       "Whole Foods",
			NormalizedMerchant: "Whole Foods",
			Amount:             decimal.RequireFromString("-10.50"),
			Currency:           "USD",
			Category:           "Food",
			IsRefund:           true,
		},
	}

	var buf strings.Builder
	require.NoError(t, WriteRecords(&buf, txns))

	records, err := ReadRecords(strings.NewReader(buf.String()))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Whole Foods", records[0].MerchantName)
	assert.Equal(t, "-10.50", records[0].Amount)
	assert.Equal(t, "Food", records[0].Category)
}
