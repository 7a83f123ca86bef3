package normalize

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahiyapatil/smart-financial-parser/internal/common"
)

func TestAmountResolver_Resolve(t *testing.T) {
	resolver := NewAmountResolver()

	tests := []struct {
		name         string
		input        string
		wantValue    string
		wantCurrency string
		wantNegative bool
	}{
		{name: "dollar symbol", input: "$45.99", wantValue: "45.99", wantCurrency: "USD"},
		{name: "bare number", input: "45.99", wantValue: "45.99", wantCurrency: "USD"},
		{name: "padded symbol", input: "  $ 45.99  ", wantValue: "45.99", wantCurrency: "USD"},
		{name: "parentheses negative", input: "(50.00)", wantValue: "-50", wantCurrency: "USD", wantNegative: true},
		{name: "parentheses with symbol", input: "($45.99)", wantValue: "-45.99", wantCurrency: "USD", wantNegative: true},
		{name: "trailing minus", input: "45.00-", wantValue: "-45", wantCurrency: "USD", wantNegative: true},
		{name: "leading minus", input: "-45.99", wantValue: "-45.99", wantCurrency: "USD", wantNegative: true},
		{name: "thousands separator", input: "$2,500.00", wantValue: "2500", wantCurrency: "USD"},
		{name: "euro symbol", input: "€45.50", wantValue: "45.5", wantCurrency: "EUR"},
		{name: "pound symbol", input: "£67.80", wantValue: "67.8", wantCurrency: "GBP"},
		{name: "yen symbol", input: "¥1000", wantValue: "1000", wantCurrency: "JPY"},
		{name: "rupee symbol", input: "₹250.00", wantValue: "250", wantCurrency: "INR"},
		{name: "trailing code", input: "99.99 USD", wantValue: "99.99", wantCurrency: "USD"},
		{name: "leading code", input: "EUR 100.00", wantValue: "100", wantCurrency: "EUR"},
		{name: "code overrides symbol", input: "$100.00 CAD", wantValue: "100", wantCurrency: "CAD"},
		{name: "negative with symbol and commas", input: "-$5,000.00", wantValue: "-5000", wantCurrency: "USD", wantNegative: true},
		{name: "rounds half up", input: "45.999", wantValue: "46", wantCurrency: "USD"},
		{name: "rounds down", input: "45.994", wantValue: "45.99", wantCurrency: "USD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolver.Resolve(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantValue, got.Value.String())
			assert.Equal(t, tt.wantCurrency, got.Currency)
			assert.Equal(t, tt.wantNegative, got.IsNegative)
		})
	}
}

func TestAmountResolver_ConflictingSignIndicators(t *testing.T) {
	resolver := NewAmountResolver()

	// Any sign indicator present means negative, applied exactly once;
	// stacked indicators never double-negate.
	tests := []string{"-45.99-", "(-45.99)", "(45.99-)"}

	for _, input := range tests {
		got, err := resolver.Resolve(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, "-45.99", got.Value.String(), "input %q", input)
		assert.True(t, got.IsNegative, "input %q", input)
	}
}

func TestAmountResolver_EmptyInput(t *testing.T) {
	resolver := NewAmountResolver()

	for _, input := range []string{"", "   "} {
		_, err := resolver.Resolve(input)
		require.Error(t, err)
		assert.True(t, errors.Is(err, common.ErrEmptyValue))
	}
}

func TestAmountResolver_UnparseableKeepsCurrency(t *testing.T) {
	resolver := NewAmountResolver()

	got, err := resolver.Resolve("crushing it: $45.99")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrUnparseableAmount))
	// Currency still reported for diagnostics.
	assert.Equal(t, "USD", got.Currency)
}
