package normalize

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mahiyapatil/smart-financial-parser/internal/common"
)

// DefaultCurrency is assumed when no symbol or code is present.
const DefaultCurrency = "USD"

// Amount is the result of resolving one monetary token. IsNegative is
// recomputed from the final signed value, so it always agrees with Value.
type Amount struct {
	Value      decimal.Decimal
	Currency   string
	IsNegative bool
}

// symbolEntry maps a currency symbol to its ISO code. The table is ordered;
// the first symbol found in the token wins.
type symbolEntry struct {
	symbol   string
	currency string
}

var currencySymbols = []symbolEntry{
	{"$", "USD"},
	{"€", "EUR"},
	{"£", "GBP"},
	{"¥", "JPY"},
	{"₹", "INR"},
}

var currencyCodeRe = regexp.MustCompile(`\b[A-Z]{3}\b`)

// AmountResolver parses free-form monetary strings into exact decimals.
type AmountResolver struct {
	symbols []symbolEntry
}

// NewAmountResolver creates a resolver with the standard symbol table.
func NewAmountResolver() *AmountResolver {
	return &AmountResolver{symbols: currencySymbols}
}

// Resolve applies the fixed-order algorithm: symbol detection, code
// override, sign detection (parentheses, trailing minus, leading minus;
// any indicator means negative, applied once), separator stripping, exact
// decimal parse, half-up rounding to 2 places. On a parse failure the
// detected currency is still returned for diagnostics.
func (r *AmountResolver) Resolve(raw string) (Amount, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Amount{Currency: DefaultCurrency}, common.ErrEmptyValue
	}

	currency := DefaultCurrency
	for _, entry := range r.symbols {
		if strings.Contains(s, entry.symbol) {
			currency = entry.currency
			s = strings.Replace(s, entry.symbol, "", 1)
			break
		}
	}

	// A bare 3-letter code always beats the symbol-derived currency.
	if code := currencyCodeRe.FindString(s); code != "" {
		currency = code
		s = strings.Replace(s, code, "", 1)
	}

	s = strings.TrimSpace(s)

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
		s = strings.TrimSpace(s)
	}
	if strings.HasSuffix(s, "-") {
		negative = true
		s = strings.TrimSuffix(s, "-")
	}
	if strings.HasPrefix(s, "-") {
		negative = true
		s = strings.TrimPrefix(s, "-")
	}

	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "\t", "")
	s = strings.ReplaceAll(s, ",", "")

	value, err := decimal.NewFromString(s)
	if err != nil {
		slog.Debug("amount parse failed", "value", raw, "error", err)
		return Amount{Currency: currency}, fmt.Errorf("%w: %q", common.ErrUnparseableAmount, raw)
	}

	if negative {
		value = value.Abs().Neg()
	}
	value = value.Round(2)

	return Amount{
		Value:      value,
		Currency:   currency,
		IsNegative: value.IsNegative(),
	}, nil
}
