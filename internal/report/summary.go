package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mahiyapatil/smart-financial-parser/internal/model"
)

// Summary is the aggregate view of one processed batch.
type Summary struct {
	TotalTransactions   int
	DateStart           time.Time
	DateEnd             time.Time
	TotalSpending       decimal.Decimal
	TotalRefunds        decimal.Decimal
	NetSpending         decimal.Decimal
	TopCategory         string
	TopCategorySpending decimal.Decimal
	AnomaliesDetected   int
}

// Total pairs a name with the spending attributed to it.
type Total struct {
	Name   string
	Amount decimal.Decimal
}

// Summarize computes the batch summary. Spending sums positive amounts,
// refunds sum the magnitude of negative ones, net is their difference.
func Summarize(txns []*model.Transaction) *Summary {
	if len(txns) == 0 {
		return nil
	}

	s := &Summary{
		TotalTransactions: len(txns),
		DateStart:         txns[0].Date,
		DateEnd:           txns[0].Date,
		TotalSpending:     decimal.Zero,
		TotalRefunds:      decimal.Zero,
	}

	for _, t := range txns {
		if t.Date.Before(s.DateStart) {
			s.DateStart = t.Date
		}
		if t.Date.After(s.DateEnd) {
			s.DateEnd = t.Date
		}
		if t.Amount.IsPositive() {
			s.TotalSpending = s.TotalSpending.Add(t.Amount)
		} else {
			s.TotalRefunds = s.TotalRefunds.Add(t.Amount.Abs())
		}
		if t.IsAnomaly() {
			s.AnomaliesDetected++
		}
	}
	s.NetSpending = s.TotalSpending.Sub(s.TotalRefunds)

	if byCategory := CategoryBreakdown(txns); len(byCategory) > 0 {
		s.TopCategory = byCategory[0].Name
		s.TopCategorySpending = byCategory[0].Amount
	}

	return s
}

// CategoryBreakdown returns spending per category, highest first.
func CategoryBreakdown(txns []*model.Transaction) []Total {
	return breakdown(txns, func(t *model.Transaction) string { return t.Category })
}

// MerchantBreakdown returns spending per canonical merchant, highest first.
func MerchantBreakdown(txns []*model.Transaction) []Total {
	return breakdown(txns, func(t *model.Transaction) string { return t.NormalizedMerchant })
}

func breakdown(txns []*model.Transaction, key func(*model.Transaction) string) []Total {
	sums := make(map[string]decimal.Decimal)
	for _, t := range txns {
		if !t.Amount.IsPositive() {
			continue
		}
		k := key(t)
		sums[k] = sums[k].Add(t.Amount)
	}

	totals := make([]Total, 0, len(sums))
	for name, amount := range sums {
		totals = append(totals, Total{Name: name, Amount: amount})
	}
	sort.Slice(totals, func(i, j int) bool {
		if !totals[i].Amount.Equal(totals[j].Amount) {
			return totals[i].Amount.GreaterThan(totals[j].Amount)
		}
		return totals[i].Name < totals[j].Name
	})
	return totals
}
