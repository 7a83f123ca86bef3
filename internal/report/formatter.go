package report

import (
	"fmt"
	"strings"

	"github.com/mahiyapatil/smart-financial-parser/internal/model"
)

// Formatter renders batch results for terminal display.
type Formatter struct {
	styles *Styles
}

// NewFormatter creates a formatter with default styles.
func NewFormatter() *Formatter {
	return &Formatter{styles: NewStyles()}
}

// Format renders the full analysis report: transaction and financial
// summaries, top category, anomaly listing, breakdowns and risk.
func (f *Formatter) Format(summary *Summary, txns []*model.Transaction, profile model.DatasetProfile) string {
	if summary == nil {
		return f.styles.Error.Render("No transactions to report")
	}

	var sections []string

	sections = append(sections, f.styles.Title.Render("Financial Transaction Analysis Report"))
	sections = append(sections, f.formatSummary(summary, profile))
	sections = append(sections, f.formatAnomalies(txns))
	sections = append(sections, f.formatBreakdown("Spending by Category", CategoryBreakdown(txns), 0))
	sections = append(sections, f.formatBreakdown("Top Merchants", MerchantBreakdown(txns), 5))
	sections = append(sections, f.formatRisk(Assess(txns)))

	return strings.Join(sections, "\n\n")
}

func (f *Formatter) formatSummary(s *Summary, profile model.DatasetProfile) string {
	var b strings.Builder
	b.WriteString(f.styles.Subtitle.Render("Transaction Summary"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  Transactions: %d (%s to %s)\n",
		s.TotalTransactions,
		s.DateStart.Format("2006-01-02"),
		s.DateEnd.Format("2006-01-02"))
	fmt.Fprintf(&b, "  Dataset scale: %s (mean %.2f)\n", profile.Scale, profile.Mean)
	b.WriteString(f.styles.Subtitle.Render("Financial Summary"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  Total spending: %s\n", s.TotalSpending.StringFixed(2))
	fmt.Fprintf(&b, "  Total refunds:  %s\n", s.TotalRefunds.StringFixed(2))
	fmt.Fprintf(&b, "  Net spending:   %s\n", s.NetSpending.StringFixed(2))
	b.WriteString(f.styles.Subtitle.Render("Top Spending Category"))
	b.WriteString("\n")
	if s.TopCategory != "" {
		fmt.Fprintf(&b, "  %s (%s)", s.TopCategory, s.TopCategorySpending.StringFixed(2))
	} else {
		b.WriteString(f.styles.Subtle.Render("  none"))
	}
	return b.String()
}

func (f *Formatter) formatAnomalies(txns []*model.Transaction) string {
	var b strings.Builder
	b.WriteString(f.styles.Subtitle.Render("Anomaly Detection Results"))
	b.WriteString("\n")

	found := false
	for _, t := range txns {
		if !t.IsAnomaly() {
			continue
		}
		found = true
		for _, flag := range t.Anomalies {
			line := fmt.Sprintf("  [%s] %s %s %s: %s",
				flag.Severity,
				t.Date.Format("2006-01-02"),
				t.NormalizedMerchant,
				t.Amount.StringFixed(2),
				flag.Reason)
			b.WriteString(f.styles.ForSeverity(flag.Severity).Render(line))
			b.WriteString("\n")
		}
	}
	if !found {
		b.WriteString(f.styles.Success.Render("  No anomalies detected"))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (f *Formatter) formatBreakdown(title string, totals []Total, limit int) string {
	var b strings.Builder
	b.WriteString(f.styles.Subtitle.Render(title))
	b.WriteString("\n")
	if limit > 0 && len(totals) > limit {
		totals = totals[:limit]
	}
	if len(totals) == 0 {
		b.WriteString(f.styles.Subtle.Render("  none"))
		return b.String()
	}
	for _, total := range totals {
		fmt.Fprintf(&b, "  %-30s %12s\n", total.Name, total.Amount.StringFixed(2))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (f *Formatter) formatRisk(risk RiskAssessment) string {
	var b strings.Builder
	b.WriteString(f.styles.Subtitle.Render("Risk Assessment"))
	b.WriteString("\n")

	style := f.styles.Success
	switch risk.Level {
	case RiskHigh:
		style = f.styles.Error
	case RiskMedium:
		style = f.styles.Warning
	case RiskLow:
		style = f.styles.Info
	}
	fmt.Fprintf(&b, "  %s (score %.0f/100, %.0f%% of transactions flagged)\n",
		style.Render(string(risk.Level)), risk.Score, risk.AnomalyRate*100)
	for _, factor := range risk.Factors {
		fmt.Fprintf(&b, "  - %s\n", factor)
	}
	return strings.TrimRight(b.String(), "\n")
}
