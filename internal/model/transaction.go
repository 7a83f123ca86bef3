// Package model defines the core data types shared across the pipeline.
package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Severity classifies how serious an anomaly flag is.
type Severity string

const (
	// SeverityCritical indicates an anomaly requiring immediate review.
	SeverityCritical Severity = "CRITICAL"
	// SeverityHigh indicates a strong anomaly signal.
	SeverityHigh Severity = "HIGH"
	// SeverityMedium indicates a moderate anomaly signal.
	SeverityMedium Severity = "MEDIUM"
	// SeverityLow indicates a weak pattern-level signal.
	SeverityLow Severity = "LOW"
	// SeverityInfo indicates an informational annotation.
	SeverityInfo Severity = "INFO"
)

// AnomalyFlag is one (severity, reason) annotation attached by a detector.
type AnomalyFlag struct {
	Severity Severity
	Reason   string
}

func (f AnomalyFlag) String() string {
	return fmt.Sprintf("%s: %s", f.Severity, f.Reason)
}

// RawRecord is one tokenized input row before any resolution. Fields hold
// raw text exactly as received; Category may be empty.
type RawRecord struct {
	Date         string
	MerchantName string
	Amount       string
	Category     string
}

// Transaction is the canonical, analysis-ready representation of one record.
// Every emitted Transaction has a resolved Date and Amount; records that fail
// date or amount resolution never become Transactions.
type Transaction struct {
	Date               time.Time
	MerchantName       string // original merchant text, preserved for traceability
	NormalizedMerchant string
	Amount             decimal.Decimal // signed, rounded to 2 places
	Currency           string
	Category           string
	IsRefund           bool
	Anomalies          []AnomalyFlag
}

// Flag appends an anomaly annotation. Detectors only ever add flags; the
// canonical fields stay untouched after normalization.
func (t *Transaction) Flag(severity Severity, reason string) {
	t.Anomalies = append(t.Anomalies, AnomalyFlag{Severity: severity, Reason: reason})
}

// IsAnomaly reports whether any detector flagged this transaction.
func (t *Transaction) IsAnomaly() bool {
	return len(t.Anomalies) > 0
}

// AnomalyReason joins all flag reasons into one human-readable string,
// empty when the transaction is clean.
func (t *Transaction) AnomalyReason() string {
	if len(t.Anomalies) == 0 {
		return ""
	}
	parts := make([]string, len(t.Anomalies))
	for i, f := range t.Anomalies {
		parts[i] = f.String()
	}
	return strings.Join(parts, "; ")
}

// Day returns the calendar-day key used for duplicate and diversity grouping.
func (t *Transaction) Day() string {
	return t.Date.Format("2006-01-02")
}
