package model

import "github.com/shopspring/decimal"

// ScaleClass classifies a batch by mean transaction size. The class drives
// which policy threshold triple applies.
type ScaleClass string

const (
	// ScaleRetail covers consumer-sized batches (mean ≤ scale split).
	ScaleRetail ScaleClass = "RETAIL"
	// ScaleFinancial covers enterprise-sized batches (mean above the split).
	ScaleFinancial ScaleClass = "FINANCIAL"
)

// Thresholds is the policy threshold triple selected for a scale class.
// An amount strictly above a tier exceeds it.
type Thresholds struct {
	Critical decimal.Decimal
	High     decimal.Decimal
	Medium   decimal.Decimal
}

// DatasetProfile summarizes one batch of resolved spending amounts. It is
// computed once per batch, consumed only by the anomaly engine, and carries
// no cross-batch memory.
type DatasetProfile struct {
	Mean        float64
	StdDev      float64
	StdDevValid bool // false when fewer than 2 spending amounts
	SampleSize  int
	Scale       ScaleClass
	Thresholds  Thresholds
}
