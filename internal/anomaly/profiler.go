// Package anomaly computes batch statistics and flags suspicious
// transactions. Both stages need the complete normalized batch: profiling
// is one pass over amounts, detection a second pass using the profile.
package anomaly

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/mahiyapatil/smart-financial-parser/internal/common"
	"github.com/mahiyapatil/smart-financial-parser/internal/model"
)

// DefaultScaleSplit is the mean amount above which a batch is classified
// FINANCIAL rather than RETAIL. The value is currency-unit-agnostic.
const DefaultScaleSplit = 50000.0

var (
	retailThresholds = model.Thresholds{
		Critical: decimal.NewFromInt(5000),
		High:     decimal.NewFromInt(2000),
		Medium:   decimal.NewFromInt(1000),
	}
	financialThresholds = model.Thresholds{
		Critical: decimal.NewFromInt(500000),
		High:     decimal.NewFromInt(200000),
		Medium:   decimal.NewFromInt(100000),
	}
)

// Profiler computes the per-batch statistical profile.
type Profiler struct {
	scaleSplit float64
}

// NewProfiler creates a profiler with the default scale split.
func NewProfiler() *Profiler {
	return NewProfilerWithSplit(DefaultScaleSplit)
}

// NewProfilerWithSplit creates a profiler with a custom retail/financial
// split on the batch mean.
func NewProfilerWithSplit(scaleSplit float64) *Profiler {
	if scaleSplit <= 0 {
		scaleSplit = DefaultScaleSplit
	}
	return &Profiler{scaleSplit: scaleSplit}
}

// Profile computes mean and sample standard deviation over the batch's
// positive spending amounts. Refunds and zero amounts are excluded from the
// baseline: a statistical profile of spending should not be dragged down by
// money coming back in. Fewer than two spending amounts cannot produce a
// standard deviation; StdDevValid reports that explicitly so the engine can
// skip z-score checks instead of dividing by zero.
func (p *Profiler) Profile(txns []*model.Transaction) model.DatasetProfile {
	var amounts []float64
	for _, t := range txns {
		if t.Amount.IsPositive() {
			amounts = append(amounts, t.Amount.InexactFloat64())
		}
	}

	profile := model.DatasetProfile{
		SampleSize: len(amounts),
		Scale:      model.ScaleRetail,
		Thresholds: retailThresholds,
	}
	if len(amounts) == 0 {
		return profile
	}

	var sum float64
	for _, a := range amounts {
		sum += a
	}
	profile.Mean = sum / float64(len(amounts))

	// Strictly above the split; a mean of exactly the split stays RETAIL.
	if profile.Mean > p.scaleSplit {
		profile.Scale = model.ScaleFinancial
		profile.Thresholds = financialThresholds
	}

	if len(amounts) >= 2 {
		var sq float64
		for _, a := range amounts {
			d := a - profile.Mean
			sq += d * d
		}
		profile.StdDev = math.Sqrt(sq / float64(len(amounts)-1))
		profile.StdDevValid = true
	}

	common.LogDebug("batch profiled", common.Fields{
		"samples": profile.SampleSize,
		"mean":    profile.Mean,
		"stdev":   profile.StdDev,
		"scale":   profile.Scale,
	})

	return profile
}
