package anomaly

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mahiyapatil/smart-financial-parser/internal/common"
	"github.com/mahiyapatil/smart-financial-parser/internal/model"
)

// Config holds the tunable detection thresholds. Every knob is overridable
// without code changes; see DefaultConfig for the reference values.
type Config struct {
	ZMedium   float64
	ZHigh     float64
	ZCritical float64

	// DuplicateTolerance is the maximum relative amount difference, as a
	// fraction, for two same-day same-merchant transactions to count as
	// duplicates.
	DuplicateTolerance float64

	VelocityWindow    time.Duration
	VelocityThreshold decimal.Decimal
	// VelocityEpsilon excludes effectively-simultaneous postings: windows
	// whose time span is at or below it never flag, so batch imports do
	// not read as spending bursts.
	VelocityEpsilon time.Duration

	// DiversityMultiplier scales the dataset-wide baseline of distinct
	// merchants per day; days at or above multiplier×baseline flag.
	DiversityMultiplier float64
}

// DefaultConfig returns the reference detection thresholds.
func DefaultConfig() Config {
	return Config{
		ZMedium:             3.0,
		ZHigh:               4.0,
		ZCritical:           5.0,
		DuplicateTolerance:  0.05,
		VelocityWindow:      6 * time.Hour,
		VelocityThreshold:   decimal.NewFromInt(500),
		VelocityEpsilon:     time.Duration(0.01 * float64(time.Hour)),
		DiversityMultiplier: 2.0,
	}
}

// Engine runs the anomaly detectors over a normalized batch. Detectors are
// pure functions of the batch plus profile: they only append flags, never
// touch canonical fields.
type Engine struct {
	cfg Config
}

// NewEngine creates an engine with default thresholds.
func NewEngine() *Engine {
	return NewEngineWithConfig(DefaultConfig())
}

// NewEngineWithConfig creates an engine with custom thresholds.
func NewEngineWithConfig(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Annotate runs every detector over the batch. A single transaction can
// accumulate flags from several detectors; all reasons are retained.
// Detector order is fixed (statistical, policy, duplicate, velocity,
// diversity) so flag ordering is deterministic.
func (e *Engine) Annotate(txns []*model.Transaction, profile model.DatasetProfile) {
	if len(txns) == 0 {
		return
	}

	e.checkStatistical(txns, profile)
	e.checkPolicy(txns, profile)
	e.checkDuplicates(txns)
	e.checkVelocity(txns)
	e.checkDiversity(txns)

	flagged := 0
	for _, t := range txns {
		if t.IsAnomaly() {
			flagged++
		}
	}
	common.LogInfo("anomaly detection complete", common.Fields{
		"transactions": len(txns),
		"flagged":      flagged,
	})
}

// checkStatistical flags spending amounts by z-score against the batch
// profile. Skipped entirely when the standard deviation is undefined
// (fewer than two samples) or zero (identical amounts).
func (e *Engine) checkStatistical(txns []*model.Transaction, profile model.DatasetProfile) {
	if !profile.StdDevValid || profile.StdDev == 0 {
		common.LogDebug("skipping statistical detector", common.Fields{"reason": "insufficient batch statistics"})
		return
	}

	for _, t := range txns {
		if !t.Amount.IsPositive() {
			continue
		}
		z := (t.Amount.InexactFloat64() - profile.Mean) / profile.StdDev

		var severity model.Severity
		switch {
		case z > e.cfg.ZCritical:
			severity = model.SeverityCritical
		case z > e.cfg.ZHigh:
			severity = model.SeverityHigh
		case z > e.cfg.ZMedium:
			severity = model.SeverityMedium
		default:
			continue
		}
		t.Flag(severity, fmt.Sprintf("amount %.1f standard deviations outside your normal spending", z))
	}
}

// checkPolicy compares absolute amounts directly against the scale-selected
// threshold triple, independent of the statistical result. Only the highest
// tier exceeded flags.
func (e *Engine) checkPolicy(txns []*model.Transaction, profile model.DatasetProfile) {
	th := profile.Thresholds
	for _, t := range txns {
		amount := t.Amount.Abs()

		var severity model.Severity
		var tier decimal.Decimal
		switch {
		case amount.GreaterThan(th.Critical):
			severity, tier = model.SeverityCritical, th.Critical
		case amount.GreaterThan(th.High):
			severity, tier = model.SeverityHigh, th.High
		case amount.GreaterThan(th.Medium):
			severity, tier = model.SeverityMedium, th.Medium
		default:
			continue
		}
		t.Flag(severity, fmt.Sprintf("large purchase over %s threshold", tier.StringFixed(0)))
	}
}

// checkDuplicates groups by (calendar day, canonical merchant) and flags
// every pair whose amounts sit within the relative tolerance. Both sides of
// a suspected duplicate are flagged, HIGH, at most once per transaction.
func (e *Engine) checkDuplicates(txns []*model.Transaction) {
	groups := make(map[string][]*model.Transaction)
	for _, t := range txns {
		key := t.Day() + "|" + t.NormalizedMerchant
		groups[key] = append(groups[key], t)
	}

	flagged := make(map[*model.Transaction]bool)
	for _, group := range groups {
		if len(group) < 2 {
			continue
		}
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				if !e.withinTolerance(group[i].Amount, group[j].Amount) {
					continue
				}
				for _, t := range []*model.Transaction{group[i], group[j]} {
					if !flagged[t] {
						flagged[t] = true
						t.Flag(model.SeverityHigh, fmt.Sprintf("possible duplicate charge at %s", t.NormalizedMerchant))
					}
				}
			}
		}
	}
}

// withinTolerance reports whether two amounts differ by at most the
// configured fraction, relative to the larger magnitude.
func (e *Engine) withinTolerance(a, b decimal.Decimal) bool {
	absA, absB := a.Abs(), b.Abs()
	larger := decimal.Max(absA, absB)
	if larger.IsZero() {
		return true
	}
	diff := absA.Sub(absB).Abs()
	ratio, _ := diff.Div(larger).Float64()
	return ratio <= e.cfg.DuplicateTolerance
}

// checkVelocity slides a window over each merchant's spending, ordered by
// time, and flags bursts that reach the threshold inside the window.
// Windows whose span is at or below the epsilon are ignored so that
// simultaneous batch postings never read as bursts.
func (e *Engine) checkVelocity(txns []*model.Transaction) {
	byMerchant := make(map[string][]*model.Transaction)
	for _, t := range txns {
		if t.Amount.IsPositive() {
			byMerchant[t.NormalizedMerchant] = append(byMerchant[t.NormalizedMerchant], t)
		}
	}

	flagged := make(map[*model.Transaction]bool)
	for _, group := range byMerchant {
		if len(group) < 2 {
			continue
		}
		sort.Slice(group, func(i, j int) bool { return group[i].Date.Before(group[j].Date) })

		for start := 0; start < len(group); start++ {
			sum := group[start].Amount
			for end := start + 1; end < len(group); end++ {
				span := group[end].Date.Sub(group[start].Date)
				if span > e.cfg.VelocityWindow {
					break
				}
				sum = sum.Add(group[end].Amount)
				if span <= e.cfg.VelocityEpsilon {
					continue
				}
				if sum.GreaterThanOrEqual(e.cfg.VelocityThreshold) {
					hours := span.Hours()
					for _, t := range group[start : end+1] {
						if !flagged[t] {
							flagged[t] = true
							t.Flag(model.SeverityHigh, fmt.Sprintf("rapid spending: %s within %.1f hours", sum.StringFixed(2), hours))
						}
					}
				}
			}
		}
	}
}

// checkDiversity counts distinct merchants per calendar day and flags days
// at or above the multiplier times the dataset-wide average. An unusually
// wide spread of merchants in one day is a card-testing signature.
func (e *Engine) checkDiversity(txns []*model.Transaction) {
	merchantsByDay := make(map[string]map[string]bool)
	for _, t := range txns {
		day := t.Day()
		if merchantsByDay[day] == nil {
			merchantsByDay[day] = make(map[string]bool)
		}
		merchantsByDay[day][t.NormalizedMerchant] = true
	}
	if len(merchantsByDay) < 2 {
		return
	}

	var total int
	for _, merchants := range merchantsByDay {
		total += len(merchants)
	}
	baseline := float64(total) / float64(len(merchantsByDay))

	for _, t := range txns {
		count := len(merchantsByDay[t.Day()])
		if float64(count) >= e.cfg.DiversityMultiplier*baseline {
			t.Flag(model.SeverityLow, fmt.Sprintf("unusual merchant diversity: %d distinct merchants in one day", count))
		}
	}
}
