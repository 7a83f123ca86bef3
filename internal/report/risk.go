package report

import (
	"fmt"

	"github.com/mahiyapatil/smart-financial-parser/internal/model"
)

// RiskLevel buckets a batch risk score.
type RiskLevel string

const (
	// RiskMinimal means a score below 10.
	RiskMinimal RiskLevel = "MINIMAL"
	// RiskLow means a score below 30.
	RiskLow RiskLevel = "LOW"
	// RiskMedium means a score below 60.
	RiskMedium RiskLevel = "MEDIUM"
	// RiskHigh means a score of 60 or more.
	RiskHigh RiskLevel = "HIGH"
)

// RiskAssessment scores a batch from its anomaly flags.
type RiskAssessment struct {
	Score          float64 // 0-100
	Level          RiskLevel
	Factors        []string
	AnomalyRate    float64 // fraction of flagged transactions
	TotalAnomalies int
}

// Severity weights for the risk score. One flag of a given severity adds
// its weight; the total caps at 100.
var severityWeights = map[model.Severity]float64{
	model.SeverityCritical: 25,
	model.SeverityHigh:     15,
	model.SeverityMedium:   8,
	model.SeverityLow:      3,
	model.SeverityInfo:     1,
}

// Assess computes the batch risk assessment from flagged transactions.
func Assess(txns []*model.Transaction) RiskAssessment {
	assessment := RiskAssessment{Level: RiskMinimal}
	if len(txns) == 0 {
		return assessment
	}

	counts := make(map[model.Severity]int)
	flagged := 0
	for _, t := range txns {
		if t.IsAnomaly() {
			flagged++
		}
		for _, f := range t.Anomalies {
			counts[f.Severity]++
		}
	}

	score := 0.0
	for severity, count := range counts {
		score += severityWeights[severity] * float64(count)
	}
	assessment.AnomalyRate = float64(flagged) / float64(len(txns))
	score += assessment.AnomalyRate * 20

	if score > 100 {
		score = 100
	}
	assessment.Score = score
	assessment.TotalAnomalies = flagged

	for _, severity := range []model.Severity{
		model.SeverityCritical, model.SeverityHigh,
		model.SeverityMedium, model.SeverityLow,
	} {
		if counts[severity] > 0 {
			assessment.Factors = append(assessment.Factors,
				fmt.Sprintf("%d %s anomaly flag(s)", counts[severity], severity))
		}
	}

	switch {
	case score < 10:
		assessment.Level = RiskMinimal
	case score < 30:
		assessment.Level = RiskLow
	case score < 60:
		assessment.Level = RiskMedium
	default:
		assessment.Level = RiskHigh
	}

	return assessment
}
