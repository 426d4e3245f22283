package engine

import "gonum.org/v1/gonum/stat"

// RiskAssessment is the engine's risk verdict. MitigationMeasures is empty
// exactly when NoMitigationNeeded is true, so callers can render an explicit
// "no mitigation needed" state instead of an ambiguous empty list.
type RiskAssessment struct {
	RiskLevel          RiskLevel `json:"risk_level"`
	Risks              []string  `json:"risks"`
	MitigationMeasures []string  `json:"mitigation_measures"`
	NoMitigationNeeded bool      `json:"no_mitigation_needed"`
	GroupSpread        float64   `json:"group_spread"`
}

// riskFactors and mitigations are keyed by criterion identifier. A criterion
// scoring below the Fair threshold contributes its named factor; Medium and
// High assessments also carry the matching mitigation.
var riskFactors = map[string]string{
	"land_suitability":     "land suitability limited; construction risk elevated",
	"energy_resources":     "energy resource potential limited; supply risk elevated",
	"grid_capacity":        "grid capacity constrained; power delivery risk elevated",
	"economic_feasibility": "economic feasibility weak; financing risk elevated",
	"environmental_impact": "environmental impact elevated; permitting risk elevated",
}

var mitigations = map[string]string{
	"land_suitability":     "conduct detailed geotechnical and environmental surveys before committing to the parcel",
	"energy_resources":     "plan a diversified supply portfolio with on-site generation and storage",
	"grid_capacity":        "provision battery storage or apply for a grid interconnection upgrade",
	"economic_feasibility": "restructure capital and operating cost assumptions before proceeding",
	"environmental_impact": "adopt a lower-impact construction plan and schedule a full impact assessment",
}

const imbalanceRisk = "score imbalance across factor groups; overall rating may mask a weak group"
const imbalanceMitigation = "re-examine the weakest factor group before relying on the composite score"

// AssessRisk derives the risk level from the count and severity of criteria
// below the Fair threshold: none is Low, one is Medium, two or more (or any
// VeryPoor criterion) is High. A large spread between group scores adds an
// imbalance factor and lifts Low to Medium.
func (e *Engine) AssessRisk(scores []CriterionScore, groupScores []GroupScore) RiskAssessment {
	var risks, measures []string
	var flagged, veryPoor int

	for _, s := range scores {
		if s.Score >= thresholdFair {
			continue
		}
		flagged++
		if s.Level == LevelVeryPoor {
			veryPoor++
		}
		if f, ok := riskFactors[s.Criterion]; ok {
			risks = append(risks, f)
		} else {
			risks = append(risks, s.Criterion+" below acceptable threshold")
		}
		if m, ok := mitigations[s.Criterion]; ok {
			measures = append(measures, m)
		}
	}

	level := RiskLow
	switch {
	case flagged >= 2 || veryPoor > 0:
		level = RiskHigh
	case flagged == 1:
		level = RiskMedium
	}

	groupVals := make([]float64, len(groupScores))
	for i, g := range groupScores {
		groupVals[i] = g.Score
	}
	// Sample variance needs at least two groups; a single group has no spread.
	var spread float64
	if len(groupVals) >= 2 {
		spread = stat.Variance(groupVals, nil)
	}
	if spread > e.spreadThreshold {
		risks = append(risks, imbalanceRisk)
		measures = append(measures, imbalanceMitigation)
		if level == RiskLow {
			level = RiskMedium
		}
	}

	if level == RiskLow {
		return RiskAssessment{
			RiskLevel:          RiskLow,
			Risks:              []string{},
			MitigationMeasures: []string{},
			NoMitigationNeeded: true,
			GroupSpread:        spread,
		}
	}
	return RiskAssessment{
		RiskLevel:          level,
		Risks:              risks,
		MitigationMeasures: measures,
		GroupSpread:        spread,
	}
}
