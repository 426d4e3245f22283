package engine

// Recommendation rule tables. The tier rule contributes the headline line;
// criterion rules fire for any criterion below the Fair threshold and are
// evaluated in fixed priority order: environment > economic > land > energy >
// grid. Duplicates are suppressed and the output is never empty.

var tierRecommendations = map[Level]string{
	LevelExcellent: "site is highly suitable for a data center facility; prioritize this location",
	LevelGood:      "site is suitable for a data center facility; proceed to detailed planning",
	LevelFair:      "site is broadly suitable; resolve the flagged issues before construction",
	LevelPoor:      "site presents significant obstacles; reassess carefully before committing",
	LevelVeryPoor:  "site is unsuitable for a data center facility; evaluate alternative locations",
}

var criterionPriority = []string{
	"environmental_impact",
	"economic_feasibility",
	"land_suitability",
	"energy_resources",
	"grid_capacity",
}

var criterionRecommendations = map[string]string{
	"environmental_impact": "environmental impact is significant; adopt a more sustainable construction plan",
	"economic_feasibility": "economic feasibility is weak; optimize the cost structure",
	"land_suitability":     "land suitability is low; consider alternative parcels nearby",
	"energy_resources":     "energy resources are limited; plan for a diversified supply mix",
	"grid_capacity":        "grid capacity is insufficient; add on-site storage or apply for a capacity upgrade",
}

const affirmativeRecommendation = "all siting criteria rate excellent; no remediation actions required"

// Synthesize produces the ordered recommendation list for a scored candidate.
func (e *Engine) Synthesize(compositeLevel Level, scores []CriterionScore, risk RiskAssessment) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(r string) {
		if r != "" && !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}

	add(tierRecommendations[compositeLevel])

	byID := make(map[string]CriterionScore, len(scores))
	allExcellent := true
	for _, s := range scores {
		byID[s.Criterion] = s
		if s.Level != LevelExcellent {
			allExcellent = false
		}
	}

	for _, id := range criterionPriority {
		s, ok := byID[id]
		if !ok || s.Score >= thresholdFair {
			continue
		}
		add(criterionRecommendations[id])
	}

	if allExcellent && risk.RiskLevel == RiskLow {
		add(affirmativeRecommendation)
	}

	return out
}
