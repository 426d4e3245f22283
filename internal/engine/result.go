package engine

import "time"

// ScoreValue pairs a numeric score with its classification level.
type ScoreValue struct {
	Score float64 `json:"score"`
	Level Level   `json:"level"`
}

// DecisionResult is the externally visible analysis output: a value object,
// deterministic for identical inputs and configuration (the timestamp aside),
// never mutated after construction.
type DecisionResult struct {
	CandidateID     string                `json:"candidate_id,omitempty"`
	Name            string                `json:"name,omitempty"`
	Latitude        float64               `json:"latitude"`
	Longitude       float64               `json:"longitude"`
	OverallScore    ScoreValue            `json:"overall_score"`
	DetailedScores  map[string]ScoreValue `json:"detailed_scores"`
	GroupScores     []GroupScore          `json:"group_scores"`
	DecisionLevel   string                `json:"decision_level"`
	RiskAssessment  RiskAssessment        `json:"risk_assessment"`
	Recommendations []string              `json:"recommendations"`
	AnalysisDate    time.Time             `json:"analysis_date"`
}

// DecisionRecommendation is the decision_recommendation wire shape.
type DecisionRecommendation struct {
	OverallScore    ScoreValue            `json:"overall_score"`
	DetailedScores  map[string]ScoreValue `json:"detailed_scores"`
	DecisionLevel   string                `json:"decision_level"`
	RiskAssessment  RiskAssessment        `json:"risk_assessment"`
	Recommendations []string              `json:"recommendations"`
	AnalysisDate    string                `json:"analysis_date"`
}

// PrometheeMCGPAnalysis is the promethee_mcgp_analysis wire shape.
type PrometheeMCGPAnalysis struct {
	FinalRanking struct {
		FinalScore     float64 `json:"final_score"`
		Level          Level   `json:"level"`
		Recommendation string  `json:"recommendation"`
	} `json:"final_ranking"`
	EconomicAnalysis struct {
		Ranking ScoreValue `json:"ranking"`
	} `json:"economic_analysis"`
	Recommendation struct {
		Recommendations []string `json:"recommendations"`
	} `json:"recommendation"`
}

// WireRecommendation renders the decision_recommendation payload.
func (r *DecisionResult) WireRecommendation() DecisionRecommendation {
	return DecisionRecommendation{
		OverallScore:    r.OverallScore,
		DetailedScores:  r.DetailedScores,
		DecisionLevel:   r.DecisionLevel,
		RiskAssessment:  r.RiskAssessment,
		Recommendations: r.Recommendations,
		AnalysisDate:    r.AnalysisDate.Format(time.RFC3339),
	}
}

// WireMCGP renders the promethee_mcgp_analysis payload. The final ranking is
// the absolute composite; the economic view is the economic group's score.
func (r *DecisionResult) WireMCGP() PrometheeMCGPAnalysis {
	var out PrometheeMCGPAnalysis
	out.FinalRanking.FinalScore = r.OverallScore.Score
	out.FinalRanking.Level = r.OverallScore.Level
	out.FinalRanking.Recommendation = r.DecisionLevel
	for _, g := range r.GroupScores {
		if g.Group == GroupEconomic {
			out.EconomicAnalysis.Ranking = ScoreValue{Score: g.Score, Level: g.Level}
		}
	}
	out.Recommendation.Recommendations = r.Recommendations
	return out
}
