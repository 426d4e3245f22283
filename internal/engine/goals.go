package engine

// GroupScore is the aggregated score of one criterion group together with its
// goal-programming deviation breakdown.
type GroupScore struct {
	Group      Group   `json:"group"`
	Score      float64 `json:"score"`
	Level      Level   `json:"level"`
	GoalTarget float64 `json:"goal_target"`
	Deviation  float64 `json:"deviation"` // shortfall below target, never negative
	Penalty    float64 `json:"penalty"`   // priority-weighted shortfall
}

// aggregate computes group scores and the goal-programming composite.
//
// Within a group the score is the weighted sum of criterion scores. Each group
// is then compared against its goal: only negative deviation (score below
// target) is penalized, scaled by the goal priority. Goals are floors, not
// ceilings — exceeding a target never changes the penalty term. The composite
// is the group-weighted sum of scores minus the group-weighted penalties,
// clamped to [0,100].
func (e *Engine) aggregate(scores []CriterionScore) ([]GroupScore, float64) {
	sums := make(map[Group]float64, len(e.groups))
	for _, s := range scores {
		c := e.byID[s.Criterion]
		sums[c.Group] += c.Weight * s.Score
	}

	groupScores := make([]GroupScore, 0, len(e.groups))
	var composite float64
	for _, g := range e.groupOrder {
		spec := e.groups[g]
		score := sums[g]

		deviation := spec.Goal.Target - score
		if deviation < 0 {
			deviation = 0
		}
		penalty := spec.Goal.Priority * deviation

		groupScores = append(groupScores, GroupScore{
			Group:      g,
			Score:      score,
			Level:      Classify(score),
			GoalTarget: spec.Goal.Target,
			Deviation:  deviation,
			Penalty:    penalty,
		})

		composite += spec.Weight * (score - penalty)
	}

	return groupScores, clamp(composite, 0, 100)
}
