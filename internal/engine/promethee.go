package engine

import "sort"

// OutrankingResult is one candidate's aggregated pairwise standing: leaving,
// entering and net preference flows, plus the final rank (1-based).
type OutrankingResult struct {
	CandidateID  string  `json:"candidate_id"`
	NetFlow      float64 `json:"net_flow"`
	LeavingFlow  float64 `json:"leaving_flow"`
	EnteringFlow float64 `json:"entering_flow"`
	Rank         int     `json:"rank"`
}

// preferenceDegree is the linear q/p preference function on a score
// difference: 0 up to the indifference threshold, 1 past the preference
// threshold, linear in between. Differences in b's favour score 0.
func (e *Engine) preferenceDegree(diff float64) float64 {
	if diff <= e.prefs.Indifference {
		return 0
	}
	if diff >= e.prefs.Preference {
		return 1
	}
	return (diff - e.prefs.Indifference) / (e.prefs.Preference - e.prefs.Indifference)
}

// aggregatedPreference is π(a,b): the global-weighted sum of per-criterion
// preference degrees of a over b.
func (e *Engine) aggregatedPreference(a, b []CriterionScore) float64 {
	var pi float64
	for i, c := range e.criteria {
		pi += e.GlobalWeight(c) * e.preferenceDegree(a[i].Score-b[i].Score)
	}
	return pi
}

// rank runs the pairwise PROMETHEE comparison over normalized candidate
// scores and orders candidates by descending net flow. Ties break on the
// unweighted raw score sum, then on candidate ID, so the ranking is fully
// deterministic. Callers guarantee len(ids) >= 2; a single candidate never
// reaches outranking (the engine falls back to absolute scoring).
func (e *Engine) rank(ids []string, scores map[string][]CriterionScore) []OutrankingResult {
	n := len(ids)
	pi := make([][]float64, n)
	for i := range pi {
		pi[i] = make([]float64, n)
		for j := range pi[i] {
			if i != j {
				pi[i][j] = e.aggregatedPreference(scores[ids[i]], scores[ids[j]])
			}
		}
	}

	results := make([]OutrankingResult, n)
	for i := range ids {
		var leaving, entering float64
		for j := range ids {
			if i == j {
				continue
			}
			leaving += pi[i][j]
			entering += pi[j][i]
		}
		leaving /= float64(n - 1)
		entering /= float64(n - 1)
		results[i] = OutrankingResult{
			CandidateID:  ids[i],
			LeavingFlow:  leaving,
			EnteringFlow: entering,
			NetFlow:      leaving - entering,
		}
	}

	rawSum := func(id string) float64 {
		var sum float64
		for _, s := range scores[id] {
			sum += s.Score
		}
		return sum
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].NetFlow != results[j].NetFlow {
			return results[i].NetFlow > results[j].NetFlow
		}
		si, sj := rawSum(results[i].CandidateID), rawSum(results[j].CandidateID)
		if si != sj {
			return si > sj
		}
		return results[i].CandidateID < results[j].CandidateID
	})
	for i := range results {
		results[i].Rank = i + 1
	}
	return results
}
