package engine

import (
	"strings"
	"testing"
)

func TestSynthesizeHeadlineFirst(t *testing.T) {
	e := newTestEngine(t)

	scores := scoresFor(e, 80, 75, 70, 85, 65)
	risk := e.AssessRisk(scores, groupScoresFor(e, scores))
	recs := e.Synthesize(LevelGood, scores, risk)

	if len(recs) == 0 {
		t.Fatal("recommendations must never be empty")
	}
	if !strings.Contains(recs[0], "detailed planning") {
		t.Errorf("expected the Good-tier headline first, got %q", recs[0])
	}
}

func TestSynthesizePriorityOrder(t *testing.T) {
	e := newTestEngine(t)

	// grid and environment both weak; environment carries higher priority and
	// must come first among the criterion rules.
	scores := scoresFor(e, 80, 75, 50, 55, 65)
	risk := e.AssessRisk(scores, groupScoresFor(e, scores))
	recs := e.Synthesize(LevelFair, scores, risk)

	envIdx, gridIdx := -1, -1
	for i, r := range recs {
		if strings.Contains(r, "sustainable construction") {
			envIdx = i
		}
		if strings.Contains(r, "capacity upgrade") {
			gridIdx = i
		}
	}
	if envIdx == -1 || gridIdx == -1 {
		t.Fatalf("expected both environment and grid recommendations, got %v", recs)
	}
	if envIdx > gridIdx {
		t.Errorf("environment rule must precede grid rule: %v", recs)
	}
}

func TestSynthesizeAffirmativeWhenAllExcellent(t *testing.T) {
	e := newTestEngine(t)

	scores := scoresFor(e, 95, 95, 95, 95, 95)
	risk := e.AssessRisk(scores, groupScoresFor(e, scores))
	recs := e.Synthesize(LevelExcellent, scores, risk)

	found := false
	for _, r := range recs {
		if strings.Contains(r, "no remediation actions required") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected the affirmative recommendation, got %v", recs)
	}
}

func TestSynthesizeSuppressesDuplicates(t *testing.T) {
	e := newTestEngine(t)

	scores := scoresFor(e, 50, 50, 50, 50, 50)
	risk := e.AssessRisk(scores, groupScoresFor(e, scores))
	recs := e.Synthesize(LevelPoor, scores, risk)

	seen := make(map[string]bool)
	for _, r := range recs {
		if seen[r] {
			t.Errorf("duplicate recommendation emitted: %q", r)
		}
		seen[r] = true
	}
}
