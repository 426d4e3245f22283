package engine

import (
	"fmt"
	"math"
)

// RawMeasurement is one per-criterion input value, assembled by the upstream
// ingestion collaborator. One set per candidate site.
type RawMeasurement struct {
	Criterion string  `json:"criterion"`
	Value     float64 `json:"value"`
	Unit      string  `json:"unit,omitempty"`
}

// CriterionScore is a normalized, classified per-criterion score. Derived
// once, never mutated.
type CriterionScore struct {
	Criterion string  `json:"criterion"`
	Score     float64 `json:"score"`
	Level     Level   `json:"level"`
}

// Normalize maps a raw measurement onto the dimensionless 0-100 scale using
// the criterion's curve. Cost criteria invert the curve output so that a
// higher raw value yields a lower score. The result is clamped to [0,100]
// even when the curve's natural range exceeds it (saturation, not an error).
func (e *Engine) Normalize(criterionID string, raw float64) (CriterionScore, error) {
	c, ok := e.byID[criterionID]
	if !ok {
		return CriterionScore{}, fmt.Errorf("%w: unknown criterion %q", ErrInvalidMeasurement, criterionID)
	}
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return CriterionScore{}, fmt.Errorf("%w: criterion %q value is not finite", ErrInvalidMeasurement, criterionID)
	}
	if raw < c.DomainMin || raw > c.DomainMax {
		return CriterionScore{}, fmt.Errorf("%w: criterion %q value %v outside physical domain [%v, %v]",
			ErrInvalidMeasurement, criterionID, raw, c.DomainMin, c.DomainMax)
	}

	score := c.Curve.Value(raw)
	if c.Direction == Cost {
		score = 100 - score
	}
	score = clamp(score, 0, 100)

	return CriterionScore{Criterion: c.ID, Score: score, Level: Classify(score)}, nil
}

// normalizeAll validates that every configured criterion has exactly one
// measurement and normalizes the full set, preserving configuration order.
func (e *Engine) normalizeAll(measurements []RawMeasurement) ([]CriterionScore, error) {
	byCriterion := make(map[string]RawMeasurement, len(measurements))
	for _, m := range measurements {
		if _, dup := byCriterion[m.Criterion]; dup {
			return nil, fmt.Errorf("%w: duplicate measurement for criterion %q", ErrInvalidMeasurement, m.Criterion)
		}
		if _, known := e.byID[m.Criterion]; !known {
			return nil, fmt.Errorf("%w: unknown criterion %q", ErrInvalidMeasurement, m.Criterion)
		}
		byCriterion[m.Criterion] = m
	}

	scores := make([]CriterionScore, 0, len(e.criteria))
	for _, c := range e.criteria {
		m, ok := byCriterion[c.ID]
		if !ok {
			return nil, fmt.Errorf("%w: missing measurement for criterion %q", ErrInvalidMeasurement, c.ID)
		}
		s, err := e.Normalize(c.ID, m.Value)
		if err != nil {
			return nil, err
		}
		scores = append(scores, s)
	}
	return scores, nil
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
