package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/GridPoint-Energy/Sitewise/internal/config"
)

type Direction string

const (
	Benefit Direction = "benefit"
	Cost    Direction = "cost"
)

type Group string

const (
	GroupEconomic Group = "economic"
	GroupNatural  Group = "natural"
)

// Criterion is one immutable siting criterion: direction, group membership,
// in-group weight and the raw-to-score mapping curve.
type Criterion struct {
	ID        string
	Name      string
	Direction Direction
	Group     Group
	Weight    float64
	DomainMin float64
	DomainMax float64
	Unit      string
	Curve     Curve
}

// GoalSpec is a group-level goal: scores below Target are penalized by
// Priority times the shortfall. Scores above Target are never penalized.
type GoalSpec struct {
	Target   float64
	Priority float64
}

type GroupSpec struct {
	Weight float64
	Goal   GoalSpec
}

// Curve maps a raw measurement to a score on the 0-100 scale. Curves are
// monotonically non-decreasing; cost criteria invert the result afterwards.
type Curve interface {
	Value(raw float64) float64
}

type LinearCurve struct {
	Min, Max float64
}

func (c LinearCurve) Value(raw float64) float64 {
	if c.Max == c.Min {
		return 0
	}
	return (raw - c.Min) / (c.Max - c.Min) * 100
}

// PiecewiseCurve interpolates linearly between (raw, score) breakpoints,
// holding the first/last score outside the breakpoint range.
type PiecewiseCurve struct {
	Points []config.CurvePoint
}

func (c PiecewiseCurve) Value(raw float64) float64 {
	pts := c.Points
	if raw <= pts[0].Raw {
		return pts[0].Score
	}
	for i := 1; i < len(pts); i++ {
		if raw <= pts[i].Raw {
			span := pts[i].Raw - pts[i-1].Raw
			if span == 0 {
				return pts[i].Score
			}
			frac := (raw - pts[i-1].Raw) / span
			return pts[i-1].Score + frac*(pts[i].Score-pts[i-1].Score)
		}
	}
	return pts[len(pts)-1].Score
}

type SigmoidCurve struct {
	Midpoint  float64
	Steepness float64
}

func (c SigmoidCurve) Value(raw float64) float64 {
	return 100 / (1 + math.Exp(-c.Steepness*(raw-c.Midpoint)))
}

const weightTolerance = 1e-6

func buildCriteria(cfg config.EngineConfig) ([]Criterion, map[Group]GroupSpec, error) {
	if len(cfg.Criteria) == 0 {
		return nil, nil, fmt.Errorf("%w: no criteria defined", ErrConfiguration)
	}

	groups := make(map[Group]GroupSpec, len(cfg.Groups))
	var groupWeightSum float64
	for name, gc := range cfg.Groups {
		if gc.Weight < 0 || gc.GoalPriority < 0 {
			return nil, nil, fmt.Errorf("%w: group %q has a negative weight or priority", ErrConfiguration, name)
		}
		groups[Group(name)] = GroupSpec{
			Weight: gc.Weight,
			Goal:   GoalSpec{Target: gc.GoalTarget, Priority: gc.GoalPriority},
		}
		groupWeightSum += gc.Weight
	}
	if math.Abs(groupWeightSum-1.0) > weightTolerance {
		return nil, nil, fmt.Errorf("%w: group weights sum to %.6f, must sum to 1.0", ErrConfiguration, groupWeightSum)
	}

	criteria := make([]Criterion, 0, len(cfg.Criteria))
	seen := make(map[string]bool, len(cfg.Criteria))
	inGroup := make(map[Group]float64)
	for _, cc := range cfg.Criteria {
		if cc.ID == "" {
			return nil, nil, fmt.Errorf("%w: criterion with empty id", ErrConfiguration)
		}
		if seen[cc.ID] {
			return nil, nil, fmt.Errorf("%w: duplicate criterion %q", ErrConfiguration, cc.ID)
		}
		seen[cc.ID] = true

		dir := Direction(cc.Direction)
		if dir != Benefit && dir != Cost {
			return nil, nil, fmt.Errorf("%w: criterion %q has unknown direction %q", ErrConfiguration, cc.ID, cc.Direction)
		}
		g := Group(cc.Group)
		if _, ok := groups[g]; !ok {
			return nil, nil, fmt.Errorf("%w: criterion %q references undefined group %q", ErrConfiguration, cc.ID, cc.Group)
		}
		if cc.Weight < 0 || cc.Weight > 1 {
			return nil, nil, fmt.Errorf("%w: criterion %q weight %.4f outside [0,1]", ErrConfiguration, cc.ID, cc.Weight)
		}
		if cc.DomainMax <= cc.DomainMin {
			return nil, nil, fmt.Errorf("%w: criterion %q has empty physical domain", ErrConfiguration, cc.ID)
		}
		curve, err := buildCurve(cc)
		if err != nil {
			return nil, nil, err
		}

		inGroup[g] += cc.Weight
		criteria = append(criteria, Criterion{
			ID:        cc.ID,
			Name:      cc.Name,
			Direction: dir,
			Group:     g,
			Weight:    cc.Weight,
			DomainMin: cc.DomainMin,
			DomainMax: cc.DomainMax,
			Unit:      cc.Unit,
			Curve:     curve,
		})
	}

	for g := range groups {
		if math.Abs(inGroup[g]-1.0) > weightTolerance {
			return nil, nil, fmt.Errorf("%w: weights in group %q sum to %.6f, must sum to 1.0", ErrConfiguration, g, inGroup[g])
		}
	}

	return criteria, groups, nil
}

func buildCurve(cc config.CriterionConfig) (Curve, error) {
	switch cc.Curve.Type {
	case "linear":
		if cc.Curve.Max <= cc.Curve.Min {
			return nil, fmt.Errorf("%w: criterion %q linear curve has max <= min", ErrConfiguration, cc.ID)
		}
		return LinearCurve{Min: cc.Curve.Min, Max: cc.Curve.Max}, nil
	case "piecewise":
		pts := cc.Curve.Points
		if len(pts) < 2 {
			return nil, fmt.Errorf("%w: criterion %q piecewise curve needs at least 2 points", ErrConfiguration, cc.ID)
		}
		if !sort.SliceIsSorted(pts, func(i, j int) bool { return pts[i].Raw < pts[j].Raw }) {
			return nil, fmt.Errorf("%w: criterion %q piecewise points not sorted by raw value", ErrConfiguration, cc.ID)
		}
		for i := 1; i < len(pts); i++ {
			if pts[i].Score < pts[i-1].Score {
				return nil, fmt.Errorf("%w: criterion %q piecewise curve is not monotone", ErrConfiguration, cc.ID)
			}
		}
		return PiecewiseCurve{Points: pts}, nil
	case "sigmoid":
		if cc.Curve.Steepness <= 0 {
			return nil, fmt.Errorf("%w: criterion %q sigmoid steepness must be positive", ErrConfiguration, cc.ID)
		}
		return SigmoidCurve{Midpoint: cc.Curve.Midpoint, Steepness: cc.Curve.Steepness}, nil
	default:
		return nil, fmt.Errorf("%w: criterion %q has unknown curve type %q", ErrConfiguration, cc.ID, cc.Curve.Type)
	}
}

// GlobalWeight is the criterion's share of the composite: group weight times
// in-group weight. Global weights across all criteria sum to 1.
func (e *Engine) GlobalWeight(c Criterion) float64 {
	return e.groups[c.Group].Weight * c.Weight
}
