package engine

import (
	"errors"
	"math"
	"testing"

	"github.com/GridPoint-Energy/Sitewise/internal/config"
)

func TestNormalizeClamping(t *testing.T) {
	// A curve whose natural range runs past 100 must saturate, not error.
	cfg := testConfig()
	cfg.Criteria[0].Curve = config.CurveConfig{Type: "linear", Min: 0, Max: 50}
	e, err := New(cfg, discardLogger())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	s, err := e.Normalize("land_suitability", 80) // curve value 160
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if s.Score != 100 {
		t.Errorf("score = %f, want clamp to 100", s.Score)
	}
}

func TestNormalizeInvalidMeasurements(t *testing.T) {
	e := newTestEngine(t)

	tests := []struct {
		name      string
		criterion string
		value     float64
	}{
		{"nan", "land_suitability", math.NaN()},
		{"positive infinity", "land_suitability", math.Inf(1)},
		{"negative infinity", "land_suitability", math.Inf(-1)},
		{"below domain", "land_suitability", -1},
		{"above domain", "land_suitability", 101},
		{"unknown criterion", "wind_speed", 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Normalize(tt.criterion, tt.value)
			if !errors.Is(err, ErrInvalidMeasurement) {
				t.Errorf("expected ErrInvalidMeasurement, got %v", err)
			}
		})
	}
}

func TestNormalizeAllMissingAndDuplicate(t *testing.T) {
	e := newTestEngine(t)

	t.Run("missing criterion", func(t *testing.T) {
		_, err := e.normalizeAll(measurements(80, 70, 75, 80, 70)[:4])
		if !errors.Is(err, ErrInvalidMeasurement) {
			t.Errorf("expected ErrInvalidMeasurement for missing measurement, got %v", err)
		}
	})

	t.Run("duplicate criterion", func(t *testing.T) {
		ms := measurements(80, 70, 75, 80, 70)
		ms = append(ms, RawMeasurement{Criterion: "land_suitability", Value: 50})
		_, err := e.normalizeAll(ms)
		if !errors.Is(err, ErrInvalidMeasurement) {
			t.Errorf("expected ErrInvalidMeasurement for duplicate measurement, got %v", err)
		}
	})
}

func TestNormalizeMonotonicity(t *testing.T) {
	cfg := testConfig()
	cfg.Criteria[3].Direction = "cost" // environmental_impact behaves as cost
	e, err := New(cfg, discardLogger())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	t.Run("benefit non-decreasing", func(t *testing.T) {
		prev := -1.0
		for raw := 0.0; raw <= 100; raw += 5 {
			s, err := e.Normalize("land_suitability", raw)
			if err != nil {
				t.Fatalf("Normalize(%f) failed: %v", raw, err)
			}
			if s.Score < prev {
				t.Fatalf("benefit score decreased: %f -> %f at raw %f", prev, s.Score, raw)
			}
			prev = s.Score
		}
	})

	t.Run("cost non-increasing", func(t *testing.T) {
		prev := 101.0
		for raw := 0.0; raw <= 100; raw += 5 {
			s, err := e.Normalize("environmental_impact", raw)
			if err != nil {
				t.Fatalf("Normalize(%f) failed: %v", raw, err)
			}
			if s.Score > prev {
				t.Fatalf("cost score increased: %f -> %f at raw %f", prev, s.Score, raw)
			}
			prev = s.Score
		}
	})
}

func TestCurves(t *testing.T) {
	t.Run("piecewise interpolates and holds ends", func(t *testing.T) {
		c := PiecewiseCurve{Points: []config.CurvePoint{
			{Raw: 0, Score: 40}, {Raw: 100, Score: 60}, {Raw: 200, Score: 100},
		}}
		cases := map[float64]float64{-5: 40, 0: 40, 50: 50, 100: 60, 150: 80, 200: 100, 999: 100}
		for raw, want := range cases {
			if got := c.Value(raw); math.Abs(got-want) > 1e-9 {
				t.Errorf("Value(%f) = %f, want %f", raw, got, want)
			}
		}
	})

	t.Run("sigmoid midpoint is 50", func(t *testing.T) {
		c := SigmoidCurve{Midpoint: 0.5, Steepness: 8}
		if got := c.Value(0.5); math.Abs(got-50) > 1e-9 {
			t.Errorf("Value(midpoint) = %f, want 50", got)
		}
		if c.Value(0.9) <= c.Value(0.1) {
			t.Error("sigmoid must be increasing")
		}
	})
}
