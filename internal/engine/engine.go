package engine

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/GridPoint-Energy/Sitewise/internal/config"
)

// Engine is the multi-criteria siting decision core. It is stateless and
// synchronous: every analysis is a pure function of its inputs and the
// immutable configuration captured at construction, so concurrent use
// requires no locking.
type Engine struct {
	criteria   []Criterion
	byID       map[string]Criterion
	groups     map[Group]GroupSpec
	groupOrder []Group
	prefs      preferenceThresholds

	tierLabels      map[Level]string
	spreadThreshold float64

	logger *slog.Logger
	now    func() time.Time
}

type preferenceThresholds struct {
	Indifference float64 // q
	Preference   float64 // p
}

// Candidate is one site under analysis.
type Candidate struct {
	ID           string           `json:"candidate_id"`
	Name         string           `json:"name,omitempty"`
	Latitude     float64          `json:"latitude"`
	Longitude    float64          `json:"longitude"`
	Measurements []RawMeasurement `json:"measurements"`
}

// New validates the configuration and builds an engine. Any validation
// failure wraps ErrConfiguration and should be treated as fatal at startup.
func New(cfg config.EngineConfig, logger *slog.Logger) (*Engine, error) {
	criteria, groups, err := buildCriteria(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Preference.IndifferenceThreshold < 0 ||
		cfg.Preference.PreferenceThreshold <= cfg.Preference.IndifferenceThreshold {
		return nil, fmt.Errorf("%w: preference thresholds require 0 <= q < p, got q=%.2f p=%.2f",
			ErrConfiguration, cfg.Preference.IndifferenceThreshold, cfg.Preference.PreferenceThreshold)
	}

	tierLabels := make(map[Level]string, len(cfg.TierLabels))
	for level, label := range cfg.TierLabels {
		tierLabels[Level(level)] = label
	}
	for _, l := range []Level{LevelExcellent, LevelGood, LevelFair, LevelPoor, LevelVeryPoor} {
		if tierLabels[l] == "" {
			return nil, fmt.Errorf("%w: missing tier label for level %q", ErrConfiguration, l)
		}
	}

	groupOrder := make([]Group, 0, len(groups))
	for g := range groups {
		groupOrder = append(groupOrder, g)
	}
	sort.Slice(groupOrder, func(i, j int) bool { return groupOrder[i] < groupOrder[j] })

	byID := make(map[string]Criterion, len(criteria))
	for _, c := range criteria {
		byID[c.ID] = c
	}

	spread := cfg.RiskSpreadThreshold
	if spread <= 0 {
		spread = 400
	}

	return &Engine{
		criteria:   criteria,
		byID:       byID,
		groups:     groups,
		groupOrder: groupOrder,
		prefs: preferenceThresholds{
			Indifference: cfg.Preference.IndifferenceThreshold,
			Preference:   cfg.Preference.PreferenceThreshold,
		},
		tierLabels:      tierLabels,
		spreadThreshold: spread,
		logger:          logger,
		now:             time.Now,
	}, nil
}

// Criteria returns the configured criteria in configuration order.
func (e *Engine) Criteria() []Criterion {
	out := make([]Criterion, len(e.criteria))
	copy(out, e.criteria)
	return out
}

// Groups returns the group specifications.
func (e *Engine) Groups() map[Group]GroupSpec {
	out := make(map[Group]GroupSpec, len(e.groups))
	for g, spec := range e.groups {
		out[g] = spec
	}
	return out
}

// Analyze runs the full single-candidate pipeline: normalize, aggregate,
// classify, assess risk, synthesize recommendations. This is the absolute
// scoring path; comparative outranking needs AnalyzeBatch with two or more
// candidates.
func (e *Engine) Analyze(c Candidate) (*DecisionResult, error) {
	scores, err := e.normalizeAll(c.Measurements)
	if err != nil {
		return nil, err
	}
	return e.assemble(c, scores), nil
}

func (e *Engine) assemble(c Candidate, scores []CriterionScore) *DecisionResult {
	groupScores, composite := e.aggregate(scores)
	level := Classify(composite)
	risk := e.AssessRisk(scores, groupScores)
	recommendations := e.Synthesize(level, scores, risk)

	detailed := make(map[string]ScoreValue, len(scores))
	for _, s := range scores {
		detailed[s.Criterion] = ScoreValue{Score: s.Score, Level: s.Level}
	}

	return &DecisionResult{
		CandidateID:     c.ID,
		Name:            c.Name,
		Latitude:        c.Latitude,
		Longitude:       c.Longitude,
		OverallScore:    ScoreValue{Score: composite, Level: level},
		DetailedScores:  detailed,
		GroupScores:     groupScores,
		DecisionLevel:   e.DecisionTier(level),
		RiskAssessment:  risk,
		Recommendations: recommendations,
		AnalysisDate:    e.now().UTC(),
	}
}

// BatchResult is the comparative output: per-candidate absolute results in
// input order plus the PROMETHEE net-flow ranking. Ranking is nil for a
// single candidate, where outranking degenerates to absolute scoring.
type BatchResult struct {
	Results []*DecisionResult  `json:"results"`
	Ranking []OutrankingResult `json:"ranking,omitempty"`
}

// AnalyzeBatch analyzes several candidates. Normalization and aggregation run
// in parallel, one goroutine per candidate; the pairwise comparison starts
// only after every candidate is normalized. Any invalid measurement fails the
// whole batch — no partial result is returned.
func (e *Engine) AnalyzeBatch(candidates []Candidate) (*BatchResult, error) {
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: no candidates", ErrInvalidMeasurement)
	}
	seen := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		if seen[c.ID] {
			return nil, fmt.Errorf("%w: duplicate candidate id %q", ErrInvalidMeasurement, c.ID)
		}
		seen[c.ID] = true
	}

	type outcome struct {
		result *DecisionResult
		scores []CriterionScore
		err    error
	}
	outcomes := make([]outcome, len(candidates))

	var wg sync.WaitGroup
	for i, c := range candidates {
		wg.Add(1)
		go func(i int, c Candidate) {
			defer wg.Done()
			scores, err := e.normalizeAll(c.Measurements)
			if err != nil {
				outcomes[i] = outcome{err: fmt.Errorf("candidate %q: %w", c.ID, err)}
				return
			}
			outcomes[i] = outcome{result: e.assemble(c, scores), scores: scores}
		}(i, c)
	}
	wg.Wait()

	results := make([]*DecisionResult, len(candidates))
	scoresByID := make(map[string][]CriterionScore, len(candidates))
	ids := make([]string, len(candidates))
	for i, o := range outcomes {
		if o.err != nil {
			return nil, o.err
		}
		results[i] = o.result
		ids[i] = candidates[i].ID
		scoresByID[candidates[i].ID] = o.scores
	}

	batch := &BatchResult{Results: results}
	if len(candidates) >= 2 {
		batch.Ranking = e.rank(ids, scoresByID)
	} else if e.logger != nil {
		e.logger.Debug("single candidate, outranking skipped; absolute scoring applies")
	}
	return batch, nil
}
