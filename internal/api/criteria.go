package api

import (
	"net/http"

	"github.com/GridPoint-Energy/Sitewise/internal/config"
	"github.com/GridPoint-Energy/Sitewise/internal/engine"
)

type CriteriaHandler struct {
	engine *engine.Engine
	cfg    *config.Config
}

func NewCriteriaHandler(eng *engine.Engine, cfg *config.Config) *CriteriaHandler {
	return &CriteriaHandler{engine: eng, cfg: cfg}
}

type criterionView struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Direction string  `json:"direction"`
	Group     string  `json:"group"`
	Weight    float64 `json:"weight"`
	Global    float64 `json:"global_weight"`
	Unit      string  `json:"unit,omitempty"`
}

type groupView struct {
	Weight       float64 `json:"weight"`
	GoalTarget   float64 `json:"goal_target"`
	GoalPriority float64 `json:"goal_priority"`
}

// Get handles GET /api/v1/criteria: the static configuration view consumed
// by the map UI.
func (h *CriteriaHandler) Get(w http.ResponseWriter, r *http.Request) {
	criteria := h.engine.Criteria()
	views := make([]criterionView, len(criteria))
	for i, c := range criteria {
		views[i] = criterionView{
			ID:        c.ID,
			Name:      c.Name,
			Direction: string(c.Direction),
			Group:     string(c.Group),
			Weight:    c.Weight,
			Global:    h.engine.GlobalWeight(c),
			Unit:      c.Unit,
		}
	}

	groups := make(map[string]groupView)
	for g, spec := range h.engine.Groups() {
		groups[string(g)] = groupView{
			Weight:       spec.Weight,
			GoalTarget:   spec.Goal.Target,
			GoalPriority: spec.Goal.Priority,
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"criteria":    views,
		"groups":      groups,
		"preference":  h.cfg.Engine.Preference,
		"tier_labels": h.cfg.Engine.TierLabels,
	})
}
