package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/GridPoint-Energy/Sitewise/internal/engine"
)

// Analysis is one persisted siting analysis.
type Analysis struct {
	ID             uuid.UUID              `json:"analysis_id"`
	SiteID         string                 `json:"site_id,omitempty"`
	Latitude       float64                `json:"latitude"`
	Longitude      float64                `json:"longitude"`
	CompositeScore float64                `json:"composite_score"`
	Level          string                 `json:"level"`
	DecisionLevel  string                 `json:"decision_level"`
	RiskLevel      string                 `json:"risk_level"`
	Result         *engine.DecisionResult `json:"result,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
}

type AnalysisFilter struct {
	DecisionLevel string
	RiskLevel     string
	Limit         int
	Offset        int
}

type AnalysisStats struct {
	TotalAnalyses   int            `json:"total_analyses"`
	AvgComposite    float64        `json:"avg_composite"`
	ByDecisionLevel map[string]int `json:"by_decision_level"`
}

type Store interface {
	SaveAnalysis(ctx context.Context, a *Analysis) error
	GetAnalysis(ctx context.Context, id uuid.UUID) (*Analysis, error)
	ListAnalyses(ctx context.Context, filter AnalysisFilter) ([]*Analysis, error)
	GetStats(ctx context.Context) (*AnalysisStats, error)
	Close() error
}
