package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/GridPoint-Energy/Sitewise/internal/engine"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := ensureSchema(ctx, pool); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func ensureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS site_analyses (
			analysis_id     UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			site_id         TEXT NOT NULL DEFAULT '',
			latitude        DOUBLE PRECISION NOT NULL,
			longitude       DOUBLE PRECISION NOT NULL,
			composite_score DOUBLE PRECISION NOT NULL,
			level           TEXT NOT NULL,
			decision_level  TEXT NOT NULL,
			risk_level      TEXT NOT NULL,
			result          JSONB NOT NULL,
			created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS site_analyses_decision_level_idx
			ON site_analyses (decision_level);
		CREATE INDEX IF NOT EXISTS site_analyses_created_at_idx
			ON site_analyses (created_at DESC)`)
	return err
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

const analysisColumns = `analysis_id, site_id, latitude, longitude,
	composite_score, level, decision_level, risk_level, result, created_at`

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}

func (s *PostgresStore) SaveAnalysis(ctx context.Context, a *Analysis) error {
	resultJSON, err := json.Marshal(a.Result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}

	return s.pool.QueryRow(ctx, `
		INSERT INTO site_analyses (analysis_id, site_id, latitude, longitude,
			composite_score, level, decision_level, risk_level, result)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at`,
		a.ID, a.SiteID, a.Latitude, a.Longitude,
		a.CompositeScore, a.Level, a.DecisionLevel, a.RiskLevel, resultJSON,
	).Scan(&a.CreatedAt)
}

func (s *PostgresStore) GetAnalysis(ctx context.Context, id uuid.UUID) (*Analysis, error) {
	a := &Analysis{}
	var resultJSON []byte
	err := s.pool.QueryRow(ctx, `
		SELECT `+analysisColumns+`
		FROM site_analyses WHERE analysis_id = $1`, id,
	).Scan(
		&a.ID, &a.SiteID, &a.Latitude, &a.Longitude,
		&a.CompositeScore, &a.Level, &a.DecisionLevel, &a.RiskLevel,
		&resultJSON, &a.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if resultJSON != nil {
		a.Result = &engine.DecisionResult{}
		if err := json.Unmarshal(resultJSON, a.Result); err != nil {
			return nil, fmt.Errorf("unmarshal result: %w", err)
		}
	}
	return a, nil
}

func (s *PostgresStore) ListAnalyses(ctx context.Context, filter AnalysisFilter) ([]*Analysis, error) {
	query := `SELECT ` + analysisColumns + ` FROM site_analyses WHERE 1=1`
	args := []interface{}{}
	n := 0

	if filter.DecisionLevel != "" {
		n++
		query += fmt.Sprintf(" AND decision_level = $%d", n)
		args = append(args, filter.DecisionLevel)
	}
	if filter.RiskLevel != "" {
		n++
		query += fmt.Sprintf(" AND risk_level = $%d", n)
		args = append(args, filter.RiskLevel)
	}

	query += " ORDER BY created_at DESC"

	limit := clampLimit(filter.Limit)
	n++
	query += fmt.Sprintf(" LIMIT $%d", n)
	args = append(args, limit)
	if filter.Offset > 0 {
		n++
		query += fmt.Sprintf(" OFFSET $%d", n)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var analyses []*Analysis
	for rows.Next() {
		a := &Analysis{}
		var resultJSON []byte
		if err := rows.Scan(
			&a.ID, &a.SiteID, &a.Latitude, &a.Longitude,
			&a.CompositeScore, &a.Level, &a.DecisionLevel, &a.RiskLevel,
			&resultJSON, &a.CreatedAt,
		); err != nil {
			return nil, err
		}
		if resultJSON != nil {
			a.Result = &engine.DecisionResult{}
			if err := json.Unmarshal(resultJSON, a.Result); err != nil {
				return nil, fmt.Errorf("unmarshal result: %w", err)
			}
		}
		analyses = append(analyses, a)
	}
	return analyses, rows.Err()
}

func (s *PostgresStore) GetStats(ctx context.Context) (*AnalysisStats, error) {
	stats := &AnalysisStats{ByDecisionLevel: make(map[string]int)}

	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(AVG(composite_score), 0)
		FROM site_analyses`,
	).Scan(&stats.TotalAnalyses, &stats.AvgComposite)
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, `
		SELECT decision_level, COUNT(*)
		FROM site_analyses GROUP BY decision_level`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var level string
		var count int
		if err := rows.Scan(&level, &count); err != nil {
			return nil, err
		}
		stats.ByDecisionLevel[level] = count
	}
	return stats, rows.Err()
}
