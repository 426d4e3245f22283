package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/GridPoint-Energy/Sitewise/internal/engine"
	"github.com/GridPoint-Energy/Sitewise/internal/events"
	"github.com/GridPoint-Energy/Sitewise/internal/store"
)

type AnalyzeHandler struct {
	engine *engine.Engine
	store  store.Store
	events events.Client
	logger *slog.Logger
}

func NewAnalyzeHandler(eng *engine.Engine, s store.Store, ev events.Client, logger *slog.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{engine: eng, store: s, events: ev, logger: logger}
}

type CandidateRequest struct {
	SiteID       string                  `json:"site_id,omitempty"`
	Name         string                  `json:"name,omitempty"`
	Latitude     float64                 `json:"latitude"`
	Longitude    float64                 `json:"longitude"`
	Measurements []engine.RawMeasurement `json:"measurements"`
}

type BatchRequest struct {
	Candidates []CandidateRequest `json:"candidates"`
}

type AnalyzeResponse struct {
	AnalysisID             uuid.UUID                     `json:"analysis_id"`
	Location               map[string]float64            `json:"location"`
	DecisionRecommendation engine.DecisionRecommendation `json:"decision_recommendation"`
	PrometheeMCGPAnalysis  engine.PrometheeMCGPAnalysis  `json:"promethee_mcgp_analysis"`
}

type BatchResponse struct {
	BatchID    uuid.UUID                 `json:"batch_id"`
	Candidates []AnalyzeResponse         `json:"candidates"`
	Ranking    []engine.OutrankingResult `json:"ranking,omitempty"`
}

func (req CandidateRequest) validate() string {
	if req.Latitude < -90 || req.Latitude > 90 {
		return "latitude out of range"
	}
	if req.Longitude < -180 || req.Longitude > 180 {
		return "longitude out of range"
	}
	if len(req.Measurements) == 0 {
		return "measurements required"
	}
	return ""
}

func (req CandidateRequest) candidate(id string) engine.Candidate {
	return engine.Candidate{
		ID:           id,
		Name:         req.Name,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Measurements: req.Measurements,
	}
}

// Analyze handles POST /api/v1/analyze for a single candidate site.
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req CandidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if msg := req.validate(); msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	start := time.Now()
	analysisID := uuid.New()
	siteID := req.SiteID
	if siteID == "" {
		siteID = analysisID.String()
	}

	result, err := h.engine.Analyze(req.candidate(siteID))
	if err != nil {
		analysesTotal.WithLabelValues("single", "error").Inc()
		h.publish(events.SubjectAnalysisFailed(analysisID.String()), map[string]interface{}{
			"analysis_id": analysisID,
			"site_id":     req.SiteID,
			"error":       err.Error(),
		})
		if errors.Is(err, engine.ErrInvalidMeasurement) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	analysesTotal.WithLabelValues("single", "ok").Inc()
	analysisDuration.WithLabelValues("single").Observe(time.Since(start).Seconds())

	h.persist(r, analysisID, req, result)
	h.publish(events.SubjectAnalysisCompleted(analysisID.String()), map[string]interface{}{
		"analysis_id":    analysisID,
		"site_id":        req.SiteID,
		"overall_score":  result.OverallScore.Score,
		"decision_level": result.DecisionLevel,
		"risk_level":     result.RiskAssessment.RiskLevel,
	})

	writeJSON(w, http.StatusOK, AnalyzeResponse{
		AnalysisID: analysisID,
		Location: map[string]float64{
			"latitude":  req.Latitude,
			"longitude": req.Longitude,
		},
		DecisionRecommendation: result.WireRecommendation(),
		PrometheeMCGPAnalysis:  result.WireMCGP(),
	})
}

// Batch handles POST /api/v1/analyze/batch. Two or more candidates engage
// pairwise outranking; one candidate degrades to absolute scoring.
func (h *AnalyzeHandler) Batch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if len(req.Candidates) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "candidates required"})
		return
	}

	candidates := make([]engine.Candidate, len(req.Candidates))
	ids := make([]uuid.UUID, len(req.Candidates))
	for i, cr := range req.Candidates {
		if msg := cr.validate(); msg != "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
			return
		}
		ids[i] = uuid.New()
		siteID := cr.SiteID
		if siteID == "" {
			siteID = ids[i].String()
		}
		candidates[i] = cr.candidate(siteID)
	}

	start := time.Now()
	batch, err := h.engine.AnalyzeBatch(candidates)
	if err != nil {
		analysesTotal.WithLabelValues("batch", "error").Inc()
		if errors.Is(err, engine.ErrInvalidMeasurement) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	analysesTotal.WithLabelValues("batch", "ok").Inc()
	analysisDuration.WithLabelValues("batch").Observe(time.Since(start).Seconds())

	batchID := uuid.New()
	resp := BatchResponse{
		BatchID:    batchID,
		Candidates: make([]AnalyzeResponse, len(batch.Results)),
		Ranking:    batch.Ranking,
	}
	for i, result := range batch.Results {
		h.persist(r, ids[i], req.Candidates[i], result)
		resp.Candidates[i] = AnalyzeResponse{
			AnalysisID: ids[i],
			Location: map[string]float64{
				"latitude":  req.Candidates[i].Latitude,
				"longitude": req.Candidates[i].Longitude,
			},
			DecisionRecommendation: result.WireRecommendation(),
			PrometheeMCGPAnalysis:  result.WireMCGP(),
		}
	}

	h.publish(events.SubjectBatchCompleted(batchID.String()), map[string]interface{}{
		"batch_id":   batchID,
		"candidates": len(batch.Results),
		"ranking":    batch.Ranking,
	})

	writeJSON(w, http.StatusOK, resp)
}

func (h *AnalyzeHandler) persist(r *http.Request, id uuid.UUID, req CandidateRequest, result *engine.DecisionResult) {
	if h.store == nil {
		return
	}
	a := &store.Analysis{
		ID:             id,
		SiteID:         req.SiteID,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		CompositeScore: result.OverallScore.Score,
		Level:          string(result.OverallScore.Level),
		DecisionLevel:  result.DecisionLevel,
		RiskLevel:      string(result.RiskAssessment.RiskLevel),
		Result:         result,
	}
	if err := h.store.SaveAnalysis(r.Context(), a); err != nil {
		h.logger.Warn("failed to persist analysis", "analysis_id", id, "error", err)
	}
}

func (h *AnalyzeHandler) publish(subject string, payload interface{}) {
	if h.events == nil {
		return
	}
	if err := h.events.Publish(subject, payload); err != nil {
		h.logger.Warn("failed to publish event", "subject", subject, "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
