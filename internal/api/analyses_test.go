package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/GridPoint-Energy/Sitewise/internal/store"
)

func analysesRouter(s store.Store) http.Handler {
	h := NewAnalysesHandler(s)
	r := chi.NewRouter()
	r.Get("/analyses", h.List)
	r.Get("/analyses/{id}", h.Get)
	r.Get("/stats", h.Stats)
	return r
}

func TestListAnalyses(t *testing.T) {
	mockStore := new(MockStore)
	mockStore.On("ListAnalyses", mock.Anything, store.AnalysisFilter{DecisionLevel: "Recommended", Limit: 10}).
		Return([]*store.Analysis{{ID: uuid.New(), DecisionLevel: "Recommended"}}, nil)

	r := analysesRouter(mockStore)
	req := httptest.NewRequest("GET", "/analyses?decision_level=Recommended&limit=10", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var got []*store.Analysis
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Len(t, got, 1)
	mockStore.AssertExpectations(t)
}

func TestListAnalysesEmptyIsJSONArray(t *testing.T) {
	mockStore := new(MockStore)
	mockStore.On("ListAnalyses", mock.Anything, mock.Anything).Return(nil, nil)

	r := analysesRouter(mockStore)
	req := httptest.NewRequest("GET", "/analyses", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]\n", w.Body.String())
}

func TestGetAnalysis(t *testing.T) {
	id := uuid.New()
	mockStore := new(MockStore)
	mockStore.On("GetAnalysis", mock.Anything, id).
		Return(&store.Analysis{ID: id, DecisionLevel: "Recommended"}, nil)

	r := analysesRouter(mockStore)
	req := httptest.NewRequest("GET", "/analyses/"+id.String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var got store.Analysis
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, id, got.ID)
}

func TestGetAnalysisNotFound(t *testing.T) {
	mockStore := new(MockStore)
	mockStore.On("GetAnalysis", mock.Anything, mock.Anything).Return(nil, nil)

	r := analysesRouter(mockStore)
	req := httptest.NewRequest("GET", "/analyses/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetAnalysisBadID(t *testing.T) {
	r := analysesRouter(new(MockStore))
	req := httptest.NewRequest("GET", "/analyses/not-a-uuid", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStats(t *testing.T) {
	mockStore := new(MockStore)
	mockStore.On("GetStats", mock.Anything).Return(&store.AnalysisStats{
		TotalAnalyses:   3,
		AvgComposite:    72.5,
		ByDecisionLevel: map[string]int{"Recommended": 2, "Worth Considering": 1},
	}, nil)

	r := analysesRouter(mockStore)
	req := httptest.NewRequest("GET", "/stats", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var got store.AnalysisStats
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, 3, got.TotalAnalyses)
}

func TestAnalysesWithoutStore(t *testing.T) {
	r := analysesRouter(nil)

	for _, path := range []string{"/analyses", "/analyses/" + uuid.NewString(), "/stats"} {
		req := httptest.NewRequest("GET", path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code, "path %s", path)
	}
}
