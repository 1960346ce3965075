package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/MikeSquared-Agency/Toxscan/internal/metrics"
	"github.com/MikeSquared-Agency/Toxscan/internal/scoring"
)

// maxNormalizeNames caps one /markers/normalize call.
const maxNormalizeNames = 500

type ScoringHandler struct {
	engine  *scoring.Engine
	metrics *metrics.Metrics
}

func NewScoringHandler(e *scoring.Engine, m *metrics.Metrics) *ScoringHandler {
	return &ScoringHandler{engine: e, metrics: m}
}

type ScoreIngredientsRequest struct {
	Ingredients string `json:"ingredients"`
}

func (h *ScoringHandler) ScoreIngredients(w http.ResponseWriter, r *http.Request) {
	var req ScoreIngredientsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Ingredients) == "" {
		writeError(w, http.StatusBadRequest, "ingredients required")
		return
	}

	score, err := h.engine.ScoreIngredients(r.Context(), req.Ingredients)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, score)
}

type NormalizeMarkersRequest struct {
	Names []string `json:"names"`
}

type NormalizeMarkersResponse struct {
	VocabularyVersion string                  `json:"vocabulary_version"`
	Results           []scoring.ResolvedMatch `json:"results"`
	UnmappedCount     int                     `json:"unmapped_count"`
}

func (h *ScoringHandler) NormalizeMarkers(w http.ResponseWriter, r *http.Request) {
	var req NormalizeMarkersRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.Names) == 0 {
		writeError(w, http.StatusBadRequest, "names required")
		return
	}
	if len(req.Names) > maxNormalizeNames {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("at most %d names per request", maxNormalizeNames))
		return
	}

	n, err := h.engine.Normalizer(r.Context())
	if err != nil {
		writeEngineError(w, err)
		return
	}

	resp := NormalizeMarkersResponse{
		VocabularyVersion: n.Vocabulary().Version(),
		Results:           make([]scoring.ResolvedMatch, 0, len(req.Names)),
	}
	for _, name := range req.Names {
		res := n.Normalize(name)
		h.metrics.IncResolution(string(res.Method))
		match := scoring.MatchFromResolution(res)
		if !match.Known {
			resp.UnmappedCount++
		}
		resp.Results = append(resp.Results, match)
	}
	writeJSON(w, http.StatusOK, resp)
}
