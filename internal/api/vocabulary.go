package api

import (
	"net/http"

	"github.com/MikeSquared-Agency/Toxscan/internal/scoring"
	"github.com/MikeSquared-Agency/Toxscan/internal/vocab"
)

type VocabularyHandler struct {
	engine *scoring.Engine
}

func NewVocabularyHandler(e *scoring.Engine) *VocabularyHandler {
	return &VocabularyHandler{engine: e}
}

type VocabularyInfo struct {
	Version     string           `json:"version"`
	MarkerCount int              `json:"marker_count"`
	AliasCount  int              `json:"alias_count"`
	Conflicts   []vocab.Conflict `json:"conflicts"`
}

func (h *VocabularyHandler) Get(w http.ResponseWriter, r *http.Request) {
	n, err := h.engine.Normalizer(r.Context())
	if err != nil {
		writeEngineError(w, err)
		return
	}
	v := n.Vocabulary()
	conflicts := v.Conflicts()
	if conflicts == nil {
		conflicts = []vocab.Conflict{}
	}
	writeJSON(w, http.StatusOK, VocabularyInfo{
		Version:     v.Version(),
		MarkerCount: v.Len(),
		AliasCount:  len(v.Aliases()),
		Conflicts:   conflicts,
	})
}
