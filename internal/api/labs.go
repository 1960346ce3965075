package api

import (
	"errors"
	"net/http"

	"github.com/MikeSquared-Agency/Toxscan/internal/labs"
)

type LabsHandler struct {
	processor *labs.Processor
}

func NewLabsHandler(p *labs.Processor) *LabsHandler {
	return &LabsHandler{processor: p}
}

// Create normalizes an extracted report and persists its results.
func (h *LabsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var report labs.Report
	if !decodeJSON(w, r, &report) {
		return
	}

	processed, err := h.processor.Ingest(r.Context(), report)
	if err != nil {
		if errors.Is(err, labs.ErrEmptyReport) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, processed)
}
