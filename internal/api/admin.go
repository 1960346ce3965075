package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MikeSquared-Agency/Toxscan/internal/catalog"
	"github.com/MikeSquared-Agency/Toxscan/internal/store"
)

const (
	defaultUnmappedLimit = 100
	maxUnmappedLimit     = 500
)

// AdminHandler serves the curation endpoints.
type AdminHandler struct {
	catalog *catalog.Service
	store   store.Store
}

func NewAdminHandler(c *catalog.Service, s store.Store) *AdminHandler {
	return &AdminHandler{catalog: c, store: s}
}

func (h *AdminHandler) ListMisses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.MissFilter{Status: store.MissStatus(q.Get("status"))}

	var ok bool
	if filter.MinScans, ok = intParam(w, q.Get("min_scans"), "min_scans"); !ok {
		return
	}
	if filter.Limit, ok = intParam(w, q.Get("limit"), "limit"); !ok {
		return
	}

	misses, err := h.catalog.ListMisses(r.Context(), filter)
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidStatus) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if q.Get("format") == "csv" {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="scan_misses.csv"`)
		w.WriteHeader(http.StatusOK)
		catalog.WriteMissesCSV(w, misses)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"misses": misses, "count": len(misses)})
}

type UpdateMissRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes,omitempty"`
}

func (h *AdminHandler) UpdateMiss(w http.ResponseWriter, r *http.Request) {
	var req UpdateMissRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	barcode := chi.URLParam(r, "barcode")
	err := h.catalog.UpdateMissStatus(r.Context(), barcode, store.MissStatus(req.Status), req.Notes)
	switch {
	case errors.Is(err, catalog.ErrInvalidStatus), errors.Is(err, catalog.ErrInvalidBarcode):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "scan miss not found")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"barcode": barcode, "status": req.Status})
}

func (h *AdminHandler) Unmapped(w http.ResponseWriter, r *http.Request) {
	limit, ok := intParam(w, r.URL.Query().Get("limit"), "limit")
	if !ok {
		return
	}
	if limit <= 0 {
		limit = defaultUnmappedLimit
	}
	if limit > maxUnmappedLimit {
		limit = maxUnmappedLimit
	}

	markers, err := h.store.ListUnmappedMarkers(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if markers == nil {
		markers = []*store.UnmappedMarker{}
	}
	writeJSON(w, http.StatusOK, markers)
}

// intParam parses an optional non-negative integer query parameter.
func intParam(w http.ResponseWriter, raw, name string) (int, bool) {
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		writeError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return n, true
}
