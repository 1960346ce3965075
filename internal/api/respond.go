package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MikeSquared-Agency/Toxscan/internal/scoring"
	"github.com/MikeSquared-Agency/Toxscan/internal/vocab"
)

// maxBodyBytes bounds request bodies; lab reports are the largest.
const maxBodyBytes = 4 << 20

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeEngineError maps scoring failures onto status codes.
func writeEngineError(w http.ResponseWriter, err error) {
	if errors.Is(err, vocab.ErrVocabularyUnavailable) || errors.Is(err, scoring.ErrNoVocabulary) {
		writeError(w, http.StatusServiceUnavailable, "vocabulary unavailable")
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
