package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"fairsplit/internal/auth"
	"fairsplit/internal/engine"
	"fairsplit/internal/service"
	"fairsplit/internal/storage"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encoding failed", "error", err)
	}
}

// writeError maps service and engine errors onto HTTP statuses. The
// specific error text is preserved so clients can show an actionable
// message (e.g. "weights sum to 90, want 100").
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, storage.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, engine.ErrInvalidSplitPolicy),
		errors.Is(err, engine.ErrNonPositiveAmount),
		errors.Is(err, engine.ErrEmptyParticipantSet),
		errors.Is(err, engine.ErrUnknownUserInGroup),
		errors.Is(err, service.ErrBadRequest),
		errors.Is(err, auth.ErrWeakPassword):
		status = http.StatusBadRequest
	case errors.Is(err, auth.ErrEmailExists):
		status = http.StatusConflict
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken):
		status = http.StatusUnauthorized
	case errors.Is(err, engine.ErrUnbalancedInput):
		// Internal invariant violation; the service already logged it.
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body: " + err.Error()})
		return false
	}
	return true
}
