package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"bikefleet-backend/internal/authz"
	"bikefleet-backend/internal/logger"
	"bikefleet-backend/internal/service"
)

type errorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		json.NewEncoder(w).Encode(body)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeServiceError maps service-layer errors onto HTTP statuses.
// Denials carry their reason; everything the caller has no business
// knowing about collapses into a uniform message.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var f *service.ForbiddenError
	if errors.As(err, &f) {
		status := http.StatusForbidden
		if f.Decision.Reason == authz.ReasonNotAuthenticated {
			status = http.StatusUnauthorized
		}
		writeJSON(w, status, errorResponse{Error: f.Error(), Reason: string(f.Decision.Reason)})
		return
	}

	switch {
	case errors.Is(err, sql.ErrNoRows), errors.Is(err, service.ErrBookingNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrBookingClaimed):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrProfileMissing):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrNotPreProvisioned):
		writeError(w, http.StatusForbidden, err.Error())
	default:
		logger.ErrorContext(r.Context(), "Request failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeBody(r *http.Request, dst any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
