package http

import (
	"encoding/json"
	"net/http"

	"toolrent-backend/internal/domain"
	"toolrent-backend/internal/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			logger.Error("failed to encode response", "error", err)
		}
	}
}

// writeError maps the domain error taxonomy onto HTTP status codes.
// Anything outside the taxonomy is an internal error and its details stay
// out of the response.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case domain.IsInvalidRequest(err), domain.IsRuleViolation(err):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case domain.IsNotFound(err):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case domain.IsConflict(err):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		logger.Error("internal error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, domain.InvalidRequest("invalid request body: %v", err))
		return false
	}
	if err := validate.Struct(dst); err != nil {
		writeError(w, domain.InvalidRequest("%v", err))
		return false
	}
	return true
}
