package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/abhi11j/CodeCatalyst/internal/apply"
	"github.com/abhi11j/CodeCatalyst/internal/github"
	"github.com/abhi11j/CodeCatalyst/internal/redact"
	"github.com/abhi11j/CodeCatalyst/internal/scan"
)

// errorEnvelope is the JSON body for every non-2xx response.
type errorEnvelope struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorEnvelope{Error: code, Message: redact.Secrets(message)})
}

// writeDomainError maps domain sentinels onto HTTP statuses. Anything
// unrecognized from the scan or apply flow is an upstream failure, not
// a bad request.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, scan.ErrInvalidRequest), errors.Is(err, apply.ErrValidation):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, github.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized", err.Error())
	case errors.Is(err, github.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, github.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, "rate_limited", err.Error())
	default:
		writeError(w, http.StatusBadGateway, "upstream_error", err.Error())
	}
}
