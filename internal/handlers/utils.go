package handlers

import (
	"encoding/json"
	"net/http"
)

type contextKey string

// contextUsernameKey carries the authenticated username injected by
// RequireSession.
const contextUsernameKey contextKey = "username"

// ErrorResponse is the structured error payload returned on every failure.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse reports the outcome of a state-changing operation.
type StatusResponse struct {
	Status string `json:"status"`
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
