// Package api provides the HTTP API handlers for dinojump.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/ayusman/dinojump/internal/app"
)

// Game is the part of the application the API drives.
type Game interface {
	Snapshot() app.Snapshot
	NewGame()
	RequestJump() bool
	SetGesturesEnabled(enabled bool)
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
