package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ayusman/dinojump/internal/game"
)

// SessionHandler handles HTTP requests for the running game.
type SessionHandler struct {
	game Game
}

// NewSessionHandler creates a new SessionHandler for the given game.
func NewSessionHandler(g Game) *SessionHandler {
	return &SessionHandler{game: g}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/session or /api/session/{action}
	action := strings.TrimPrefix(r.URL.Path, "/api/session")
	action = strings.Trim(action, "/")

	if action == "" {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		writeJSON(w, http.StatusOK, h.game.Snapshot())
		return
	}

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	switch action {
	case "start":
		h.start(w, r)
	case "jump":
		h.jump(w, r)
	case "gestures":
		h.gestures(w, r)
	default:
		writeError(w, http.StatusNotFound, "Unknown session action")
	}
}

type jumpResponse struct {
	Accepted bool `json:"accepted"`
}

type gesturesRequest struct {
	Enabled *bool `json:"enabled"`
}

// start handles POST /api/session/start: a new game, or a retry after game over.
func (h *SessionHandler) start(w http.ResponseWriter, r *http.Request) {
	h.game.NewGame()
	writeJSON(w, http.StatusOK, h.game.Snapshot())
}

// jump handles POST /api/session/jump, the keyboard-style fallback.
func (h *SessionHandler) jump(w http.ResponseWriter, r *http.Request) {
	if !h.game.RequestJump() {
		state := h.game.Snapshot().State
		if state != game.StateRunning {
			writeError(w, http.StatusConflict, "No game is running")
			return
		}
	}
	writeJSON(w, http.StatusOK, jumpResponse{Accepted: true})
}

// gestures handles POST /api/session/gestures to toggle hand control.
func (h *SessionHandler) gestures(w http.ResponseWriter, r *http.Request) {
	var req gesturesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Enabled == nil {
		writeError(w, http.StatusBadRequest, "enabled is required")
		return
	}

	h.game.SetGesturesEnabled(*req.Enabled)
	writeJSON(w, http.StatusOK, h.game.Snapshot().Gestures)
}
