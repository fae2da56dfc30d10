// Package plugin runs external hook executables in response to game events
// such as a finished run or a new high score.
package plugin

import (
	"encoding/json"
	"slices"

	"github.com/ayusman/dinojump/internal/game"
)

// Manifest describes a plugin's metadata and the events it subscribes to.
type Manifest struct {
	Name         string          `json:"name"`
	Version      string          `json:"version"`
	Description  string          `json:"description"`
	Executable   string          `json:"executable"`
	Events       []string        `json:"events"`
	ConfigSchema json.RawMessage `json:"configSchema,omitempty"`
}

// Subscribes reports whether the manifest lists the event kind.
func (m Manifest) Subscribes(kind game.EventKind) bool {
	return slices.Contains(m.Events, string(kind))
}

// Request is the JSON document sent to a plugin on stdin.
type Request struct {
	Event  string          `json:"event"`
	Data   game.Event      `json:"data"`
	Config json.RawMessage `json:"config,omitempty"`
}

// Response represents the response from a plugin execution.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Plugin represents a discovered plugin with its manifest and location.
type Plugin struct {
	Manifest   Manifest
	Path       string
	Executable string
}

// NewRequest builds the request for a game event.
func NewRequest(e game.Event) *Request {
	return &Request{Event: string(e.Kind), Data: e}
}
