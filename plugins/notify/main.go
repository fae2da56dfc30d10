// Package main provides a desktop notification hook for dinojump.
// It announces finished runs and new high scores using osascript on macOS
// and notify-send on Linux.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// Request represents the input from the plugin executor.
type Request struct {
	Event  string          `json:"event"`
	Data   EventData       `json:"data"`
	Config json.RawMessage `json:"config"`
}

// EventData carries the fields of a game event this hook reads.
type EventData struct {
	Score     float64 `json:"score"`
	HighScore float64 `json:"high_score"`
	Milestone int     `json:"milestone"`
	Jumps     int     `json:"jumps"`
}

// Response represents the output to the plugin executor.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// messageBuilder turns an event into a notification body.
type messageBuilder func(EventData) string

var messages = map[string]messageBuilder{
	"game_over": func(d EventData) string {
		return fmt.Sprintf("Game over: %05d (best %05d, %d jumps)", int(d.Score), int(d.HighScore), d.Jumps)
	},
	"high_score": func(d EventData) string {
		return fmt.Sprintf("New high score: %05d", int(d.Score))
	},
	"milestone": func(d EventData) string {
		return fmt.Sprintf("Milestone %d reached", d.Milestone)
	},
}

func main() {
	var req Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeErrorResponse(fmt.Sprintf("failed to decode request: %v", err))
		return
	}

	build, ok := messages[req.Event]
	if !ok {
		writeErrorResponse(fmt.Sprintf("unsupported event: %s", req.Event))
		return
	}

	body := build(req.Data)
	if err := notify("Dino Jump", body); err != nil {
		writeErrorResponse(fmt.Sprintf("notification failed: %v", err))
		return
	}

	data, _ := json.Marshal(map[string]string{"message": body})
	writeResponse(Response{Success: true, Data: data})
}

// notify shows a desktop notification with the platform's native tool.
func notify(title, body string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		script := fmt.Sprintf(`display notification %q with title %q`, body, title)
		cmd = exec.Command("osascript", "-e", script)
	case "linux":
		cmd = exec.Command("notify-send", title, body)
	default:
		return fmt.Errorf("notifications not supported on %s", runtime.GOOS)
	}

	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

// writeErrorResponse writes an error response to stdout.
func writeErrorResponse(errMsg string) {
	writeResponse(Response{
		Success: false,
		Error:   errMsg,
	})
}

func writeResponse(resp Response) {
	json.NewEncoder(os.Stdout).Encode(resp)
}
