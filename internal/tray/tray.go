// Package tray provides the system tray front-end used in headless mode.
package tray

import (
	"fmt"
	"sync"

	"github.com/getlantern/systray"
)

const (
	labelEnabled  = "● Hand control"
	labelDisabled = "○ Hand control"
)

// Status is what the tray shows about the running game.
type Status struct {
	State     string
	ScoreText string
	HighText  string
}

// Title formats a Status for the tray title.
func (s Status) Title() string {
	switch s.State {
	case "running":
		return "🦖 " + s.ScoreText
	case "over":
		return fmt.Sprintf("🦖 %s (HI %s)", s.ScoreText, s.HighText)
	default:
		return "🦖 Dino Jump"
	}
}

// Tray represents the system tray application.
type Tray struct {
	onToggle    func(enabled bool)
	onNewGame   func()
	onDashboard func()
	onQuit      func()
	enabled     bool
	status      Status
	mu          sync.RWMutex

	// Menu items stored for later updates
	ready      bool
	menuToggle *systray.MenuItem
	menuScore  *systray.MenuItem
}

// New creates a new Tray instance with hand control enabled.
func New() *Tray {
	return &Tray{
		enabled: true,
	}
}

// OnToggle sets the callback called when hand control is toggled.
func (t *Tray) OnToggle(fn func(enabled bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onToggle = fn
}

// OnNewGame sets the callback called when New Game is clicked.
func (t *Tray) OnNewGame(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onNewGame = fn
}

// OnDashboard sets the callback called when Open Dashboard is clicked.
func (t *Tray) OnDashboard(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onDashboard = fn
}

// OnQuit sets the callback called when Quit is clicked.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the system tray application.
// This function blocks until systray.Quit() is called.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// Quit stops the tray loop started by Run.
func (t *Tray) Quit() {
	systray.Quit()
}

// onReady is called when the system tray is ready.
func (t *Tray) onReady() {
	t.mu.Lock()
	systray.SetTitle(t.status.Title())
	systray.SetTooltip("Dino Jump")

	t.menuScore = systray.AddMenuItem(scoreLabel(t.status), "Current score")
	t.menuScore.Disable()
	systray.AddSeparator()

	t.menuToggle = systray.AddMenuItem(toggleLabel(t.enabled), "Toggle hand gesture control")
	menuNewGame := systray.AddMenuItem("New Game", "Start or retry a game")
	systray.AddSeparator()

	menuDashboard := systray.AddMenuItem("Open Dashboard...", "Open the game in a browser")
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit Dino Jump")
	t.ready = true
	t.mu.Unlock()

	// Handle menu item clicks in a separate goroutine
	go func() {
		for {
			select {
			case <-t.menuToggle.ClickedCh:
				t.handleToggle()
			case <-menuNewGame.ClickedCh:
				t.handleNewGame()
			case <-menuDashboard.ClickedCh:
				t.handleDashboard()
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

func (t *Tray) onExit() {
	t.mu.Lock()
	t.ready = false
	t.mu.Unlock()
}

// toggle flips hand control and returns the new state and callback.
func (t *Tray) toggle() (bool, func(bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.enabled = !t.enabled
	if t.ready {
		t.menuToggle.SetTitle(toggleLabel(t.enabled))
	}
	return t.enabled, t.onToggle
}

// handleToggle handles the toggle menu item click.
func (t *Tray) handleToggle() {
	enabled, callback := t.toggle()

	// Call the callback outside the lock to prevent deadlocks
	if callback != nil {
		callback(enabled)
	}
}

func (t *Tray) handleNewGame() {
	t.mu.RLock()
	callback := t.onNewGame
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

func (t *Tray) handleDashboard() {
	t.mu.RLock()
	callback := t.onDashboard
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

// handleQuit handles the quit menu item click.
func (t *Tray) handleQuit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}

	systray.Quit()
}

// SetStatus updates the title and score line. It reports whether anything
// changed.
func (t *Tray) SetStatus(s Status) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if s == t.status {
		return false
	}
	t.status = s

	if t.ready {
		systray.SetTitle(s.Title())
		t.menuScore.SetTitle(scoreLabel(s))
	}
	return true
}

// SetEnabled syncs the toggle with hand control changed elsewhere.
func (t *Tray) SetEnabled(enabled bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.enabled = enabled
	if t.ready {
		t.menuToggle.SetTitle(toggleLabel(enabled))
	}
}

// IsEnabled returns the current enabled state.
func (t *Tray) IsEnabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.enabled
}

func toggleLabel(enabled bool) string {
	if enabled {
		return labelEnabled
	}
	return labelDisabled
}

func scoreLabel(s Status) string {
	if s.ScoreText == "" {
		return "Score: 00000"
	}
	return fmt.Sprintf("Score: %s  HI %s", s.ScoreText, s.HighText)
}
