// Package app wires the hand tracker to the dino game: it runs the camera
// pipeline, turns tracker results into jumps and steps the game session.
package app

import (
	"context"
	"errors"
	"log"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/ayusman/dinojump/internal/capture"
	"github.com/ayusman/dinojump/internal/detector"
	"github.com/ayusman/dinojump/internal/game"
	"github.com/ayusman/dinojump/internal/gesture"
	"github.com/ayusman/dinojump/internal/plugin"
	"github.com/ayusman/dinojump/internal/store"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate when no motion is detected.
	IdleFPS = 5
	// ActiveFPS is the frame rate during active detection.
	ActiveFPS = 15
	// IdleTimeout is how long without motion before switching back to idle mode.
	IdleTimeout = 2 * time.Second
	// DefaultTPS is the game update rate.
	DefaultTPS = 60
	// PluginTimeoutMs bounds a single hook run.
	PluginTimeoutMs = 5000
)

// ErrPipelineRunning is returned by Start when the camera pipeline is already up.
var ErrPipelineRunning = errors.New("pipeline already running")

// Config holds configuration options for the application.
type Config struct {
	Store           *store.Store
	PluginDir       string
	CameraID        int
	MotionThresh    float64
	ClosedThreshold float64
	Aggregation     gesture.Aggregation
	Verbose         bool

	// Camera and Detector override the device camera and the MediaPipe
	// detector, mainly for tests.
	Camera   capture.Camera
	Detector detector.Detector
	// Rand seeds obstacle placement; nil picks a random seed.
	Rand *rand.Rand
}

// App is the main application. All game state is mutated under mu by Tick
// and the input methods; the camera pipeline only talks to the Feed.
type App struct {
	config     Config
	camera     capture.Camera
	motion     *capture.MotionDetector
	detector   detector.Detector
	preview    *capture.Preview
	feed       *detector.Feed
	tracker    *gesture.Tracker
	trigger    *gesture.Trigger
	session    *game.Session
	runs       *store.RunRepository
	pluginMgr  *plugin.Manager
	pluginExec *plugin.Executor
	hooks      *plugin.Dispatcher

	mu              sync.Mutex
	gesturesEnabled bool
	lastResult      detector.Result

	pipeMu   sync.Mutex
	cancel   context.CancelFunc
	pipeDone chan struct{}
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	a := &App{
		config:          config,
		camera:          config.Camera,
		motion:          capture.NewMotionDetector(config.MotionThresh),
		detector:        config.Detector,
		preview:         capture.NewPreview(),
		feed:            detector.NewFeed(),
		pluginMgr:       plugin.NewManager(config.PluginDir),
		pluginExec:      plugin.NewExecutor(PluginTimeoutMs),
		gesturesEnabled: true,
	}
	if a.camera == nil {
		a.camera = capture.NewCamera(config.CameraID)
	}
	a.hooks = plugin.NewDispatcher(a.pluginMgr, a.pluginExec)

	classifier := gesture.NewClassifier(config.ClosedThreshold, config.Aggregation)
	a.tracker = gesture.NewTracker(classifier)
	a.tracker.SetVerbose(config.Verbose)
	a.trigger = gesture.NewTrigger(a.activePlayer)

	var highScores game.HighScoreStore
	if config.Store != nil {
		highScores = config.Store.HighScores()
		a.runs = config.Store.Runs()
	}

	a.session = game.NewSession(game.DefaultSessionConfig(), game.SessionDeps{
		Spawner:    game.NewSpawner(config.Rand),
		HighScores: highScores,
		Events:     game.Listeners{game.ListenerFunc(a.recordRun), a.hooks},
	})

	return a
}

// activePlayer finds the dino for the trigger. It returns a nil interface,
// not a typed nil, when no game is running.
func (a *App) activePlayer() gesture.Jumper {
	if p := a.session.Player(); p != nil {
		return p
	}
	return nil
}

// recordRun stores finished games in the run history.
func (a *App) recordRun(e game.Event) {
	if a.runs == nil {
		return
	}

	switch e.Kind {
	case game.EventGameOver:
		run := &store.Run{
			Score:     e.Score,
			Duration:  e.Duration,
			Jumps:     e.Jumps,
			NewRecord: e.NewRecord,
			StartedAt: e.StartedAt,
			EndedAt:   e.At,
		}
		if err := a.runs.Create(run); err != nil {
			log.Printf("Failed to record run: %v", err)
		}
	}
}

// Tick advances the game by dt seconds. Within a tick the newest tracker
// result is classified and fed to the jump trigger before the session
// steps, so a jump requested by frame N is consumed in the same tick.
func (a *App) Tick(dt float64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if r, ok := a.feed.Poll(); ok {
		a.lastResult = r
		if a.gesturesEnabled {
			if st, ok := a.tracker.Observe(r.Hands); ok {
				a.trigger.Update(st.Closed)
			}
		}
	}

	a.session.Update(dt)
}

// Run ticks the game at tps updates per second until ctx is canceled. It is
// the game loop for headless mode; the window drives Tick itself.
func (a *App) Run(ctx context.Context, tps int) error {
	if tps <= 0 {
		tps = DefaultTPS
	}
	dt := 1.0 / float64(tps)

	ticker := time.NewTicker(time.Second / time.Duration(tps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			a.Tick(dt)
		}
	}
}

// SetGesturesEnabled turns hand control on or off. Disabling forgets the
// last hand state so re-enabling with a closed hand does not jump at once.
func (a *App) SetGesturesEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.gesturesEnabled == enabled {
		return
	}
	a.gesturesEnabled = enabled
	a.tracker.Reset()
	a.trigger.Reset()
	log.Printf("Gesture control enabled=%t", enabled)
}

// GesturesEnabled reports whether hand control is on.
func (a *App) GesturesEnabled() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.gesturesEnabled
}

// RequestJump is the keyboard fallback. It returns false when no game is running.
func (a *App) RequestJump() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	p := a.session.Player()
	if p == nil {
		return false
	}
	p.RequestJump()
	return true
}

// NewGame starts a new game, or restarts after game over.
func (a *App) NewGame() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.session.State() == game.StateOver {
		a.session.Retry()
		return
	}
	a.session.NewGame()
}

// GestureStatus describes the hand control side of a Snapshot.
type GestureStatus struct {
	Enabled   bool    `json:"enabled"`
	Closed    bool    `json:"closed"`
	Trigger   string  `json:"trigger"`
	Jumps     int     `json:"jumps"`
	Frames    uint64  `json:"frames"`
	Hands     int     `json:"hands"`
	Threshold float64 `json:"threshold"`
	Pipeline  bool    `json:"pipeline"`
}

// Snapshot is the game view plus gesture state.
type Snapshot struct {
	game.Snapshot
	Gestures GestureStatus `json:"gestures"`
}

// Snapshot returns a consistent view of the game.
func (a *App) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	st := a.tracker.State()
	return Snapshot{
		Snapshot: a.session.Snapshot(),
		Gestures: GestureStatus{
			Enabled:   a.gesturesEnabled,
			Closed:    st.Closed,
			Trigger:   a.trigger.State().String(),
			Jumps:     a.trigger.Fired(),
			Frames:    st.Frames,
			Hands:     len(a.lastResult.Hands),
			Threshold: a.tracker.Classifier().Threshold(),
			Pipeline:  a.PipelineRunning(),
		},
	}
}

// Feed returns the tracker result feed. The camera pipeline and the
// websocket landmark ingest both push into it.
func (a *App) Feed() *detector.Feed {
	return a.feed
}

// Preview returns the latest camera frames for streaming.
func (a *App) Preview() *capture.Preview {
	return a.preview
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// PluginManager returns the plugin manager.
func (a *App) PluginManager() *plugin.Manager {
	return a.pluginMgr
}

// Runs returns the run history, or nil without a store.
func (a *App) Runs() *store.RunRepository {
	return a.runs
}

// HighScore returns the best score known to the session.
func (a *App) HighScore() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session.HighScore()
}

// DiscoverPlugins scans the plugin directory and loads available hooks.
func (a *App) DiscoverPlugins() error {
	if err := a.pluginMgr.Discover(); err != nil {
		return err
	}
	for _, p := range a.pluginMgr.List() {
		log.Printf("Loaded plugin %s %s (events: %v)", p.Manifest.Name, p.Manifest.Version, p.Manifest.Events)
	}
	return nil
}

// StartHooks delivers game events to plugins until ctx is canceled.
func (a *App) StartHooks(ctx context.Context) {
	a.hooks.Start(ctx)
}

// WaitHooks blocks until hook delivery has stopped after its context ended.
func (a *App) WaitHooks() {
	a.hooks.Wait()
}
