package game

import (
	"fmt"
	"log"
	"math"
	"time"
)

// State is the lifecycle state of a Session.
type State int

const (
	StateNotStarted State = iota
	StateRunning
	StateOver
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateOver:
		return "over"
	default:
		return "not-started"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(text []byte) error {
	switch string(text) {
	case "running":
		*s = StateRunning
	case "over":
		*s = StateOver
	case "not-started":
		*s = StateNotStarted
	default:
		return fmt.Errorf("unknown game state %q", text)
	}
	return nil
}

// HighScoreStore persists the best score.
type HighScoreStore interface {
	HighScore() (float64, error)
	SetHighScore(score float64) error
}

// SessionConfig tunes scoring. The zero value is not useful; start from
// DefaultSessionConfig.
type SessionConfig struct {
	InitialSpeed     float64
	SpeedIncrease    float64
	FeedbackDuration float64
	Milestones       []int
}

// DefaultSessionConfig returns the standard scoring rules.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		InitialSpeed:     InitialSpeed,
		SpeedIncrease:    SpeedIncrease,
		FeedbackDuration: FeedbackDuration,
		Milestones:       Milestones,
	}
}

// SessionDeps are the collaborators a Session drives. Nil entries get
// defaults, except HighScores and Events which are optional.
type SessionDeps struct {
	Dino       *Dino
	Spawner    *Spawner
	Timer      *Timer
	HighScores HighScoreStore
	Events     Listener
}

// Feedback is a milestone message currently on screen.
type Feedback struct {
	Milestone int     `json:"milestone"`
	Remaining float64 `json:"remaining"`
}

// Session runs one player's games: it scrolls the world, keeps score, ends
// the game on collision and maintains the high score.
type Session struct {
	cfg       SessionConfig
	dino      *Dino
	spawner   *Spawner
	timer     *Timer
	scores    HighScoreStore
	events    Listener
	state     State
	score     float64
	speed     float64
	highScore float64
	startedAt time.Time
	feedback  []Feedback
	now       func() time.Time
}

// NewSession creates a session in the not-started state and loads the
// stored high score.
func NewSession(cfg SessionConfig, deps SessionDeps) *Session {
	s := &Session{
		cfg:     cfg,
		dino:    deps.Dino,
		spawner: deps.Spawner,
		timer:   deps.Timer,
		scores:  deps.HighScores,
		events:  deps.Events,
		now:     time.Now,
	}
	if s.dino == nil {
		s.dino = NewDino()
	}
	if s.spawner == nil {
		s.spawner = NewSpawner(nil)
	}
	if s.timer == nil {
		s.timer = NewTimer()
	}

	if s.scores != nil {
		hs, err := s.scores.HighScore()
		if err != nil {
			log.Printf("Failed to load high score: %v", err)
		}
		s.highScore = hs
	}

	// The zero-score greeting is up before the first game.
	s.showFeedback(0)

	return s
}

// NewGame clears the field and starts a new game.
func (s *Session) NewGame() {
	s.spawner.Reset()
	s.dino.Reset()
	s.timer.Restart()

	s.score = 0
	s.speed = s.cfg.InitialSpeed
	s.state = StateRunning
	s.startedAt = s.now()
	s.feedback = s.feedback[:0]
	s.showFeedback(0)

	log.Println("New game started")
	s.emit(Event{Kind: EventGameStarted})
}

// Retry starts over after a game ended.
func (s *Session) Retry() {
	s.NewGame()
}

// Update advances a running game by dt seconds. It does nothing unless the
// game is running.
func (s *Session) Update(dt float64) {
	s.tickFeedback(dt)

	if s.state != StateRunning || dt <= 0 {
		return
	}

	s.timer.Advance(dt)
	s.speed += s.cfg.SpeedIncrease * dt

	before := int(math.Floor(s.score))
	s.score += s.speed * dt
	after := int(math.Floor(s.score))
	s.checkMilestones(before, after)

	s.dino.Step(dt)
	s.spawner.Step(dt, s.speed)

	if s.spawner.Collides(s.dino.Bounds()) {
		s.GameOver()
	}
}

// GameOver ends the running game and records a new high score if one was set.
func (s *Session) GameOver() {
	if s.state != StateRunning {
		return
	}

	s.speed = 0
	s.state = StateOver
	s.timer.Stop()

	newRecord := s.updateHighScore()

	log.Printf("Game over: score %d (high score %d)", s.IntScore(), int(math.Floor(s.highScore)))
	s.emit(Event{Kind: EventGameOver, Jumps: s.dino.Jumps(), Duration: s.timer.Elapsed(), NewRecord: newRecord})
	if newRecord {
		s.emit(Event{Kind: EventHighScore, Jumps: s.dino.Jumps(), Duration: s.timer.Elapsed(), NewRecord: true})
	}
}

// updateHighScore compares the score with the stored best and writes it
// back only when it was beaten.
func (s *Session) updateHighScore() bool {
	stored := s.highScore
	if s.scores != nil {
		hs, err := s.scores.HighScore()
		if err != nil {
			log.Printf("Failed to read high score: %v", err)
		} else {
			stored = hs
		}
	}

	if s.score <= stored {
		s.highScore = stored
		return false
	}

	s.highScore = s.score
	if s.scores != nil {
		if err := s.scores.SetHighScore(s.score); err != nil {
			log.Printf("Failed to save high score: %v", err)
		}
	}
	return true
}

func (s *Session) checkMilestones(before, after int) {
	for _, m := range s.cfg.Milestones {
		if m > before && m <= after {
			s.showFeedback(m)
			s.emit(Event{Kind: EventMilestone, Milestone: m})
		}
	}
}

func (s *Session) showFeedback(milestone int) {
	for i := range s.feedback {
		if s.feedback[i].Milestone == milestone {
			s.feedback[i].Remaining = s.cfg.FeedbackDuration
			return
		}
	}
	s.feedback = append(s.feedback, Feedback{Milestone: milestone, Remaining: s.cfg.FeedbackDuration})
}

func (s *Session) tickFeedback(dt float64) {
	kept := s.feedback[:0]
	for _, f := range s.feedback {
		f.Remaining -= dt
		if f.Remaining > 0 {
			kept = append(kept, f)
		}
	}
	s.feedback = kept
}

func (s *Session) emit(e Event) {
	if s.events == nil {
		return
	}
	e.Score = s.score
	e.HighScore = s.highScore
	e.StartedAt = s.startedAt
	e.At = s.now()
	s.events.HandleEvent(e)
}

// State returns the lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Score returns the current score.
func (s *Session) Score() float64 {
	return s.score
}

// IntScore returns the score rounded down.
func (s *Session) IntScore() int {
	return int(math.Floor(s.score))
}

// Speed returns the current scroll speed.
func (s *Session) Speed() float64 {
	return s.speed
}

// HighScore returns the best score known to the session.
func (s *Session) HighScore() float64 {
	return s.highScore
}

// Dino returns the player character.
func (s *Session) Dino() *Dino {
	return s.dino
}

// Player returns the dino while a game is running, nil otherwise.
func (s *Session) Player() *Dino {
	if s.state != StateRunning {
		return nil
	}
	return s.dino
}

// Timer returns the play timer.
func (s *Session) Timer() *Timer {
	return s.timer
}

// Snapshot is a read-only view of a session for display.
type Snapshot struct {
	State         State      `json:"state"`
	Score         int        `json:"score"`
	ScoreText     string     `json:"score_text"`
	HighScore     int        `json:"high_score"`
	HighScoreText string     `json:"high_score_text"`
	Speed         float64    `json:"speed"`
	Timer         string     `json:"timer"`
	DinoY         float64    `json:"dino_y"`
	Grounded      bool       `json:"grounded"`
	Jumps         int        `json:"jumps"`
	Obstacles     []Obstacle `json:"obstacles"`
	Feedback      []Feedback `json:"feedback"`
}

// Snapshot captures the session for rendering or serialization.
func (s *Session) Snapshot() Snapshot {
	hs := int(math.Floor(s.highScore))
	fb := make([]Feedback, len(s.feedback))
	copy(fb, s.feedback)

	return Snapshot{
		State:         s.state,
		Score:         s.IntScore(),
		ScoreText:     fmt.Sprintf("%05d", s.IntScore()),
		HighScore:     hs,
		HighScoreText: fmt.Sprintf("%05d", hs),
		Speed:         s.speed,
		Timer:         s.timer.String(),
		DinoY:         s.dino.Y(),
		Grounded:      s.dino.Grounded(),
		Jumps:         s.dino.Jumps(),
		Obstacles:     s.spawner.Obstacles(),
		Feedback:      fb,
	}
}
