package game

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memHighScores struct {
	value  float64
	writes int
	err    error
}

func (m *memHighScores) HighScore() (float64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.value, nil
}

func (m *memHighScores) SetHighScore(v float64) error {
	if m.err != nil {
		return m.err
	}
	m.value = v
	m.writes++
	return nil
}

type recorder struct {
	events []Event
}

func (r *recorder) HandleEvent(e Event) {
	r.events = append(r.events, e)
}

func (r *recorder) kinds() []EventKind {
	var out []EventKind
	for _, e := range r.events {
		out = append(out, e.Kind)
	}
	return out
}

func newTestSession(t *testing.T, stored float64) (*Session, *memHighScores, *recorder) {
	t.Helper()
	scores := &memHighScores{value: stored}
	rec := &recorder{}
	s := NewSession(DefaultSessionConfig(), SessionDeps{
		Spawner:    NewSpawner(rand.New(rand.NewPCG(7, 7))),
		HighScores: scores,
		Events:     rec,
	})
	return s, scores, rec
}

func TestSession_HighScoreBeaten(t *testing.T) {
	s, scores, rec := newTestSession(t, 100)
	require.Equal(t, 100.0, s.HighScore(), "high score should load at construction")

	s.NewGame()
	s.score = 120
	s.GameOver()

	assert.Equal(t, 120.0, scores.value)
	assert.Equal(t, 1, scores.writes)
	assert.Equal(t, 120.0, s.HighScore())
	assert.Equal(t, StateOver, s.State())

	want := []EventKind{EventGameStarted, EventGameOver, EventHighScore}
	if diff := cmp.Diff(want, rec.kinds()); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestSession_HighScoreNotBeaten(t *testing.T) {
	s, scores, rec := newTestSession(t, 100)

	s.NewGame()
	s.score = 80
	s.GameOver()

	assert.Equal(t, 100.0, scores.value)
	assert.Zero(t, scores.writes, "store must not be written when the record stands")
	assert.Equal(t, 100.0, s.HighScore())

	want := []EventKind{EventGameStarted, EventGameOver}
	if diff := cmp.Diff(want, rec.kinds()); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestSession_HighScoreStoreFailure(t *testing.T) {
	scores := &memHighScores{err: errors.New("disk full")}
	s := NewSession(DefaultSessionConfig(), SessionDeps{HighScores: scores})

	s.NewGame()
	s.score = 50
	s.GameOver()

	assert.Equal(t, StateOver, s.State(), "store failure must not block game over")
	assert.Equal(t, 50.0, s.HighScore())
}

func TestSession_UpdateOnlyWhileRunning(t *testing.T) {
	s, _, _ := newTestSession(t, 0)

	s.Update(1)
	assert.Equal(t, StateNotStarted, s.State())
	assert.Zero(t, s.Score())

	s.NewGame()
	s.GameOver()
	s.Update(1)
	assert.Zero(t, s.Score())
	assert.Zero(t, s.Speed())
}

func TestSession_ScoreIsSpeedWeighted(t *testing.T) {
	s, _, _ := newTestSession(t, 0)
	s.NewGame()
	require.Equal(t, InitialSpeed, s.Speed())

	s.Update(0.5)

	wantSpeed := InitialSpeed + SpeedIncrease*0.5
	assert.InDelta(t, wantSpeed, s.Speed(), 1e-12)
	assert.InDelta(t, wantSpeed*0.5, s.Score(), 1e-12)
	assert.Equal(t, "00:00", s.Timer().String())
	assert.InDelta(t, 0.5, s.Timer().Elapsed().Seconds(), 1e-9)
}

func TestSession_Milestones(t *testing.T) {
	s, _, rec := newTestSession(t, 0)
	s.NewGame()

	snap := s.Snapshot()
	require.Len(t, snap.Feedback, 1)
	assert.Equal(t, 0, snap.Feedback[0].Milestone)

	s.score = 19.99
	s.Update(dt)

	var milestones []int
	for _, e := range rec.events {
		if e.Kind == EventMilestone {
			milestones = append(milestones, e.Milestone)
		}
	}
	assert.Equal(t, []int{20}, milestones)

	var shown []int
	for _, f := range s.Snapshot().Feedback {
		shown = append(shown, f.Milestone)
	}
	assert.Contains(t, shown, 20)

	// Feedback disappears after its display time.
	s.tickFeedback(FeedbackDuration)
	assert.Empty(t, s.Snapshot().Feedback)
}

func TestSession_CollisionEndsGame(t *testing.T) {
	s, _, rec := newTestSession(t, 0)
	s.NewGame()

	s.spawner.obstacles = []Obstacle{{ID: 99, X: DinoX, Width: 1, Height: 1}}
	s.Update(dt)

	assert.Equal(t, StateOver, s.State())
	assert.Zero(t, s.Speed())
	assert.False(t, s.Timer().Running())
	assert.Contains(t, rec.kinds(), EventGameOver)
}

func TestSession_JumpClearsObstacle(t *testing.T) {
	s, _, _ := newTestSession(t, 0)
	s.NewGame()

	s.dino.RequestJump()
	s.Update(dt)
	// Put a low obstacle right under the airborne dino.
	for i := 0; i < 10; i++ {
		s.Update(dt)
	}
	s.spawner.obstacles = []Obstacle{{ID: 1, X: DinoX, Width: 0.5, Height: 0.3}}
	s.Update(dt)

	assert.Equal(t, StateRunning, s.State())
}

func TestSession_PlayerOnlyWhileRunning(t *testing.T) {
	s, _, _ := newTestSession(t, 0)
	assert.Nil(t, s.Player())

	s.NewGame()
	assert.NotNil(t, s.Player())

	s.GameOver()
	assert.Nil(t, s.Player())
}

func TestSession_RetryResetsGame(t *testing.T) {
	s, _, _ := newTestSession(t, 0)
	s.NewGame()
	s.score = 42
	s.spawner.obstacles = []Obstacle{{ID: 1, X: 10, Width: 1, Height: 1}}
	s.GameOver()

	s.Retry()

	assert.Equal(t, StateRunning, s.State())
	assert.Zero(t, s.Score())
	assert.Equal(t, InitialSpeed, s.Speed())
	assert.Empty(t, s.Snapshot().Obstacles)
	assert.Equal(t, 42.0, s.HighScore())
}

func TestSession_Snapshot(t *testing.T) {
	s, _, _ := newTestSession(t, 1234.9)
	s.NewGame()
	s.score = 42.7

	snap := s.Snapshot()

	assert.Equal(t, StateRunning, snap.State)
	assert.Equal(t, 42, snap.Score)
	assert.Equal(t, "00042", snap.ScoreText)
	assert.Equal(t, 1234, snap.HighScore)
	assert.Equal(t, "01234", snap.HighScoreText)
	assert.True(t, snap.Grounded)

	text, err := snap.State.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "running", string(text))
}
