package server

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ayusman/dinojump/internal/app"
	"github.com/ayusman/dinojump/internal/capture"
	"github.com/ayusman/dinojump/internal/detector"
	"github.com/ayusman/dinojump/internal/game"
	"github.com/ayusman/dinojump/internal/store"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	app   *app.App
	store *store.Store
	ts    *httptest.Server
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	a := app.New(app.Config{
		Store:    s,
		Camera:   capture.NewMockCamera(nil, false),
		Detector: detector.NewMockDetector(),
		Rand:     rand.New(rand.NewPCG(7, 11)),
	})

	srv := New(Config{Store: s, App: a})
	t.Cleanup(srv.Close)

	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	return &testEnv{app: a, store: s, ts: ts}
}

func (e *testEnv) post(t *testing.T, path, body string) *http.Response {
	t.Helper()
	resp, err := e.ts.Client().Post(e.ts.URL+path, "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	return resp
}

func (e *testEnv) snapshot(t *testing.T) app.Snapshot {
	t.Helper()
	resp, err := e.ts.Client().Get(e.ts.URL + "/api/session")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var snap app.Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	return snap
}

// playUntilOver ticks the game without jumping until it ends.
func (e *testEnv) playUntilOver(t *testing.T) {
	t.Helper()
	for i := 0; i < 60*app.DefaultTPS && e.app.Snapshot().State == game.StateRunning; i++ {
		e.app.Tick(1.0 / app.DefaultTPS)
	}
	require.Equal(t, game.StateOver, e.app.Snapshot().State)
}

func TestAPI_SessionWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	env := newTestEnv(t)

	snap := env.snapshot(t)
	assert.Equal(t, game.StateNotStarted, snap.State)
	assert.True(t, snap.Gestures.Enabled)

	// Jumping before the game starts is a conflict.
	resp := env.post(t, "/api/session/jump", "")
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = env.post(t, "/api/session/start", "")
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, game.StateRunning, env.snapshot(t).State)

	resp = env.post(t, "/api/session/jump", "")
	var jumped struct {
		Accepted bool `json:"accepted"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&jumped))
	resp.Body.Close()
	assert.True(t, jumped.Accepted)

	env.app.Tick(1.0 / app.DefaultTPS)
	snap = env.snapshot(t)
	assert.Equal(t, 1, snap.Jumps)
	assert.Equal(t, "00:00", snap.Timer)

	resp = env.post(t, "/api/session/gestures", `{"enabled": false}`)
	var status app.GestureStatus
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	resp.Body.Close()
	assert.False(t, status.Enabled)

	resp = env.post(t, "/api/session/gestures", `{}`)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.post(t, "/api/session/bogus", "")
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	env.playUntilOver(t)

	// Start after game over is a retry.
	resp = env.post(t, "/api/session/start", "")
	resp.Body.Close()
	snap = env.snapshot(t)
	assert.Equal(t, game.StateRunning, snap.State)
	assert.Equal(t, "00000", snap.ScoreText)
	assert.Greater(t, snap.HighScore, 0)
}

func TestAPI_Scores(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	env := newTestEnv(t)

	for i := 0; i < 3; i++ {
		env.app.NewGame()
		env.playUntilOver(t)
	}

	resp, err := env.ts.Client().Get(env.ts.URL + "/api/scores?limit=2")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var scores struct {
		HighScore     int    `json:"high_score"`
		HighScoreText string `json:"high_score_text"`
		TotalRuns     int    `json:"total_runs"`
		Runs          []struct {
			ID        string `json:"id"`
			Score     int    `json:"score"`
			NewRecord bool   `json:"new_record"`
		} `json:"runs"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&scores))
	resp.Body.Close()

	assert.Equal(t, 3, scores.TotalRuns)
	assert.Len(t, scores.Runs, 2)
	assert.Greater(t, scores.HighScore, 0)
	assert.Len(t, scores.HighScoreText, 5)
	for _, run := range scores.Runs {
		assert.NotEmpty(t, run.ID)
		assert.LessOrEqual(t, run.Score, scores.HighScore)
	}

	resp, err = env.ts.Client().Get(env.ts.URL + "/api/scores?limit=abc")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = env.ts.Client().Get(env.ts.URL + "/api/scores/chart")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/html"))

	var body bytes.Buffer
	_, err = body.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, body.String(), "Best so far")
}

func TestWebSocket_LandmarksDriveJump(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	env := newTestEnv(t)
	env.app.NewGame()

	wsURL := "ws" + strings.TrimPrefix(env.ts.URL, "http") + "/api/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	msg := InboundMessage{
		Type:  MessageLandmarks,
		Hands: []detector.HandLandmarks{detector.FistLandmarks()},
	}
	require.NoError(t, conn.WriteJSON(msg))

	deadline := time.Now().Add(2 * time.Second)
	for env.app.Feed().Pushed() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	require.NotZero(t, env.app.Feed().Pushed(), "landmarks never reached the feed")

	env.app.Tick(1.0 / app.DefaultTPS)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	for {
		var out OutboundMessage
		require.NoError(t, conn.ReadJSON(&out))
		assert.Equal(t, MessageSnapshot, out.Type)
		if out.Snapshot.Jumps == 1 {
			assert.True(t, out.Snapshot.Gestures.Closed)
			assert.Equal(t, 1, out.Snapshot.Gestures.Hands)
			break
		}
	}
}

func TestStream_ServesPublishedFrames(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	env := newTestEnv(t)

	frame := []byte{0xff, 0xd8, 0xff, 0xd9}
	env.app.Preview().Set(frame)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, env.ts.URL+"/api/stream", nil)
	require.NoError(t, err)
	resp, err := env.ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "multipart/x-mixed-replace; boundary=frame", resp.Header.Get("Content-Type"))

	r := bufio.NewReader(resp.Body)
	line, err := r.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "--frame\r\n", line)

	line, err = r.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "Content-Type: image/jpeg\r\n", line)

	assert.True(t, env.app.Preview().Watched(), "stream should register as a viewer")
}
