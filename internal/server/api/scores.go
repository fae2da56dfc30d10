package api

import (
	"bytes"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/ayusman/dinojump/internal/store"
)

const (
	defaultRunLimit = 20
	maxRunLimit     = 500
)

// ScoresHandler serves the high score and the run history.
type ScoresHandler struct {
	store *store.Store
}

// NewScoresHandler creates a new ScoresHandler with the given store.
func NewScoresHandler(s *store.Store) *ScoresHandler {
	return &ScoresHandler{store: s}
}

// ServeHTTP routes /api/scores and /api/scores/chart.
func (h *ScoresHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/scores"), "/")
	switch path {
	case "":
		h.list(w, limit)
	case "chart":
		h.chart(w, limit)
	default:
		writeError(w, http.StatusNotFound, "Not found")
	}
}

type runResponse struct {
	ID         string  `json:"id"`
	Score      int     `json:"score"`
	DurationMs int64   `json:"duration_ms"`
	Jumps      int     `json:"jumps"`
	NewRecord  bool    `json:"new_record"`
	Speed      float64 `json:"avg_speed"`
	EndedAt    string  `json:"ended_at"`
}

type scoresResponse struct {
	HighScore     int           `json:"high_score"`
	HighScoreText string        `json:"high_score_text"`
	TotalRuns     int           `json:"total_runs"`
	Runs          []runResponse `json:"runs"`
}

func toRunResponse(run *store.Run) runResponse {
	var speed float64
	if secs := run.Duration.Seconds(); secs > 0 {
		speed = run.Score / secs
	}
	return runResponse{
		ID:         run.ID,
		Score:      int(math.Floor(run.Score)),
		DurationMs: run.Duration.Milliseconds(),
		Jumps:      run.Jumps,
		NewRecord:  run.NewRecord,
		Speed:      speed,
		EndedAt:    run.EndedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// list handles GET /api/scores and returns the high score and recent runs.
func (h *ScoresHandler) list(w http.ResponseWriter, limit int) {
	hs, err := h.store.HighScores().HighScore()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to read high score")
		return
	}

	total, err := h.store.Runs().Count()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to count runs")
		return
	}

	runs, err := h.store.Runs().List(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list runs")
		return
	}

	best := int(math.Floor(hs))
	response := scoresResponse{
		HighScore:     best,
		HighScoreText: fmt.Sprintf("%05d", best),
		TotalRuns:     total,
		Runs:          make([]runResponse, 0, len(runs)),
	}
	for _, run := range runs {
		response.Runs = append(response.Runs, toRunResponse(run))
	}

	writeJSON(w, http.StatusOK, response)
}

// chart handles GET /api/scores/chart and renders recent runs as an HTML
// line chart, oldest on the left.
func (h *ScoresHandler) chart(w http.ResponseWriter, limit int) {
	runs, err := h.store.Runs().List(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list runs")
		return
	}

	labels, scores, best := chartSeries(runs)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Dino Jump Scores", Width: "900px", Height: "480px"}),
		charts.WithTitleOpts(opts.Title{Title: "Recent runs", Subtitle: fmt.Sprintf("runs=%d", len(runs))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Score", Min: 0}),
	)
	line.SetXAxis(labels).
		AddSeries("Score", scores).
		AddSeries("Best so far", best, charts.WithLineChartOpts(opts.LineChart{Step: "end"}))

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render chart: %v", err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// chartSeries turns newest-first runs into chronological chart data.
func chartSeries(runs []*store.Run) ([]string, []opts.LineData, []opts.LineData) {
	labels := make([]string, 0, len(runs))
	scores := make([]opts.LineData, 0, len(runs))
	best := make([]opts.LineData, 0, len(runs))

	var top int
	for i := len(runs) - 1; i >= 0; i-- {
		run := runs[i]
		score := int(math.Floor(run.Score))
		if score > top {
			top = score
		}
		labels = append(labels, run.EndedAt.Format("01-02 15:04"))
		scores = append(scores, opts.LineData{Value: score})
		best = append(best, opts.LineData{Value: top})
	}
	return labels, scores, best
}

func parseLimit(raw string) (int, error) {
	if raw == "" {
		return defaultRunLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("limit must be a positive integer")
	}
	if n > maxRunLimit {
		n = maxRunLimit
	}
	return n, nil
}
