package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Run is one finished game.
type Run struct {
	ID        string        `json:"id"`
	Score     float64       `json:"score"`
	Duration  time.Duration `json:"duration"`
	Jumps     int           `json:"jumps"`
	NewRecord bool          `json:"new_record"`
	StartedAt time.Time     `json:"started_at"`
	EndedAt   time.Time     `json:"ended_at"`
}

// RunRepository records and lists finished games.
type RunRepository struct {
	db *sql.DB
}

// Runs returns the run repository for this store.
func (s *Store) Runs() *RunRepository {
	return &RunRepository{db: s.db}
}

// Create inserts a run. An empty ID is filled with a new UUID and a zero
// EndedAt with the current time.
func (r *RunRepository) Create(run *Run) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.EndedAt.IsZero() {
		run.EndedAt = time.Now()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = run.EndedAt.Add(-run.Duration)
	}

	_, err := r.db.Exec(
		`INSERT INTO runs (id, score, duration_ms, jumps, new_record, started_at, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Score, run.Duration.Milliseconds(), run.Jumps, run.NewRecord, run.StartedAt, run.EndedAt,
	)
	return err
}

// GetByID retrieves a run by its ID.
func (r *RunRepository) GetByID(id string) (*Run, error) {
	row := r.db.QueryRow(
		`SELECT id, score, duration_ms, jumps, new_record, started_at, ended_at
		 FROM runs WHERE id = ?`,
		id,
	)

	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return run, nil
}

// List returns the most recent runs, newest first. A non-positive limit
// returns every run.
func (r *RunRepository) List(limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := r.db.Query(
		`SELECT id, score, duration_ms, jumps, new_record, started_at, ended_at
		 FROM runs ORDER BY ended_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return runs, nil
}

// Count returns the number of recorded runs.
func (r *RunRepository) Count() (int, error) {
	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&n)
	return n, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	run := &Run{}
	var durationMs int64
	var newRecord int

	err := row.Scan(&run.ID, &run.Score, &durationMs, &run.Jumps, &newRecord, &run.StartedAt, &run.EndedAt)
	if err != nil {
		return nil, err
	}

	run.Duration = time.Duration(durationMs) * time.Millisecond
	run.NewRecord = newRecord != 0
	return run, nil
}
