package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
)

// HighScoreKey is the preference key holding the best score.
const HighScoreKey = "hiscore"

// PreferenceRepository is a small key-value store on the settings table.
type PreferenceRepository struct {
	db *sql.DB
}

// Preferences returns the preference repository for this store.
func (s *Store) Preferences() *PreferenceRepository {
	return &PreferenceRepository{db: s.db}
}

// Get returns the raw value for key, or ErrNotFound.
func (r *PreferenceRepository) Get(key string) (string, error) {
	var value string
	err := r.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

// Set stores value under key, replacing any previous value.
func (r *PreferenceRepository) Set(key, value string) error {
	_, err := r.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

// Float returns the value for key parsed as a float, or def when the key is unset.
func (r *PreferenceRepository) Float(key string, def float64) (float64, error) {
	raw, err := r.Get(key)
	if errors.Is(err, ErrNotFound) {
		return def, nil
	}
	if err != nil {
		return def, err
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def, fmt.Errorf("preference %s: %w", key, err)
	}
	return v, nil
}

// SetFloat stores a float value under key.
func (r *PreferenceRepository) SetFloat(key string, v float64) error {
	return r.Set(key, strconv.FormatFloat(v, 'g', -1, 64))
}

// HighScores adapts the store to the game's high score interface.
type HighScores struct {
	prefs *PreferenceRepository
}

// HighScores returns the high score view of the preferences.
func (s *Store) HighScores() *HighScores {
	return &HighScores{prefs: s.Preferences()}
}

// HighScore returns the stored best score, zero when none was saved.
func (h *HighScores) HighScore() (float64, error) {
	return h.prefs.Float(HighScoreKey, 0)
}

// SetHighScore stores a new best score.
func (h *HighScores) SetHighScore(score float64) error {
	return h.prefs.SetFloat(HighScoreKey, score)
}
