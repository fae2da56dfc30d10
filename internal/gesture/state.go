package gesture

import (
	"log"
	"time"

	"github.com/ayusman/dinojump/internal/detector"
)

// State is the last known hand state.
type State struct {
	Closed  bool
	Updated time.Time
	Frames  uint64 // frames that produced a classification
}

// Tracker feeds tracker results through a Classifier and remembers the last
// hand state. Frames without a usable hand leave the state untouched.
type Tracker struct {
	classifier *Classifier
	state      State
	verbose    bool
}

// NewTracker creates a Tracker around the given classifier.
func NewTracker(c *Classifier) *Tracker {
	return &Tracker{classifier: c}
}

// SetVerbose enables per-finger debug logging.
func (t *Tracker) SetVerbose(v bool) {
	t.verbose = v
}

// Classifier returns the classifier used by the tracker.
func (t *Tracker) Classifier() *Classifier {
	return t.classifier
}

// Observe classifies the first hand of a frame. It returns false when the
// frame was skipped (no hand, or an incomplete hand).
func (t *Tracker) Observe(hands []detector.HandLandmarks) (State, bool) {
	if len(hands) == 0 {
		return t.state, false
	}

	c, ok := t.classifier.Classify(&hands[0])
	if !ok {
		return t.state, false
	}

	if t.verbose {
		for _, f := range c.Fingers {
			log.Printf("finger %s distance %.4f closed=%t", f.Finger, f.Distance, f.Closed)
		}
	}
	if c.Closed != t.state.Closed {
		log.Printf("Hand %s", handWord(c.Closed))
	}

	t.state.Closed = c.Closed
	t.state.Updated = time.Now()
	t.state.Frames++

	return t.state, true
}

// State returns the last known hand state.
func (t *Tracker) State() State {
	return t.state
}

// Reset forgets the last hand state.
func (t *Tracker) Reset() {
	t.state = State{}
}

func handWord(closed bool) string {
	if closed {
		return "closed"
	}
	return "open"
}
