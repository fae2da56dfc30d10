// Package gesture turns hand landmarks into game input: an open/closed hand
// classification and an edge-triggered jump request.
package gesture

import (
	"fmt"
	"strings"

	"github.com/ayusman/dinojump/internal/detector"
)

// DefaultClosedThreshold is the tip-to-base distance, in normalized image
// units, at or below which a finger counts as closed.
const DefaultClosedThreshold = 0.05

// Aggregation decides how per-finger readings combine into a hand state.
type Aggregation int

const (
	// AggregateAll reports a closed hand only when every finger is closed.
	AggregateAll Aggregation = iota
	// AggregateAny reports a closed hand when at least one finger is closed.
	AggregateAny
)

// ParseAggregation parses "all" or "any".
func ParseAggregation(s string) (Aggregation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return AggregateAll, nil
	case "any":
		return AggregateAny, nil
	default:
		return AggregateAll, fmt.Errorf("unknown aggregation %q", s)
	}
}

func (a Aggregation) String() string {
	if a == AggregateAny {
		return "any"
	}
	return "all"
}

// FingerReading is the measurement for a single finger.
type FingerReading struct {
	Finger   detector.Finger
	Distance float64
	Closed   bool
}

// Classification is the result of classifying one hand.
type Classification struct {
	Fingers [detector.NumFingers]FingerReading
	Closed  bool
}

// ClosedCount returns how many fingers were classified closed.
func (c Classification) ClosedCount() int {
	n := 0
	for _, f := range c.Fingers {
		if f.Closed {
			n++
		}
	}
	return n
}

// Classifier measures how far each fingertip is from its base joint and
// decides whether the hand is closed. It keeps no state between calls.
type Classifier struct {
	threshold   float64
	aggregation Aggregation
}

// NewClassifier creates a Classifier. A non-positive threshold selects
// DefaultClosedThreshold.
func NewClassifier(threshold float64, aggregation Aggregation) *Classifier {
	if threshold <= 0 {
		threshold = DefaultClosedThreshold
	}
	return &Classifier{
		threshold:   threshold,
		aggregation: aggregation,
	}
}

// Threshold returns the closed-finger distance threshold.
func (c *Classifier) Threshold() float64 {
	return c.threshold
}

// Aggregation returns the aggregation rule in use.
func (c *Classifier) Aggregation() Aggregation {
	return c.aggregation
}

// Classify classifies a single hand. It returns false when the hand is nil
// or has fewer than detector.NumLandmarks points.
func (c *Classifier) Classify(hand *detector.HandLandmarks) (Classification, bool) {
	if !hand.Complete() {
		return Classification{}, false
	}

	var result Classification
	for i, f := range detector.Fingers {
		d := hand.FingerSpan(f)
		result.Fingers[i] = FingerReading{
			Finger:   f,
			Distance: d,
			Closed:   d <= c.threshold,
		}
	}

	closed := result.ClosedCount()
	switch c.aggregation {
	case AggregateAny:
		result.Closed = closed > 0
	default:
		result.Closed = closed == detector.NumFingers
	}

	return result, true
}
