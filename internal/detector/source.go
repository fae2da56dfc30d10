package detector

import (
	"sync/atomic"
	"time"
)

// Result is one processed frame from the hand tracker.
type Result struct {
	Seq   uint64
	Hands []HandLandmarks
	At    time.Time
}

// Source delivers tracker results to the game loop.
type Source interface {
	// Poll returns the newest unread result, or false when no new result
	// has arrived since the last call. It never blocks.
	Poll() (Result, bool)
}

// Feed is a latest-wins Source. Producers push from any goroutine; an unread
// result is replaced by a newer one rather than queued.
type Feed struct {
	slot chan Result
	seq  atomic.Uint64
}

// NewFeed creates an empty Feed.
func NewFeed() *Feed {
	return &Feed{slot: make(chan Result, 1)}
}

// Push publishes the hands seen in one frame and returns the result's
// sequence number. It never blocks.
func (f *Feed) Push(hands []HandLandmarks) uint64 {
	r := Result{
		Seq:   f.seq.Add(1),
		Hands: hands,
		At:    time.Now(),
	}

	for {
		select {
		case f.slot <- r:
			return r.Seq
		default:
		}
		// Slot full: drop the stale result and retry.
		select {
		case <-f.slot:
		default:
		}
	}
}

// Poll implements Source.
func (f *Feed) Poll() (Result, bool) {
	select {
	case r := <-f.slot:
		return r, true
	default:
		return Result{}, false
	}
}

// Pushed returns how many results have been pushed so far.
func (f *Feed) Pushed() uint64 {
	return f.seq.Load()
}
