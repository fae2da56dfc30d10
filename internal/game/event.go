package game

import "time"

// EventKind names a session event.
type EventKind string

const (
	EventGameStarted EventKind = "game_started"
	EventMilestone   EventKind = "milestone"
	EventGameOver    EventKind = "game_over"
	EventHighScore   EventKind = "high_score"
)

// Event is emitted by a Session when something noteworthy happens.
type Event struct {
	Kind      EventKind     `json:"kind"`
	Score     float64       `json:"score"`
	HighScore float64       `json:"high_score"`
	Milestone int           `json:"milestone,omitempty"`
	Jumps     int           `json:"jumps,omitempty"`
	Duration  time.Duration `json:"duration,omitempty"`
	NewRecord bool          `json:"new_record,omitempty"`
	StartedAt time.Time     `json:"started_at"`
	At        time.Time     `json:"at"`
}

// Listener receives session events. HandleEvent is called on the game loop
// and must not block.
type Listener interface {
	HandleEvent(Event)
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(Event)

// HandleEvent calls f(e).
func (f ListenerFunc) HandleEvent(e Event) {
	f(e)
}

// Listeners fans an event out to several listeners in order.
type Listeners []Listener

// HandleEvent implements Listener.
func (ls Listeners) HandleEvent(e Event) {
	for _, l := range ls {
		if l != nil {
			l.HandleEvent(e)
		}
	}
}
