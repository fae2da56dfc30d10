package gesture

import "log"

// Jumper is anything that accepts a jump request.
type Jumper interface {
	RequestJump()
}

// TriggerState is the state of a jump Trigger.
type TriggerState int

const (
	// TriggerIdle waits for the hand to close.
	TriggerIdle TriggerState = iota
	// TriggerJumpRequested has fired and waits for the hand to reopen.
	TriggerJumpRequested
)

func (s TriggerState) String() string {
	if s == TriggerJumpRequested {
		return "jump-requested"
	}
	return "idle"
}

// Trigger converts a sustained "hand closed" signal into one jump per fist.
// Holding the fist does not jump again; the hand has to open first.
type Trigger struct {
	locate func() Jumper
	state  TriggerState
	fired  int
}

// NewTrigger creates a Trigger. locate is called each time the trigger fires
// to find the player; it may return nil when no player is active.
func NewTrigger(locate func() Jumper) *Trigger {
	return &Trigger{locate: locate}
}

// Update feeds one frame's hand state and reports whether a jump was requested.
func (t *Trigger) Update(closed bool) bool {
	switch {
	case closed && t.state == TriggerIdle:
		t.state = TriggerJumpRequested
		t.fired++
		t.requestJump()
		return true
	case !closed && t.state == TriggerJumpRequested:
		t.state = TriggerIdle
	}
	return false
}

func (t *Trigger) requestJump() {
	var player Jumper
	if t.locate != nil {
		player = t.locate()
	}
	if player == nil {
		log.Println("Jump requested but no player is active")
		return
	}
	player.RequestJump()
}

// State returns the current trigger state.
func (t *Trigger) State() TriggerState {
	return t.state
}

// Fired returns how many jumps the trigger has requested since the last Reset.
func (t *Trigger) Fired() int {
	return t.fired
}

// Reset returns the trigger to idle and clears the jump count.
func (t *Trigger) Reset() {
	t.state = TriggerIdle
	t.fired = 0
}
