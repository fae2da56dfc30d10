package game

import (
	"fmt"
	"time"
)

// Timer measures play time. It only advances when told to, one tick at a time.
type Timer struct {
	elapsed float64
	running bool
}

// NewTimer creates a stopped timer at zero.
func NewTimer() *Timer {
	return &Timer{}
}

// Restart resets the timer to zero and starts it.
func (t *Timer) Restart() {
	t.elapsed = 0
	t.running = true
}

// Stop freezes the timer.
func (t *Timer) Stop() {
	t.running = false
}

// Advance adds dt seconds if the timer is running.
func (t *Timer) Advance(dt float64) {
	if t.running {
		t.elapsed += dt
	}
}

// Running reports whether the timer is counting.
func (t *Timer) Running() bool {
	return t.running
}

// Elapsed returns the measured time.
func (t *Timer) Elapsed() time.Duration {
	return time.Duration(t.elapsed * float64(time.Second))
}

// String formats the elapsed time as MM:SS.
func (t *Timer) String() string {
	total := int(t.elapsed)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
