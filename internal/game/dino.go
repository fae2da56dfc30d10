// Package game implements the endless-runner rules: the dino's vertical
// motion, obstacles, scoring and the session lifecycle.
package game

import "gonum.org/v1/gonum/spatial/r3"

var (
	up   = r3.Vec{Y: 1}
	down = r3.Vec{Y: -1}
)

// Dino is the player character. Only its vertical motion is simulated; the
// world scrolls past it.
type Dino struct {
	direction     r3.Vec
	y             float64
	grounded      bool
	jumpRequested bool
	jumps         int
}

// NewDino creates a dino standing on the ground.
func NewDino() *Dino {
	d := &Dino{}
	d.Reset()
	return d
}

// Reset puts the dino back on the ground with no motion and no pending jump.
func (d *Dino) Reset() {
	d.direction = r3.Vec{}
	d.y = 0
	d.grounded = true
	d.jumpRequested = false
	d.jumps = 0
}

// RequestJump asks for a jump. The jump happens on the next step that starts
// on the ground.
func (d *Dino) RequestJump() {
	d.jumpRequested = true
}

// Step advances the dino by dt seconds.
func (d *Dino) Step(dt float64) {
	d.direction = r3.Add(d.direction, r3.Scale(Gravity*dt, down))

	if d.grounded {
		d.direction = r3.Scale(GroundedBias, down)

		if d.jumpRequested {
			d.direction = r3.Scale(JumpImpulse, up)
			d.jumpRequested = false
			d.jumps++
		}
	}

	d.y += d.direction.Y * dt
	if d.y <= 0 {
		d.y = 0
		d.grounded = true
	} else {
		d.grounded = false
	}
}

// Velocity returns the vertical velocity, positive upward.
func (d *Dino) Velocity() float64 {
	return d.direction.Y
}

// Y returns the height of the dino's feet above the ground.
func (d *Dino) Y() float64 {
	return d.y
}

// Grounded reports whether the dino touched the ground on the last step.
func (d *Dino) Grounded() bool {
	return d.grounded
}

// JumpPending reports whether a jump request is waiting to be applied.
func (d *Dino) JumpPending() bool {
	return d.jumpRequested
}

// Jumps returns how many jumps were performed since the last Reset.
func (d *Dino) Jumps() int {
	return d.jumps
}

// Bounds returns the dino's collision box.
func (d *Dino) Bounds() Box {
	return Box{X: DinoX, Y: d.y, W: DinoWidth, H: DinoHeight}
}
