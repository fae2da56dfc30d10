// Package detector provides hand detection interfaces and types for gesture control.
package detector

import "gonum.org/v1/gonum/spatial/r3"

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Finger identifies one of the five fingers of a hand.
type Finger int

const (
	Thumb Finger = iota
	Index
	Middle
	Ring
	Pinky
)

// NumFingers is the number of fingers on a hand.
const NumFingers = 5

// Fingers lists every finger in landmark order, thumb first.
var Fingers = [NumFingers]Finger{Thumb, Index, Middle, Ring, Pinky}

// Base returns the landmark index of the finger's proximal joint
// (ThumbCMC for the thumb, the MCP knuckle for the others).
func (f Finger) Base() int {
	return ThumbCMC + int(f)*4
}

// Tip returns the landmark index of the finger's tip.
func (f Finger) Tip() int {
	return f.Base() + 3
}

func (f Finger) String() string {
	switch f {
	case Thumb:
		return "thumb"
	case Index:
		return "index"
	case Middle:
		return "middle"
	case Ring:
		return "ring"
	case Pinky:
		return "pinky"
	default:
		return "unknown"
	}
}

// Point3D represents a 3D point in normalized image space.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Vec returns the point as a gonum vector.
func (p Point3D) Vec() r3.Vec {
	return r3.Vec{X: p.X, Y: p.Y, Z: p.Z}
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b Point3D) float64 {
	return r3.Norm(r3.Sub(a.Vec(), b.Vec()))
}

// HandLandmarks is one detected hand as reported by the tracker.
// A complete hand carries NumLandmarks points; the tracker may report
// fewer when a hand is partially out of frame.
type HandLandmarks struct {
	Points     []Point3D `json:"points"`
	Handedness string    `json:"handedness"` // "Left" or "Right"
	Score      float64   `json:"score"`
}

// Complete reports whether the hand has every landmark.
func (h *HandLandmarks) Complete() bool {
	return h != nil && len(h.Points) >= NumLandmarks
}

// FingerSpan returns the distance between the finger's base joint and its tip.
// The hand must be complete.
func (h *HandLandmarks) FingerSpan(f Finger) float64 {
	return Distance(h.Points[f.Tip()], h.Points[f.Base()])
}
