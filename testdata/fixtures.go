// Package testdata builds camera frames for pipeline tests.
package testdata

import (
	"gocv.io/x/gocv"
)

// Frame size used by the fixtures.
const (
	FrameWidth  = 160
	FrameHeight = 120
)

// SolidFrame returns a BGR frame filled with one gray level. The caller
// owns the Mat.
func SolidFrame(level float64) *gocv.Mat {
	mat := gocv.NewMatWithSize(FrameHeight, FrameWidth, gocv.MatTypeCV8UC3)
	mat.SetTo(gocv.NewScalar(level, level, level, 0))
	return &mat
}

// MotionSequence returns n frames alternating black and white, which the
// motion detector always reports as movement.
func MotionSequence(n int) []*gocv.Mat {
	frames := make([]*gocv.Mat, 0, n)
	for i := 0; i < n; i++ {
		level := 0.0
		if i%2 == 1 {
			level = 255
		}
		frames = append(frames, SolidFrame(level))
	}
	return frames
}

// StillSequence returns n identical frames, which never register as motion.
func StillSequence(n int) []*gocv.Mat {
	frames := make([]*gocv.Mat, 0, n)
	for i := 0; i < n; i++ {
		frames = append(frames, SolidFrame(128))
	}
	return frames
}

// Close releases every frame.
func Close(frames []*gocv.Mat) {
	for _, f := range frames {
		f.Close()
	}
}
