package capture

import (
	"sync"

	"gocv.io/x/gocv"
)

// Preview holds the most recent camera frame as JPEG for viewers such as
// the MJPEG stream. Frames are only encoded while someone is watching.
type Preview struct {
	mu       sync.RWMutex
	viewers  int
	jpeg     []byte
	sequence uint64
}

// NewPreview creates an empty Preview.
func NewPreview() *Preview {
	return &Preview{}
}

// Watch registers a viewer and returns a function that unregisters it.
func (p *Preview) Watch() (release func()) {
	p.mu.Lock()
	p.viewers++
	p.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			p.viewers--
			p.mu.Unlock()
		})
	}
}

// Watched reports whether any viewer is registered.
func (p *Preview) Watched() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.viewers > 0
}

// Publish encodes frame as JPEG if anyone is watching. The frame is not
// retained.
func (p *Preview) Publish(frame *gocv.Mat) error {
	if frame == nil || frame.Empty() || !p.Watched() {
		return nil
	}

	buf, err := gocv.IMEncode(gocv.JPEGFileExt, *frame)
	if err != nil {
		return err
	}
	defer buf.Close()

	p.Set(buf.GetBytes())
	return nil
}

// Set stores an already encoded JPEG frame.
func (p *Preview) Set(jpeg []byte) {
	data := make([]byte, len(jpeg))
	copy(data, jpeg)

	p.mu.Lock()
	p.jpeg = data
	p.sequence++
	p.mu.Unlock()
}

// Latest returns the newest JPEG frame and its sequence number. The
// sequence is zero until the first frame arrives.
func (p *Preview) Latest() ([]byte, uint64) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.jpeg, p.sequence
}
