package capture

import (
	"bytes"
	"testing"

	"gocv.io/x/gocv"
)

func TestPreview_Watch(t *testing.T) {
	p := NewPreview()
	if p.Watched() {
		t.Fatal("new preview should have no viewers")
	}

	release := p.Watch()
	if !p.Watched() {
		t.Error("Watched() = false after Watch()")
	}

	release()
	release() // second call is a no-op
	if p.Watched() {
		t.Error("Watched() = true after release")
	}
}

func TestPreview_SetLatest(t *testing.T) {
	p := NewPreview()

	if data, seq := p.Latest(); data != nil || seq != 0 {
		t.Fatalf("Latest() = (%v, %d), want (nil, 0)", data, seq)
	}

	src := []byte{0xff, 0xd8, 0x01}
	p.Set(src)
	src[2] = 0x02

	data, seq := p.Latest()
	if seq != 1 {
		t.Errorf("sequence = %d, want 1", seq)
	}
	if !bytes.Equal(data, []byte{0xff, 0xd8, 0x01}) {
		t.Errorf("Latest() = %v, want a copy of the original bytes", data)
	}
}

func TestPreview_PublishOnlyWhenWatched(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	frame := gocv.NewMatWithSize(48, 64, gocv.MatTypeCV8UC3)
	defer frame.Close()

	p := NewPreview()
	if err := p.Publish(&frame); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if _, seq := p.Latest(); seq != 0 {
		t.Errorf("unwatched Publish stored a frame (seq %d)", seq)
	}

	release := p.Watch()
	defer release()

	if err := p.Publish(&frame); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	data, seq := p.Latest()
	if seq != 1 {
		t.Errorf("sequence = %d, want 1", seq)
	}
	if len(data) < 2 || data[0] != 0xff || data[1] != 0xd8 {
		t.Error("published frame is not a JPEG")
	}
}
