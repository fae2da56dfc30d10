package app

import (
	"context"
	"log"
	"time"

	"github.com/ayusman/dinojump/internal/capture"
	"github.com/ayusman/dinojump/internal/detector"
)

// Start opens the camera and begins the detection pipeline. The pipeline
// stops when ctx is canceled or Stop is called.
func (a *App) Start(ctx context.Context) error {
	a.pipeMu.Lock()
	defer a.pipeMu.Unlock()

	if a.cancel != nil {
		return ErrPipelineRunning
	}

	if a.detector == nil {
		if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
			a.detector = mp
			log.Println("Using MediaPipe hand detection")
		} else {
			log.Printf("MediaPipe not available (%v), hand control needs the browser tracker", err)
		}
	}

	if err := a.camera.Open(); err != nil {
		return err
	}
	a.camera.SetFPS(IdleFPS)

	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.pipeDone = make(chan struct{})
	go a.runPipeline(ctx, a.pipeDone)

	log.Println("Detection pipeline started")
	return nil
}

// Stop halts the detection pipeline and releases the camera and detector.
func (a *App) Stop() {
	a.pipeMu.Lock()
	defer a.pipeMu.Unlock()

	if a.cancel == nil {
		return
	}
	a.cancel()
	<-a.pipeDone
	a.cancel = nil
	a.pipeDone = nil

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}
	a.motion.Close()

	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Detection pipeline stopped")
}

// PipelineRunning reports whether the camera pipeline is up.
func (a *App) PipelineRunning() bool {
	a.pipeMu.Lock()
	defer a.pipeMu.Unlock()
	return a.cancel != nil
}

// runPipeline reads frames, gates hand detection on motion and publishes
// every detector result to the Feed.
//
// Pipeline logic:
// 1. Start in idle mode (IdleFPS)
// 2. On motion, switch to active mode (ActiveFPS)
// 3. In active mode run hand detection and push the hands, even none, to the Feed
// 4. After IdleTimeout without motion, switch back to idle mode
func (a *App) runPipeline(ctx context.Context, done chan<- struct{}) {
	defer close(done)

	gate := capture.NewActivityGate(IdleFPS, ActiveFPS, IdleTimeout)

	ticker := time.NewTicker(gate.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		frame, err := a.camera.ReadFrame()
		if err != nil {
			log.Printf("Error reading frame: %v", err)
			continue
		}

		if err := a.preview.Publish(frame); err != nil {
			log.Printf("Error encoding preview: %v", err)
		}

		motion, _ := a.motion.Detect(frame)
		if gate.Observe(motion, time.Now()) {
			a.camera.SetFPS(gate.FPS())
			ticker.Reset(gate.Interval())
			if gate.Active() {
				log.Println("Switched to active mode")
			} else {
				log.Println("Switched to idle mode")
			}
		}

		if !gate.Active() || a.detector == nil {
			frame.Close()
			continue
		}

		hands, err := a.detector.Detect(frame)
		frame.Close()
		if err != nil {
			log.Printf("Error detecting hands: %v", err)
			continue
		}

		a.feed.Push(hands)
	}
}
