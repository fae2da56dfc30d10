package plugin

import (
	"context"
	"log"
	"sync"

	"github.com/ayusman/dinojump/internal/game"
)

// dispatchQueue bounds the number of events waiting for hooks.
const dispatchQueue = 16

// Dispatcher delivers game events to subscribed plugins on a background
// goroutine so that HandleEvent never blocks the game loop.
type Dispatcher struct {
	manager  *Manager
	executor *Executor
	queue    chan game.Event

	// OnResult, when set, is called after each plugin run.
	OnResult func(p *Plugin, e game.Event, resp *Response, err error)

	startOnce sync.Once
	wg        sync.WaitGroup
}

// NewDispatcher creates a dispatcher for the manager's plugins.
func NewDispatcher(manager *Manager, executor *Executor) *Dispatcher {
	return &Dispatcher{
		manager:  manager,
		executor: executor,
		queue:    make(chan game.Event, dispatchQueue),
	}
}

// HandleEvent implements game.Listener. Events are dropped when the queue
// is full.
func (d *Dispatcher) HandleEvent(e game.Event) {
	select {
	case d.queue <- e:
	default:
		log.Printf("Plugin queue full, dropping %s event", e.Kind)
	}
}

// Start runs the delivery loop until ctx is canceled. Calling Start more
// than once has no effect.
func (d *Dispatcher) Start(ctx context.Context) {
	d.startOnce.Do(func() {
		d.wg.Add(1)
		go d.loop(ctx)
	})
}

// Wait blocks until the delivery loop has exited.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) loop(ctx context.Context) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case e := <-d.queue:
			d.Dispatch(ctx, e)
		}
	}
}

// Dispatch runs every subscriber of e synchronously and returns how many
// were invoked.
func (d *Dispatcher) Dispatch(ctx context.Context, e game.Event) int {
	subs := d.manager.Subscribers(e.Kind)
	for _, p := range subs {
		resp, err := d.executor.Execute(ctx, p, NewRequest(e))
		switch {
		case err != nil:
			log.Printf("Plugin %s failed on %s: %v", p.Manifest.Name, e.Kind, err)
		case !resp.Success:
			log.Printf("Plugin %s reported error on %s: %s", p.Manifest.Name, e.Kind, resp.Error)
		}
		if d.OnResult != nil {
			d.OnResult(p, e, resp, err)
		}
	}
	return len(subs)
}
