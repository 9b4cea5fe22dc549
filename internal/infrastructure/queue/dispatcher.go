// Package queue delivers session events to subscribers off the caller's
// goroutine.
package queue

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/aura-home/aura-client/internal/core/domain"
)

const channelBuffer = 64

// Handler consumes one session event.
type Handler func(ctx context.Context, event domain.SessionEvent)

type subscriber struct {
	name    string
	handler Handler
	ch      chan domain.SessionEvent
}

// Dispatcher fans session events out to subscribers. Each subscriber owns a
// buffered queue and a worker, so events reach it in publish order and a
// slow subscriber never holds back another one.
type Dispatcher struct {
	mu      sync.RWMutex
	subs    []*subscriber
	started bool
	ctx     context.Context
	wg      sync.WaitGroup
	log     zerolog.Logger
}

func NewDispatcher(log zerolog.Logger) *Dispatcher {
	return &Dispatcher{log: log}
}

// Subscribe registers h under name. Subscribing after Start launches the
// worker right away.
func (d *Dispatcher) Subscribe(name string, h Handler) {
	s := &subscriber{name: name, handler: h, ch: make(chan domain.SessionEvent, channelBuffer)}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.subs = append(d.subs, s)
	if d.started {
		d.launch(s)
	}
}

// Start launches the subscriber workers. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started {
		return
	}
	d.started = true
	d.ctx = ctx
	for _, s := range d.subs {
		d.launch(s)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() { d.wg.Wait() }

// Publish implements ports.SessionEvents. It never blocks: when a
// subscriber's queue is full the event is dropped for that subscriber and
// logged.
func (d *Dispatcher) Publish(event domain.SessionEvent) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, s := range d.subs {
		select {
		case s.ch <- event:
		default:
			d.log.Warn().
				Str("subscriber", s.name).
				Str("kind", string(event.Kind)).
				Msg("session event dropped, subscriber queue full")
		}
	}
}

// launch must be called with d.mu held.
func (d *Dispatcher) launch(s *subscriber) {
	d.wg.Add(1)
	go d.runWorker(d.ctx, s)
}

func (d *Dispatcher) runWorker(ctx context.Context, s *subscriber) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-s.ch:
			d.deliver(ctx, s, event)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, s *subscriber, event domain.SessionEvent) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error().
				Interface("panic", r).
				Str("subscriber", s.name).
				Str("kind", string(event.Kind)).
				Msg("session event handler panicked")
		}
	}()
	s.handler(ctx, event)
}
