package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/aura-home/aura-client/internal/core/domain"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestDispatcher_DeliversInOrderToEverySubscriber(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := NewDispatcher(zerolog.Nop())

	var mu sync.Mutex
	got := map[string][]domain.SessionStatus{}
	record := func(name string) Handler {
		return func(_ context.Context, ev domain.SessionEvent) {
			mu.Lock()
			defer mu.Unlock()
			got[name] = append(got[name], ev.State.Status)
		}
	}
	d.Subscribe("a", record("a"))
	d.Start(ctx)
	d.Subscribe("b", record("b"))

	sequence := []domain.SessionStatus{domain.StatusLoading, domain.StatusAuthenticated, domain.StatusUnauthenticated}
	for _, st := range sequence {
		d.Publish(domain.SessionEvent{Kind: domain.EventStateChanged, State: domain.SessionState{Status: st}})
	}

	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got["a"]) == 3 && len(got["b"]) == 3
	})

	mu.Lock()
	defer mu.Unlock()
	for name, statuses := range got {
		for i, st := range statuses {
			if st != sequence[i] {
				t.Fatalf("%s: event %d = %s, want %s", name, i, st, sequence[i])
			}
		}
	}
}

func TestDispatcher_PanickingHandlerKeepsWorkerAlive(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := NewDispatcher(zerolog.Nop())
	var mu sync.Mutex
	calls := 0
	d.Subscribe("flaky", func(context.Context, domain.SessionEvent) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n == 1 {
			panic("boom")
		}
	})
	d.Start(ctx)

	d.Publish(domain.SessionEvent{Kind: domain.EventLoginRequired})
	d.Publish(domain.SessionEvent{Kind: domain.EventStateChanged})

	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return calls == 2
	})
}

func TestDispatcher_PublishNeverBlocks(t *testing.T) {
	d := NewDispatcher(zerolog.Nop())
	d.Subscribe("idle", func(context.Context, domain.SessionEvent) {})

	// not started: the queue fills up and further events are dropped
	done := make(chan struct{})
	go func() {
		for i := 0; i < channelBuffer*2; i++ {
			d.Publish(domain.SessionEvent{Kind: domain.EventStateChanged})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Publish blocked on a full subscriber queue")
	}
}

func TestDispatcher_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	d := NewDispatcher(zerolog.Nop())
	d.Subscribe("a", func(context.Context, domain.SessionEvent) {})
	d.Start(ctx)
	cancel()

	stopped := make(chan struct{})
	go func() {
		d.Wait()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatalf("workers did not stop after cancel")
	}
}
