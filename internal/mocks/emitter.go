package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/scry-scheduler/internal/events"
)

// EventRecorder is an events.EventEmitter that keeps every emitted event.
type EventRecorder struct {
	mu     sync.Mutex
	Err    error
	events []*events.Event
}

var _ events.EventEmitter = (*EventRecorder)(nil)

// EmitEvent implements events.EventEmitter.
func (r *EventRecorder) EmitEvent(_ context.Context, event *events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return r.Err
}

// Events returns the emitted events in order.
func (r *EventRecorder) Events() []*events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*events.Event, len(r.events))
	copy(out, r.events)
	return out
}
