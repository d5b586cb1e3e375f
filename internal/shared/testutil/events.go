package testutil

import (
	"context"
	"sync"

	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/events"
)

// RecordingPublisher keeps published events in memory.
type RecordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

var _ events.Publisher = (*RecordingPublisher)(nil)

func NewRecordingPublisher() *RecordingPublisher {
	return &RecordingPublisher{}
}

func (p *RecordingPublisher) Publish(ctx context.Context, event events.Event) {
	event = events.Stamp(ctx, event)
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *RecordingPublisher) Close() {}

// Events returns a copy of everything published so far.
func (p *RecordingPublisher) Events() []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.Event(nil), p.events...)
}

// Types returns the published event types in order.
func (p *RecordingPublisher) Types() []string {
	types := []string{}
	for _, e := range p.Events() {
		types = append(types, e.Type)
	}
	return types
}
