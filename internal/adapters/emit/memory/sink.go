package memory

import (
	"context"
	"sync"

	"github.com/bnema/pmc-telemetry/internal/domain"
	"github.com/bnema/pmc-telemetry/internal/ports"
)

// Sink keeps emitted events in memory.
type Sink struct {
	mu     sync.RWMutex
	events []domain.CombinedEvent
}

var _ ports.Emitter = (*Sink)(nil)

func NewSink() *Sink {
	return &Sink{}
}

func (s *Sink) Emit(ctx context.Context, event domain.CombinedEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = append(s.events, event.Clone())
	return nil
}

// Events returns copies of the emitted events in emit order.
func (s *Sink) Events() []domain.CombinedEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := make([]domain.CombinedEvent, 0, len(s.events))
	for _, event := range s.events {
		events = append(events, event.Clone())
	}

	return events
}

func (s *Sink) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.events)
}

func (s *Sink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = nil
}
