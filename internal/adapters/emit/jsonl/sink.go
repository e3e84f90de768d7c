package jsonl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/bnema/pmc-telemetry/internal/domain"
	"github.com/bnema/pmc-telemetry/internal/ports"
)

type line struct {
	Time       string         `json:"time"`
	Name       string         `json:"name"`
	Properties map[string]any `json:"properties"`
}

// Sink writes each event as one JSON object per line.
type Sink struct {
	mu    sync.Mutex
	enc   *json.Encoder
	clock ports.Clock
}

var _ ports.Emitter = (*Sink)(nil)

func NewSink(w io.Writer, clock ports.Clock) *Sink {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Sink{enc: json.NewEncoder(w), clock: clock}
}

func (s *Sink) Emit(ctx context.Context, event domain.CombinedEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	properties := event.Properties
	if properties == nil {
		properties = map[string]any{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.enc.Encode(line{
		Time:       s.clock.Now().UTC().Format(time.RFC3339),
		Name:       event.Name,
		Properties: properties,
	}); err != nil {
		return fmt.Errorf("encode event line: %w", err)
	}

	return nil
}
