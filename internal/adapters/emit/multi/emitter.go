package multi

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/pmc-telemetry/internal/domain"
	"github.com/bnema/pmc-telemetry/internal/ports"
)

// Emitter forwards every event to each of its emitters in order. A failing
// emitter does not stop the others.
type Emitter struct {
	emitters []ports.Emitter
}

var _ ports.Emitter = (*Emitter)(nil)

func New(emitters ...ports.Emitter) *Emitter {
	kept := make([]ports.Emitter, 0, len(emitters))
	for _, emitter := range emitters {
		if emitter != nil {
			kept = append(kept, emitter)
		}
	}

	return &Emitter{emitters: kept}
}

func (m *Emitter) Emit(ctx context.Context, event domain.CombinedEvent) error {
	var errs error
	for i, emitter := range m.emitters {
		if err := emitter.Emit(ctx, event.Clone()); err != nil {
			errs = errors.Join(errs, fmt.Errorf("emitter %d: %w", i, err))
		}
	}

	return errs
}

func (m *Emitter) Len() int {
	return len(m.emitters)
}
