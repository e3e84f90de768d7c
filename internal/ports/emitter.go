package ports

import (
	"context"

	"github.com/bnema/pmc-telemetry/internal/domain"
)

// Emitter ships one combined event off to its destination.
type Emitter interface {
	Emit(ctx context.Context, event domain.CombinedEvent) error
}

// EmitterFunc adapts a function to Emitter.
type EmitterFunc func(ctx context.Context, event domain.CombinedEvent) error

func (f EmitterFunc) Emit(ctx context.Context, event domain.CombinedEvent) error {
	return f(ctx, event)
}
