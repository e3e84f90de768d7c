package otel

import (
	"context"
	"fmt"

	"github.com/bnema/pmc-telemetry/internal/domain"
	"github.com/bnema/pmc-telemetry/internal/ports"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/bnema/pmc-telemetry/internal/adapters/emit/otel"

// Emitter records each combined event as a finished span carrying the
// event's properties as attributes.
type Emitter struct {
	tracer trace.Tracer
}

var _ ports.Emitter = (*Emitter)(nil)

// NewEmitter uses the global tracer provider when provider is nil.
func NewEmitter(provider trace.TracerProvider) *Emitter {
	if provider == nil {
		provider = otel.GetTracerProvider()
	}

	return &Emitter{tracer: provider.Tracer(instrumentationName)}
}

func (e *Emitter) Emit(ctx context.Context, event domain.CombinedEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, span := e.tracer.Start(ctx, event.Name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(Attributes(event)...),
	)
	span.End()

	return nil
}

// Attributes converts event properties in key order. Null properties are
// skipped since attributes have no null value.
func Attributes(event domain.CombinedEvent) []attribute.KeyValue {
	keys := event.Keys()
	attrs := make([]attribute.KeyValue, 0, len(keys))
	for _, key := range keys {
		switch value := event.Properties[key].(type) {
		case nil:
		case int64:
			attrs = append(attrs, attribute.Int64(key, value))
		case int:
			attrs = append(attrs, attribute.Int(key, value))
		case bool:
			attrs = append(attrs, attribute.Bool(key, value))
		case string:
			attrs = append(attrs, attribute.String(key, value))
		case float64:
			attrs = append(attrs, attribute.Float64(key, value))
		default:
			attrs = append(attrs, attribute.String(key, fmt.Sprint(value)))
		}
	}

	return attrs
}
