package otel

import (
	"context"
	"testing"

	"github.com/bnema/pmc-telemetry/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestEmitterRecordsSpanPerEvent(t *testing.T) {
	t.Parallel()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	emitter := NewEmitter(provider)
	err := emitter.Emit(context.Background(), domain.CombinedEvent{
		Name: domain.InstanceCloseEvent,
		Properties: map[string]any{
			"p.solution-count":  int64(2),
			"p.reopen-at-start": true,
			"p.note":            "x",
			"p.missing":         nil,
		},
	})
	require.NoError(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, domain.InstanceCloseEvent, spans[0].Name())
	assert.Equal(t, []attribute.KeyValue{
		attribute.String("p.note", "x"),
		attribute.Bool("p.reopen-at-start", true),
		attribute.Int64("p.solution-count", 2),
	}, spans[0].Attributes())
}

func TestEmitterRejectsCanceledContext(t *testing.T) {
	t.Parallel()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, NewEmitter(provider).Emit(ctx, domain.CombinedEvent{Name: "e"}), context.Canceled)
	assert.Empty(t, recorder.Ended())
}
