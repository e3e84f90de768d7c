package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bnema/pmc-telemetry/internal/domain"
	"github.com/bnema/pmc-telemetry/internal/ports"
)

// ReplayService drives a fresh Aggregator through a recorded instance
// session, as a host would through its lifecycle callbacks.
type ReplayService struct {
	emitter ports.Emitter
	logger  *slog.Logger
	opts    []Option
}

type ReplayResult struct {
	Script         string `json:"script"`
	StepsApplied   int    `json:"steps_applied"`
	RecordsAdded   int    `json:"records_added"`
	SolutionCount  int    `json:"solution_count"`
	InstanceClosed bool   `json:"instance_closed"`
	// PendingRecords are solution-scoped records never flushed by a
	// solution close.
	PendingRecords int    `json:"pending_records"`
}

func NewReplayService(emitter ports.Emitter, logger *slog.Logger, opts ...Option) *ReplayService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &ReplayService{
		emitter: emitter,
		logger:  logger,
		opts:    append([]Option{WithLogger(logger)}, opts...),
	}
}

func (s *ReplayService) Load(ctx context.Context, source ports.ScriptSource) (ReplayResult, error) {
	script, err := source.Load(ctx)
	if err != nil {
		return ReplayResult{}, fmt.Errorf("load session script: %w", err)
	}

	return s.Replay(ctx, script)
}

func (s *ReplayService) Replay(ctx context.Context, script domain.Script) (ReplayResult, error) {
	aggregator := NewAggregator(s.emitter, s.opts...)
	result := ReplayResult{Script: script.Name}

	for i, step := range script.Steps {
		if err := ctx.Err(); err != nil {
			return s.finish(result, aggregator), fmt.Errorf("replay step %d: %w", i+1, err)
		}

		switch step.Action {
		case domain.StepAddEvent:
			aggregator.AddEvent(step.Record)
			result.RecordsAdded++
		case domain.StepSolutionOpened:
			aggregator.OnSolutionOpened(ctx)
		case domain.StepSolutionClosed:
			aggregator.EmitSolutionSession(ctx)
		case domain.StepInstanceClosed:
			aggregator.EmitInstanceSession(ctx)
		default:
			return s.finish(result, aggregator), fmt.Errorf("replay step %d %q: %w", i+1, step.Action, domain.ErrUnknownStepAction)
		}

		s.logger.DebugContext(ctx, "replayed step", slog.Int("step", i+1), slog.String("action", string(step.Action)))
		result.StepsApplied++
	}

	return s.finish(result, aggregator), nil
}

func (s *ReplayService) finish(result ReplayResult, aggregator *Aggregator) ReplayResult {
	result.SolutionCount = aggregator.SolutionCount()
	result.InstanceClosed = aggregator.Terminated()
	result.PendingRecords = len(aggregator.SolutionEvents())
	return result
}
