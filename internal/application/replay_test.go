package application

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/pmc-telemetry/internal/adapters/emit/memory"
	"github.com/bnema/pmc-telemetry/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource struct {
	script domain.Script
	err    error
}

func (s staticSource) Load(context.Context) (domain.Script, error) {
	return s.script, s.err
}

func addStep(record domain.EventRecord) domain.Step {
	return domain.Step{Action: domain.StepAddEvent, Record: record}
}

func TestReplayServiceReplaysInstanceSession(t *testing.T) {
	t.Parallel()

	sink := memory.NewSink()
	svc := NewReplayService(sink, nil)

	result, err := svc.Replay(context.Background(), domain.Script{
		Name: "two-solutions",
		Steps: []domain.Step{
			{Action: domain.StepSolutionOpened},
			addStep(consoleRecord(2, true)),
			addStep(windowLoad(1)),
			{Action: domain.StepSolutionClosed},
			{Action: domain.StepSolutionOpened},
			{Action: domain.StepSolutionClosed},
			{Action: domain.StepInstanceClosed},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, ReplayResult{
		Script:         "two-solutions",
		StepsApplied:   7,
		RecordsAdded:   2,
		SolutionCount:  2,
		InstanceClosed: true,
	}, result)

	events := sink.Events()
	require.Len(t, events, 3)
	assert.Equal(t, domain.SolutionCloseEvent, events[0].Name)
	assert.Equal(t, domain.SolutionCloseEvent, events[1].Name)
	assert.Equal(t, domain.InstanceCloseEvent, events[2].Name)
	solutions, _ := events[2].Property(domain.DefaultPrefix, domain.FieldSolutionCount)
	assert.Equal(t, int64(2), solutions)
}

func TestReplayServiceReportsPendingRecords(t *testing.T) {
	t.Parallel()

	sink := memory.NewSink()
	result, err := NewReplayService(sink, nil).Replay(context.Background(), domain.Script{
		Steps: []domain.Step{addStep(windowLoad(1)), addStep(windowLoad(1))},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.PendingRecords)
	assert.False(t, result.InstanceClosed)
	assert.Zero(t, sink.Len())
}

func TestReplayServiceRejectsUnknownAction(t *testing.T) {
	t.Parallel()

	result, err := NewReplayService(memory.NewSink(), nil).Replay(context.Background(), domain.Script{
		Steps: []domain.Step{{Action: domain.StepSolutionOpened}, {Action: "reload"}},
	})
	require.ErrorIs(t, err, domain.ErrUnknownStepAction)
	assert.Equal(t, 1, result.StepsApplied)
	assert.Equal(t, 1, result.SolutionCount)
}

func TestReplayServiceStopsOnCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := NewReplayService(memory.NewSink(), nil).Replay(ctx, domain.Script{
		Steps: []domain.Step{{Action: domain.StepSolutionOpened}},
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, result.StepsApplied)
}

func TestReplayServiceLoadsFromSource(t *testing.T) {
	t.Parallel()

	sink := memory.NewSink()
	svc := NewReplayService(sink, nil, WithPrefix("x."))

	result, err := svc.Load(context.Background(), staticSource{script: domain.Script{
		Name:  "s",
		Steps: []domain.Step{{Action: domain.StepInstanceClosed}},
	}})
	require.NoError(t, err)
	assert.True(t, result.InstanceClosed)
	require.Equal(t, 1, sink.Len())
	assert.Contains(t, sink.Events()[0].Properties, "x."+domain.FieldSolutionCount)

	loadErr := errors.New("unreadable")
	_, err = svc.Load(context.Background(), staticSource{err: loadErr})
	require.ErrorIs(t, err, loadErr)
	assert.Contains(t, err.Error(), "load session script")
}
