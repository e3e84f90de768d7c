package summary

import (
	"testing"

	"github.com/bnema/pmc-telemetry/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCombinedEvents(t *testing.T) {
	output, err := Render([]domain.CombinedEvent{
		{
			Name: domain.SolutionCloseEvent,
			Properties: map[string]any{
				domain.DefaultPrefix + domain.FieldExecutedCommandCount: int64(3),
				domain.DefaultPrefix + domain.FieldLoadedFromConsole:    true,
				domain.DefaultPrefix + domain.FieldLoadedFromUI:         nil,
			},
		},
		{
			Name: domain.InstanceCloseEvent,
			Properties: map[string]any{
				domain.DefaultPrefix + domain.FieldSolutionCount: int64(1),
			},
		},
	}, RenderOptions{Prefix: domain.DefaultPrefix, Footer: []string{"steps: 4"}})

	require.NoError(t, err)
	assert.Contains(t, output, "Console Session Telemetry")
	assert.Contains(t, output, "events: 2")
	assert.Contains(t, output, domain.SolutionCloseEvent)
	assert.Contains(t, output, domain.InstanceCloseEvent)
	assert.Contains(t, output, domain.FieldExecutedCommandCount)
	assert.NotContains(t, output, domain.DefaultPrefix)
	assert.Contains(t, output, "null")
	assert.Contains(t, output, "steps: 4")
}

func TestRenderEmpty(t *testing.T) {
	output, err := Render(nil, RenderOptions{Title: "Replay"})

	require.NoError(t, err)
	assert.Contains(t, output, "Replay")
	assert.Contains(t, output, "events: 0")
	assert.Contains(t, output, "No combined events emitted.")
}

func TestRenderValueKinds(t *testing.T) {
	s := newStyles()

	assert.Contains(t, renderValue(int64(12), s), "12")
	assert.Contains(t, renderValue(false, s), "false")
	assert.Equal(t, `"abc"`, renderValue("abc", s))
}

func TestNewModelNumbersSolutionClosesAndTalliesCommands(t *testing.T) {
	const prefix = "console."
	solution := func(executed any) domain.CombinedEvent {
		return domain.CombinedEvent{
			Name:       domain.SolutionCloseEvent,
			Properties: map[string]any{prefix + domain.FieldExecutedCommandCount: executed},
		}
	}

	m := newModel([]domain.CombinedEvent{
		solution(int64(3)),
		solution(nil),
		solution(int64(4)),
		{
			Name:       domain.InstanceCloseEvent,
			Properties: map[string]any{prefix + domain.FieldExecutedCommandCount: int64(7)},
		},
	}, RenderOptions{Prefix: prefix})

	require.Len(t, m.sections, 4)
	assert.Equal(t, domain.SolutionCloseEvent+" #1", m.sections[0].label)
	assert.Equal(t, domain.SolutionCloseEvent+" #3", m.sections[2].label)
	assert.Equal(t, domain.InstanceCloseEvent, m.sections[3].label)
	assert.Equal(t, tally{solutionCloses: 3, instanceCloses: 1, commands: 7}, m.tally)
}

func TestRenderShowsTally(t *testing.T) {
	output, err := Render([]domain.CombinedEvent{{
		Name: domain.SolutionCloseEvent,
		Properties: map[string]any{
			domain.DefaultPrefix + domain.FieldExecutedCommandCount: int64(2),
		},
	}}, RenderOptions{Prefix: domain.DefaultPrefix})

	require.NoError(t, err)
	assert.Contains(t, output, domain.SolutionCloseEvent+" #1")
	assert.Contains(t, output, "solution closes: 1, instance closes: 0, console commands: 2")
}
