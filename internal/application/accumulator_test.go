package application

import (
	"testing"

	"github.com/bnema/pmc-telemetry/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionAccumulatorFirstByInsertionOrder(t *testing.T) {
	t.Parallel()

	acc := newSessionAccumulator()
	acc.append(windowLoad(1))
	acc.append(consoleRecord(1, true))
	acc.append(consoleRecord(2, false))

	record, ok := acc.first(domain.ConsoleExecuteCommandEvent)
	require.True(t, ok)
	count, _ := record.Int(domain.FieldExecutedCommandCount)
	assert.Equal(t, int64(1), count)

	_, ok = acc.first("missing")
	assert.False(t, ok)
}

func TestSessionAccumulatorSumsAndCounts(t *testing.T) {
	t.Parallel()

	acc := newSessionAccumulator()
	acc.append(windowLoad(2))
	acc.append(windowLoad(5))
	acc.append(consoleRecord(3, true))

	assert.Equal(t, int64(7), acc.sumInt(domain.FieldWindowLoadCount))
	assert.Equal(t, int64(3), acc.sumInt(domain.FieldExecutedCommandCount))
	assert.Equal(t, int64(1), acc.count(func(r domain.EventRecord) bool {
		return isTrue(r, domain.FieldLoadedFromConsole)
	}))
	assert.True(t, acc.contains(executedCommands))
}

func TestSessionAccumulatorResetAndOutput(t *testing.T) {
	t.Parallel()

	acc := newSessionAccumulator()
	acc.append(windowLoad(1))
	acc.put("k", int64(1))

	out := acc.output()
	out["other"] = true
	assert.Equal(t, map[string]any{"k": int64(1)}, acc.output())

	acc.reset()
	assert.Zero(t, acc.Len())
	assert.Empty(t, acc.output())
	assert.Equal(t, ScopeAccumulating, acc.State())
	assert.Equal(t, "accumulating", acc.State().String())
	assert.Equal(t, "terminal", ScopeTerminal.String())
}

func TestSessionAccumulatorEventsNeverNil(t *testing.T) {
	t.Parallel()

	acc := newSessionAccumulator()
	assert.NotNil(t, acc.Events())

	acc.append(windowLoad(1))
	acc.reset()

	events := acc.Events()
	assert.NotNil(t, events)
	assert.Equal(t, []domain.EventRecord{}, events)
}
