package toml

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/pmc-telemetry/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const consoleScript = `version = 1

[[steps]]
action = "add-event"
name = "PowerShellExecuteCommand"
null_fields = ["reopen-at-start"]

[steps.fields]
executed-command-count = 3
loaded-from-console = true
first-time-loaded-from-ui = false

[[steps]]
action = "solution-opened"

[[steps]]
action = "solution-closed"

[[steps]]
action = "instance-closed"
`

func TestSourceLoadsScript(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "console-session.toml")
	require.NoError(t, os.WriteFile(path, []byte(consoleScript), 0o600))

	script, err := NewSource(path).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "console-session", script.Name)
	require.Len(t, script.Steps, 4)
	assert.Equal(t, []domain.StepAction{
		domain.StepAddEvent,
		domain.StepSolutionOpened,
		domain.StepSolutionClosed,
		domain.StepInstanceClosed,
	}, []domain.StepAction{script.Steps[0].Action, script.Steps[1].Action, script.Steps[2].Action, script.Steps[3].Action})

	record := script.Steps[0].Record
	assert.Equal(t, domain.ConsoleExecuteCommandEvent, record.Name())
	count, ok := record.Int(domain.FieldExecutedCommandCount)
	require.True(t, ok)
	assert.Equal(t, int64(3), count)
	loaded, ok := record.Bool(domain.FieldLoadedFromConsole)
	require.True(t, ok)
	assert.True(t, loaded)

	value, present := record.Get(domain.FieldReopenAtStart)
	assert.True(t, present)
	assert.Nil(t, value)
	assert.False(t, record.HasValue(domain.FieldReopenAtStart))
}

func TestDecodeKeepsExplicitName(t *testing.T) {
	t.Parallel()

	script, err := Decode([]byte("name = \"morning\"\n"))
	require.NoError(t, err)
	assert.Equal(t, "morning", script.Name)
	assert.Empty(t, script.Steps)
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
		want error
	}{
		{
			name: "future version",
			doc:  "version = 2\n",
			want: domain.ErrUnsupportedScriptVersion,
		},
		{
			name: "unknown action",
			doc:  "[[steps]]\naction = \"solution-reloaded\"\n",
			want: domain.ErrUnknownStepAction,
		},
		{
			name: "missing record name",
			doc:  "[[steps]]\naction = \"add-event\"\n",
			want: domain.ErrEmptyEventName,
		},
		{
			name: "float field",
			doc:  "[[steps]]\naction = \"add-event\"\nname = \"x\"\n[steps.fields]\nwindow-load-count = 1.5\n",
			want: domain.ErrUnsupportedFieldValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.doc))
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDecodeRejectsMalformedDocument(t *testing.T) {
	t.Parallel()

	_, err := Decode([]byte("[[steps]\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode session script")
}

func TestSourceMissingFile(t *testing.T) {
	t.Parallel()

	_, err := NewSource(filepath.Join(t.TempDir(), "nope.toml")).Load(context.Background())
	require.ErrorIs(t, err, os.ErrNotExist)
}
