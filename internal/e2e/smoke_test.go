package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)
	script := filepath.Join(home, "session.toml")
	require.NoError(t, writeScriptFixture(script))

	stdout, stderr, err := runPMCT(t, binaryPath, home, "replay", script)
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "NugetVSSolutionClose")
	assert.Contains(t, stdout, "NugetVSInstanceClose")

	stdout, stderr, err = runPMCT(t, binaryPath, home, "events", "list")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "events: 2")
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "pmct-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/pmct")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build pmct binary: %s", string(output))
	return binaryPath
}

func runPMCT(t *testing.T, binaryPath, home string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "HOME="+home, "PMCT_OTEL_ENDPOINT=")

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}

func writeScriptFixture(path string) error {
	script := `version = 1

[[steps]]
action = "solution-opened"

[[steps]]
action = "add-event"
name = "PowerShellExecuteCommand"

[steps.fields]
executed-command-count = 1
loaded-from-console = true
solution-loaded = true

[[steps]]
action = "solution-closed"

[[steps]]
action = "instance-closed"
`

	return os.WriteFile(path, []byte(script), 0o644)
}
