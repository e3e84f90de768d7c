package toml

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/pmc-telemetry/internal/domain"
	"github.com/bnema/pmc-telemetry/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
)

const currentScriptVersion = 1

type scriptSchema struct {
	Version int          `toml:"version"`
	Name    string       `toml:"name"`
	Steps   []stepSchema `toml:"steps"`
}

type stepSchema struct {
	Action     string         `toml:"action"`
	Name       string         `toml:"name"`
	Fields     map[string]any `toml:"fields"`
	NullFields []string       `toml:"null_fields"`
}

// Source loads a recorded session script from a TOML file.
type Source struct {
	path string
}

var _ ports.ScriptSource = (*Source)(nil)

func NewSource(path string) *Source {
	return &Source{path: filepath.Clean(path)}
}

func (s *Source) Load(ctx context.Context) (domain.Script, error) {
	if err := ctx.Err(); err != nil {
		return domain.Script{}, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return domain.Script{}, fmt.Errorf("read session script: %w", err)
	}

	script, err := Decode(data)
	if err != nil {
		return domain.Script{}, fmt.Errorf("%s: %w", s.path, err)
	}
	if script.Name == "" {
		script.Name = strings.TrimSuffix(filepath.Base(s.path), filepath.Ext(s.path))
	}

	return script, nil
}

// Decode parses a session script document.
func Decode(data []byte) (domain.Script, error) {
	var doc scriptSchema
	if err := toml.Unmarshal(data, &doc); err != nil {
		return domain.Script{}, fmt.Errorf("decode session script: %w", err)
	}
	if doc.Version > currentScriptVersion {
		return domain.Script{}, fmt.Errorf("version %d (current %d): %w", doc.Version, currentScriptVersion, domain.ErrUnsupportedScriptVersion)
	}

	script := domain.Script{Name: doc.Name, Steps: make([]domain.Step, 0, len(doc.Steps))}
	for i, entry := range doc.Steps {
		step, err := decodeStep(entry)
		if err != nil {
			return domain.Script{}, fmt.Errorf("step %d: %w", i+1, err)
		}
		script.Steps = append(script.Steps, step)
	}

	return script, nil
}

func decodeStep(entry stepSchema) (domain.Step, error) {
	action := domain.StepAction(entry.Action)
	if !action.Valid() {
		return domain.Step{}, fmt.Errorf("%q: %w", entry.Action, domain.ErrUnknownStepAction)
	}
	if action != domain.StepAddEvent {
		return domain.Step{Action: action}, nil
	}

	if entry.Name == "" {
		return domain.Step{}, domain.ErrEmptyEventName
	}

	fields := make(map[string]any, len(entry.Fields)+len(entry.NullFields))
	for key, value := range entry.Fields {
		if !domain.IsSupportedValue(value) {
			return domain.Step{}, fmt.Errorf("field %q of type %T: %w", key, value, domain.ErrUnsupportedFieldValue)
		}
		fields[key] = value
	}
	for _, key := range entry.NullFields {
		fields[key] = nil
	}

	return domain.Step{Action: action, Record: domain.NewEventRecord(entry.Name, fields)}, nil
}
