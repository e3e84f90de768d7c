package toml

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/bnema/pmc-telemetry/internal/domain"
)

const currentSchemaVersion = 1

type fileSchema struct {
	Version int           `toml:"version"`
	Events  []eventSchema `toml:"events"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported event log schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type eventSchema struct {
	Name           string         `toml:"name"`
	EmittedAt      string         `toml:"emitted_at"`
	Properties     map[string]any `toml:"properties"`
	NullProperties []string       `toml:"null_properties,omitempty"`
}

// TOML has no null, so null properties are listed by name.
func toSchema(event domain.CombinedEvent, emittedAt time.Time) eventSchema {
	properties := make(map[string]any, len(event.Properties))
	var nulls []string
	for key, value := range event.Properties {
		if value == nil {
			nulls = append(nulls, key)
			continue
		}
		properties[key] = value
	}
	slices.Sort(nulls)

	return eventSchema{
		Name:           event.Name,
		EmittedAt:      formatTime(emittedAt),
		Properties:     properties,
		NullProperties: nulls,
	}
}

func fromSchema(entry eventSchema) domain.StoredEvent {
	properties := maps.Clone(entry.Properties)
	if properties == nil {
		properties = map[string]any{}
	}
	for _, key := range entry.NullProperties {
		properties[key] = nil
	}

	return domain.StoredEvent{
		Event:     domain.CombinedEvent{Name: entry.Name, Properties: properties},
		EmittedAt: parseTime(entry.EmittedAt),
	}
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.UTC().Format(time.RFC3339)
}
