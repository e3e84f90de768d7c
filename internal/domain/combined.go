package domain

import (
	"maps"
	"slices"
	"strings"
	"time"
)

// CombinedEvent is the single outbound record emitted at a session boundary.
type CombinedEvent struct {
	Name       string         `json:"name"`
	Properties map[string]any `json:"properties"`
}

func (e CombinedEvent) Clone() CombinedEvent {
	return CombinedEvent{Name: e.Name, Properties: maps.Clone(e.Properties)}
}

// Keys returns property names in lexical order.
func (e CombinedEvent) Keys() []string {
	return slices.Sorted(maps.Keys(e.Properties))
}

// Property looks up a property by its unprefixed field name.
func (e CombinedEvent) Property(prefix, field string) (any, bool) {
	value, ok := e.Properties[prefix+field]
	return value, ok
}

// TrimPrefix returns the property name without the given namespace.
func TrimPrefix(prefix, key string) string {
	return strings.TrimPrefix(key, prefix)
}

// StoredEvent is a combined event as kept by a durable sink.
type StoredEvent struct {
	Event     CombinedEvent `json:"event"`
	EmittedAt time.Time     `json:"emitted_at"`
}
