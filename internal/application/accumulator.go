package application

import (
	"maps"
	"slices"

	"github.com/bnema/pmc-telemetry/internal/domain"
)

// ScopeState tracks where a session scope is in its flush cycle.
type ScopeState int

const (
	ScopeAccumulating ScopeState = iota
	ScopeTerminal
)

func (s ScopeState) String() string {
	switch s {
	case ScopeAccumulating:
		return "accumulating"
	case ScopeTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// SessionAccumulator holds the records seen by one scope since its last
// flush and the derived output being prepared for the next one.
type SessionAccumulator struct {
	events  []domain.EventRecord
	pending map[string]any
	state   ScopeState
}

func newSessionAccumulator() *SessionAccumulator {
	return &SessionAccumulator{pending: map[string]any{}}
}

func (a *SessionAccumulator) append(record domain.EventRecord) {
	a.events = append(a.events, record)
}

// Events returns the accumulated records in arrival order. The result is
// never nil, so an empty scope compares equal to an empty window of another.
func (a *SessionAccumulator) Events() []domain.EventRecord {
	return append([]domain.EventRecord{}, a.events...)
}

func (a *SessionAccumulator) Len() int {
	return len(a.events)
}

func (a *SessionAccumulator) State() ScopeState {
	return a.state
}

func (a *SessionAccumulator) put(key string, value any) {
	a.pending[key] = value
}

func (a *SessionAccumulator) output() map[string]any {
	return maps.Clone(a.pending)
}

func (a *SessionAccumulator) resetPending() {
	a.pending = map[string]any{}
}

func (a *SessionAccumulator) reset() {
	a.events = nil
	a.resetPending()
}

// first returns the earliest record with the given name.
func (a *SessionAccumulator) first(name string) (domain.EventRecord, bool) {
	for _, record := range a.events {
		if record.Name() == name {
			return record, true
		}
	}

	return domain.EventRecord{}, false
}

// sumInt adds up key across records that carry it as an integer.
func (a *SessionAccumulator) sumInt(key string) int64 {
	var total int64
	for _, record := range a.events {
		if value, ok := record.Int(key); ok {
			total += value
		}
	}

	return total
}

func (a *SessionAccumulator) count(match func(domain.EventRecord) bool) int64 {
	var total int64
	for _, record := range a.events {
		if match(record) {
			total++
		}
	}

	return total
}

func (a *SessionAccumulator) contains(match func(domain.EventRecord) bool) bool {
	return slices.ContainsFunc(a.events, match)
}
