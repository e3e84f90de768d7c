package domain

import "maps"

// EventRecord is an immutable named set of measurements contributed by a
// feature area. Values are int64, bool, string or nil.
type EventRecord struct {
	name   string
	fields map[string]any
}

// NewEventRecord copies fields into a new record. Integer values of any
// width are stored as int64.
func NewEventRecord(name string, fields map[string]any) EventRecord {
	copied := make(map[string]any, len(fields))
	for key, value := range fields {
		copied[key] = normalizeValue(value)
	}

	return EventRecord{name: name, fields: copied}
}

func (r EventRecord) Name() string {
	return r.name
}

// Get returns the raw value stored under key. A key holding null reports
// (nil, true).
func (r EventRecord) Get(key string) (any, bool) {
	value, ok := r.fields[key]
	return value, ok
}

// Int reports the value under key when it is an integer.
func (r EventRecord) Int(key string) (int64, bool) {
	value, ok := r.fields[key].(int64)
	return value, ok
}

// Bool reports the value under key when it is a boolean.
func (r EventRecord) Bool(key string) (bool, bool) {
	value, ok := r.fields[key].(bool)
	return value, ok
}

// HasValue reports whether key is present with a non-null value.
func (r EventRecord) HasValue(key string) bool {
	value, ok := r.fields[key]
	return ok && value != nil
}

// Fields returns a copy of the record's fields.
func (r EventRecord) Fields() map[string]any {
	return maps.Clone(r.fields)
}

func (r EventRecord) Len() int {
	return len(r.fields)
}

func normalizeValue(value any) any {
	switch v := value.(type) {
	case int:
		return int64(v)
	case int8:
		return int64(v)
	case int16:
		return int64(v)
	case int32:
		return int64(v)
	case uint8:
		return int64(v)
	case uint16:
		return int64(v)
	case uint32:
		return int64(v)
	default:
		return value
	}
}

// IsSupportedValue reports whether value is one of the record value kinds.
func IsSupportedValue(value any) bool {
	switch normalizeValue(value).(type) {
	case nil, int64, bool, string:
		return true
	default:
		return false
	}
}
