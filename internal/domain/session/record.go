package session

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Record is the authenticated identity payload returned by the upstream API
// at login. It is persisted and rendered verbatim — the portal never
// validates its contents beyond presence. Values are strings or numbers
// depending on what the API returns.
type Record map[string]any

// Decode parses a stored record. Malformed data yields ok=false so callers
// treat it exactly like an absent record (guards redirect, nothing crashes).
// PRE: none
// POST: Returns the record and true, or nil and false
func Decode(raw string) (Record, bool) {
	if raw == "" {
		return nil, false
	}
	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, false
	}
	if rec == nil {
		return nil, false
	}
	return rec, true
}

// Encode serializes the record for persistence.
// PRE: rec is non-nil
// POST: Returns the JSON form of the record
func (r Record) Encode() (string, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("encode session record: %w", err)
	}
	return string(data), nil
}

// Field returns the named field rendered as a string. Numbers are formatted
// without a trailing ".0" for whole values (JSON numbers decode as float64).
// Missing fields return "".
func (r Record) Field(name string) string {
	v, ok := r[name]
	if !ok || v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%g", val)
	case bool:
		return fmt.Sprintf("%t", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// Has reports whether the record carries a non-empty value for the field.
func (r Record) Has(name string) bool {
	return r.Field(name) != ""
}

// FieldNames returns the record's field names in sorted order, for rendering
// a profile without assuming a fixed schema.
func (r Record) FieldNames() []string {
	names := make([]string, 0, len(r))
	for k := range r {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
