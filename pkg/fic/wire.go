package fic

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Wire is the flat keyed form entities take on the wire. Values are the
// JSON scalar types plus nested []any and Wire for line-item lists; numbers
// decoded from responses arrive as json.Number so amounts never round-trip
// through float64.
type Wire map[string]any

// DecodeWire parses a JSON object body into a Wire map, keeping numbers in
// their textual form.
func DecodeWire(data []byte) (Wire, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var wire Wire
	if err := decoder.Decode(&wire); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}

	return wire, nil
}

// String returns the value under key coerced to a string. Numbers and
// booleans are rendered in their canonical textual form; absent or null
// values yield "".
func (w Wire) String(key string) string {
	return stringValue(w[key])
}

// Bool returns the value under key coerced to a boolean. The wire uses
// both JSON booleans and "true"/"false" strings.
func (w Wire) Bool(key string) bool {
	switch v := w[key].(type) {
	case bool:
		return v
	case string:
		return v == "true" || v == "1"
	case json.Number:
		return v.String() != "0"
	case float64:
		return v != 0
	default:
		return false
	}
}

// Int returns the value under key coerced to an int, or 0 when absent or
// not numeric.
func (w Wire) Int(key string) int {
	switch v := w[key].(type) {
	case json.Number:
		parsed, err := v.Int64()
		if err != nil {
			return 0
		}

		return int(parsed)
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return 0
		}

		return parsed
	default:
		return 0
	}
}

// IntPtr returns the value under key as an int pointer, or nil when the
// key is absent or null.
func (w Wire) IntPtr(key string) *int {
	if !w.Has(key) {
		return nil
	}

	value := w.Int(key)

	return &value
}

// FloatPtr returns the value under key as a float64 pointer, or nil when
// the key is absent or null.
func (w Wire) FloatPtr(key string) *float64 {
	if !w.Has(key) {
		return nil
	}

	var value float64

	switch v := w[key].(type) {
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return nil
		}

		value = parsed
	case float64:
		value = v
	case int:
		value = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil
		}

		value = parsed
	default:
		return nil
	}

	return &value
}

// BoolPtr returns the value under key as a bool pointer, or nil when the
// key is absent or null.
func (w Wire) BoolPtr(key string) *bool {
	if !w.Has(key) {
		return nil
	}

	value := w.Bool(key)

	return &value
}

// Has reports whether key is present with a non-null value.
func (w Wire) Has(key string) bool {
	value, ok := w[key]

	return ok && value != nil
}

// Map returns the value under key as a nested Wire map, or nil when the
// key holds anything else. Nested blocks arrive as map[string]any when
// decoded off the network and as Wire when built in memory.
func (w Wire) Map(key string) Wire {
	switch v := w[key].(type) {
	case Wire:
		return v
	case map[string]any:
		return Wire(v)
	default:
		return nil
	}
}

// List returns the value under key as a slice of nested Wire maps.
func (w Wire) List(key string) []Wire {
	raw, ok := w[key].([]any)
	if !ok {
		return nil
	}

	items := make([]Wire, 0, len(raw))

	for _, entry := range raw {
		switch item := entry.(type) {
		case Wire:
			items = append(items, item)
		case map[string]any:
			items = append(items, Wire(item))
		}
	}

	return items
}

func stringValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// wireDateLayout is the dd/mm/yyyy format dates take on the wire.
const wireDateLayout = "02/01/2006"

// ParseWireDate parses a dd/mm/yyyy wire date. Empty input yields the zero
// time with no error.
func ParseWireDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}

	parsed, err := time.Parse(wireDateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse date %q: %w", value, err)
	}

	return parsed, nil
}

// FormatWireDate renders a date in the dd/mm/yyyy wire format. The zero
// time yields nil so codecs emit null for absent dates.
func FormatWireDate(date time.Time) any {
	if date.IsZero() {
		return nil
	}

	return date.Format(wireDateLayout)
}

// isFalsy reports whether a wire value is dropped by the falsy filter used
// for document and subject payloads: null, false, empty string, numeric
// zero and empty collections.
func isFalsy(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case bool:
		return !v
	case string:
		return v == ""
	case json.Number:
		parsed, err := v.Float64()

		return err == nil && parsed == 0
	case float64:
		return v == 0
	case int:
		return v == 0
	case []any:
		return len(v) == 0
	case Wire:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	default:
		return false
	}
}

// isEmpty reports whether a wire value is dropped by the lenient filter
// used for good and purchase payloads: only null and empty string.
func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	default:
		return false
	}
}

// filterFalsy returns a copy of the wire map with falsy values removed.
func filterFalsy(wire Wire) Wire {
	filtered := make(Wire, len(wire))

	for key, value := range wire {
		if isFalsy(value) {
			continue
		}

		filtered[key] = value
	}

	return filtered
}

// filterEmpty returns a copy of the wire map with null and empty-string
// values removed.
func filterEmpty(wire Wire) Wire {
	filtered := make(Wire, len(wire))

	for key, value := range wire {
		if isEmpty(value) {
			continue
		}

		filtered[key] = value
	}

	return filtered
}

// canonicalValue renders a wire value as a deterministic string so change
// detection compares serialized forms rather than in-memory shapes. Maps
// are walked in key order with empty entries dropped; lists keep their
// order with each element canonicalized.
func canonicalValue(value any) string {
	switch v := value.(type) {
	case Wire:
		return canonicalMap(map[string]any(v))
	case map[string]any:
		return canonicalMap(v)
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, canonicalValue(item))
		}

		return "[" + strings.Join(parts, ",") + "]"
	default:
		return stringValue(value)
	}
}

func canonicalMap(m map[string]any) string {
	keys := make([]string, 0, len(m))

	for key, value := range m {
		if isEmpty(value) {
			continue
		}

		keys = append(keys, key)
	}

	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+"="+canonicalValue(m[key]))
	}

	return "{" + strings.Join(parts, ",") + "}"
}

// snapshotWire captures a per-key canonical rendering of a wire map for
// later diffing.
func snapshotWire(wire Wire) map[string]string {
	snapshot := make(map[string]string, len(wire))

	for key, value := range wire {
		snapshot[key] = canonicalValue(value)
	}

	return snapshot
}

// diffWire returns the subset of current whose canonical rendering differs
// from the original snapshot. Keys are taken from the current side only, so
// fields absent from a new payload are not resent.
func diffWire(current Wire, original map[string]string) Wire {
	changed := make(Wire)

	for key, value := range current {
		if canonicalValue(value) == original[key] {
			continue
		}

		changed[key] = value
	}

	return changed
}
