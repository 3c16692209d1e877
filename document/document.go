// Package document models JSON documents whose object key order is
// significant. Definitions authored as JSON drive child insertion order and
// must re-serialize in the order they were written, so plain map[string]any
// is not enough. Documents are ordered maps (wk8/go-ordered-map) that
// round-trip through encoding/json with key order intact; nested objects
// decode as ordered maps as well.
package document

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Map is an ordered string-keyed JSON object. Values are scalars, []any, or
// nested *Map.
type Map = orderedmap.OrderedMap[string, any]

// New returns an empty document.
func New() *Map {
	return orderedmap.New[string, any]()
}

// Decode parses JSON bytes into an ordered document.
func Decode(data []byte) (*Map, error) {
	m := New()
	if err := json.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return m, nil
}

// DecodeFile parses a JSON file into an ordered document.
func DecodeFile(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return Decode(data)
}

// Encode renders the document as compact JSON, keys in insertion order.
func Encode(m *Map) ([]byte, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return data, nil
}

// EncodeIndent renders the document as indented JSON, keys in insertion order.
func EncodeIndent(m *Map) ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return data, nil
}

// Clone deep-copies a document value. Ordered maps, plain maps and slices
// are copied recursively; scalars are returned as-is.
func Clone(v any) any {
	switch t := v.(type) {
	case *Map:
		out := New()
		for p := t.Oldest(); p != nil; p = p.Next() {
			out.Set(p.Key, Clone(p.Value))
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = Clone(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = Clone(val)
		}
		return out
	default:
		return v
	}
}

// Normalize converts plain maps (and their nested values) into ordered
// documents so callers may hand in map[string]any literals. Plain map keys
// carry no authored order, so they are sorted for determinism.
func Normalize(v any) any {
	switch t := v.(type) {
	case *Map:
		out := New()
		for p := t.Oldest(); p != nil; p = p.Next() {
			out.Set(p.Key, Normalize(p.Value))
		}
		return out
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := New()
		for _, k := range keys {
			out.Set(k, Normalize(t[k]))
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = Normalize(val)
		}
		return out
	default:
		return v
	}
}

// Plain converts a document value to plain Go types (map[string]any, []any,
// scalars) for libraries that cannot traverse ordered maps. json.Number
// values become float64.
func Plain(v any) any {
	switch t := v.(type) {
	case *Map:
		out := make(map[string]any, t.Len())
		for p := t.Oldest(); p != nil; p = p.Next() {
			out[p.Key] = Plain(p.Value)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = Plain(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = Plain(val)
		}
		return out
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return t.String()
		}
		return f
	default:
		return v
	}
}

// Equal reports deep structural equality between two document values.
// Object comparison is key-set based (insertion order does not matter),
// numbers compare by value across int/float/json.Number representations.
// Absence must be tracked by the caller via the ordered map's presence
// flag; Equal never treats nil as "missing".
func Equal(a, b any) bool {
	if am, ok := asMap(a); ok {
		bm, ok := asMap(b)
		if !ok || len(am) != len(bm) {
			return false
		}
		for k, av := range am {
			bv, ok := bm[k]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	}
	if as, ok := a.([]any); ok {
		bs, ok := b.([]any)
		if !ok || len(as) != len(bs) {
			return false
		}
		for i := range as {
			if !Equal(as[i], bs[i]) {
				return false
			}
		}
		return true
	}
	if af, ok := Number(a); ok {
		bf, bok := Number(b)
		return bok && af == bf
	}
	return a == b
}

// Number extracts a float64 from any numeric representation a decoded or
// hand-built document may carry.
func Number(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// asMap views either map flavor as a plain map for comparison. The returned
// map shares values with the input.
func asMap(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case *Map:
		out := make(map[string]any, t.Len())
		for p := t.Oldest(); p != nil; p = p.Next() {
			out[p.Key] = p.Value
		}
		return out, true
	default:
		return nil, false
	}
}
