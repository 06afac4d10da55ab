package validation

import (
	"encoding/json"
	"sort"
	"strconv"
)

// Sweep runs v over every leaf of values and records failures in s.
// Leaves without a rule, and leaves that pass, leave s untouched.
func (s *Session) Sweep(v *FieldValidator, values map[string]any) {
	snap := MapSnapshot(values)
	for _, path := range LeafPaths(values) {
		val, _ := snap.Lookup(path)
		if msg, err := v.Check(path, val, snap); err == nil && msg != "" {
			s.SetError(path, msg)
		}
	}
}

// NormalizeValues applies Normalize to every string leaf of values in place.
func NormalizeValues(values map[string]any) {
	normalizeTree(values, "")
}

func normalizeTree(v any, prefix string) {
	join := func(k string) string {
		if prefix == "" {
			return k
		}
		return prefix + "." + k
	}
	switch x := v.(type) {
	case map[string]any:
		for k, child := range x {
			if s, ok := child.(string); ok {
				x[k] = Normalize(join(k), s)
				continue
			}
			normalizeTree(child, join(k))
		}
	case []any:
		for i, child := range x {
			if s, ok := child.(string); ok {
				x[i] = Normalize(join(strconv.Itoa(i)), s)
				continue
			}
			normalizeTree(child, join(strconv.Itoa(i)))
		}
	}
}

// LeafPaths lists the dot paths of every scalar in a decoded JSON value, sorted.
func LeafPaths(v any) []string {
	out := leafPaths(v, "")
	sort.Strings(out)
	return out
}

func leafPaths(v any, prefix string) []string {
	var out []string
	join := func(k string) string {
		if prefix == "" {
			return k
		}
		return prefix + "." + k
	}
	switch x := v.(type) {
	case map[string]any:
		for k, child := range x {
			out = append(out, leafPaths(child, join(k))...)
		}
	case []any:
		for i, child := range x {
			out = append(out, leafPaths(child, join(strconv.Itoa(i)))...)
		}
	default:
		if prefix != "" {
			out = append(out, prefix)
		}
	}
	return out
}

// ToMap converts a request struct to the generic form shape through its
// JSON encoding, so keys match what the UI sends.
func ToMap(in any) (map[string]any, error) {
	b, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}
