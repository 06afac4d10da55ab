package validation

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Snapshot gives validators read access to sibling values of a form.
type Snapshot interface {
	Lookup(path string) (string, bool)
}

// MapSnapshot resolves dot paths ("employeeSalaryDTO.allowances.0.amount")
// through nested maps and slices, as decoded from JSON.
type MapSnapshot map[string]any

func (m MapSnapshot) Lookup(path string) (string, bool) {
	var cur any = map[string]any(m)
	for _, seg := range splitPath(path) {
		switch node := cur.(type) {
		case map[string]any:
			v, ok := node[seg]
			if !ok {
				return "", false
			}
			cur = v
		case MapSnapshot:
			v, ok := node[seg]
			if !ok {
				return "", false
			}
			cur = v
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(node) {
				return "", false
			}
			cur = node[i]
		default:
			return "", false
		}
	}
	if cur == nil {
		return "", false
	}
	return toString(cur), true
}

// splitPath turns "a.b[0].c" into [a b 0 c].
func splitPath(path string) []string {
	path = strings.NewReplacer("[", ".", "]", "").Replace(path)
	parts := strings.Split(path, ".")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// toString coerces a form value to a trimmed string.
func toString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case json.Number:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case fmt.Stringer:
		return strings.TrimSpace(x.String())
	default:
		return strings.TrimSpace(fmt.Sprint(x))
	}
}

func lookup(snap Snapshot, path string) (string, bool) {
	if snap == nil {
		return "", false
	}
	v, ok := snap.Lookup(path)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// sibling replaces the last segment of field with name:
// sibling("contacts.1.altPhone", "phone") == "contacts.1.phone".
func sibling(field, name string) string {
	i := strings.LastIndex(field, ".")
	if i < 0 {
		return name
	}
	return field[:i+1] + name
}
