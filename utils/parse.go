package utils

import "fmt"

// Helpers for picking fields out of loosely-typed backend JSON. The booking
// backend mixes snake_case and legacy camelCase names and is not consistent
// about value types, so everything here degrades to zero values instead of
// failing.

// Str stringifies a JSON scalar. Whole-number floats drop the decimal part
// (ids arrive as JSON numbers). Non-scalars yield "".
func Str(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		if x == float64(int64(x)) {
			return fmt.Sprintf("%d", int64(x))
		}
		return fmt.Sprintf("%v", x)
	case bool:
		return fmt.Sprintf("%t", x)
	}
	return ""
}

// FirstString returns the first present, non-nil value among keys,
// stringified. An explicit empty string counts as present and stops the
// scan: a cleared canonical field must not resurrect a stale legacy alias
// stored under a later key.
func FirstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return Str(v)
		}
	}
	return ""
}

// LooseBool accepts the bool spellings seen in backend payloads: real
// bools, "true"/"1"/"yes", and numeric 1.
func LooseBool(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case string:
		return x == "true" || x == "1" || x == "yes"
	case float64:
		return x != 0
	}
	return false
}

// LooseInt accepts numbers and numeric strings; anything else is 0.
func LooseInt(v any) int {
	switch x := v.(type) {
	case float64:
		return int(x)
	case int:
		return x
	case string:
		var n int
		fmt.Sscanf(x, "%d", &n)
		return n
	}
	return 0
}
