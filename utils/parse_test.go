package utils

import "testing"

func TestStr(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{"x", "x"},
		{float64(42), "42"},
		{42.5, "42.5"},
		{true, "true"},
		{nil, ""},
		{[]any{"a"}, ""},
	}
	for _, c := range cases {
		if got := Str(c.in); got != c.want {
			t.Errorf("Str(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFirstStringPresence(t *testing.T) {
	// an explicit empty canonical field wins over a stale legacy alias
	m := map[string]any{"sub_header": "", "subHeader": "legacy"}
	if got := FirstString(m, "sub_header", "subHeader"); got != "" {
		t.Errorf("present empty string must stop the scan, got %q", got)
	}

	// nil and missing keys fall through
	m = map[string]any{"sub_header": nil, "subHeader": "legacy"}
	if got := FirstString(m, "sub_header", "subHeader"); got != "legacy" {
		t.Errorf("nil value must fall through, got %q", got)
	}
	if got := FirstString(map[string]any{}, "a", "b"); got != "" {
		t.Errorf("all missing = %q", got)
	}
}

func TestLooseBool(t *testing.T) {
	for _, v := range []any{true, "true", "1", "yes", float64(1)} {
		if !LooseBool(v) {
			t.Errorf("LooseBool(%v) = false", v)
		}
	}
	for _, v := range []any{false, "no", "0", float64(0), nil} {
		if LooseBool(v) {
			t.Errorf("LooseBool(%v) = true", v)
		}
	}
}

func TestLooseInt(t *testing.T) {
	if LooseInt(float64(3)) != 3 || LooseInt("7") != 7 || LooseInt(nil) != 0 {
		t.Error("LooseInt coercions wrong")
	}
}
