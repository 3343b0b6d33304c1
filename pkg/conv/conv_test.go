package conv

import (
	"reflect"
	"testing"
)

func TestConfigGet(t *testing.T) {
	cfg := map[string]any{"name": "demo", "enabled": true, "k": 3, "ratio": 2.0}

	if got := ConfigGet(cfg, "name", ""); got != "demo" {
		t.Errorf("ConfigGet(name) = %q", got)
	}
	if got := ConfigGet(cfg, "enabled", false); !got {
		t.Errorf("ConfigGet(enabled) = %v", got)
	}
	if got := ConfigGet(cfg, "k", "fallback"); got != "fallback" {
		t.Errorf("ConfigGet with wrong type = %q, want fallback", got)
	}
	if got := ConfigGet[string](nil, "name", "x"); got != "x" {
		t.Errorf("ConfigGet(nil) = %q", got)
	}
}

func TestConfigGetInt64(t *testing.T) {
	cfg := map[string]any{"int": 3, "float": 4.0, "str": "5"}
	tests := []struct {
		key  string
		want int64
	}{
		{"int", 3},
		{"float", 4},
		{"str", -1},
		{"missing", -1},
	}
	for _, tt := range tests {
		if got := ConfigGetInt64(cfg, tt.key, -1); got != tt.want {
			t.Errorf("ConfigGetInt64(%s) = %d, want %d", tt.key, got, tt.want)
		}
	}
}

func TestSliceAnyToString(t *testing.T) {
	got := SliceAnyToString([]any{"Alien", 1917, 2.5, true, nil})
	want := []string{"Alien", "1917", "2.5"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SliceAnyToString() = %v, want %v", got, want)
	}
	if SliceAnyToString("not a slice") != nil {
		t.Error("SliceAnyToString(non-slice) should be nil")
	}
}
