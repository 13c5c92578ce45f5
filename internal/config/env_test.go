package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGet(t *testing.T) {
	t.Setenv("INKWASH_TEST_KEY", "direct")
	if got := Get("INKWASH_TEST_KEY", "fallback"); got != "direct" {
		t.Errorf("Get = %q, want %q", got, "direct")
	}
	if got := Get("INKWASH_TEST_MISSING", "fallback"); got != "fallback" {
		t.Errorf("Get = %q, want %q", got, "fallback")
	}
}

func TestGetFileIndirection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secret")
	if err := os.WriteFile(path, []byte("  from-file\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("INKWASH_TEST_SECRET_FILE", path)

	if got := Get("INKWASH_TEST_SECRET", "fallback"); got != "from-file" {
		t.Errorf("Get = %q, want trimmed file contents", got)
	}
}

func TestGetInt(t *testing.T) {
	t.Setenv("INKWASH_TEST_INT", "17")
	if got := GetInt("INKWASH_TEST_INT", 3); got != 17 {
		t.Errorf("GetInt = %d, want 17", got)
	}

	t.Setenv("INKWASH_TEST_INT", "not-a-number")
	if got := GetInt("INKWASH_TEST_INT", 3); got != 3 {
		t.Errorf("GetInt with garbage = %d, want default 3", got)
	}
}

func TestGetBool(t *testing.T) {
	tests := []struct {
		value string
		def   bool
		want  bool
	}{
		{value: "yes", def: false, want: true},
		{value: "0", def: true, want: false},
		{value: "TRUE", def: false, want: true},
		{value: "banana", def: true, want: true},
	}
	for _, tt := range tests {
		t.Setenv("INKWASH_TEST_BOOL", tt.value)
		if got := GetBool("INKWASH_TEST_BOOL", tt.def); got != tt.want {
			t.Errorf("GetBool(%q, %v) = %v, want %v", tt.value, tt.def, got, tt.want)
		}
	}
}

func TestDefaults(t *testing.T) {
	t.Setenv(EnvMode, "")
	t.Setenv(EnvLevels, "")
	if got := DefaultMode(); got != "floyd-steinberg" {
		t.Errorf("DefaultMode = %q", got)
	}
	if got := DefaultLevels(); got != 2 {
		t.Errorf("DefaultLevels = %d", got)
	}

	t.Setenv(EnvWorkers, "-2")
	if got := DefaultWorkers(); got != 1 {
		t.Errorf("DefaultWorkers with negative env = %d, want 1", got)
	}
}
