package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultTuningIsValid(t *testing.T) {
	tun := DefaultTuning()
	if err := tun.Validate(); err != nil {
		t.Fatalf("default tuning invalid: %v", err)
	}
	if tun.SpawnInterval != 1500*time.Millisecond {
		t.Fatalf("SpawnInterval = %v, want 1.5s", tun.SpawnInterval)
	}
	if tun.ReviveTimeout != 3*time.Second {
		t.Fatalf("ReviveTimeout = %v, want 3s", tun.ReviveTimeout)
	}
	if tun.RequiredPress != 3 || tun.PressIncrement != 1 {
		t.Fatalf("press rule = %d+%d, want 3+1", tun.RequiredPress, tun.PressIncrement)
	}
}

func TestLoadTuningEmptyPath(t *testing.T) {
	tun, err := LoadTuning("")
	if err != nil {
		t.Fatalf("LoadTuning(\"\"): %v", err)
	}
	if tun != DefaultTuning() {
		t.Fatal("empty path should return defaults")
	}
}

func TestLoadTuningOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	data := "gravity: 0\nspawnInterval: 750ms\nrequiredPresses: 5\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	tun, err := LoadTuning(path)
	if err != nil {
		t.Fatalf("LoadTuning: %v", err)
	}
	if tun.Gravity != 0 {
		t.Errorf("Gravity = %v, want 0", tun.Gravity)
	}
	if tun.SpawnInterval != 750*time.Millisecond {
		t.Errorf("SpawnInterval = %v, want 750ms", tun.SpawnInterval)
	}
	if tun.RequiredPress != 5 {
		t.Errorf("RequiredPress = %d, want 5", tun.RequiredPress)
	}
	if tun.WorldWidth != 800 {
		t.Errorf("WorldWidth = %v, want untouched default 800", tun.WorldWidth)
	}
}

func TestLoadTuningRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero hp", "targetMaxHP: 0\n"},
		{"inverted spawn range", "spawnMinX: 700\nspawnMaxX: 100\n"},
		{"negative increment", "pressIncrement: -1\n"},
		{"bad yaml", "gravity: [1, 2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tuning.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0o644); err != nil {
				t.Fatal(err)
			}
			tun, err := LoadTuning(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if tun != DefaultTuning() {
				t.Fatal("failed load should fall back to defaults")
			}
		})
	}
}

func TestLoadTuningMissingFile(t *testing.T) {
	if _, err := LoadTuning(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("NYANKO_TEST_INT", "42")
	if got := GetEnvInt("NYANKO_TEST_INT", 7); got != 42 {
		t.Fatalf("GetEnvInt = %d, want 42", got)
	}
	t.Setenv("NYANKO_TEST_INT", "nope")
	if got := GetEnvInt("NYANKO_TEST_INT", 7); got != 7 {
		t.Fatalf("GetEnvInt = %d, want fallback 7", got)
	}
	if got := GetEnv("NYANKO_TEST_UNSET_KEY", "x"); got != "x" {
		t.Fatalf("GetEnv = %q, want fallback", got)
	}
}
