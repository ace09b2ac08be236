package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/benjaminbreen/PlagueSimulator-sub002/constants"
)

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error, got %v", err)
	}
	if cfg.World.Seed != 1349 || cfg.World.RatCount != constants.DefaultRatCount {
		t.Errorf("missing file did not yield defaults: %+v", cfg.World)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("empty path should not error, got %v", err)
	}
	if cfg.World.Gravity != constants.Gravity {
		t.Errorf("gravity = %v, want default %v", cfg.World.Gravity, constants.Gravity)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	body := "world:\n  seed: 77\n  rat_count: 3\naudio:\n  master_volume: 0.2\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.World.Seed != 77 {
		t.Errorf("seed = %d, want 77", cfg.World.Seed)
	}
	if cfg.World.RatCount != 3 {
		t.Errorf("rat_count = %d, want 3", cfg.World.RatCount)
	}
	if cfg.Audio.MasterVolume != 0.2 {
		t.Errorf("master_volume = %v, want 0.2", cfg.Audio.MasterVolume)
	}
	// Untouched fields keep their defaults
	if cfg.World.Gravity != constants.Gravity {
		t.Errorf("gravity = %v, want default %v", cfg.World.Gravity, constants.Gravity)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("world: [not a map"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err == nil {
		t.Fatal("malformed file should return a parse error")
	}
	if cfg == nil || cfg.World.Seed != 1349 {
		t.Errorf("malformed file should fall back to defaults, got %+v", cfg)
	}
}

func TestSanitizeClamps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wild.yaml")
	body := "world:\n  gravity: -4\n  rat_count: -2\naudio:\n  master_volume: 3.5\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.World.Gravity != constants.Gravity {
		t.Errorf("non-positive gravity not reset, got %v", cfg.World.Gravity)
	}
	if cfg.World.RatCount != 0 {
		t.Errorf("negative rat count not clamped, got %d", cfg.World.RatCount)
	}
	if cfg.Audio.MasterVolume != 1 {
		t.Errorf("volume not clamped to 1, got %v", cfg.Audio.MasterVolume)
	}
}
