package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Seed != DefaultSeed {
		t.Errorf("expected seed %d, got %d", DefaultSeed, cfg.Seed)
	}
	if cfg.BlockSize != 8 {
		t.Errorf("expected block size 8, got %d", cfg.BlockSize)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")

	cfg := DefaultConfig()
	cfg.Seed = 27644437
	cfg.Seeds = []int64{1, 2, 3}
	cfg.LogFormat = "json"
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Seed != 27644437 || len(loaded.Seeds) != 3 || loaded.LogFormat != "json" {
		t.Errorf("unexpected config after round trip: %+v", loaded)
	}
}

func TestLoadKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(path, []byte("seed: 7\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Seed != 7 {
		t.Errorf("expected seed 7, got %d", cfg.Seed)
	}
	if cfg.Bits != DefaultBits {
		t.Errorf("expected default bits, got %d", cfg.Bits)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("seed: [unclosed\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("COLLATZRNG_SEED", "999")
	t.Setenv("COLLATZRNG_SEEDS", "5,6,7")
	t.Setenv("COLLATZRNG_LOG_LEVEL", "debug")

	cfg := DefaultConfig()
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatal(err)
	}
	if cfg.Seed != 999 {
		t.Errorf("expected seed 999, got %d", cfg.Seed)
	}
	if len(cfg.Seeds) != 3 || cfg.Seeds[2] != 7 {
		t.Errorf("expected seeds [5 6 7], got %v", cfg.Seeds)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected debug, got %s", cfg.LogLevel)
	}
	if cfg.Bits != DefaultBits {
		t.Error("unset variables should keep their value")
	}
}

func TestApplyEnvInvalid(t *testing.T) {
	t.Setenv("COLLATZRNG_BITS", "many")
	if err := DefaultConfig().ApplyEnv(); err == nil {
		t.Error("expected parse error")
	}
}

func TestResolveEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(path, []byte("seed: 7\nbits: 100\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("COLLATZRNG_BITS", "200")

	cfg, err := Resolve(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Seed != 7 || cfg.Bits != 200 {
		t.Errorf("expected seed 7 bits 200, got %d %d", cfg.Seed, cfg.Bits)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero seed", func(c *Config) { c.Seed = 0 }},
		{"negative sweep seed", func(c *Config) { c.Seeds = []int64{3, -1} }},
		{"negative bits", func(c *Config) { c.Bits = -1 }},
		{"zero block size", func(c *Config) { c.BlockSize = 0 }},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestGetPreset(t *testing.T) {
	p := GetPreset("battery")
	if p == nil {
		t.Fatal("expected preset, got nil")
	}
	if len(p.Seeds) != 4 || p.Bits != 10000 {
		t.Errorf("unexpected battery preset: %+v", p)
	}

	p.Seeds[0] = 1
	if Presets["battery"].Seeds[0] != 12345 {
		t.Error("GetPreset must not expose the shared seed slice")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(names))
	}
	if names[0] != "battery" {
		t.Errorf("expected sorted names, got %v", names)
	}
}

func TestPresetApply(t *testing.T) {
	cfg := DefaultConfig()
	GetPreset("compare").Apply(cfg)

	if cfg.Seed != 1 || len(cfg.SweepSeeds()) != 5 || cfg.Bits != 1000 {
		t.Errorf("unexpected config after apply: %+v", cfg)
	}
}

func TestSweepSeeds(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.SweepSeeds(); len(got) != 1 || got[0] != DefaultSeed {
		t.Errorf("expected the single default seed, got %v", got)
	}
}
