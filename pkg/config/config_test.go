package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigFrom_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mimic.json")
	if err := os.WriteFile(path, []byte(`{"dir": "takes/box3"}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfigFrom(path)
	if err != nil {
		t.Fatalf("LoadConfigFrom: %v", err)
	}

	if cfg.Dir != "takes/box3" {
		t.Errorf("Dir = %q, want takes/box3", cfg.Dir)
	}
	if cfg.Hz != 20 {
		t.Errorf("Hz = %d, want 20", cfg.Hz)
	}
	if cfg.PosSensitivity != 1.0 || cfg.RotSensitivity != 1.0 {
		t.Errorf("sensitivities = %g, %g, want 1, 1", cfg.PosSensitivity, cfg.RotSensitivity)
	}
}

func TestConfig_SaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mimic.json")
	cfg := &Config{
		Dir:            "/data/mocap",
		Pattern:        "*_prediction_result.json",
		PosSensitivity: 1.5,
		RotSensitivity: 0.5,
		Hz:             30,
	}

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	got, err := LoadConfigFrom(path)
	if err != nil {
		t.Fatalf("LoadConfigFrom: %v", err)
	}
	if *got != *cfg {
		t.Errorf("round trip = %+v, want %+v", got, cfg)
	}
}

func TestLoadConfigFrom_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadConfigFrom(filepath.Join(dir, "missing.json")); !os.IsNotExist(err) {
		t.Errorf("missing file: err = %v, want not-exist", err)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfigFrom(bad); err == nil {
		t.Error("malformed file: expected error")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("MIMIC_DIR", "/env/dir")
	t.Setenv("MIMIC_HZ", "50")
	t.Setenv("MIMIC_POS_SENSITIVITY", "0.25")

	cfg := Default()
	cfg.Pattern = "*.yaml"
	if err := ApplyEnv(cfg); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}

	if cfg.Dir != "/env/dir" {
		t.Errorf("Dir = %q, want /env/dir", cfg.Dir)
	}
	if cfg.Hz != 50 {
		t.Errorf("Hz = %d, want 50", cfg.Hz)
	}
	if cfg.PosSensitivity != 0.25 {
		t.Errorf("PosSensitivity = %g, want 0.25", cfg.PosSensitivity)
	}
	// Unset variables leave fields alone.
	if cfg.Pattern != "*.yaml" {
		t.Errorf("Pattern = %q, want *.yaml", cfg.Pattern)
	}
	if cfg.RotSensitivity != 1.0 {
		t.Errorf("RotSensitivity = %g, want 1", cfg.RotSensitivity)
	}
}

func TestApplyEnv_Invalid(t *testing.T) {
	t.Setenv("MIMIC_HZ", "fast")

	if err := ApplyEnv(Default()); err == nil {
		t.Error("expected error for non-numeric MIMIC_HZ")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"no dir", func(c *Config) { c.Dir = "" }, true},
		{"zero hz", func(c *Config) { c.Hz = 0 }, true},
		{"negative pos", func(c *Config) { c.PosSensitivity = -1 }, true},
		{"zero rot", func(c *Config) { c.RotSensitivity = 0 }, true},
	}

	for _, tt := range tests {
		cfg := Default()
		cfg.Dir = "takes"
		tt.mutate(cfg)
		err := cfg.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: Validate() = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestConfig_DefaultFile(t *testing.T) {
	t.Chdir(t.TempDir())

	if ConfigExists() {
		t.Fatal("ConfigExists() = true in empty dir")
	}
	if _, err := LoadConfig(); !os.IsNotExist(err) {
		t.Errorf("LoadConfig() err = %v, want not-exist", err)
	}

	cfg := Default()
	cfg.Dir = "recordings/jo_box3"
	cfg.Hz = 40
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !ConfigExists() {
		t.Fatal("ConfigExists() = false after Save")
	}
	if _, err := os.Stat(DefaultConfigFile); err != nil {
		t.Fatalf("default file not written: %v", err)
	}

	got, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if *got != *cfg {
		t.Errorf("LoadConfig() = %+v, want %+v", got, cfg)
	}
}
