package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Mesh.WeldTolerance != 1e-6 {
		t.Errorf("expected weld tolerance 1e-6, got %g", cfg.Mesh.WeldTolerance)
	}
	if cfg.Decode.ParallelThreshold != 100_000 {
		t.Errorf("expected parallel threshold 100000, got %d", cfg.Decode.ParallelThreshold)
	}
	if cfg.Decode.Workers != 0 {
		t.Errorf("expected workers 0, got %d", cfg.Decode.Workers)
	}
	if cfg.Export.Path != "" {
		t.Errorf("expected empty export path, got %s", cfg.Export.Path)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stlpath.yaml")
	content := `
mesh:
  weld_tolerance: 0.001
export:
  path: out/path.txt
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Mesh.WeldTolerance != 0.001 {
		t.Errorf("expected weld tolerance 0.001, got %g", cfg.Mesh.WeldTolerance)
	}
	if cfg.Export.Path != "out/path.txt" {
		t.Errorf("expected export path out/path.txt, got %s", cfg.Export.Path)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.Logging.Level)
	}

	// Keys missing from the file keep their defaults
	if cfg.Decode.ParallelThreshold != 100_000 {
		t.Errorf("expected default parallel threshold, got %d", cfg.Decode.ParallelThreshold)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("mesh: [not, a, map"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "stlpath.yaml")

	cfg := Default()
	cfg.Mesh.WeldTolerance = 0.05
	cfg.Decode.Workers = 4
	cfg.Logging.LogFile = "/var/log/stlpath.log"

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", *loaded, *cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "zero tolerance", mutate: func(c *Config) { c.Mesh.WeldTolerance = 0 }, wantErr: true},
		{name: "negative tolerance", mutate: func(c *Config) { c.Mesh.WeldTolerance = -1 }, wantErr: true},
		{name: "negative workers", mutate: func(c *Config) { c.Decode.Workers = -2 }, wantErr: true},
		{name: "negative threshold", mutate: func(c *Config) { c.Decode.ParallelThreshold = -1 }, wantErr: true},
		{name: "unknown level", mutate: func(c *Config) { c.Logging.Level = "chatty" }, wantErr: true},
		{name: "warn level", mutate: func(c *Config) { c.Logging.Level = "warn" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestConfigDirXDG(t *testing.T) {
	if os.Getenv("HOME") == "" {
		t.Skip("no home directory")
	}
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir := ConfigDir()
	if filepath.Base(dir) != "stlpath" {
		t.Errorf("expected config dir to end in stlpath, got %s", dir)
	}
}
