package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte("{}"), "chainlang.yaml")
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Engine.MaxCallDepth != DefaultMaxCallDepth {
		t.Errorf("MaxCallDepth = %d, want %d", cfg.Engine.MaxCallDepth, DefaultMaxCallDepth)
	}
	if cfg.Store.Driver != "sqlite" || cfg.Log.Level != "info" || cfg.Log.Format != "console" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestParseConfigValues(t *testing.T) {
	data := []byte(`
engine:
  max_call_depth: 32
log:
  level: debug
  format: json
metrics:
  enabled: true
  namespace: docs
store:
  driver: bolt
  path: data/docs.bolt
`)
	cfg, err := ParseConfig(data, "chainlang.yaml")
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Engine.MaxCallDepth != 32 || cfg.Log.Level != "debug" || cfg.Store.Driver != "bolt" || !cfg.Metrics.Enabled {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestParseConfigRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"bad driver", "store:\n  driver: postgres\n", "Driver"},
		{"bad level", "log:\n  level: loud\n", "Level"},
		{"negative depth", "engine:\n  max_call_depth: -1\n", "MaxCallDepth"},
		{"malformed yaml", "engine: [", "parsing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.data), "chainlang.yaml")
			if err == nil {
				t.Fatalf("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestFindAndLoadConfig(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	cfgPath := filepath.Join(root, "chainlang.yaml")
	if err := os.WriteFile(cfgPath, []byte("store:\n  path: docs.db\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	found, err := FindConfig(nested)
	if err != nil {
		t.Fatalf("FindConfig: %v", err)
	}
	if found != cfgPath {
		t.Fatalf("FindConfig = %q, want %q", found, cfgPath)
	}

	cfg, err := Resolve("", nested)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.Store.Path != filepath.Join(root, "docs.db") {
		t.Errorf("store path = %q, want it relative to the config file", cfg.Store.Path)
	}
}
