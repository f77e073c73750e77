package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Scan.Delete != "never" {
		t.Errorf("Scan.Delete = %s, want never", cfg.Scan.Delete)
	}
	if cfg.Scan.IncludeHidden {
		t.Error("Scan.IncludeHidden = true, want false")
	}
	if cfg.Output.Format != "human" {
		t.Errorf("Output.Format = %s, want human", cfg.Output.Format)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"delete mode always", func(c *Config) { c.Scan.Delete = "always" }, ""},
		{"bad delete mode", func(c *Config) { c.Scan.Delete = "sometimes" }, "scan.delete"},
		{"bad output format", func(c *Config) { c.Output.Format = "xml" }, "output.format"},
		{"bad log format", func(c *Config) { c.Logging.Format = "csv" }, "logging.format"},
		{"bad log level", func(c *Config) { c.Logging.Level = "trace" }, "logging.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Scan.IncludeHidden = true
	cfg.Scan.Delete = "interactive"
	cfg.Output.Format = "json"
	cfg.Logging.Level = "debug"

	if err := SaveToFile(cfg, path); err != nil {
		t.Fatalf("SaveToFile failed: %v", err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if !loaded.Scan.IncludeHidden {
		t.Error("IncludeHidden lost in round trip")
	}
	if loaded.Scan.Delete != "interactive" {
		t.Errorf("Delete = %s, want interactive", loaded.Scan.Delete)
	}
	if loaded.Output.Format != "json" {
		t.Errorf("Format = %s, want json", loaded.Output.Format)
	}
	if loaded.Logging.Level != "debug" {
		t.Errorf("Level = %s, want debug", loaded.Logging.Level)
	}
}

func TestLoadFromFile_PartialOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "scan:\n  include_hidden: true\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if !cfg.Scan.IncludeHidden {
		t.Error("IncludeHidden = false, want true from file")
	}
	// Unset fields keep their defaults
	if cfg.Scan.Delete != "never" {
		t.Errorf("Delete = %s, want default never", cfg.Scan.Delete)
	}
	if cfg.Output.Format != "human" {
		t.Errorf("Format = %s, want default human", cfg.Output.Format)
	}
}

func TestLoadFromFile_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadFromFile("/nonexistent/config.yaml"); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte("scan: [unclosed"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		if _, err := LoadFromFile(path); err == nil {
			t.Error("expected error for malformed yaml")
		}
	})

	t.Run("invalid values", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte("scan:\n  delete: sometimes\n"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		if _, err := LoadFromFile(path); err == nil {
			t.Error("expected validation error")
		}
	})
}

func TestSaveToFile_RejectsInvalid(t *testing.T) {
	cfg := Default()
	cfg.Output.Format = "xml"

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := SaveToFile(cfg, path); err == nil {
		t.Error("expected validation error")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("invalid config must not be written")
	}
}
