package config

import (
	"github.com/sdejongh/packcheck/pkg/clean"
	"github.com/sdejongh/packcheck/pkg/models"
)

// Config represents the application configuration
type Config struct {
	Scan    ScanConfig    `yaml:"scan"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// ScanConfig holds scan and cleanup settings
type ScanConfig struct {
	// IncludeHidden includes dot-files and dot-directories in comparisons
	IncludeHidden bool `yaml:"include_hidden"`
	// Delete selects the deletion policy: never, interactive or always
	Delete string `yaml:"delete"`
	// DryRun reports what would be deleted without deleting
	DryRun bool `yaml:"dry_run"`
}

// OutputConfig holds output-related settings
type OutputConfig struct {
	Format   string `yaml:"format"`   // "human" or "json"
	Progress bool   `yaml:"progress"` // Show progress bar during scans
	Quiet    bool   `yaml:"quiet"`    // Suppress non-error output
}

// LoggingConfig holds logging-related settings
type LoggingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Format  string `yaml:"format"` // "json" or "text"
	Level   string `yaml:"level"`  // "debug", "info", "warn", "error"
	File    string `yaml:"file"`   // Log file path (empty = disabled)
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Scan: ScanConfig{
			IncludeHidden: false,
			Delete:        string(clean.ModeNever),
			DryRun:        false,
		},
		Output: OutputConfig{
			Format:   "human",
			Progress: true,
			Quiet:    false,
		},
		Logging: LoggingConfig{
			Enabled: true,
			Format:  "json",
			Level:   "info",
			File:    "",
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if _, err := clean.ParseMode(c.Scan.Delete); err != nil {
		return &models.ValidationError{
			Field:   "scan.delete",
			Message: "must be 'never', 'interactive' or 'always'",
		}
	}

	validFormats := map[string]bool{"human": true, "json": true}
	if !validFormats[c.Output.Format] {
		return &models.ValidationError{
			Field:   "output.format",
			Message: "must be 'human' or 'json'",
		}
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		return &models.ValidationError{
			Field:   "logging.format",
			Message: "must be 'json' or 'text'",
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return &models.ValidationError{
			Field:   "logging.level",
			Message: "must be 'debug', 'info', 'warn', or 'error'",
		}
	}

	return nil
}
