package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sdejongh/packcheck/internal/platform"
	"github.com/sdejongh/packcheck/pkg/clean"
	"github.com/sdejongh/packcheck/pkg/config"
	"github.com/sdejongh/packcheck/pkg/logging"
)

// validateDirectoryArg checks that the given path exists and is a directory
func validateDirectoryArg(label, path string) error {
	if err := platform.ValidatePath(path); err != nil {
		return err
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("%s path does not exist: %s", label, path)
	}
	if err != nil {
		return fmt.Errorf("failed to access %s path: %w", label, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s path is not a directory: %s", label, path)
	}

	return nil
}

// validateArchiveArg checks that the given path exists and is a regular file
func validateArchiveArg(path string) error {
	if err := platform.ValidatePath(path); err != nil {
		return err
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("archive path does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("failed to access archive path: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("archive path is a directory: %s", path)
	}

	return nil
}

// validateScanFlags validates the scan command flags
func validateScanFlags() error {
	if _, err := clean.ParseMode(scanFlags.Delete); err != nil {
		return err
	}

	validOutputs := map[string]bool{"human": true, "json": true}
	if !validOutputs[scanFlags.Output] {
		return fmt.Errorf("invalid output format: %s (valid: human, json)", scanFlags.Output)
	}

	validDiffFormats := map[string]bool{"human": true, "json": true}
	if !validDiffFormats[scanFlags.DiffFormat] {
		return fmt.Errorf("invalid diff-report format: %s (valid: human, json)", scanFlags.DiffFormat)
	}

	return nil
}

// loadConfig loads the configuration from the --config flag or the default
// location
func loadConfig() (*config.Config, error) {
	if globalFlags.ConfigFile != "" {
		return config.LoadFromFile(globalFlags.ConfigFile)
	}
	return config.LoadDefault()
}

// applyFlagsToConfig overrides config values with command-line flags.
// Only flags the user actually set override the config file; defaults
// must not clobber file-provided values.
func applyFlagsToConfig(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("include-hidden") {
		cfg.Scan.IncludeHidden = scanFlags.IncludeHidden
	}
	if flags.Changed("delete") {
		cfg.Scan.Delete = scanFlags.Delete
	}
	if flags.Changed("dry-run") {
		cfg.Scan.DryRun = scanFlags.DryRun
	}
	if flags.Changed("output") {
		cfg.Output.Format = scanFlags.Output
	}
	if globalFlags.Quiet {
		cfg.Output.Quiet = true
		cfg.Output.Progress = false
	}
}

// buildLogger creates the logger configured by the config file and the
// --verbose flag
func buildLogger(cfg *config.Config) (logging.Logger, error) {
	if globalFlags.Verbose {
		return logging.NewConsoleLogger(logging.DebugLevel), nil
	}

	if !cfg.Logging.Enabled || cfg.Logging.File == "" {
		return logging.NewNullLogger(), nil
	}

	return logging.NewFileLogger(logging.FileLoggerConfig{
		Path:   cfg.Logging.File,
		Format: logging.Format(cfg.Logging.Format),
		Level:  logging.ParseLevel(cfg.Logging.Level),
	})
}
