package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sdejongh/packcheck/internal/platform"
	"github.com/sdejongh/packcheck/pkg/clean"
	"github.com/sdejongh/packcheck/pkg/compare"
	"github.com/sdejongh/packcheck/pkg/config"
	"github.com/sdejongh/packcheck/pkg/models"
	"github.com/sdejongh/packcheck/pkg/output"
)

// NewScanCommand creates the scan command
func NewScanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <target>",
		Short: "Find and compare archive-directory duplicate candidates",
		Long: `Scan a directory tree for archives (.zip, .rar, .7z) that have a
same-stem sibling directory, compare each pair structurally, and optionally
delete directories that are identical copies of their archive.

Comparison is structural: member names (Unicode NFC normalized) and sizes.
File content is never hashed.`,
		Args: cobra.ExactArgs(1),
		RunE: runScan,
	}

	cmd.Flags().BoolVar(&scanFlags.IncludeHidden, "include-hidden", false, "include hidden files and directories in comparisons")
	cmd.Flags().StringVar(&scanFlags.Delete, "delete", "never", "deletion policy for identical pairs: never, interactive, always")
	cmd.Flags().BoolVar(&scanFlags.DryRun, "dry-run", false, "report what would be deleted without deleting")
	addOutputFlags(cmd)

	return cmd
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	target := platform.NormalizePath(args[0])

	if err := validateDirectoryArg("target", target); err != nil {
		return err
	}
	if err := validateScanFlags(); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFlagsToConfig(cmd, cfg)

	logger, err := buildLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	comparator := compare.NewComparator(cfg.Scan.IncludeHidden, logger)
	pairs := comparator.FindCandidates(ctx, target)

	report := &models.ScanReport{
		OperationID: uuid.New().String(),
		TargetPath:  target,
		DryRun:      cfg.Scan.DryRun,
		StartTime:   time.Now(),
		Stats:       models.Statistics{PairsFound: len(pairs)},
	}

	formatter, writer := newFormatter(cfg)
	formatter.Start(writer, len(pairs))

	deleteMode, _ := clean.ParseMode(cfg.Scan.Delete)
	cleaner := clean.NewCleaner(clean.NewStrategy(deleteMode, os.Stdin, os.Stderr), cfg.Scan.DryRun, logger)

	for _, pair := range pairs {
		result := comparator.Compare(ctx, pair.ArchivePath, pair.DirectoryPath)
		report.Results = append(report.Results, result)
		report.Stats.PairsCompared++
		formatter.Pair(result)

		if result.Identical {
			report.Stats.PairsIdentical++
		} else {
			report.Stats.PairsDifferent++
			if failed, msg := comparisonFailed(result); failed {
				report.Stats.PairsErrored++
				report.Errors = append(report.Errors, models.ScanError{
					Path:      pair.DirectoryPath,
					Message:   msg,
					Timestamp: time.Now(),
				})
			}
			continue
		}

		if deleteMode == clean.ModeNever {
			continue
		}
		outcome, err := cleaner.Clean(ctx, result)
		if err != nil {
			formatter.Error(err)
			report.Errors = append(report.Errors, models.ScanError{
				Path:      pair.DirectoryPath,
				Message:   err.Error(),
				Timestamp: time.Now(),
			})
			continue
		}
		if outcome.Deleted {
			report.Stats.DirsDeleted++
			report.Stats.BytesReclaimed += outcome.BytesReclaimed
		}
	}

	report.EndTime = time.Now()
	report.Duration = report.EndTime.Sub(report.StartTime)
	report.Status = models.StatusSuccess
	if len(report.Errors) > 0 {
		report.Status = models.StatusPartial
	}

	formatter.Complete(report)

	if scanFlags.DiffReport != "" {
		if err := output.WriteDifferencesReport(report, scanFlags.DiffReport, scanFlags.DiffFormat); err != nil {
			return fmt.Errorf("failed to write differences report: %w", err)
		}
	}

	os.Exit(report.Status.ExitCode())
	return nil
}

// comparisonFailed reports whether a non-identical result stems from a
// comparison error rather than a real structural difference
func comparisonFailed(result *models.ComparisonResult) (bool, string) {
	if len(result.Differences) != 1 {
		return false, ""
	}
	diff := result.Differences[0]
	if strings.HasPrefix(diff, "Comparison failed:") {
		return true, diff
	}
	return false, ""
}

// newFormatter selects the output formatter from the configuration
func newFormatter(cfg *config.Config) (output.Formatter, io.Writer) {
	var writer io.Writer = os.Stdout
	if cfg.Output.Quiet {
		writer = nil
	}

	switch {
	case cfg.Output.Format == "json":
		return output.NewJSONFormatter(), writer
	case cfg.Output.Progress && !cfg.Output.Quiet:
		return output.NewProgressFormatter(), writer
	default:
		return output.NewHumanFormatter(), writer
	}
}
