package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sdejongh/packcheck/internal/platform"
	"github.com/sdejongh/packcheck/pkg/compare"
	"github.com/sdejongh/packcheck/pkg/models"
	"github.com/sdejongh/packcheck/pkg/output"
)

// NewCompareCommand creates the compare command
func NewCompareCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <archive> <directory>",
		Short: "Compare one archive against one directory",
		Long: `Compare a single archive file with a directory and report whether
the directory is a structural duplicate of the archive contents. Nothing is
ever deleted by this command.`,
		Args: cobra.ExactArgs(2),
		RunE: runCompare,
	}

	cmd.Flags().BoolVar(&scanFlags.IncludeHidden, "include-hidden", false, "include hidden files and directories in the comparison")
	addOutputFlags(cmd)

	return cmd
}

func runCompare(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	archivePath := platform.NormalizePath(args[0])
	directoryPath := platform.NormalizePath(args[1])

	if err := validateArchiveArg(archivePath); err != nil {
		return err
	}
	if err := validateDirectoryArg("directory", directoryPath); err != nil {
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
	// Single-pair comparisons have no use for a progress bar
	cfg.Output.Progress = false

	logger, err := buildLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	comparator := compare.NewComparator(cfg.Scan.IncludeHidden, logger)

	report := &models.ScanReport{
		OperationID: uuid.New().String(),
		TargetPath:  directoryPath,
		StartTime:   time.Now(),
		Stats:       models.Statistics{PairsFound: 1},
	}

	formatter, writer := newFormatter(cfg)
	formatter.Start(writer, 1)

	result := comparator.Compare(ctx, archivePath, directoryPath)
	report.Results = append(report.Results, result)
	report.Stats.PairsCompared = 1
	formatter.Pair(result)

	report.EndTime = time.Now()
	report.Duration = report.EndTime.Sub(report.StartTime)
	if result.Identical {
		report.Stats.PairsIdentical = 1
		report.Status = models.StatusSuccess
	} else {
		report.Stats.PairsDifferent = 1
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
