package cli

import (
	"github.com/spf13/cobra"
)

// GlobalFlags holds global flag values
type GlobalFlags struct {
	ConfigFile string
	Verbose    bool
	Quiet      bool
}

// ScanFlags holds scan and compare command flag values
type ScanFlags struct {
	IncludeHidden bool
	Delete        string
	DryRun        bool
	Output        string
	DiffReport    string
	DiffFormat    string
}

var (
	globalFlags GlobalFlags
	scanFlags   = ScanFlags{Delete: "never", Output: "human", DiffFormat: "human"}
)

// AddGlobalFlags adds global flags to the root command
func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(
		&globalFlags.ConfigFile,
		"config",
		"",
		"config file (default is $HOME/.config/packcheck/config.yaml)",
	)
	cmd.PersistentFlags().BoolVarP(
		&globalFlags.Verbose,
		"verbose",
		"v",
		false,
		"verbose output",
	)
	cmd.PersistentFlags().BoolVarP(
		&globalFlags.Quiet,
		"quiet",
		"q",
		false,
		"suppress non-error output",
	)
}

// addOutputFlags adds the output flags shared by scan and compare
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&scanFlags.Output, "output", "o", "human", "output format: human, json")
	cmd.Flags().StringVar(&scanFlags.DiffReport, "diff-report", "", "write differences report to file")
	cmd.Flags().StringVar(&scanFlags.DiffFormat, "diff-format", "human", "differences report format: human, json")
}
