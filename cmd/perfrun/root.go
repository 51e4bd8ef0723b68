// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"perfrun-cli/internal/config"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables debug logging
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "perfrun",
		Short: "A performance experiment runner",
		Long: TitleStyle.Render("perfrun") + SubtitleStyle.Render(" - A performance experiment runner") + `

perfrun discovers performance experiments written as plain shell functions,
splits each into warmup and exercise code, and measures the exercise against
a target tree, optionally comparing with a baseline.

Any function whose name contains "perf" as an underscore- or word-bounded
token is an experiment. Inside the body, the line '# end warmup' separates
one-time setup from the measured code.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Write experiment functions in a *.perf.sh file
  2. Run them with: perfrun run
  3. Compare against a baseline with: perfrun run --baseline <path>

` + SubtitleStyle.Render("Examples:") + `
  perfrun list                   List discovered experiments
  perfrun run                    Run all discovered experiments
  perfrun run bench/io.perf.sh   Run one experiment file
  perfrun config show            Show current configuration`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/perfrun/config.cue)")

	// Add subcommands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(docsCmd)
}

// initRootConfig loads configuration and wires logging verbosity.
func initRootConfig() {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render(err.Error()))
		cfg = config.DefaultConfig()
	}
	if verbose {
		cfg.UI.Verbose = true
	}
	if cfg.UI.Verbose {
		log.SetLevel(log.DebugLevel)
	}
	config.Set(cfg)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
