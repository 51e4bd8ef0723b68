// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"time"

	"perfrun-cli/internal/config"
	"perfrun-cli/internal/discovery"
	"perfrun-cli/internal/results"
	"perfrun-cli/internal/runner"
	"perfrun-cli/internal/session"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	runTarget     string
	runBaseline   string
	runIterations int
	runSave       string
)

var runCmd = &cobra.Command{
	Use:   "run [files...]",
	Short: "Run performance experiments",
	Long: `Run performance experiments.

With no arguments, experiment files are discovered from the current
directory and the configured search paths. Each perf-tagged function is
collected into one experiment; warmup code runs once, exercise code runs
for the configured number of timed iterations.

One experiment's failure never prevents its siblings from running.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExperiments(cmd, args)
	},
}

func init() {
	runCmd.Flags().StringVarP(&runTarget, "target", "t", "", "directory or distribution file the experiments run against")
	runCmd.Flags().StringVarP(&runBaseline, "baseline", "b", "", "path or URL of the tree used as a performance comparison")
	runCmd.Flags().IntVarP(&runIterations, "iterations", "n", 0, "timed exercise runs per experiment (default from config)")
	runCmd.Flags().StringVar(&runSave, "save", "", "append executed results to a TOML history file")
}

// runOverrides applies flag overrides on a copy of the configuration.
func runOverrides(cmd *cobra.Command) *config.Config {
	cfg := *config.Get()
	if cmd.Flags().Changed("target") {
		cfg.Target = runTarget
	}
	if cmd.Flags().Changed("baseline") {
		cfg.Baseline = runBaseline
	}
	if cmd.Flags().Changed("iterations") {
		cfg.Iterations = runIterations
	}
	return &cfg
}

func runExperiments(cmd *cobra.Command, args []string) error {
	cfg := runOverrides(cmd)
	disc := discovery.New(cfg)

	paths := args
	if len(paths) == 0 {
		paths = disc.DiscoverAll()
	}

	sess := session.New(runner.NewFactory(runner.Options{Iterations: cfg.Iterations}))
	// Teardown is unconditional: the runner cache is cleared at end of
	// session whether or not anything ran or failed.
	defer sess.Close()

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	failures := 0

	for _, path := range paths {
		collected, err := disc.Collect(sess, path)
		if err != nil {
			failures++
			fmt.Fprintln(errOut, ErrorStyle.Render(fmt.Sprintf("collect %s: %v", path, err)))
		}
		log.Debug("collected", "file", path, "experiments", len(collected))
	}

	experiments := sess.Experiments()
	if len(experiments) == 0 {
		fmt.Fprintln(out, SubtitleStyle.Render("no experiments found"))
		if failures > 0 {
			return &ExitError{Code: 1}
		}
		return nil
	}

	for _, e := range experiments {
		log.Debug("running", "experiment", e.Name)
		if err := e.Run(cmd.Context()); err != nil {
			failures++
			fmt.Fprintln(errOut, ErrorStyle.Render(fmt.Sprintf("%s: %v", e.Name, err)))
		}
	}

	printSummary(out, experiments)

	if runSave != "" {
		if err := saveResults(runSave, experiments); err != nil {
			return fmt.Errorf("save results: %w", err)
		}
		fmt.Fprintln(out, SubtitleStyle.Render("results saved to "+runSave))
	}

	if failures > 0 {
		return &ExitError{Code: 1}
	}
	return nil
}

// printSummary renders the perf section from the session registry in
// creation order. Experiments that never executed are left out.
func printSummary(out io.Writer, experiments []*session.Experiment) {
	executed := experiments[:0:0]
	for _, e := range experiments {
		if e.Executed() {
			executed = append(executed, e)
		}
	}
	if len(executed) == 0 {
		return
	}

	fmt.Fprintln(out, TitleStyle.Render("perf"))
	for _, e := range executed {
		fmt.Fprintln(out, e.String())
	}
}

func saveResults(path string, experiments []*session.Experiment) error {
	store, err := results.NewStore(path)
	if err != nil {
		return err
	}
	return store.Append(results.FromExperiments(experiments, time.Now())...)
}
