// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"perfrun-cli/internal/config"
	"perfrun-cli/internal/discovery"
	"perfrun-cli/internal/runner"
	"perfrun-cli/internal/session"
	"perfrun-cli/pkg/perffile"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list [files...]",
	Short: "List discovered experiments without running them",
	RunE: func(cmd *cobra.Command, args []string) error {
		return listExperiments(cmd, args)
	},
}

func listExperiments(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	disc := discovery.New(cfg)

	paths := args
	if len(paths) == 0 {
		paths = disc.DiscoverAll()
	}

	sess := session.New(runner.NewFactory(runner.Options{Iterations: cfg.Iterations}))
	defer sess.Close()

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	failures := 0

	for _, path := range paths {
		if _, err := disc.Collect(sess, path); err != nil {
			failures++
			fmt.Fprintln(errOut, ErrorStyle.Render(fmt.Sprintf("collect %s: %v", path, err)))
		}
	}

	experiments := sess.Experiments()
	if len(experiments) == 0 {
		fmt.Fprintln(out, SubtitleStyle.Render("no experiments found"))
	}

	for _, e := range experiments {
		fmt.Fprintln(out, NameStyle.Render(e.Name))
		if deps := e.Spec.Strings(perffile.KeyDeps); len(deps) > 0 {
			fmt.Fprintf(out, "  deps: %s\n", strings.Join(deps, ", "))
		}
		if extras := e.Spec.Strings(perffile.KeyExtras); len(extras) > 0 {
			fmt.Fprintf(out, "  extras: %s\n", strings.Join(extras, ", "))
		}
		if e.Spec.Has(perffile.KeyWarmup) {
			fmt.Fprintln(out, "  warmup: yes")
		}
	}

	if failures > 0 {
		return &ExitError{Code: 1}
	}
	return nil
}
