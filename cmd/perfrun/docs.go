// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

//go:embed usage.md
var usageDoc string

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Show the experiment-writing guide",
	Long:  "Render the guide to writing and running performance experiments.",
	RunE: func(cmd *cobra.Command, args []string) error {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(100),
		)
		if err != nil {
			return fmt.Errorf("failed to create renderer: %w", err)
		}

		rendered, err := renderer.Render(usageDoc)
		if err != nil {
			return fmt.Errorf("failed to render docs: %w", err)
		}

		fmt.Fprint(cmd.OutOrStdout(), rendered)
		return nil
	},
}
