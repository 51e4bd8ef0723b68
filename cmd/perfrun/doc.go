// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for perfrun.
//
// This package implements the Cobra command hierarchy: the root command,
// the run/list subcommands that drive experiment collection and execution,
// and the config and docs utilities.
package cmd
