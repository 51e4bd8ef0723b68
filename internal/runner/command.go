// SPDX-License-Identifier: MPL-2.0

package runner

import "perfrun-cli/pkg/perffile"

// Command is "what to run" for a single experiment: the warmup code that
// executes once before measurement and the exercise code that executes
// repeatedly under it.
type Command struct {
	Name     string
	Warmup   string
	Exercise string
}

// NewCommand builds a Command from the specification fields it recognizes.
// Unrecognized fields are ignored, not errors.
func NewCommand(spec perffile.Spec) *Command {
	return &Command{
		Name:     spec.String(perffile.KeyName),
		Warmup:   spec.String(perffile.KeyWarmup),
		Exercise: spec.String(perffile.KeyExercise),
	}
}
