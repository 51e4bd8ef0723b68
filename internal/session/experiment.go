// SPDX-License-Identifier: MPL-2.0

package session

import (
	"context"
	"fmt"

	"perfrun-cli/internal/runner"
	"perfrun-cli/pkg/perffile"
)

// Experiment is one collected, executable performance-test unit. It owns
// its specification and derived command; the runner is shared, resolved
// lazily through the session's cache at execution time. An experiment is
// created during collection, executed at most once, and retained by the
// session registry for reporting.
type Experiment struct {
	Name string
	Spec perffile.Spec
	// Command is derived from the spec fields its constructor recognizes.
	Command *runner.Command
	// Results is set by a successful Run; a nil Results means the
	// experiment has not executed.
	Results *runner.Result

	session *Session
}

// NewExperiment builds the experiment's command from the specification and
// registers the experiment with the session, regardless of whether it will
// later execute or fail.
func NewExperiment(name string, spec perffile.Spec, s *Session) *Experiment {
	e := &Experiment{
		Name:    name,
		Spec:    spec,
		Command: runner.NewCommand(spec),
		session: s,
	}
	s.register(e)
	return e
}

// Runner resolves the experiment's benchmark runner through the session
// cache, constructing it on first use for this configuration.
func (e *Experiment) Runner() *runner.BenchmarkRunner {
	return e.session.Runners().Get(e.Spec)
}

// Run executes the experiment and stores its results. Errors are not
// caught here; the surrounding harness records them as this experiment's
// failure without touching its siblings.
func (e *Experiment) Run(ctx context.Context) error {
	res, err := e.Runner().Run(ctx, e.Command)
	if err != nil {
		return err
	}
	e.Results = res
	return nil
}

// Executed reports whether results have been recorded. The rule is "has
// Results been set", not "is Results non-empty": an empty result from a
// successful run still counts.
func (e *Experiment) Executed() bool {
	return e.Results != nil
}

// String renders the reporting line. It is meaningful only after the
// experiment has executed.
func (e *Experiment) String() string {
	return fmt.Sprintf("%s: %s", e.Name, e.Results)
}
