// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"perfrun-cli/pkg/perffile"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// DefaultIterations is the number of timed exercise runs when the
// configuration does not say otherwise.
const DefaultIterations = 10

// ErrMissingDep is the sentinel error wrapped when a declared dependency
// tool is not on PATH.
var ErrMissingDep = errors.New("missing dependency")

// BenchmarkRunner is the live environment able to execute Commands against
// a target tree, optionally comparing against a baseline tree. One instance
// exists per distinct configuration; see Factory.
type BenchmarkRunner struct {
	Target   string
	Baseline string
	Extras   []string
	Deps     []string
	Control  string

	// Iterations is the number of timed exercise runs per measurement.
	Iterations int
}

// NewBenchmarkRunner builds a runner from the specification fields it
// recognizes (target, baseline, extras, deps, control); unrecognized fields
// are ignored.
func NewBenchmarkRunner(spec perffile.Spec, opts Options) *BenchmarkRunner {
	iterations := opts.Iterations
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	return &BenchmarkRunner{
		Target:     spec.String(perffile.KeyTarget),
		Baseline:   spec.String(perffile.KeyBaseline),
		Extras:     spec.Strings(perffile.KeyExtras),
		Deps:       spec.Strings(perffile.KeyDeps),
		Control:    spec.String(perffile.KeyControl),
		Iterations: iterations,
	}
}

// Run executes the command: warmup once, then the exercise for each timed
// iteration, inside the target directory. When the baseline (or control)
// names a usable directory the measurement repeats there and the result
// carries the comparison. Errors propagate to the caller unchanged in
// meaning; nothing is recorded on the runner itself.
func (r *BenchmarkRunner) Run(ctx context.Context, cmd *Command) (*Result, error) {
	if err := r.checkDeps(); err != nil {
		return nil, err
	}

	target := r.Target
	if target == "" {
		target = "."
	}
	samples, err := r.measure(ctx, target, cmd)
	if err != nil {
		return nil, fmt.Errorf("measure %q in %s: %w", cmd.Name, target, err)
	}
	res := &Result{Samples: samples}

	if dir, ref := r.comparison(); dir != "" {
		base, err := r.measure(ctx, dir, cmd)
		if err != nil {
			return nil, fmt.Errorf("measure %q against %s: %w", cmd.Name, ref, err)
		}
		res.BaselineSamples = base
		res.BaselineRef = ref
	}
	return res, nil
}

// checkDeps verifies every declared dependency tool is on PATH.
func (r *BenchmarkRunner) checkDeps() error {
	for _, dep := range r.Deps {
		if _, err := exec.LookPath(dep); err != nil {
			return fmt.Errorf("%w: %s", ErrMissingDep, dep)
		}
	}
	return nil
}

// comparison resolves the comparison environment: the control value when
// present, the baseline otherwise, and only when it names a directory that
// exists. Baseline preparation beyond that (checkouts, builds) belongs to
// external tooling.
func (r *BenchmarkRunner) comparison() (dir, ref string) {
	ref = r.Baseline
	if r.Control != "" {
		ref = r.Control
	}
	if ref == "" {
		return "", ""
	}
	if info, err := os.Stat(ref); err != nil || !info.IsDir() {
		return "", ""
	}
	return ref, ref
}

// measure runs warmup once and then times Iterations runs of the exercise,
// all inside one interpreter so state set during warmup stays visible.
func (r *BenchmarkRunner) measure(ctx context.Context, dir string, cmd *Command) ([]time.Duration, error) {
	parser := syntax.NewParser()

	var warmup *syntax.File
	if cmd.Warmup != "" {
		prog, err := parser.Parse(strings.NewReader(cmd.Warmup), "warmup")
		if err != nil {
			return nil, fmt.Errorf("parse warmup: %w", err)
		}
		warmup = prog
	}
	exercise, err := parser.Parse(strings.NewReader(cmd.Exercise), "exercise")
	if err != nil {
		return nil, fmt.Errorf("parse exercise: %w", err)
	}

	shell, err := interp.New(
		interp.Dir(dir),
		interp.Env(expand.ListEnviron(r.environ()...)),
		interp.StdIO(nil, io.Discard, io.Discard),
	)
	if err != nil {
		return nil, fmt.Errorf("create interpreter: %w", err)
	}

	if warmup != nil {
		if err := shell.Run(ctx, warmup); err != nil {
			return nil, runErr("warmup", err)
		}
	}

	samples := make([]time.Duration, 0, r.Iterations)
	for i := 0; i < r.Iterations; i++ {
		start := time.Now()
		if err := shell.Run(ctx, exercise); err != nil {
			return nil, runErr("exercise", err)
		}
		samples = append(samples, time.Since(start))
	}
	return samples, nil
}

// environ is the scripts' environment: the process environment plus the
// runner's own context.
func (r *BenchmarkRunner) environ() []string {
	env := os.Environ()
	env = append(env, "PERFRUN_TARGET="+r.Target)
	if len(r.Extras) > 0 {
		env = append(env, "PERFRUN_EXTRAS="+strings.Join(r.Extras, ","))
	}
	return env
}

func runErr(phase string, err error) error {
	var status interp.ExitStatus
	if errors.As(err, &status) {
		return fmt.Errorf("%s exited with status %d", phase, int(status))
	}
	return fmt.Errorf("%s failed: %w", phase, err)
}
