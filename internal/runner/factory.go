// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"fmt"
	"strings"
	"sync"

	"perfrun-cli/pkg/perffile"
)

// Options configures runners built by a Factory.
type Options struct {
	// Iterations is the number of timed exercise runs; <= 0 selects
	// DefaultIterations.
	Iterations int
}

// runnerFields are the specification fields the BenchmarkRunner constructor
// accepts, in canonical key order.
var runnerFields = []string{
	perffile.KeyTarget,
	perffile.KeyBaseline,
	perffile.KeyExtras,
	perffile.KeyDeps,
	perffile.KeyControl,
}

// Factory memoizes BenchmarkRunner construction. Two Get calls whose
// specifications agree on every runner-accepted field yield the identical
// instance; ClearAll forgets every instance so the next Get constructs
// fresh. Runners can be expensive (a prepared baseline tree), so one per
// configuration is shared across all experiments in a session.
type Factory struct {
	mu      sync.Mutex
	opts    Options
	runners map[string]*BenchmarkRunner
}

// NewFactory creates an empty runner cache.
func NewFactory(opts Options) *Factory {
	return &Factory{
		opts:    opts,
		runners: make(map[string]*BenchmarkRunner),
	}
}

// Get returns the runner for the specification's accepted fields,
// constructing and caching it on first use. The read-check-insert sequence
// is one atomic unit.
func (f *Factory) Get(spec perffile.Spec) *BenchmarkRunner {
	key := runnerKey(spec)

	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.runners[key]; ok {
		return r
	}
	r := NewBenchmarkRunner(spec, f.opts)
	f.runners[key] = r
	return r
}

// Len returns the number of live cached runners.
func (f *Factory) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.runners)
}

// ClearAll discards every cached instance. The cache holds no teardown
// logic of its own; it only forgets the references.
func (f *Factory) ClearAll() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runners = make(map[string]*BenchmarkRunner)
}

// runnerKey derives the cache key from the accepted fields. Presence is
// part of the key: an absent field and an empty one are distinct
// configurations.
func runnerKey(spec perffile.Spec) string {
	var b strings.Builder
	for _, field := range runnerFields {
		if !spec.Has(field) {
			continue
		}
		fmt.Fprintf(&b, "%s=%q;", field, spec[field])
	}
	return b.String()
}
