// SPDX-License-Identifier: MPL-2.0

// Package session owns the per-session experiment registry and the runner
// cache, with explicit init and teardown boundaries matching one run.
package session

import (
	"sync"

	"perfrun-cli/internal/runner"
)

// Session is the context shared by collection, execution and reporting.
// Every Experiment created during the session registers itself here in
// creation order and stays registered regardless of execution outcome, so
// the summary step can drain the registry afterwards.
type Session struct {
	mu          sync.Mutex
	experiments []*Experiment
	runners     *runner.Factory
	closed      bool
}

// New creates a session around the given runner cache.
func New(factory *runner.Factory) *Session {
	return &Session{runners: factory}
}

// Runners returns the session's runner cache.
func (s *Session) Runners() *runner.Factory {
	return s.runners
}

// Experiments returns the registered experiments in creation order.
func (s *Session) Experiments() []*Experiment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Experiment, len(s.experiments))
	copy(out, s.experiments)
	return out
}

// Close clears the runner cache, destroying every cached runner reference.
// It runs unconditionally at end of session and is safe to call more than
// once; only the first call clears.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.runners.ClearAll()
}

func (s *Session) register(e *Experiment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.experiments = append(s.experiments, e)
}
