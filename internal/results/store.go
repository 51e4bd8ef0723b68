// SPDX-License-Identifier: MPL-2.0

// Package results persists executed experiment summaries so runs can be
// reviewed and compared later.
package results

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"perfrun-cli/internal/session"
	"perfrun-cli/pkg/perffile"

	"github.com/pelletier/go-toml/v2"
)

// Run is one saved experiment execution.
type Run struct {
	Name       string        `toml:"name"`
	Target     string        `toml:"target"`
	Baseline   string        `toml:"baseline,omitempty"`
	Summary    string        `toml:"summary"`
	Mean       time.Duration `toml:"mean"`
	Iterations int           `toml:"iterations"`
	RecordedAt time.Time     `toml:"recorded_at"`
}

// document is the TOML file layout: a [[run]] table per entry.
type document struct {
	Runs []Run `toml:"run"`
}

// Store reads and appends runs in a single TOML file.
type Store struct {
	path string
}

// NewStore opens a store at path, creating parent directories as needed.
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create results directory: %w", err)
	}
	return &Store{path: path}, nil
}

// Load returns every saved run; a missing file is an empty history.
func (s *Store) Load() ([]Run, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse results file %s: %w", s.path, err)
	}
	return doc.Runs, nil
}

// Append adds runs to the history.
func (s *Store) Append(runs ...Run) error {
	existing, err := s.Load()
	if err != nil {
		return err
	}
	doc := document{Runs: append(existing, runs...)}
	data, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	return os.WriteFile(s.path, data, 0o644)
}

// FromExperiments converts the executed experiments of a session into runs.
// Experiments that never executed are skipped.
func FromExperiments(experiments []*session.Experiment, when time.Time) []Run {
	var runs []Run
	for _, e := range experiments {
		if !e.Executed() {
			continue
		}
		runs = append(runs, Run{
			Name:       e.Name,
			Target:     e.Spec.String(perffile.KeyTarget),
			Baseline:   e.Spec.String(perffile.KeyBaseline),
			Summary:    e.Results.String(),
			Mean:       e.Results.Mean(),
			Iterations: len(e.Results.Samples),
			RecordedAt: when,
		})
	}
	return runs
}
