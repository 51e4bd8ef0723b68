// SPDX-License-Identifier: MPL-2.0

package results

import (
	"path/filepath"
	"testing"
	"time"

	"perfrun-cli/internal/runner"
	"perfrun-cli/internal/session"
	"perfrun-cli/pkg/perffile"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "history", "runs.toml"))
	if err != nil {
		t.Fatalf("NewStore() error: %v", err)
	}
	return s
}

func TestStore_LoadMissingFile(t *testing.T) {
	s := testStore(t)
	runs, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("Load() = %d runs, want 0 for a fresh store", len(runs))
	}
}

func TestStore_AppendAndLoad(t *testing.T) {
	s := testStore(t)
	when := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	first := Run{Name: "a", Target: ".", Summary: "1ms ± 0s", Mean: time.Millisecond, Iterations: 3, RecordedAt: when}
	if err := s.Append(first); err != nil {
		t.Fatalf("Append() error: %v", err)
	}
	if err := s.Append(Run{Name: "b", Target: ".", RecordedAt: when}); err != nil {
		t.Fatalf("Append() error: %v", err)
	}

	runs, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Load() = %d runs, want 2", len(runs))
	}
	if runs[0].Name != "a" || runs[1].Name != "b" {
		t.Errorf("Load() order = %q,%q, want a,b", runs[0].Name, runs[1].Name)
	}
	if runs[0].Mean != time.Millisecond {
		t.Errorf("Mean = %v, want 1ms", runs[0].Mean)
	}
}

func TestFromExperiments_SkipsUnexecuted(t *testing.T) {
	sess := session.New(runner.NewFactory(runner.Options{}))
	spec := perffile.Spec{
		perffile.KeyName:     "t",
		perffile.KeyTarget:   ".",
		perffile.KeyBaseline: "",
		perffile.KeyExercise: "x=1\n",
	}
	done := session.NewExperiment("done", spec, sess)
	done.Results = &runner.Result{Samples: []time.Duration{time.Millisecond}}
	session.NewExperiment("pending", spec, sess)

	runs := FromExperiments(sess.Experiments(), time.Now())
	if len(runs) != 1 {
		t.Fatalf("FromExperiments() = %d runs, want 1", len(runs))
	}
	if runs[0].Name != "done" || runs[0].Iterations != 1 {
		t.Errorf("FromExperiments()[0] = %+v, want the executed experiment", runs[0])
	}
}
