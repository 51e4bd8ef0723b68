// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"perfrun-cli/internal/config"
	"perfrun-cli/internal/runner"
	"perfrun-cli/internal/session"
	"perfrun-cli/pkg/perffile"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func newSession() *session.Session {
	return session.New(runner.NewFactory(runner.Options{Iterations: 1}))
}

func TestIsCandidate(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"widgets.perf.sh", "anything\n", true},
		{"exercises.sh", "run_perf() {\n\ttrue\n}\n", true},
		{"plain.sh", "echo hello\n", false},
		{"notes.txt", "perf everywhere\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.name, tt.content)
			if got := IsCandidate(path); got != tt.want {
				t.Errorf("IsCandidate(%s) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestDiscoverAll(t *testing.T) {
	searchDir := t.TempDir()
	writeFile(t, searchDir, "widgets.perf.sh", "thing_perf() {\n\ttrue\n}\n")
	writeFile(t, searchDir, "plain.sh", "echo hello\n")

	cfg := config.DefaultConfig()
	cfg.SearchPaths = []string{searchDir}

	files := New(cfg).DiscoverAll()
	found := false
	for _, f := range files {
		if filepath.Base(f) == "widgets.perf.sh" {
			found = true
		}
		if filepath.Base(f) == "plain.sh" {
			t.Error("DiscoverAll() included a non-candidate file")
		}
	}
	if !found {
		t.Error("DiscoverAll() missed widgets.perf.sh in a search path")
	}
}

func TestCollect_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "widgets.perf.sh", `# Widget timing
# perf:deps lib
thing_perf() {
	setup
	# end warmup
	measure
}
`)

	cfg := config.DefaultConfig()
	cfg.Target = "."
	cfg.Baseline = ""

	s := newSession()
	experiments, err := New(cfg).Collect(s, path)
	if err != nil {
		t.Fatalf("Collect() error: %v", err)
	}
	if len(experiments) != 1 {
		t.Fatalf("Collect() = %d experiments, want 1", len(experiments))
	}

	e := experiments[0]
	if want := "widgets.perf.sh:Widget timing"; e.Name != want {
		t.Errorf("Name = %q, want %q", e.Name, want)
	}

	spec := e.Spec
	checks := map[string]any{
		perffile.KeyName:     "Widget timing",
		perffile.KeyTarget:   ".",
		perffile.KeyBaseline: "",
		perffile.KeyWarmup:   "setup\n",
		perffile.KeyExercise: "measure\n",
	}
	for key, want := range checks {
		if got := spec[key]; got != want {
			t.Errorf("spec[%q] = %#v, want %#v", key, got, want)
		}
	}
	if deps := spec.Strings(perffile.KeyDeps); len(deps) != 1 || deps[0] != "lib" {
		t.Errorf("spec deps = %v, want [lib]", deps)
	}
	if spec.Has(perffile.KeyExtras) || spec.Has(perffile.KeyControl) {
		t.Error("extras/control present, want absent")
	}
}

func TestCollect_BrokenModuleYieldsNothing(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "broken.perf.sh", "not ( valid shell\n")

	s := newSession()
	experiments, err := New(config.DefaultConfig()).Collect(s, path)
	if err != nil {
		t.Errorf("Collect() error = %v, want silent skip", err)
	}
	if len(experiments) != 0 {
		t.Errorf("Collect() = %d experiments, want 0", len(experiments))
	}
}

func TestCollect_MultipleFunctions(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "multi.perf.sh", `first_perf() {
	a=1
}

second_perf() {
	b=2
}

helper() {
	true
}
`)

	s := newSession()
	experiments, err := New(config.DefaultConfig()).Collect(s, path)
	if err != nil {
		t.Fatalf("Collect() error: %v", err)
	}
	if len(experiments) != 2 {
		t.Errorf("Collect() = %d experiments, want 2", len(experiments))
	}
	if got := len(s.Experiments()); got != 2 {
		t.Errorf("session registry = %d experiments, want 2", got)
	}
}
