// SPDX-License-Identifier: MPL-2.0

package perffile

import (
	"os"
	"path/filepath"
	"testing"
)

// writeModule writes content to a temp experiment file and returns its path.
func writeModule(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestPerfPattern(t *testing.T) {
	tests := []struct {
		name     string
		eligible bool
	}{
		{"run_perf_test", true},
		{"perf", true},
		{"do_perf", true},
		{"perf_import", true},
		{"my_perf_thing", true},
		{"performance", false},
		{"perfect", false},
		{"superperf", false},
		{"noperfhere", false},
		{"PERF", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := perfPattern.MatchString(tt.name); got != tt.eligible {
				t.Errorf("perfPattern.MatchString(%q) = %v, want %v", tt.name, got, tt.eligible)
			}
		})
	}
}

func TestLoadModule(t *testing.T) {
	path := writeModule(t, "sample.perf.sh", "thing_perf() {\n\tmeasure\n}\n")

	mod := LoadModule(path)
	if mod == nil {
		t.Fatal("LoadModule() returned nil for a valid file")
	}
	if len(mod.Funcs()) != 1 {
		t.Fatalf("Funcs() = %d functions, want 1", len(mod.Funcs()))
	}
	if got := mod.Funcs()[0].Name; got != "thing_perf" {
		t.Errorf("Name = %q, want thing_perf", got)
	}
}

func TestLoadModule_MissingFile(t *testing.T) {
	if mod := LoadModule(filepath.Join(t.TempDir(), "nope.perf.sh")); mod != nil {
		t.Errorf("LoadModule() = %v, want nil for a missing file", mod)
	}
}

func TestLoadModule_SyntaxError(t *testing.T) {
	path := writeModule(t, "bad.perf.sh", "thing_perf() {\n\tcase\n")
	if mod := LoadModule(path); mod != nil {
		t.Errorf("LoadModule() = %v, want nil for a broken file", mod)
	}
}

func TestModule_Name(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"bench/widgets.perf.sh", "bench.widgets.perf"},
		{"exercises.sh", "exercises"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			m := &Module{Path: tt.path}
			if got := m.Name(); got != tt.want {
				t.Errorf("Name() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPerfFuncs_FiltersByName(t *testing.T) {
	path := writeModule(t, "mixed.perf.sh", `helper() {
	true
}

run_perf() {
	measure
}

performance() {
	not_an_experiment
}
`)

	mod := LoadModule(path)
	if mod == nil {
		t.Fatal("LoadModule() returned nil")
	}
	perf := mod.PerfFuncs()
	if len(perf) != 1 {
		t.Fatalf("PerfFuncs() = %d functions, want 1", len(perf))
	}
	if perf[0].Name != "run_perf" {
		t.Errorf("PerfFuncs()[0].Name = %q, want run_perf", perf[0].Name)
	}
}

func TestFuncsFromName_BrokenModule(t *testing.T) {
	path := writeModule(t, "broken.perf.sh", "this is not ( valid shell\n")
	if funcs := FuncsFromName(path); len(funcs) != 0 {
		t.Errorf("FuncsFromName() = %d functions, want 0 for a broken module", len(funcs))
	}
}

func TestFunc_DocAndDirectives(t *testing.T) {
	path := writeModule(t, "doc.perf.sh", `# Widget timing
# takes a while on cold caches
# perf:extras tracing probes
# perf:deps jq curl
# perf:control v1.2.0
thing_perf() {
	measure
}
`)

	mod := LoadModule(path)
	if mod == nil {
		t.Fatal("LoadModule() returned nil")
	}
	f := mod.Funcs()[0]

	if want := "Widget timing\ntakes a while on cold caches"; f.Doc != want {
		t.Errorf("Doc = %q, want %q", f.Doc, want)
	}
	if !f.HasExtras || len(f.Extras) != 2 || f.Extras[0] != "tracing" || f.Extras[1] != "probes" {
		t.Errorf("Extras = %v (present=%v), want [tracing probes]", f.Extras, f.HasExtras)
	}
	if !f.HasDeps || len(f.Deps) != 2 || f.Deps[0] != "jq" || f.Deps[1] != "curl" {
		t.Errorf("Deps = %v (present=%v), want [jq curl]", f.Deps, f.HasDeps)
	}
	if !f.HasControl || f.Control != "v1.2.0" {
		t.Errorf("Control = %q (present=%v), want v1.2.0", f.Control, f.HasControl)
	}
}

func TestFunc_EmptyDirectiveIsPresent(t *testing.T) {
	path := writeModule(t, "empty.perf.sh", `# perf:deps
thing_perf() {
	measure
}
`)

	f := LoadModule(path).Funcs()[0]
	if !f.HasDeps {
		t.Error("HasDeps = false, want true for a bare perf:deps directive")
	}
	if len(f.Deps) != 0 {
		t.Errorf("Deps = %v, want empty", f.Deps)
	}
}

func TestFunc_NoDirectives(t *testing.T) {
	path := writeModule(t, "plain.perf.sh", "thing_perf() {\n\tmeasure\n}\n")

	f := LoadModule(path).Funcs()[0]
	if f.HasExtras || f.HasDeps || f.HasControl {
		t.Errorf("directive presence = %v/%v/%v, want all absent",
			f.HasExtras, f.HasDeps, f.HasControl)
	}
	if f.Doc != "" {
		t.Errorf("Doc = %q, want empty", f.Doc)
	}
}

func TestFunc_DocMustBeContiguous(t *testing.T) {
	path := writeModule(t, "gap.perf.sh", `# stray remark

thing_perf() {
	measure
}
`)

	f := LoadModule(path).Funcs()[0]
	if f.Doc != "" {
		t.Errorf("Doc = %q, want empty when a blank line separates the comment", f.Doc)
	}
}
