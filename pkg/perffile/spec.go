// SPDX-License-Identifier: MPL-2.0

package perffile

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// Spec field keys. Optional fields encode optionality by key presence, not
// by nil values, so consuming constructors can apply their own defaults.
const (
	KeyName     = "name"
	KeyTarget   = "target"
	KeyBaseline = "baseline"
	KeyExtras   = "extras"
	KeyDeps     = "deps"
	KeyControl  = "control"
	KeyWarmup   = "warmup"
	KeyExercise = "exercise"
)

// ErrNoSource is the sentinel error wrapped when a function's source text
// cannot be retrieved during specification building.
var ErrNoSource = errors.New("function source unavailable")

// Spec is an experiment specification: a mapping from field keys to values.
// "exercise" is always present; "warmup", "extras", "deps" and "control"
// appear only when derivable.
type Spec map[string]any

// Has reports whether the field is present.
func (s Spec) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// String returns the field as a string, or "" when absent or not a string.
func (s Spec) String(key string) string {
	v, _ := s[key].(string)
	return v
}

// Strings returns the field as a string sequence, or nil when absent.
func (s Spec) Strings(key string) []string {
	v, _ := s[key].([]string)
	return v
}

// SpecFromFunc builds the experiment specification for one discovered
// function:
//
//   - name: first non-blank stripped line of the doc text, else the bare
//     function name
//   - extras, deps, control: included verbatim iff the directive exists
//   - warmup, exercise: the dedented body split at the last "# end warmup"
//     line
//
// A function with no retrievable source is a fatal extraction error for
// that one function and propagates to the caller.
func SpecFromFunc(f *Func) (Spec, error) {
	if f.Source == "" {
		return nil, fmt.Errorf("build spec for %q: %w", f.Name, ErrNoSource)
	}

	spec := Spec{}
	if name := firstLine(f.Doc); name != "" {
		spec[KeyName] = name
	} else {
		spec[KeyName] = f.Name
	}
	if f.HasExtras {
		spec[KeyExtras] = slices.Clone(f.Extras)
	}
	if f.HasDeps {
		spec[KeyDeps] = slices.Clone(f.Deps)
	}
	if f.HasControl {
		spec[KeyControl] = f.Control
	}

	body := functionBody(f.Source)
	warmup, exercise, found := splitWarmup(dedent(body))
	if found && warmup != "" {
		spec[KeyWarmup] = warmup
	}
	spec[KeyExercise] = exercise
	return spec, nil
}

// firstLine returns the first stripped non-empty line of text, or "".
func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}

// functionBody partitions the declaration source at the first brace-newline
// (header from body, the way the opening brace separates a function's
// introducer from its contents) and drops the closing-brace line.
func functionBody(source string) string {
	_, body, ok := strings.Cut(source, "{\n")
	if !ok {
		return ""
	}
	// The source ends at the closing brace; strip it together with any
	// indentation on its line.
	if i := strings.LastIndex(body, "\n"); i >= 0 && strings.TrimSpace(body[i+1:]) == "}" {
		return body[:i+1]
	}
	return strings.TrimSuffix(body, "}")
}

// warmupMarker is the sole syntax separating warmup from exercise code.
const warmupMarker = "# end warmup"

// splitWarmup splits a dedented body at the last line equal to the warmup
// marker. Everything strictly before that line is warmup (earlier marker
// lines included), everything strictly after it is exercise; warmup +
// marker line + exercise reconstructs the body exactly.
func splitWarmup(body string) (warmup, exercise string, found bool) {
	lines := strings.SplitAfter(body, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.TrimSuffix(lines[i], "\n") == warmupMarker {
			return strings.Join(lines[:i], ""), strings.Join(lines[i+1:], ""), true
		}
	}
	return "", body, false
}

// dedent removes the common leading whitespace prefix from every line of
// text. Whitespace-only lines do not participate in computing the margin.
func dedent(text string) string {
	margin := ""
	first := true
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if first {
			margin, first = indent, false
			continue
		}
		margin = commonPrefix(margin, indent)
	}
	if margin == "" {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, margin)
	}
	return strings.Join(lines, "\n")
}

func commonPrefix(a, b string) string {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:n]
}
