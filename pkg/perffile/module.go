// SPDX-License-Identifier: MPL-2.0

package perffile

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// perfPattern decides experiment eligibility: "perf" must adjoin a word
// boundary or an underscore on each side, case-sensitively.
var perfPattern = regexp.MustCompile(`(\b|_)perf(\b|_)`)

// Module is a loaded experiment file.
type Module struct {
	// Path is the file the module was loaded from.
	Path string
	// Source is the raw file content.
	Source string
	// File is the parsed syntax tree (comments preserved).
	File *syntax.File

	funcs []*Func
}

// Func is one function discovered in a module, together with the metadata
// needed to build its experiment specification. The Has* flags record
// directive presence; an absent directive is distinct from an empty one.
type Func struct {
	// Name is the declared function name.
	Name string
	// Doc is the documentation text: the contiguous comment block directly
	// above the declaration, directives excluded.
	Doc string
	// Source is the full source text of the declaration, signature plus
	// brace-delimited body.
	Source string

	Extras     []string
	HasExtras  bool
	Deps       []string
	HasDeps    bool
	Control    string
	HasControl bool
}

// LoadModule reads and parses an experiment file. Any failure (missing
// file, unreadable file, syntax error) yields nil: a broken module simply
// contributes zero experiments. Callers must not assume an error is
// surfaced here.
func LoadModule(path string) *Module {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	parser := syntax.NewParser(syntax.KeepComments(true))
	file, err := parser.Parse(bytes.NewReader(src), filepath.Base(path))
	if err != nil {
		return nil
	}
	m := &Module{
		Path:   path,
		Source: string(src),
		File:   file,
	}
	m.funcs = extractFuncs(m)
	return m
}

// Name returns the module's dotted identity: the path with its final
// dot-segment (the extension) dropped and separators normalized.
func (m *Module) Name() string {
	name := filepath.ToSlash(m.Path)
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[:i]
	}
	return strings.ReplaceAll(name, "/", ".")
}

// Funcs returns every function declared in the module, in parse order.
func (m *Module) Funcs() []*Func {
	return m.funcs
}

// PerfFuncs returns the functions eligible as experiments.
func (m *Module) PerfFuncs() []*Func {
	var out []*Func
	for _, f := range m.funcs {
		if perfPattern.MatchString(f.Name) {
			out = append(out, f)
		}
	}
	return out
}

// FuncsFromName resolves a collected name (a file path such as
// "bench/widgets.perf.sh"; the final dot-segment is only used for file
// resolution) and returns its perf-tagged functions. A module that cannot
// be loaded yields no functions.
func FuncsFromName(name string) []*Func {
	mod := LoadModule(filepath.FromSlash(name))
	if mod == nil {
		return nil
	}
	return mod.PerfFuncs()
}

// extractFuncs walks the parse tree collecting function declarations and
// their doc/directive comment blocks.
func extractFuncs(m *Module) []*Func {
	var funcs []*Func
	for _, stmt := range m.File.Stmts {
		decl, ok := stmt.Cmd.(*syntax.FuncDecl)
		if !ok {
			continue
		}
		f := &Func{
			Name:   decl.Name.Value,
			Source: m.Source[decl.Pos().Offset():decl.End().Offset()],
		}
		applyComments(f, docBlock(stmt))
		funcs = append(funcs, f)
	}
	return funcs
}

// docBlock returns the comments forming the declaration's documentation: the
// line-contiguous run of comments ending on the line directly above it.
func docBlock(stmt *syntax.Stmt) []syntax.Comment {
	declLine := stmt.Pos().Line()
	var leading []syntax.Comment
	for _, c := range stmt.Comments {
		if c.End().Line() < declLine {
			leading = append(leading, c)
		}
	}
	// Walk backwards keeping only the contiguous run.
	next := declLine
	start := len(leading)
	for i := len(leading) - 1; i >= 0; i-- {
		if leading[i].Hash.Line() != next-1 {
			break
		}
		next = leading[i].Hash.Line()
		start = i
	}
	return leading[start:]
}

// applyComments splits a doc block into documentation text and directives.
func applyComments(f *Func, block []syntax.Comment) {
	var doc []string
	for _, c := range block {
		text := strings.TrimSpace(c.Text)
		rest, ok := strings.CutPrefix(text, "perf:")
		if !ok {
			doc = append(doc, text)
			continue
		}
		key, val, _ := strings.Cut(rest, " ")
		switch key {
		case "extras":
			f.Extras = strings.Fields(val)
			f.HasExtras = true
		case "deps":
			f.Deps = strings.Fields(val)
			f.HasDeps = true
		case "control":
			f.Control = strings.TrimSpace(val)
			f.HasControl = true
		default:
			// Unknown directives read as plain documentation.
			doc = append(doc, text)
		}
	}
	f.Doc = strings.Join(doc, "\n")
}
