// SPDX-License-Identifier: MPL-2.0

// Package perffile turns plain shell functions into executable benchmark
// specifications.
//
// An experiment file is an ordinary POSIX shell file. Every function whose
// name contains "perf" as an underscore- or word-bounded token is an
// experiment candidate. The comment block directly above a function is its
// documentation; "perf:"-prefixed lines in that block attach metadata
// (extras, deps, control). Inside the body, the literal line "# end warmup"
// separates code that runs once before measurement from the code that is
// measured.
package perffile
