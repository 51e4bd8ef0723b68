// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"golang.org/x/exp/slices"
)

// ActionableError is an error with enough context to tell the user what
// failed and what to try next.
type ActionableError struct {
	// Operation is what was being attempted, phrased as "failed to <op>".
	Operation string
	// Resource is the file, path or name involved, if any.
	Resource string
	// Suggestions are concrete next steps for the user.
	Suggestions []string
	// Cause is the underlying error, if any.
	Cause error
}

// ErrorContext builds an ActionableError fluently.
type ErrorContext struct {
	err ActionableError
}

// NewErrorContext creates a new ErrorContext builder.
func NewErrorContext() *ErrorContext {
	return &ErrorContext{}
}

// WithOperation records what was being attempted.
func (c *ErrorContext) WithOperation(op string) *ErrorContext {
	c.err.Operation = op
	return c
}

// WithResource records the resource involved.
func (c *ErrorContext) WithResource(resource string) *ErrorContext {
	c.err.Resource = resource
	return c
}

// WithSuggestion appends a concrete next step.
func (c *ErrorContext) WithSuggestion(s string) *ErrorContext {
	c.err.Suggestions = append(c.err.Suggestions, s)
	return c
}

// Wrap records the underlying cause.
func (c *ErrorContext) Wrap(err error) *ErrorContext {
	c.err.Cause = err
	return c
}

// BuildError returns the assembled error.
func (c *ErrorContext) BuildError() *ActionableError {
	e := c.err
	return &e
}

// Error implements the error interface with a concise message suitable for
// default (non-verbose) output.
func (e *ActionableError) Error() string {
	var msg strings.Builder
	msg.WriteString("failed to ")
	msg.WriteString(e.Operation)
	if e.Resource != "" {
		msg.WriteString(": ")
		msg.WriteString(e.Resource)
	}
	if e.Cause != nil {
		msg.WriteString(": ")
		msg.WriteString(e.Cause.Error())
	}
	return msg.String()
}

// Unwrap returns the underlying cause for errors.Is/As.
func (e *ActionableError) Unwrap() error {
	return e.Cause
}

// SuggestionList returns a copy of the suggestions.
func (e *ActionableError) SuggestionList() []string {
	return slices.Clone(e.Suggestions)
}

// Format returns the message plus suggestions, one bullet per line.
func (e *ActionableError) Format() string {
	var msg strings.Builder
	msg.WriteString(e.Error())
	for _, s := range e.Suggestions {
		msg.WriteString("\n  • ")
		msg.WriteString(s)
	}
	return msg.String()
}
