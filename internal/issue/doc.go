// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error types: errors that carry the
// failed operation, the resource involved, and concrete suggestions for
// the user.
package issue
