// SPDX-License-Identifier: MPL-2.0

// Package runner executes experiment commands against a prepared
// target/baseline environment and memoizes one live BenchmarkRunner per
// distinct configuration for the session lifetime.
package runner
