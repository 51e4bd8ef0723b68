// SPDX-License-Identifier: MPL-2.0

// Package config loads and validates perfrun configuration from defaults,
// an optional CUE config file, and PERFRUN_* environment variables.
package config
