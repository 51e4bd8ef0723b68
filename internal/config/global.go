// SPDX-License-Identifier: MPL-2.0

package config

import "sync"

var (
	// configDirOverride allows tests to override the config directory.
	// os.UserHomeDir() doesn't reliably respect the HOME environment
	// variable on all platforms (e.g. macOS in CI).
	configDirOverride string

	globalMu  sync.Mutex
	globalCfg *Config
)

// Get returns the process-wide configuration, loading it on first use.
// Load failures fall back to defaults; commands that need the error call
// Load directly.
func Get() *Config {
	globalMu.Lock()
	defer globalMu.Unlock()
	if globalCfg == nil {
		cfg, err := Load("")
		if err != nil {
			cfg = DefaultConfig()
		}
		globalCfg = cfg
	}
	return globalCfg
}

// Set replaces the process-wide configuration (used after flag overrides).
func Set(cfg *Config) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalCfg = cfg
}

// Reset clears test overrides and the cached configuration. Call from test
// cleanup to restore defaults.
func Reset() {
	globalMu.Lock()
	defer globalMu.Unlock()
	configDirOverride = ""
	globalCfg = nil
}

// SetConfigDirOverride sets a custom config directory path, primarily for
// tests.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}
