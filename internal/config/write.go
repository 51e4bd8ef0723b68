// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnsureConfigDir creates the config directory if it doesn't exist.
func EnsureConfigDir() error {
	cfgDir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(cfgDir, 0o755)
}

// CreateDefaultConfig writes a default config file unless one already
// exists.
func CreateDefaultConfig() error {
	cfgDir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	cfgPath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)

	if _, err := os.Stat(cfgPath); err == nil {
		return nil // File exists
	}

	cueContent := GenerateCUE(DefaultConfig())
	if err := os.WriteFile(cfgPath, []byte(cueContent), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GenerateCUE generates a CUE representation of the configuration.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// perfrun configuration file\n\n")

	sb.WriteString(fmt.Sprintf("target: %q\n", cfg.Target))
	if cfg.Baseline != "" {
		sb.WriteString(fmt.Sprintf("baseline: %q\n", cfg.Baseline))
	}
	sb.WriteString(fmt.Sprintf("iterations: %d\n", cfg.Iterations))

	if len(cfg.SearchPaths) > 0 {
		sb.WriteString("\nsearch_paths: [\n")
		for _, p := range cfg.SearchPaths {
			sb.WriteString(fmt.Sprintf("\t%q,\n", p))
		}
		sb.WriteString("]\n")
	}

	sb.WriteString("\nui: {\n")
	sb.WriteString(fmt.Sprintf("\tcolor_scheme: %q\n", cfg.UI.ColorScheme))
	sb.WriteString(fmt.Sprintf("\tverbose: %v\n", cfg.UI.Verbose))
	sb.WriteString("}\n")

	return sb.String()
}
