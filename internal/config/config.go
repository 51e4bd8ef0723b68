// SPDX-License-Identifier: MPL-2.0

package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"perfrun-cli/internal/issue"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "perfrun"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the perfrun configuration directory using
// platform-specific conventions: Windows uses %APPDATA%, macOS uses
// ~/Library/Application Support, and Linux/others use $XDG_CONFIG_HOME
// (defaulting to ~/.config).
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string
	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// Load resolves the configuration: defaults, then the config file (an
// explicit path, or config.cue in the config dir or current directory),
// then PERFRUN_* environment variables.
func Load(configFilePath string) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("target", defaults.Target)
	v.SetDefault("baseline", defaults.Baseline)
	v.SetDefault("iterations", defaults.Iterations)
	v.SetDefault("search_paths", defaults.SearchPaths)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)
	v.SetDefault("ui.color_scheme", string(defaults.UI.ColorScheme))

	v.SetEnvPrefix("PERFRUN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path := configFilePath
	if path == "" {
		path = defaultConfigPath()
	} else if !fileExists(path) {
		return nil, issue.NewErrorContext().
			WithOperation("load configuration").
			WithResource(path).
			WithSuggestion("Verify the file path is correct").
			WithSuggestion("Use 'perfrun config show' to see the default configuration").
			Wrap(fmt.Errorf("config file not found: %s", path)).
			BuildError()
	}
	if path != "" {
		if err := loadCUEIntoViper(v, path); err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(path).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				Wrap(err).
				BuildError()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(path).
			WithSuggestion("Fix the offending value and retry").
			Wrap(err).
			BuildError()
	}
	return &cfg, nil
}

// defaultConfigPath finds the config file in the config dir or the current
// directory; empty when neither exists.
func defaultConfigPath() string {
	if dir, err := ConfigDir(); err == nil {
		path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
		if fileExists(path) {
			return path
		}
	}
	local := ConfigFileName + "." + ConfigFileExt
	if fileExists(local) {
		return local
	}
	return ""
}

// loadCUEIntoViper parses a CUE file, validates it against the #Config
// schema, and merges its contents into Viper.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(path))
	if userValue.Err() != nil {
		return fmt.Errorf("invalid CUE in %s: %w", path, userValue.Err())
	}

	// Unify with #Config to validate; Concrete(false) because all config
	// fields are optional.
	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))
	unified := schema.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return fmt.Errorf("invalid configuration in %s: %w", path, err)
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return fmt.Errorf("decode configuration in %s: %w", path, err)
	}
	return v.MergeConfigMap(configMap)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
