// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"perfrun-cli/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage perfrun configuration",
	Long: `Manage perfrun configuration.

Configuration is stored in:
  - Linux: ~/.config/perfrun/config.cue
  - macOS: ~/Library/Application Support/perfrun/config.cue
  - Windows: %APPDATA%\perfrun\config.cue`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig()
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initUserConfig()
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath()
		},
	})
}

func showConfig() error {
	cfg := config.Get()

	keyStyle := NameStyle
	valueStyle := SuccessStyle

	fmt.Println(TitleStyle.Render("Current Configuration"))
	fmt.Println()

	cfgDir, dirErr := config.ConfigDir()
	cfgPath := ""
	if dirErr == nil {
		cfgPath = filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt)
	}
	if cfgPath != "" && fileExistsCheck(cfgPath) {
		fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), cfgPath)
	} else {
		fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Println()

	fmt.Printf("%s: %s\n", keyStyle.Render("target"), valueStyle.Render(cfg.Target))
	if cfg.Baseline != "" {
		fmt.Printf("%s: %s\n", keyStyle.Render("baseline"), valueStyle.Render(cfg.Baseline))
	} else {
		fmt.Printf("%s: %s\n", keyStyle.Render("baseline"), SubtitleStyle.Render("(none)"))
	}
	fmt.Printf("%s: %s\n", keyStyle.Render("iterations"), valueStyle.Render(fmt.Sprintf("%d", cfg.Iterations)))

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("search_paths"))
	if len(cfg.SearchPaths) == 0 {
		fmt.Printf("  %s\n", SubtitleStyle.Render("(none configured)"))
	} else {
		for _, p := range cfg.SearchPaths {
			fmt.Printf("  - %s\n", valueStyle.Render(p))
		}
	}

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("ui"))
	fmt.Printf("  color_scheme: %s\n", valueStyle.Render(string(cfg.UI.ColorScheme)))
	fmt.Printf("  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))

	return nil
}

func initUserConfig() error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	if err := config.CreateDefaultConfig(); err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	fmt.Printf("%s Created default configuration at %s\n",
		SuccessStyle.Render("✓"),
		filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt))
	return nil
}

func showConfigPath() error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	fmt.Printf("Config directory: %s\n", cfgDir)
	fmt.Printf("Config file: %s\n", filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt))
	return nil
}

func fileExistsCheck(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
