package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arturbaldoramos/habitta-cli/internal/config"
	"github.com/arturbaldoramos/habitta-cli/internal/tui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and change CLI configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.DefaultPath()
		if err != nil {
			return err
		}

		cfg, err := config.Load(path)
		if err != nil {
			return err
		}

		fmt.Println(tui.TitleStyle.Render("Configuration"))
		fmt.Printf("%s %s\n", tui.LabelStyle.Render("api_url:"), cfg.APIURL)
		fmt.Printf("%s %s\n", tui.LabelStyle.Render("log_level:"), cfg.LogLevel)
		fmt.Printf("%s %s\n", tui.LabelStyle.Render("log_format:"), cfg.LogFormat)
		fmt.Println(tui.MutedStyle.Render("File: " + path))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value and write it to ~/.habitta/config.yaml.

Keys: api_url, log_level, log_format

Examples:
  habitta config set api_url https://portal.example.com
  habitta config set log_level debug`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.DefaultPath()
		if err != nil {
			return err
		}

		cfg, err := config.Load(path)
		if err != nil {
			return err
		}

		key, value := args[0], args[1]
		switch key {
		case "api_url":
			cfg.APIURL = value
		case "log_level":
			cfg.LogLevel = value
		case "log_format":
			cfg.LogFormat = value
		default:
			return fmt.Errorf("invalid argument: unknown key %q (api_url, log_level, log_format)", key)
		}

		if err := config.Validate(cfg); err != nil {
			return err
		}

		if err := config.Save(cfg, path); err != nil {
			return err
		}

		fmt.Printf("Set %s = %s\n", key, value)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
