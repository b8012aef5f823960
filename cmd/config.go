package cmd

import (
	"dev-launcher/core/config"
	"dev-launcher/core/launcher"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved launch configuration",
	Long:  `Resolves APP_* settings from launcher.yaml, .env and the environment, applies defaults and prints the result as YAML.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.LoadConfig(configDir)
		if err != nil {
			return &launcher.ConfigurationError{Err: err}
		}

		resolved, err := launcher.FromSettings(settings.App)
		if err != nil {
			return err
		}

		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(resolved)
	},
}

func init() {
	RootCmd.AddCommand(configCmd)
}
