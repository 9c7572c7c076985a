package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"cldurl/internal/config"
)

var (
	configFormat string
	configSave   string
)

// configCmd manages configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Print the effective configuration with secrets masked.

--save writes the unmasked configuration to a file; the extension selects
JSON or YAML.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().StringVar(&configFormat, "format", "yaml", "output format (yaml, json)")
	configCmd.Flags().StringVar(&configSave, "save", "", "write the configuration to this file")
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	if configSave != "" {
		if err := cfg.Save(configSave); err != nil {
			return err
		}
	}

	var (
		data []byte
		err  error
	)
	switch configFormat {
	case "json":
		data, err = json.MarshalIndent(cfg.Redacted(), "", "  ")
		data = append(data, '\n')
	case "yaml":
		data, err = yaml.Marshal(cfg.Redacted())
	default:
		return fmt.Errorf("unknown format %q", configFormat)
	}
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
