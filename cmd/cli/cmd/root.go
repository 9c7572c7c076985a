// Package cmd provides the CLI commands for cldurl.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cldurl/core/engine"
	"cldurl/internal/config"
	"cldurl/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "cldurl",
	Short: "Build media delivery URLs",
	Long: `cldurl serializes image and video transformations and assembles
delivery URLs, including signatures and auth tokens.

Configuration is read from --config (JSON, JSONC or YAML) or, when no file is
given, from the CLOUDINARY_URL environment variable.

Examples:
  cldurl url sample.jpg -o width=100 -o crop=fill
  cldurl url sample.jpg --file transformations.hcl --name avatar --sign
  cldurl transform transformations.hcl
  cldurl token --acl '/image/*' --duration 300`,
	SilenceUsage: true,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $CLOUDINARY_URL)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Add subcommands
	rootCmd.AddCommand(urlCmd)
	rootCmd.AddCommand(transformCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfig() {
	var (
		cfg config.Config
		err error
	)
	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
	} else {
		cfg, err = config.FromEnvironment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if verbose {
		cfg.Logging.Level = "debug"
	}
	config.Set(cfg)

	// Initialize logging
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "cldurl version %s\n", engine.Version)
	},
}
