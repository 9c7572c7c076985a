package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"cldurl/adapters/hcl"
	"cldurl/core/engine"
	"cldurl/core/legacy"
	"cldurl/internal/config"
	cerrors "cldurl/internal/errors"
	"cldurl/internal/logging"
)

var (
	urlOptions      []string
	urlFile         string
	urlName         string
	urlVars         []string
	urlSign         bool
	urlSecure       bool
	urlDeliveryType string
	urlAssetType    string
	urlFormat       string
	urlVersion      string
)

// urlCmd prints a delivery URL
var urlCmd = &cobra.Command{
	Use:   "url <public-id>",
	Short: "Build a delivery URL",
	Long: `Build the delivery URL of an asset.

Transformation and configuration options are passed as key=value pairs using
the flat option names (width, crop, overlay, secure, cdn_subdomain, ...), or
loaded from a named definition in an HCL file.

Examples:
  cldurl url sample -o width=100 -o height=100 -o crop=fill
  cldurl url sample --format jpg -o "transformation=[{crop: fill, width: 10}, {angle: 90}]"
  cldurl url folder/sample --file defs.hcl --name avatar --var thumb=200
  cldurl url http://example.com/logo.png --type fetch --format webp --sign`,
	Args: cobra.ExactArgs(1),
	RunE: runURL,
}

func init() {
	urlCmd.Flags().StringArrayVarP(&urlOptions, "option", "o", nil, "option as key=value (repeatable)")
	urlCmd.Flags().StringVarP(&urlFile, "file", "f", "", "HCL file with transformation definitions")
	urlCmd.Flags().StringVarP(&urlName, "name", "n", "", "definition to apply from --file")
	urlCmd.Flags().StringArrayVar(&urlVars, "var", nil, "HCL variable as key=value (repeatable)")
	urlCmd.Flags().BoolVar(&urlSign, "sign", false, "sign the URL")
	urlCmd.Flags().BoolVar(&urlSecure, "secure", false, "use https")
	urlCmd.Flags().StringVar(&urlDeliveryType, "type", "", "delivery type (upload, private, fetch, ...)")
	urlCmd.Flags().StringVar(&urlAssetType, "resource-type", "", "asset type (image, video, raw)")
	urlCmd.Flags().StringVar(&urlFormat, "format", "", "target format")
	urlCmd.Flags().StringVar(&urlVersion, "version", "", "asset version")
}

func runURL(cmd *cobra.Command, args []string) error {
	options, err := urlOptionsFromFlags(cmd)
	if err != nil {
		return err
	}

	logging.Debug("building url")
	url, err := engine.URL(config.Get(), args[0], options, engine.WithLogger(logging.Named("engine")))
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), url)
	return nil
}

func urlOptionsFromFlags(cmd *cobra.Command) (legacy.Options, error) {
	values, err := parseAssignments(urlOptions)
	if err != nil {
		return nil, err
	}
	options := legacy.Options(values)

	if urlFile != "" {
		if urlName == "" {
			return nil, cerrors.Input("--name is required with --file")
		}
		def, err := loadDefinition(urlFile, urlName, urlVars)
		if err != nil {
			return nil, err
		}
		for k, v := range def.Options() {
			if _, ok := options[k]; ok {
				return nil, cerrors.Inputf("option %s conflicts with definition %q", k, urlName)
			}
			options[k] = v
		}
	}

	flags := cmd.Flags()
	if flags.Changed("sign") {
		options["sign_url"] = urlSign
	}
	if flags.Changed("secure") {
		options["secure"] = urlSecure
	}
	for key, value := range map[string]string{
		"type":          urlDeliveryType,
		"resource_type": urlAssetType,
		"format":        urlFormat,
		"version":       urlVersion,
	} {
		if value != "" {
			options[key] = value
		}
	}
	return options, nil
}

func loadDefinition(path, name string, vars []string) (hcl.Definition, error) {
	values, err := parseAssignments(vars)
	if err != nil {
		return hcl.Definition{}, err
	}
	file, err := hcl.NewParser(values).ParseFile(path)
	if err != nil {
		return hcl.Definition{}, err
	}
	return file.Get(name)
}
