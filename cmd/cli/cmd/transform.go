package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"cldurl/adapters/hcl"
	"cldurl/core/legacy"
)

var (
	transformName    string
	transformVars    []string
	transformOptions []string
)

// transformCmd prints serialized transformations
var transformCmd = &cobra.Command{
	Use:   "transform [file]",
	Short: "Serialize transformations",
	Long: `Print the URL form of transformations.

With a file argument, every definition in the HCL file is printed as
"name: serialization", or only the serialization of --name. Without a file,
the -o options are translated.

Examples:
  cldurl transform defs.hcl
  cldurl transform defs.hcl --name avatar --var thumb=200
  cldurl transform -o width=100 -o crop=fill -o effect=sepia`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTransform,
}

func init() {
	transformCmd.Flags().StringVarP(&transformName, "name", "n", "", "only print this definition")
	transformCmd.Flags().StringArrayVar(&transformVars, "var", nil, "HCL variable as key=value (repeatable)")
	transformCmd.Flags().StringArrayVarP(&transformOptions, "option", "o", nil, "option as key=value (repeatable)")
}

func runTransform(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		values, err := parseAssignments(transformOptions)
		if err != nil {
			return err
		}
		t, err := legacy.Translate(legacy.Options(values))
		if err != nil {
			return err
		}
		fmt.Fprintln(out, t.String())
		return nil
	}

	if transformName != "" {
		def, err := loadDefinition(args[0], transformName, transformVars)
		if err != nil {
			return err
		}
		t, err := def.Transformation()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, t.String())
		return nil
	}

	vars, err := parseAssignments(transformVars)
	if err != nil {
		return err
	}
	file, err := hcl.NewParser(vars).ParseFile(args[0])
	if err != nil {
		return err
	}
	for _, name := range file.Names() {
		t, err := file.Definitions[name].Transformation()
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		fmt.Fprintf(out, "%s: %s\n", name, t.String())
	}
	return nil
}
