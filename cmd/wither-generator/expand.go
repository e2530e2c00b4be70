package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"wither-generator/internal/analyze"
	"wither-generator/internal/config"
	"wither-generator/internal/decl"
	"wither-generator/internal/diagnostic"
	"wither-generator/internal/pipeline"
	"wither-generator/internal/wither"
)

// expansion is the YAML output for one declaration.
type expansion struct {
	Declaration string              `yaml:"declaration"`
	Mode        string              `yaml:"mode"`
	Methods     []wither.Method     `yaml:"methods"`
	Diagnostics []expandDiagnostics `yaml:"diagnostics,omitempty"`
}

type expandDiagnostics struct {
	Severity string `yaml:"severity"`
	Code     string `yaml:"code"`
	Message  string `yaml:"message"`
}

func newExpandCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expand -f decl.yaml [-f more.yaml]",
		Short: "Run the generators over YAML declaration files",
		Long:  `Read declarations from YAML files and print the generated methods as YAML`,
		Args:  cobra.NoArgs,
		RunE:  runExpand,
	}

	cmd.Flags().StringSliceP("file", "f", nil, "declaration file (repeatable)")
	cmd.Flags().Bool("combinations", false, "generate one method per field subset")
	cmd.Flags().Int("max-fields", config.DefaultMaxCombinationFields, "skip declarations with more fields in combinations mode (0 = no cap)")
	cmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runExpand(cmd *cobra.Command, _ []string) error {
	files, _ := cmd.Flags().GetStringSlice("file")
	combinations, _ := cmd.Flags().GetBool("combinations")
	maxFields, _ := cmd.Flags().GetInt("max-fields")
	warningsAsErrors, _ := cmd.Flags().GetBool("warnings-as-errors")

	mode := analyze.ModeSingle
	if combinations {
		mode = analyze.ModeCombinations
	}

	var (
		out   []expansion
		diags diagnostic.Diagnostics
	)

	for _, path := range files {
		f, err := decl.LoadFile(path)
		if err != nil {
			return err
		}

		for i := range f.Declarations {
			d := &f.Declarations[i]

			methods, ds := pipeline.Methods(analyze.Target{Decl: d, Mode: mode}, wither.Options{MaxFields: maxFields})
			diags.Merge(ds)

			out = append(out, expansion{
				Declaration: d.Name,
				Mode:        mode.String(),
				Methods:     methods,
				Diagnostics: toExpandDiagnostics(ds.All()),
			})
		}
	}

	data, err := yaml.Marshal(out)
	if err != nil {
		return fmt.Errorf("failed to marshal expansion: %w", err)
	}

	if _, err := cmd.OutOrStdout().Write(data); err != nil {
		return err
	}

	useColor, err := colorEnabled(cmd)
	if err != nil {
		return err
	}

	printDiagnostics(cmd.ErrOrStderr(), diags.All(), useColor)

	if failed(diags.HasErrors(), diags.HasWarnings(), warningsAsErrors) {
		return errFailed
	}

	return nil
}

func toExpandDiagnostics(diags []diagnostic.Diagnostic) []expandDiagnostics {
	if len(diags) == 0 {
		return nil
	}

	out := make([]expandDiagnostics, len(diags))
	for i, d := range diags {
		out[i] = expandDiagnostics{Severity: d.Severity.String(), Code: d.Code, Message: d.Message}
	}

	return out
}
