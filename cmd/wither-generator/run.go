package main

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"wither-generator/internal/config"
	"wither-generator/internal/decl"
	"wither-generator/internal/gen"
	"wither-generator/internal/pipeline"
)

func newGenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen [packages]",
		Short: "Generate copy methods for marked types",
		Long:  `Load the given package patterns (default ".") and write the generated file into every package with marked types`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, args, true)
		},
	}

	addRunFlags(cmd)
	cmd.Flags().StringP("output", "o", "", "generated file name (default wither_gen.go)")

	return cmd
}

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [packages]",
		Short: "Report diagnostics without writing files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, args, false)
		},
	}

	addRunFlags(cmd)

	return cmd
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Int("max-fields", 0, "skip //wither:combinations types with more fields (0 = no cap)")
	cmd.Flags().Int("jobs", 0, "max packages processed in parallel (0 = auto)")
	cmd.Flags().Bool("dump", false, "dump the parsed declarations to stderr")
	cmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
}

// loadConfig reads the config file and applies flags the user set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	dir, _ := cmd.Flags().GetString("dir")
	path, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(path, dir)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()

	if flags.Lookup("output") != nil && flags.Changed("output") {
		cfg.Output, _ = flags.GetString("output")
	}

	if flags.Changed("max-fields") {
		n, _ := flags.GetInt("max-fields")
		cfg.SetMaxCombinationFields(n)
	}

	if flags.Changed("jobs") {
		cfg.Jobs, _ = flags.GetInt("jobs")
	}

	if flags.Changed("warnings-as-errors") {
		cfg.WarningsAsErrors, _ = flags.GetBool("warnings-as-errors")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func runPipeline(cmd *cobra.Command, args []string, emit bool) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	useColor, err := colorEnabled(cmd)
	if err != nil {
		return err
	}

	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	dir, _ := cmd.Flags().GetString("dir")
	opts := pipeline.Options{Config: cfg, Dir: dir, Logger: logger}

	run := pipeline.Check
	if emit {
		run = pipeline.Run
	}

	res, err := run(cmd.Context(), opts, args...)
	if err != nil {
		return err
	}

	if dump, _ := cmd.Flags().GetBool("dump"); dump {
		dumpDeclarations(cmd, res)
	}

	printDiagnostics(cmd.ErrOrStderr(), res.Diagnostics.All(), useColor)

	if emit {
		written, err := gen.WriteFiles(res.Files())
		for _, path := range written {
			fmt.Fprintln(cmd.OutOrStdout(), "wrote", path)
		}

		if err != nil {
			return err
		}
	}

	if failed(res.Diagnostics.HasErrors(), res.Diagnostics.HasWarnings(), cfg.WarningsAsErrors) {
		return errFailed
	}

	return nil
}

func failed(hasErrors, hasWarnings, warningsAsErrors bool) bool {
	return hasErrors || (warningsAsErrors && hasWarnings)
}

func dumpDeclarations(cmd *cobra.Command, res *pipeline.Result) {
	var decls []*decl.Declaration
	for _, p := range res.Packages {
		for _, t := range p.Package.Targets {
			decls = append(decls, t.Decl)
		}
	}

	cs := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true, SortKeys: true}
	cs.Fdump(cmd.ErrOrStderr(), decls)
}
