// Package main provides the CLI entrypoint for wither-generator.
//
// wither-generator reads Go packages, finds struct types marked with a
// //wither:copy or //wither:combinations directive and writes CopyWith
// methods for them:
//   - gen writes one wither_gen.go per package
//   - check reports diagnostics without writing
//   - expand runs the generators over YAML declaration files
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// errFailed is returned once diagnostics have been printed.
var errFailed = errors.New("generation failed")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "wither-generator",
		Short:         "Generate copy-with methods for Go structs",
		Long:          `wither-generator writes CopyWith<Field> methods returning a copy of a struct with some fields replaced`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringP("dir", "C", "", "run as if started in this directory")
	root.PersistentFlags().String("config", "", "config file (default: .wither.yaml or wither.toml in the directory or a parent)")
	root.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	root.PersistentFlags().BoolP("verbose", "v", false, "log progress to stderr")

	root.AddCommand(newGenCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newExpandCmd())
	root.AddCommand(newVersionCmd())

	return root
}

// main executes the root command and exits with status 1 on any failure.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}

		os.Exit(1)
	}
}
