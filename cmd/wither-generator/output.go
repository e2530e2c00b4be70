package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"wither-generator/internal/diagnostic"
)

func newLogger(cmd *cobra.Command) (*zap.Logger, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if !verbose {
		return zap.NewNop(), nil
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	return logger, nil
}

// colorEnabled resolves the --color flag against stderr.
func colorEnabled(cmd *cobra.Command) (bool, error) {
	mode, _ := cmd.Flags().GetString("color")

	switch strings.ToLower(mode) {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto", "":
		return isTerminal(cmd.ErrOrStderr()), nil
	default:
		return false, fmt.Errorf("unknown --color value %q (want auto, on or off)", mode)
	}
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func severityColor(s diagnostic.DiagnosticSeverity, enabled bool) *color.Color {
	var c *color.Color

	switch s {
	case diagnostic.DiagnosticError:
		c = color.New(color.FgRed, color.Bold)
	case diagnostic.DiagnosticWarning:
		c = color.New(color.FgYellow, color.Bold)
	default:
		c = color.New(color.FgCyan)
	}

	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}

	return c
}

// printDiagnostics writes one line per diagnostic plus its suggestions:
//
//	people.go:12:6: error: [Color] copy methods can only be generated for a struct type (wither.notARecordType)
func printDiagnostics(w io.Writer, diags []diagnostic.Diagnostic, useColor bool) {
	for _, d := range diags {
		var sb strings.Builder

		if d.Pos.IsValid() {
			sb.WriteString(d.Pos.String())
			sb.WriteString(": ")
		}

		sb.WriteString(severityColor(d.Severity, useColor).Sprint(d.Severity.String()))
		sb.WriteString(": ")

		if d.Decl != "" {
			fmt.Fprintf(&sb, "[%s] ", d.Decl)
		}

		fmt.Fprintf(&sb, "%s (%s)", d.Message, d.Code)

		fmt.Fprintln(w, sb.String())

		for _, s := range d.Suggestions {
			fmt.Fprintf(w, "\thint: %s\n", s)
		}
	}
}
