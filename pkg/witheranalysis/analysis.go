// Package witheranalysis reports wither directive problems through the
// go/analysis protocol, so they show up in go vet style drivers and editors.
package witheranalysis

import (
	"go/token"

	"golang.org/x/tools/go/analysis"

	"wither-generator/internal/analyze"
	"wither-generator/internal/config"
	"wither-generator/internal/diagnostic"
	"wither-generator/internal/pipeline"
	"wither-generator/internal/wither"
)

// Analyzer validates the types marked with wither directives.
var Analyzer = &analysis.Analyzer{
	Name: "wither",
	Doc:  "check types marked with //wither:copy or //wither:combinations",
	Run:  run,
}

var (
	maxFields int
	infos     bool
)

func init() {
	Analyzer.Flags.IntVar(&maxFields, "max-fields", config.DefaultMaxCombinationFields,
		"skip //wither:combinations types with more fields (0 = no cap)")
	Analyzer.Flags.BoolVar(&infos, "infos", false, "also report informational notes")
}

func run(pass *analysis.Pass) (any, error) {
	targets, err := analyze.FromFiles(pass.Fset, pass.Files)
	if err != nil {
		return nil, err
	}

	opts := wither.Options{MaxFields: maxFields}

	for _, t := range targets {
		_, diags := pipeline.Methods(t, opts)

		for _, d := range diags.All() {
			if d.Severity == diagnostic.DiagnosticInfo && !infos {
				continue
			}

			pass.Report(analysis.Diagnostic{
				Pos:      position(pass, d.Pos),
				Category: d.Code,
				Message:  d.Message,
			})
		}
	}

	return nil, nil
}

// position maps a resolved position back into the pass's file set.
func position(pass *analysis.Pass, pos token.Position) token.Pos {
	for _, f := range pass.Files {
		tf := pass.Fset.File(f.Pos())
		if tf != nil && tf.Name() == pos.Filename && pos.Offset <= tf.Size() {
			return tf.Pos(pos.Offset)
		}
	}

	return token.NoPos
}
