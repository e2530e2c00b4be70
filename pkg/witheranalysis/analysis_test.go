package witheranalysis_test

import (
	"testing"

	"golang.org/x/tools/go/analysis/analysistest"

	"wither-generator/pkg/witheranalysis"
)

// TestAnalyzer checks the "// want" comments in testdata/src.
func TestAnalyzer(t *testing.T) {
	analysistest.Run(t, analysistest.TestData(), witheranalysis.Analyzer, "shapes", "clean")
}
