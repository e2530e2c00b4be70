// Command wither-vet runs the wither analyzer as a standalone vet tool:
//
//	go vet -vettool=$(which wither-vet) ./...
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"wither-generator/pkg/witheranalysis"
)

func main() {
	singlechecker.Main(witheranalysis.Analyzer)
}
