package analyze

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages. Only syntax is
// needed: field types are carried as written.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax

// Analyzer loads Go packages and extracts directive-marked types.
type Analyzer struct {
	dir        string
	buildFlags []string
}

// NewAnalyzer creates a new Analyzer resolving patterns relative to dir
// (the current directory if empty).
func NewAnalyzer(dir string, buildFlags ...string) *Analyzer {
	return &Analyzer{dir: dir, buildFlags: buildFlags}
}

// LoadPackages loads the specified packages and returns one PackageInfo per
// package, sorted by import path. Patterns are standard Go package patterns
// (e.g., "./...", "wither-generator/examples/person").
func (a *Analyzer) LoadPackages(ctx context.Context, patterns ...string) ([]*PackageInfo, error) {
	cfg := &packages.Config{
		Mode:       LoadMode,
		Context:    ctx,
		Dir:        a.dir,
		BuildFlags: a.buildFlags,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	infos := make([]*PackageInfo, 0, len(pkgs))
	for _, pkg := range pkgs {
		info, err := a.processPackage(pkg)
		if err != nil {
			return nil, fmt.Errorf("failed to process package %s: %w", pkg.PkgPath, err)
		}

		infos = append(infos, info)
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Path < infos[j].Path
	})

	return infos, nil
}

// processPackage extracts targets from a loaded package.
func (a *Analyzer) processPackage(pkg *packages.Package) (*PackageInfo, error) {
	info := &PackageInfo{
		Path: pkg.PkgPath,
		Name: pkg.Name,
	}

	if len(pkg.GoFiles) > 0 {
		info.Dir = filepath.Dir(pkg.GoFiles[0])
	}

	targets, err := FromFiles(pkg.Fset, pkg.Syntax)
	if err != nil {
		return nil, err
	}

	info.Targets = targets

	return info, nil
}
