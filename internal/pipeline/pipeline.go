// Package pipeline runs the generators over loaded Go packages.
package pipeline

import (
	"context"
	"fmt"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"wither-generator/internal/analyze"
	"wither-generator/internal/config"
	"wither-generator/internal/diagnostic"
	"wither-generator/internal/gen"
	"wither-generator/internal/wither"
)

// Options configures a pipeline run.
type Options struct {
	// Config holds the generator settings. Nil means config.Default().
	Config *config.Config
	// Dir is the directory patterns are resolved from.
	Dir string
	// Logger receives progress messages. Nil means zap.NewNop().
	Logger *zap.Logger
}

// PackageResult is the outcome for one package.
type PackageResult struct {
	Package *analyze.PackageInfo
	Types   []gen.TypeMethods
	// File is nil if the package has nothing to generate or in check mode.
	File        *gen.GeneratedFile
	Diagnostics diagnostic.Diagnostics
}

// Result is the outcome of a run, ordered by package path.
type Result struct {
	Packages    []PackageResult
	Diagnostics diagnostic.Diagnostics
}

// Files returns the generated files of every package.
func (r *Result) Files() []gen.GeneratedFile {
	var files []gen.GeneratedFile
	for _, p := range r.Packages {
		if p.File != nil {
			files = append(files, *p.File)
		}
	}

	return files
}

// Methods returns the number of generated methods.
func (r *Result) Methods() int {
	n := 0
	for _, p := range r.Packages {
		for _, t := range p.Types {
			n += len(t.Methods)
		}
	}

	return n
}

// Run loads the packages matching patterns and renders their copy methods.
// Nothing is written; see gen.WriteFiles.
func Run(ctx context.Context, opts Options, patterns ...string) (*Result, error) {
	return run(ctx, opts, true, patterns)
}

// Check is Run without rendering files.
func Check(ctx context.Context, opts Options, patterns ...string) (*Result, error) {
	return run(ctx, opts, false, patterns)
}

func run(ctx context.Context, opts Options, emit bool, patterns []string) (*Result, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	logger.Debug("loading packages", zap.Strings("patterns", patterns), zap.String("dir", opts.Dir))

	pkgs, err := analyze.NewAnalyzer(opts.Dir, cfg.BuildFlags...).LoadPackages(ctx, patterns...)
	if err != nil {
		return nil, err
	}

	generator := gen.NewGenerator(cfg.GeneratorConfig())
	wopts := wither.Options{MaxFields: cfg.MaxFields()}
	results := make([]PackageResult, len(pkgs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs(cfg.Jobs))

	for i, pkg := range pkgs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			res, err := processPackage(generator, pkg, wopts, emit)
			if err != nil {
				return fmt.Errorf("package %s: %w", pkg.Path, err)
			}

			logger.Debug("processed package",
				zap.String("package", pkg.Path),
				zap.Int("types", len(res.Types)),
				zap.Int("diagnostics", res.Diagnostics.Len()),
			)

			results[i] = res

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &Result{Packages: results}
	for _, r := range results {
		out.Diagnostics.Merge(r.Diagnostics)
	}

	logger.Info("run finished",
		zap.Int("packages", len(results)),
		zap.Int("methods", out.Methods()),
		zap.Int("errors", len(out.Diagnostics.Errors)),
		zap.Int("warnings", len(out.Diagnostics.Warnings)),
	)

	return out, nil
}

func jobs(n int) int {
	if n > 0 {
		return n
	}

	return runtime.GOMAXPROCS(0)
}

func processPackage(generator *gen.Generator, pkg *analyze.PackageInfo, opts wither.Options, emit bool) (PackageResult, error) {
	res := PackageResult{Package: pkg}

	for _, t := range pkg.Targets {
		methods, diags := Methods(t, opts)
		res.Diagnostics.Merge(diags)
		res.Types = append(res.Types, gen.TypeMethods{Target: t, Methods: methods})
	}

	if !emit || res.Diagnostics.HasErrors() {
		return res, nil
	}

	file, err := generator.Generate(pkg, res.Types)
	if err != nil {
		return res, err
	}

	res.File = file

	return res, nil
}

// Methods runs the generator the target's directive asks for. A struct that
// yields no method and no other diagnostic gets a NoStoredFields note.
func Methods(t analyze.Target, opts wither.Options) ([]wither.Method, diagnostic.Diagnostics) {
	var (
		methods []wither.Method
		diags   diagnostic.Diagnostics
	)

	switch t.Mode {
	case analyze.ModeCombinations:
		methods, diags = wither.Combinations(t.Decl, opts)
	default:
		methods, diags = wither.Single(t.Decl)
	}

	if len(methods) == 0 && diags.Len() == 0 {
		diags.Add(diagnostic.NoStoredFields(t.Decl))
	}

	return methods, diags
}
