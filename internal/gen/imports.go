package gen

import (
	"cmp"
	"fmt"
	"go/ast"
	"go/parser"
	"go/types"
	"path"
	"slices"
	"strconv"

	"wither-generator/internal/analyze"
	"wither-generator/internal/common"
	"wither-generator/internal/wither"
)

// importSet gives every import path of a generated file one local name.
// Types from different source files may use the same qualifier for
// different paths (text/template and html/template); later paths get an
// alias and their qualifiers are rewritten.
type importSet struct {
	byPath map[string]importSpec
	local  map[string]string // path -> local name
	byName map[string]string // local name -> path
}

func newImportSet() *importSet {
	return &importSet{
		byPath: make(map[string]importSpec),
		local:  make(map[string]string),
		byName: make(map[string]string),
	}
}

// add registers imp and returns the local name to qualify it with.
func (s *importSet) add(imp analyze.Import) string {
	if name, ok := s.local[imp.Path]; ok {
		return name
	}

	spec := importSpec{Path: imp.Path}
	if imp.Explicit {
		spec.Alias = imp.Name
	}

	name := imp.Name
	if _, taken := s.byName[name]; taken {
		name = s.freeAlias(imp)
		spec.Alias = name
	}

	s.byPath[imp.Path] = spec
	s.local[imp.Path] = name
	s.byName[name] = imp.Path

	return name
}

// freeAlias prefixes the name with its parent directory ("htmltemplate"),
// then counts up until the name is free.
func (s *importSet) freeAlias(imp analyze.Import) string {
	base := imp.Name
	if dir := path.Dir(imp.Path); dir != "." && dir != "/" {
		base = common.PkgAlias(dir) + imp.Name
	}

	name := base
	for i := 2; ; i++ {
		if _, taken := s.byName[name]; !taken {
			return name
		}

		name = base + strconv.Itoa(i)
	}
}

// specs returns the import lines sorted by path.
func (s *importSet) specs() []importSpec {
	out := make([]importSpec, 0, len(s.byPath))
	for _, spec := range s.byPath {
		out = append(out, spec)
	}

	slices.SortFunc(out, func(a, b importSpec) int {
		return cmp.Compare(a.Path, b.Path)
	})

	return out
}

// resolve registers the imports tm's parameter types need and returns the
// methods with their qualifiers renamed to the file's local names, plus
// every qualifier the rewritten types use.
func (s *importSet) resolve(tm TypeMethods) ([]wither.Method, []string, error) {
	byName := make(map[string]analyze.Import, len(tm.Target.Imports))
	for _, imp := range tm.Target.Imports {
		byName[imp.Name] = imp
	}

	rename := make(map[string]string)
	var used []string

	methods := make([]wither.Method, len(tm.Methods))

	for i, m := range tm.Methods {
		m.Params = slices.Clone(m.Params)

		for j, p := range m.Params {
			qualifiers, err := typeQualifiers(p.Type)
			if err != nil {
				return nil, nil, fmt.Errorf("field %s: %w", p.Name, err)
			}

			for _, q := range qualifiers {
				if _, done := rename[q]; done {
					continue
				}

				imp, ok := byName[q]
				if !ok {
					// Left for goimports to resolve.
					rename[q] = q
					continue
				}

				rename[q] = s.add(imp)
			}

			rewritten, err := renameQualifiers(p.Type, rename)
			if err != nil {
				return nil, nil, fmt.Errorf("field %s: %w", p.Name, err)
			}

			m.Params[j].Type = rewritten
		}

		methods[i] = m
	}

	for _, to := range rename {
		used = append(used, to)
	}

	slices.Sort(used)

	return methods, used, nil
}

// renameQualifiers rewrites package qualifiers in a type expression. The
// text is returned unchanged if nothing is renamed.
func renameQualifiers(typeExpr string, rename map[string]string) (string, error) {
	expr, err := parser.ParseExpr(typeExpr)
	if err != nil {
		return "", fmt.Errorf("invalid type %q: %w", typeExpr, err)
	}

	changed := false

	ast.Inspect(expr, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}

		if id, ok := sel.X.(*ast.Ident); ok {
			if to, ok := rename[id.Name]; ok && to != id.Name {
				id.Name = to
				changed = true
			}
		}

		return true
	})

	if !changed {
		return typeExpr, nil
	}

	return types.ExprString(expr), nil
}
