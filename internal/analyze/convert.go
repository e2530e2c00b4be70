package analyze

import (
	"cmp"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"wither-generator/internal/common"
	"wither-generator/internal/decl"
)

// TagKey is the struct tag key read for field options.
const TagKey = "wither"

// FromFiles extracts the targets of one package from its parsed files.
func FromFiles(fset *token.FileSet, files []*ast.File) ([]Target, error) {
	methods := collectMethods(fset, files)

	var targets []Target
	for _, file := range files {
		imports := fileImports(file)
		filename := fset.Position(file.Pos()).Filename

		for _, d := range file.Decls {
			gd, ok := d.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}

			for _, spec := range gd.Specs {
				ts := spec.(*ast.TypeSpec)

				groups := []*ast.CommentGroup{ts.Doc}
				if !gd.Lparen.IsValid() {
					groups = append(groups, gd.Doc)
				}

				dir, found, err := findDirective(groups...)
				if err != nil {
					return nil, fmt.Errorf("%s: type %s: %w", fset.Position(ts.Pos()), ts.Name.Name, err)
				}

				if !found {
					continue
				}

				declaration, err := convertTypeSpec(fset, ts, methods[ts.Name.Name])
				if err != nil {
					return nil, fmt.Errorf("%s: type %s: %w", fset.Position(ts.Pos()), ts.Name.Name, err)
				}

				declaration.Visibility = dir.Visibility

				targets = append(targets, Target{
					Decl:    declaration,
					Mode:    dir.Mode,
					File:    filename,
					Imports: imports,
				})
			}
		}
	}

	return targets, nil
}

// convertTypeSpec builds the declaration for ts. methods are the methods
// declared on ts anywhere in the package, in source order.
func convertTypeSpec(fset *token.FileSet, ts *ast.TypeSpec, methods []*ast.FuncDecl) (*decl.Declaration, error) {
	d := &decl.Declaration{
		Name: ts.Name.Name,
		Kind: kindOf(ts),
		Pos:  fset.Position(ts.Pos()),
	}

	if ts.TypeParams != nil {
		for _, field := range ts.TypeParams.List {
			for _, name := range field.Names {
				d.TypeParams = append(d.TypeParams, name.Name)
			}
		}
	}

	st, ok := ts.Type.(*ast.StructType)
	if !ok || d.Kind != decl.KindStruct {
		return d, nil
	}

	setters := make(map[string]*ast.FuncDecl)
	for _, m := range methods {
		if isSetter(m) {
			setters[m.Name.Name] = m
		}
	}

	fieldMembers, err := structMembers(st, setters)
	if err != nil {
		return nil, err
	}

	d.Members = append(d.Members, fieldMembers...)
	d.Members = append(d.Members, computedMembers(methods, setters)...)

	return d, nil
}

func kindOf(ts *ast.TypeSpec) decl.Kind {
	if ts.Assign.IsValid() {
		return decl.KindAlias
	}

	switch ts.Type.(type) {
	case *ast.StructType:
		return decl.KindStruct
	case *ast.InterfaceType:
		return decl.KindInterface
	default:
		return decl.KindNamed
	}
}

// structMembers converts each field line into a member. A setter matching a
// field name marks that binding as observed; matched setters are removed
// from setters.
func structMembers(st *ast.StructType, setters map[string]*ast.FuncDecl) ([]decl.Member, error) {
	var members []decl.Member

	for _, field := range st.Fields.List {
		vis, err := tagVisibility(field.Tag)
		if err != nil {
			return nil, err
		}

		typeText := exprText(field.Type)
		member := decl.Member{Visibility: vis}

		names := fieldNames(field)
		for _, name := range names {
			if name == "_" {
				continue
			}

			b := decl.Binding{
				Name:   name,
				Type:   typeText,
				Source: strings.TrimSpace(name + " " + types.ExprString(field.Type)),
			}

			setter := "Set" + upperFirst(name)
			if _, ok := setters[setter]; ok {
				b.Accessor = decl.AccessorObserver
				delete(setters, setter)
			}

			member.Bindings = append(member.Bindings, b)
		}

		if len(member.Bindings) > 0 {
			members = append(members, member)
		}
	}

	return members, nil
}

// computedMembers turns zero-argument, single-result methods into getter
// members, or get/set members when a setter of the same name remains.
func computedMembers(methods []*ast.FuncDecl, setters map[string]*ast.FuncDecl) []decl.Member {
	var members []decl.Member

	for _, m := range methods {
		if !isGetter(m) {
			continue
		}

		accessor := decl.AccessorGetter
		if _, ok := setters["Set"+upperFirst(m.Name.Name)]; ok {
			accessor = decl.AccessorGetSet
		}

		members = append(members, decl.Member{
			Accessor: accessor,
			Bindings: []decl.Binding{{
				Name:   m.Name.Name,
				Type:   exprText(m.Type.Results.List[0].Type),
				Source: "func " + m.Name.Name + "()",
			}},
		})
	}

	return members
}

// fieldNames returns the declared names, or the type name for an embedded field.
func fieldNames(field *ast.Field) []string {
	if len(field.Names) == 0 {
		if name := embeddedName(field.Type); name != "" {
			return []string{name}
		}

		return nil
	}

	names := make([]string, len(field.Names))
	for i, n := range field.Names {
		names[i] = n.Name
	}

	return names
}

func embeddedName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return embeddedName(t.X)
	case *ast.SelectorExpr:
		return t.Sel.Name
	case *ast.IndexExpr:
		return embeddedName(t.X)
	case *ast.IndexListExpr:
		return embeddedName(t.X)
	default:
		return ""
	}
}

// exprText renders a type expression, or "" if it could not be parsed.
func exprText(expr ast.Expr) string {
	if expr == nil {
		return ""
	}

	if _, bad := expr.(*ast.BadExpr); bad {
		return ""
	}

	return types.ExprString(expr)
}

func tagVisibility(tag *ast.BasicLit) (decl.Visibility, error) {
	if tag == nil {
		return decl.VisibilityUnset, nil
	}

	raw, err := strconv.Unquote(tag.Value)
	if err != nil {
		return decl.VisibilityUnset, fmt.Errorf("malformed struct tag %s: %w", tag.Value, err)
	}

	value, ok := reflect.StructTag(raw).Lookup(TagKey)
	if !ok {
		return decl.VisibilityUnset, nil
	}

	vis := decl.VisibilityUnset
	for _, opt := range strings.Split(value, ",") {
		opt = strings.TrimSpace(opt)
		if opt == "" {
			continue
		}

		v, err := decl.ParseVisibility(opt)
		if err != nil {
			return decl.VisibilityUnset, fmt.Errorf("tag %s:%q: %w", TagKey, value, err)
		}

		vis = v
	}

	return vis, nil
}

// collectMethods groups method declarations by receiver base type name,
// sorted by file name and offset.
func collectMethods(fset *token.FileSet, files []*ast.File) map[string][]*ast.FuncDecl {
	methods := make(map[string][]*ast.FuncDecl)

	for _, file := range files {
		for _, d := range file.Decls {
			fd, ok := d.(*ast.FuncDecl)
			if !ok || fd.Recv == nil || len(fd.Recv.List) == 0 {
				continue
			}

			if name := embeddedName(fd.Recv.List[0].Type); name != "" {
				methods[name] = append(methods[name], fd)
			}
		}
	}

	for _, list := range methods {
		slices.SortFunc(list, func(a, b *ast.FuncDecl) int {
			pa, pb := fset.Position(a.Pos()), fset.Position(b.Pos())
			if c := cmp.Compare(pa.Filename, pb.Filename); c != 0 {
				return c
			}

			return cmp.Compare(pa.Offset, pb.Offset)
		})
	}

	return methods
}

func isSetter(fd *ast.FuncDecl) bool {
	return strings.HasPrefix(fd.Name.Name, "Set") &&
		len(fd.Name.Name) > len("Set") &&
		countFields(fd.Type.Params) == 1
}

func isGetter(fd *ast.FuncDecl) bool {
	return countFields(fd.Type.Params) == 0 && countFields(fd.Type.Results) == 1 && !isSetter(fd)
}

func countFields(list *ast.FieldList) int {
	if list == nil {
		return 0
	}

	return list.NumFields()
}

func fileImports(file *ast.File) []Import {
	var imports []Import

	for _, spec := range file.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}

		imp := Import{Path: path, Name: common.PkgAlias(path)}
		if spec.Name != nil {
			if spec.Name.Name == "_" || spec.Name.Name == "." {
				continue
			}

			imp.Name = spec.Name.Name
			imp.Explicit = true
		}

		imports = append(imports, imp)
	}

	return imports
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}

	return string(unicode.ToUpper(r)) + s[size:]
}
