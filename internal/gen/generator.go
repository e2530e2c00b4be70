package gen

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/parser"
	"text/template"

	"golang.org/x/tools/imports"

	"wither-generator/internal/analyze"
	"wither-generator/internal/common"
	"wither-generator/internal/decl"
	"wither-generator/internal/wither"
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// Filename is the name of the file written into each package directory.
	Filename string
	// GenerateComments enables doc comments on generated methods.
	GenerateComments bool
	// DebugUnformatted writes a ".unformatted.go" sidecar when formatting fails.
	DebugUnformatted bool
}

// DefaultFilename is the generated file name used when none is configured.
const DefaultFilename = "wither_gen.go"

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Filename:         DefaultFilename,
		GenerateComments: true,
		DebugUnformatted: true,
	}
}

// Generator renders copy methods as Go source.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	if config.Filename == "" {
		config.Filename = DefaultFilename
	}

	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Dir is the package directory the file belongs in.
	Dir string
	// Filename is the base name of the file (e.g., "wither_gen.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Path returns the full path of the file.
func (f GeneratedFile) Path() string {
	return joinPath(f.Dir, f.Filename)
}

// TypeMethods pairs a marked type with the methods generated for it.
type TypeMethods struct {
	Target  analyze.Target
	Methods []wither.Method
}

// templateData holds all data needed for the file template.
type templateData struct {
	PackageName string
	Imports     []importSpec
	Types       []typeData
}

// importSpec is one import line of the generated file.
type importSpec struct {
	Alias string
	Path  string
}

type typeData struct {
	Name    string
	Methods []methodData
}

type methodData struct {
	Doc      string
	Receiver string
	RecvType string
	Name     string
	Params   []paramData
	Fields   []fieldData
}

type paramData struct {
	Name string
	Type string
}

type fieldData struct {
	Field string
	Value string
}

// Generate renders the methods of one package into a single file. It
// returns nil if no type has any method.
func (g *Generator) Generate(pkg *analyze.PackageInfo, types []TypeMethods) (*GeneratedFile, error) {
	data := &templateData{PackageName: pkg.Name}
	imps := newImportSet()

	for _, tm := range types {
		if len(tm.Methods) == 0 {
			continue
		}

		methods, qualifiers, err := imps.resolve(tm)
		if err != nil {
			return nil, fmt.Errorf("type %s: %w", tm.Target.Decl.Name, err)
		}

		td, err := g.buildTypeData(tm.Target.Decl, methods, qualifiers)
		if err != nil {
			return nil, fmt.Errorf("type %s: %w", tm.Target.Decl.Name, err)
		}

		data.Types = append(data.Types, td)
	}

	if len(data.Types) == 0 {
		return nil, nil
	}

	data.Imports = imps.specs()

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	file := &GeneratedFile{Dir: pkg.Dir, Filename: g.config.Filename}

	formatted, err := imports.Process(file.Path(), buf.Bytes(), nil)
	if err != nil {
		// Best-effort: write unformatted code to a sidecar file to aid debugging.
		if g.config.DebugUnformatted && pkg.Dir != "" {
			_ = writeDebugUnformatted(pkg.Dir, file.Filename, buf.Bytes())
		}

		file.Content = buf.Bytes()

		return file, fmt.Errorf("formatting code: %w (unformatted code returned)", err)
	}

	file.Content = formatted

	return file, nil
}

// buildTypeData constructs the template data for one type. reserved holds
// the package qualifiers the parameter types use.
func (g *Generator) buildTypeData(d *decl.Declaration, methods []wither.Method, reserved []string) (typeData, error) {
	td := typeData{Name: d.Name}

	// Names the method bodies and signatures refer to must stay visible.
	namer := newParamNamer(d.Name)
	namer.reserve(d.TypeParams...)
	namer.reserve(reserved...)

	// Parameter names are fixed per field so every method of the type agrees.
	params := make(map[string]string)

	for _, m := range methods {
		for _, a := range m.Args {
			if _, ok := params[a.Field]; !ok {
				params[a.Field] = namer.name(a.Field)
			}
		}
	}

	recv := receiverName(d.Name, namer.used)
	recvType := d.TypeExpr()
	seen := make(map[string]bool)

	for _, m := range methods {
		name := methodName(m.Visibility, m.ParamNames())
		if seen[name] {
			return typeData{}, fmt.Errorf("duplicate method %s", name)
		}

		seen[name] = true

		md := methodData{
			Receiver: recv,
			RecvType: recvType,
			Name:     name,
		}

		if g.config.GenerateComments && m.Doc != "" {
			md.Doc = name + " " + lowerFirst(m.Doc)
		}

		for _, p := range m.Params {
			md.Params = append(md.Params, paramData{Name: params[p.Name], Type: p.Type})
		}

		for _, a := range m.Args {
			value := recv + "." + a.Field
			if a.Replaced {
				value = params[a.Field]
			}

			md.Fields = append(md.Fields, fieldData{Field: a.Field, Value: value})
		}

		td.Methods = append(td.Methods, md)
	}

	return td, nil
}

// typeQualifiers returns the package qualifiers used in a type expression.
func typeQualifiers(typeExpr string) ([]string, error) {
	expr, err := parser.ParseExpr(typeExpr)
	if err != nil {
		return nil, fmt.Errorf("invalid type %q: %w", typeExpr, err)
	}

	var out []string
	ast.Inspect(expr, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}

		if id, ok := sel.X.(*ast.Ident); ok {
			out = append(out, id.Name)
		}

		return true
	})

	return common.Dedup(out), nil
}

var fileTemplate = template.Must(template.New("wither").Parse(`// Code generated by wither-generator. DO NOT EDIT.

package {{.PackageName}}

{{if .Imports}}
import (
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})
{{end}}
{{range .Types}}{{range .Methods}}
{{if .Doc}}// {{.Doc}}
{{end}}func ({{.Receiver}} {{.RecvType}}) {{.Name}}({{range $i, $p := .Params}}{{if $i}}, {{end}}{{$p.Name}} {{$p.Type}}{{end}}) {{.RecvType}} {
	return {{.RecvType}}{
{{range .Fields}}		{{.Field}}: {{.Value}},
{{end}}	}
}
{{end}}{{end}}`))
