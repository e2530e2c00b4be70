package gen

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/packages"

	"wither-generator/internal/analyze"
	"wither-generator/internal/wither"
)

// generateChecked writes files into a throwaway module, generates its copy
// methods and type-checks the package with the generated file included.
func generateChecked(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	files["go.mod"] = "module example.com/shapes\n\ngo 1.22\n"

	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	pkgs, err := analyze.NewAnalyzer(dir).LoadPackages(context.Background(), ".")
	require.NoError(t, err)
	require.Len(t, pkgs, 1)

	var types []TypeMethods
	for _, target := range pkgs[0].Targets {
		var methods []wither.Method

		switch target.Mode {
		case analyze.ModeCombinations:
			ms, diags := wither.Combinations(target.Decl, wither.DefaultOptions())
			require.False(t, diags.HasErrors())
			methods = ms
		default:
			ms, diags := wither.Single(target.Decl)
			require.False(t, diags.HasErrors())
			methods = ms
		}

		types = append(types, TypeMethods{Target: target, Methods: methods})
	}

	file, err := NewGenerator(DefaultGeneratorConfig()).Generate(pkgs[0], types)
	require.NoError(t, err)
	require.NotNil(t, file)

	_, err = WriteFiles([]GeneratedFile{*file})
	require.NoError(t, err)

	loaded, err := packages.Load(&packages.Config{
		Mode: packages.NeedName | packages.NeedTypes | packages.NeedSyntax,
		Dir:  dir,
	}, ".")
	require.NoError(t, err)
	require.Len(t, loaded, 1)

	for _, e := range loaded[0].Errors {
		t.Errorf("generated code does not type-check: %v\n%s", e, file.Content)
	}

	return normalize(string(file.Content))
}

func TestGenerate_TypeChecks(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		want  []string
	}{
		{
			name: "parameter named like the type",
			files: map[string]string{"node.go": `package shapes

type Node struct{ ID int }

//wither:copy
type node struct {
	*Node
	Label string
}

//wither:copy
type p struct {
	P int
}
`},
			want: []string{
				"func (n node) CopyWithNode(node_ *Node) node",
				"return node{ Node: node_, Label: n.Label, }",
				"func (recv p) CopyWithP(p_ int) p",
			},
		},
		{
			name: "same package name for two paths",
			files: map[string]string{
				"a.go": `package shapes

import "text/template"

//wither:copy
type Page struct {
	Body *template.Template
}
`,
				"b.go": `package shapes

import "html/template"

//wither:copy
type View struct {
	Body *template.Template
}
`,
			},
			want: []string{
				`htmltemplate "html/template"`,
				`"text/template"`,
				"func (p Page) CopyWithBody(body *template.Template) Page",
				"func (v View) CopyWithBody(body *htmltemplate.Template) View",
			},
		},
		{
			name: "predeclared field names",
			files: map[string]string{"str.go": `package shapes

//wither:combinations
type Str struct {
	String string
	Len    int
	Error  error
}
`},
			want: []string{
				"func (s Str) CopyWithStringAndLen(string_ string, len_ int) Str",
				"func (s Str) CopyWithStringAndLenAndError(string_ string, len_ int, error_ error) Str",
			},
		},
		{
			name: "generic receiver and qualifier-named field",
			files: map[string]string{"pair.go": `package shapes

import "time"

//wither:copy
type Pair[K comparable, V any] struct {
	K    K
	V    V
	Time time.Time
}
`},
			want: []string{
				"func (p Pair[K, V]) CopyWithK(k K) Pair[K, V]",
				"func (p Pair[K, V]) CopyWithTime(time_ time.Time) Pair[K, V]",
				"return Pair[K, V]{ K: p.K, V: p.V, Time: time_, }",
			},
		},
		{
			name: "aliased import reused across files",
			files: map[string]string{
				"a.go": `package shapes

import stdtime "time"

//wither:copy
type Start struct {
	At stdtime.Time
}
`,
				"b.go": `package shapes

import "time"

//wither:copy
type Stop struct {
	At time.Time
}
`,
			},
			want: []string{
				`stdtime "time"`,
				"func (s Start) CopyWithAt(at stdtime.Time) Start",
				"func (s Stop) CopyWithAt(at stdtime.Time) Stop",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := generateChecked(t, tt.files)

			for _, want := range tt.want {
				assert.Contains(t, content, normalize(want))
			}
		})
	}
}
