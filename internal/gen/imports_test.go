package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wither-generator/internal/analyze"
	"wither-generator/internal/decl"
	"wither-generator/internal/wither"
)

func TestImportSet_Conflicts(t *testing.T) {
	s := newImportSet()

	assert.Equal(t, "template", s.add(analyze.Import{Name: "template", Path: "text/template"}))
	assert.Equal(t, "htmltemplate", s.add(analyze.Import{Name: "template", Path: "html/template"}))
	assert.Equal(t, "template", s.add(analyze.Import{Name: "template", Path: "text/template"}))

	// A path without a parent directory falls back to a counter.
	assert.Equal(t, "template2", s.add(analyze.Import{Name: "template", Path: "template"}))

	assert.Equal(t, []importSpec{
		{Path: "html/template", Alias: "htmltemplate"},
		{Path: "template", Alias: "template2"},
		{Path: "text/template"},
	}, s.specs())
}

func TestImportSet_Resolve(t *testing.T) {
	s := newImportSet()
	s.add(analyze.Import{Name: "template", Path: "text/template"})

	d := &decl.Declaration{
		Name: "View",
		Kind: decl.KindStruct,
		Members: []decl.Member{
			{Bindings: []decl.Binding{{Name: "Pages", Type: "map[string]*template.Template"}}},
			{Bindings: []decl.Binding{{Name: "Err", Type: "error"}}},
		},
	}

	methods, diags := wither.Single(d)
	require.False(t, diags.HasErrors())

	tm := TypeMethods{
		Target: analyze.Target{
			Decl:    d,
			Imports: []analyze.Import{{Name: "template", Path: "html/template"}},
		},
		Methods: methods,
	}

	resolved, qualifiers, err := s.resolve(tm)
	require.NoError(t, err)
	require.Len(t, resolved, 2)

	assert.Equal(t, "map[string]*htmltemplate.Template", resolved[0].Params[0].Type)
	assert.Equal(t, "error", resolved[1].Params[0].Type)
	assert.Equal(t, []string{"htmltemplate"}, qualifiers)

	// The caller's methods are left untouched.
	assert.Equal(t, "map[string]*template.Template", methods[0].Params[0].Type)
}

func TestRenameQualifiers(t *testing.T) {
	got, err := renameQualifiers("func(context.Context) (*sql.Rows, error)", map[string]string{"sql": "dbsql"})
	require.NoError(t, err)
	assert.Equal(t, "func(context.Context) (*dbsql.Rows, error)", got)

	got, err = renameQualifiers("[]  int", map[string]string{"sql": "dbsql"})
	require.NoError(t, err)
	assert.Equal(t, "[]  int", got)

	_, err = renameQualifiers("map[", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid type")
}
