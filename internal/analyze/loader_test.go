package analyze

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wither-generator/internal/decl"
)

const peoplePkg = "wither-generator/internal/analyze/testdata/people"

func loadPeople(t *testing.T) *PackageInfo {
	t.Helper()

	analyzer := NewAnalyzer("")
	pkgs, err := analyzer.LoadPackages(context.Background(), "./testdata/people")
	require.NoError(t, err)
	require.Len(t, pkgs, 1)

	return pkgs[0]
}

func targetByName(t *testing.T, info *PackageInfo, name string) Target {
	t.Helper()

	for _, target := range info.Targets {
		if target.Decl.Name == name {
			return target
		}
	}

	require.Failf(t, "target not found", "%s", name)
	return Target{}
}

func TestAnalyzer_LoadPackages(t *testing.T) {
	info := loadPeople(t)

	assert.Equal(t, peoplePkg, info.Path)
	assert.Equal(t, "people", info.Name)
	assert.NotEmpty(t, info.Dir)
	assert.True(t, info.HasTargets())

	var names []string
	for _, target := range info.Targets {
		names = append(names, target.Decl.Name)
	}

	assert.Equal(t, []string{"Person", "Point", "Color", "Pair"}, names)
}

func TestAnalyzer_PersonMembers(t *testing.T) {
	person := targetByName(t, loadPeople(t), "Person")

	assert.Equal(t, ModeSingle, person.Mode)
	assert.Equal(t, decl.KindStruct, person.Decl.Kind)
	assert.Equal(t, decl.VisibilityPublic, person.Decl.Visibility)
	assert.Contains(t, person.File, "people.go")
	assert.Equal(t, 12, person.Decl.Pos.Line)

	type member struct {
		name     string
		accessor decl.Accessor
	}

	var got []member
	for _, m := range person.Decl.Members {
		for _, b := range m.Bindings {
			got = append(got, member{b.Name, b.EffectiveAccessor(m)})
		}
	}

	assert.Equal(t, []member{
		{"Name", decl.AccessorNone},
		{"Age", decl.AccessorNone},
		{"NickName", decl.AccessorObserver},
		{"Born", decl.AccessorNone},
		{"Describe", decl.AccessorGetter},
		{"FullName", decl.AccessorGetSet},
		{"UppercasedName", decl.AccessorGetter},
	}, got)

	assert.Equal(t, decl.VisibilityPrivate, person.Decl.Members[0].Visibility)
	assert.Equal(t, "stdtime.Time", person.Decl.Members[3].Bindings[0].Type)
}

func TestAnalyzer_Imports(t *testing.T) {
	person := targetByName(t, loadPeople(t), "Person")

	assert.Contains(t, person.Imports, Import{Name: "stdtime", Path: "time", Explicit: true})
	assert.Contains(t, person.Imports, Import{Name: "fmt", Path: "fmt"})
}

func TestAnalyzer_Kinds(t *testing.T) {
	info := loadPeople(t)

	point := targetByName(t, info, "Point")
	assert.Equal(t, ModeCombinations, point.Mode)
	require.Len(t, point.Decl.Members, 2)
	assert.Len(t, point.Decl.Members[0].Bindings, 2)

	color := targetByName(t, info, "Color")
	assert.Equal(t, decl.KindNamed, color.Decl.Kind)
	assert.Empty(t, color.Decl.Members)

	pair := targetByName(t, info, "Pair")
	assert.Equal(t, []string{"K", "V"}, pair.Decl.TypeParams)
	assert.Equal(t, "Pair[K, V]", pair.Decl.TypeExpr())
}

func TestAnalyzer_LoadError(t *testing.T) {
	analyzer := NewAnalyzer("")
	_, err := analyzer.LoadPackages(context.Background(), "./testdata/does-not-exist")
	require.Error(t, err)
}
