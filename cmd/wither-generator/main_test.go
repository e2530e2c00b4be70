package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"wither-generator/internal/diagnostic"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return stdout.String(), stderr.String(), err
}

// writeModule creates a throwaway module holding files.
func writeModule(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	files["go.mod"] = "module example.com/shop\n\ngo 1.21\n"

	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	return dir
}

const itemSource = `package shop

//wither:copy
type Item struct {
	Name  string
	Price int
}
`

func TestGen_WritesFile(t *testing.T) {
	dir := writeModule(t, map[string]string{"item.go": itemSource})

	stdout, stderr, err := execute(t, "gen", "-C", dir, "./...")
	require.NoError(t, err, stderr)

	path := filepath.Join(dir, "wither_gen.go")
	assert.Contains(t, stdout, "wrote "+path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "func (i Item) CopyWithName(name string) Item {")
	assert.Contains(t, string(content), "func (i Item) CopyWithPrice(price int) Item {")

	// A second run leaves the file alone.
	stdout, _, err = execute(t, "gen", "-C", dir, "./...")
	require.NoError(t, err)
	assert.Empty(t, stdout)
}

func TestGen_OutputFlag(t *testing.T) {
	dir := writeModule(t, map[string]string{"item.go": itemSource})

	_, stderr, err := execute(t, "gen", "-C", dir, "--output", "copies_gen.go", ".")
	require.NoError(t, err, stderr)
	assert.FileExists(t, filepath.Join(dir, "copies_gen.go"))

	_, _, err = execute(t, "gen", "-C", dir, "--output", "sub/x.go", ".")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output must be a .go file name")
}

func TestGen_ConfigFile(t *testing.T) {
	dir := writeModule(t, map[string]string{
		"item.go":     itemSource,
		"wither.toml": "output = \"from_toml_gen.go\"\ncomments = false\n",
	})

	_, stderr, err := execute(t, "gen", "-C", dir)
	require.NoError(t, err, stderr)

	content, err := os.ReadFile(filepath.Join(dir, "from_toml_gen.go"))
	require.NoError(t, err)
	assert.NotContains(t, string(content), "returns a copy")
}

func TestCheck_NotAStruct(t *testing.T) {
	dir := writeModule(t, map[string]string{"level.go": `package shop

//wither:copy
type Level int
`})

	_, stderr, err := execute(t, "check", "-C", dir, "--color", "off", ".")
	require.ErrorIs(t, err, errFailed)
	assert.Contains(t, stderr, "error: [Level] copy methods can only be generated for a struct type (wither.notARecordType)")
	assert.NoFileExists(t, filepath.Join(dir, "wither_gen.go"))
}

func TestCheck_WarningsAsErrors(t *testing.T) {
	dir := writeModule(t, map[string]string{"wide.go": `package shop

//wither:combinations
type Wide struct {
	A, B, C int
}
`})

	_, stderr, err := execute(t, "check", "-C", dir, "--max-fields", "2", ".")
	require.NoError(t, err)
	assert.Contains(t, stderr, "wither.tooManyFields")
	assert.Contains(t, stderr, "hint: raise max_combination_fields")

	_, _, err = execute(t, "check", "-C", dir, "--max-fields", "2", "--warnings-as-errors", ".")
	require.ErrorIs(t, err, errFailed)

	_, stderr, err = execute(t, "check", "-C", dir, "--dump", ".")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Name: (string) (len=4) \"Wide\"")
}

func TestCheck_MaxFieldsZeroLiftsCap(t *testing.T) {
	dir := writeModule(t, map[string]string{"wide.go": `package shop

//wither:combinations
type Wide struct {
	A, B, C, D, E, F, G, H, I int
}
`})

	_, stderr, err := execute(t, "check", "-C", dir, ".")
	require.NoError(t, err)
	assert.Contains(t, stderr, "wither.tooManyFields")

	_, stderr, err = execute(t, "check", "-C", dir, "--max-fields", "0", ".")
	require.NoError(t, err)
	assert.NotContains(t, stderr, "wither.tooManyFields")

	check, _, err := newRootCmd().Find([]string{"check"})
	require.NoError(t, err)
	assert.Contains(t, check.Flags().Lookup("max-fields").Usage, "0 = no cap")
}

func TestCheck_BadColor(t *testing.T) {
	dir := writeModule(t, map[string]string{"item.go": itemSource})

	_, _, err := execute(t, "check", "-C", dir, "--color", "sometimes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown --color value")
}

func TestExpand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "decl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
declarations:
  - name: Person
    kind: struct
    members:
      - bindings:
          - name: name
            type: String
      - bindings:
          - name: age
            type: Int
  - name: Shape
    kind: interface
`), 0o644))

	stdout, stderr, err := execute(t, "expand", "-f", path, "--combinations")
	require.ErrorIs(t, err, errFailed)
	assert.Contains(t, stderr, "wither.notARecordType")

	var out []expansion
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &out))
	require.Len(t, out, 2)

	assert.Equal(t, "Person", out[0].Declaration)
	assert.Equal(t, "combinations", out[0].Mode)
	require.Len(t, out[0].Methods, 3)
	assert.Equal(t, []string{"name", "age"}, out[0].Methods[2].ParamNames())
	assert.Empty(t, out[0].Diagnostics)

	assert.Empty(t, out[1].Methods)
	require.Len(t, out[1].Diagnostics, 1)
	assert.Equal(t, diagnostic.DiagnosticError.String(), out[1].Diagnostics[0].Severity)
}

func TestExpand_RequiresFile(t *testing.T) {
	_, _, err := execute(t, "expand")
	require.Error(t, err)
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "wither-generator dev")
}

func TestFailed(t *testing.T) {
	assert.True(t, failed(true, false, false))
	assert.False(t, failed(false, true, false))
	assert.True(t, failed(false, true, true))
	assert.False(t, failed(false, false, true))
}
