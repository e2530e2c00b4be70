package wither

import (
	"fmt"
	"strings"

	"wither-generator/internal/classify"
	"wither-generator/internal/common"
	"wither-generator/internal/decl"
)

// MethodName is the name of every generated method. Hosts without
// overloading derive distinct names from the parameter list.
const MethodName = "copy"

// Param is one parameter of a generated method.
type Param struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// Arg is one field of the reconstruction expression.
type Arg struct {
	Field string `yaml:"field"`
	// Replaced is true when the field takes the parameter of the same name,
	// false when it keeps the receiver's value.
	Replaced bool `yaml:"replaced"`
}

// Method describes one generated copy method.
type Method struct {
	Name       string          `yaml:"name"`
	Visibility decl.Visibility `yaml:"visibility"`
	Params     []Param         `yaml:"params"`
	Args       []Arg           `yaml:"args"`
	Doc        string          `yaml:"doc"`
}

// ParamNames returns the names of the replaced fields, in parameter order.
func (m Method) ParamNames() []string {
	names := make([]string, len(m.Params))
	for i, p := range m.Params {
		names[i] = p.Name
	}

	return names
}

// Signature returns a compact rendering such as "copy(name string, age int)".
func (m Method) Signature() string {
	parts := make([]string, len(m.Params))
	for i, p := range m.Params {
		parts[i] = p.Name + " " + p.Type
	}

	return m.Name + "(" + strings.Join(parts, ", ") + ")"
}

// newMethod builds the method replacing subset, reconstructing from all.
func newMethod(vis decl.Visibility, subset, all []classify.Field) Method {
	replaced := make(map[string]bool, len(subset))
	params := make([]Param, len(subset))

	for i, f := range subset {
		replaced[f.Name] = true
		params[i] = Param{Name: f.Name, Type: f.Type}
	}

	args := make([]Arg, len(all))
	for i, f := range all {
		args[i] = Arg{Field: f.Name, Replaced: replaced[f.Name]}
	}

	return Method{
		Name:       MethodName,
		Visibility: vis,
		Params:     params,
		Args:       args,
		Doc:        docComment(subset),
	}
}

// docComment words the summary for one or several replaced fields.
func docComment(subset []classify.Field) string {
	quoted := make([]string, len(subset))
	for i, f := range subset {
		quoted[i] = "`" + f.Name + "`"
	}

	noun, verb := "values", "are"
	if common.IsSingle(subset) {
		noun, verb = "value", "is"
	}

	return fmt.Sprintf("Returns a copy of the caller whose %s for %s %s different.",
		noun, strings.Join(quoted, " and "), verb)
}
