package gen

import (
	"go/token"
	"go/types"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"wither-generator/internal/decl"
)

// Method name prefixes.
const (
	exportedPrefix   = "CopyWith"
	unexportedPrefix = "copyWith"
	fieldSeparator   = "And"
)

// methodName derives the Go method name for the replaced fields.
func methodName(vis decl.Visibility, fields []string) string {
	title := cases.Title(language.Und, cases.NoLower)

	var sb strings.Builder
	if vis.Exported() {
		sb.WriteString(exportedPrefix)
	} else {
		sb.WriteString(unexportedPrefix)
	}

	for i, f := range fields {
		if i > 0 {
			sb.WriteString(fieldSeparator)
		}

		sb.WriteString(title.String(f))
	}

	return sb.String()
}

// lowerCamel converts a field name into a parameter name: "Name" -> "name",
// "ID" -> "id", "URLPath" -> "urlPath".
func lowerCamel(s string) string {
	runes := []rune(s)

	upper := 0
	for upper < len(runes) && unicode.IsUpper(runes[upper]) {
		upper++
	}

	if upper == 0 {
		return s
	}

	// Keep the last capital of a run: it starts the next word.
	if upper > 1 && upper < len(runes) && unicode.IsLower(runes[upper]) {
		upper--
	}

	for i := range upper {
		runes[i] = unicode.ToLower(runes[i])
	}

	return string(runes)
}

// lowerFirst lowercases the first rune of s.
func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}

	return string(unicode.ToLower(r)) + s[size:]
}

// receiverName picks a receiver for typeName that no parameter uses.
func receiverName(typeName string, taken map[string]bool) string {
	candidates := []string{"recv", "rcv"}
	if r, _ := utf8.DecodeRuneInString(typeName); unicode.IsLetter(r) {
		candidates = append([]string{string(unicode.ToLower(r))}, candidates...)
	}

	for _, c := range candidates {
		if !taken[c] {
			return c
		}
	}

	name := "recv"
	for taken[name] {
		name += "_"
	}

	return name
}

// paramNamer hands out distinct parameter names that are neither keywords
// nor predeclared identifiers, and never equal a reserved name.
type paramNamer struct {
	used map[string]bool
}

func newParamNamer(reserved ...string) *paramNamer {
	n := &paramNamer{used: make(map[string]bool)}
	n.reserve(reserved...)

	return n
}

// reserve marks names the generated code refers to, such as the type name,
// its type parameters and package qualifiers.
func (n *paramNamer) reserve(names ...string) {
	for _, name := range names {
		n.used[name] = true
	}
}

func (n *paramNamer) name(field string) string {
	name := lowerCamel(field)
	if token.IsKeyword(name) || name == "_" || types.Universe.Lookup(name) != nil {
		name += "_"
	}

	for n.used[name] {
		name += "_"
	}

	n.used[name] = true

	return name
}
