package analyze

import (
	"fmt"
	"go/ast"
	"strings"

	"wither-generator/internal/common"
	"wither-generator/internal/decl"
	"wither-generator/internal/match"
)

// DirectivePrefix starts every wither directive comment.
const DirectivePrefix = "//wither:"

var directiveVerbs = []string{ModeSingle.String(), ModeCombinations.String()}

// Directive is a parsed wither directive.
type Directive struct {
	Mode       Mode
	Visibility decl.Visibility
}

// ParseDirective parses one comment line. ok is false if the line is not a
// wither directive.
func ParseDirective(text string) (d Directive, ok bool, err error) {
	rest, found := strings.CutPrefix(text, DirectivePrefix)
	if !found {
		return Directive{}, false, nil
	}

	fields := strings.Fields(rest)
	verb, _ := common.First(fields)

	switch verb {
	case "copy":
		d.Mode = ModeSingle
	case "combinations":
		d.Mode = ModeCombinations
	default:
		return Directive{}, true, fmt.Errorf("unknown directive %q%s", strings.TrimSpace(text), match.DidYouMean(verb, directiveVerbs))
	}

	switch len(fields) {
	case 1:
	case 2:
		d.Visibility, err = decl.ParseVisibility(fields[1])
		if err != nil {
			return Directive{}, true, fmt.Errorf("directive %q: %w", strings.TrimSpace(text), err)
		}
	default:
		return Directive{}, true, fmt.Errorf("directive %q: too many arguments", strings.TrimSpace(text))
	}

	return d, true, nil
}

// findDirective scans the doc comment groups (in order) for a directive.
// If both copy and combinations are present, combinations wins: its
// single-field subsets already cover the copy methods.
func findDirective(groups ...*ast.CommentGroup) (Directive, bool, error) {
	var (
		result Directive
		found  bool
	)

	for _, g := range groups {
		if g == nil {
			continue
		}

		for _, c := range g.List {
			d, ok, err := ParseDirective(c.Text)
			if err != nil {
				return Directive{}, false, err
			}

			if !ok {
				continue
			}

			if !found || d.Mode == ModeCombinations {
				result = d
			}

			found = true
		}
	}

	return result, found, nil
}
