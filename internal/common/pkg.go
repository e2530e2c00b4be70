package common

import (
	"path"
	"regexp"
	"strings"
	"unicode"
)

var majorVersion = regexp.MustCompile(`^v[0-9]+$`)

// PkgAlias guesses the package name of an import path the way goimports
// does: the last path element, skipping a trailing major version ("/v2"),
// without a "go-" prefix and cut at the first character that cannot appear
// in an identifier ("yaml.v3" -> "yaml"). Returns empty string if pkgPath is
// empty.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	base := path.Base(pkgPath)
	if majorVersion.MatchString(base) {
		if dir := path.Dir(pkgPath); dir != "." && dir != "/" {
			base = path.Base(dir)
		}
	}

	base = strings.TrimPrefix(base, "go-")

	if i := strings.IndexFunc(base, notIdentRune); i >= 0 {
		base = base[:i]
	}

	return base
}

func notIdentRune(r rune) bool {
	return r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
