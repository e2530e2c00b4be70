package analyze

import (
	"wither-generator/internal/common"
	"wither-generator/internal/decl"
)

// Mode selects which generator a directive asks for.
type Mode int

const (
	ModeSingle       Mode = iota // one method per field
	ModeCombinations             // one method per non-empty field subset
)

// String returns the directive verb for the Mode.
func (m Mode) String() string {
	switch m {
	case ModeSingle:
		return "copy"
	case ModeCombinations:
		return "combinations"
	default:
		return common.UnknownStr
	}
}

// Import is one import spec of a source file.
type Import struct {
	Name string // local name; explicit alias or the conventional name
	Path string
	// Explicit is true if the spec names the package (import foo "path").
	Explicit bool
}

// Target is a directive-marked type.
type Target struct {
	Decl *decl.Declaration
	Mode Mode
	// File is the absolute path of the file declaring the type.
	File string
	// Imports are the import specs of File.
	Imports []Import
}

// PackageInfo holds the targets found in one package.
type PackageInfo struct {
	Path    string // Import path
	Name    string // Package name
	Dir     string // Directory holding the package files
	Targets []Target
}

// HasTargets returns true if the package has at least one marked type.
func (p *PackageInfo) HasTargets() bool {
	return !common.IsEmpty(p.Targets)
}
