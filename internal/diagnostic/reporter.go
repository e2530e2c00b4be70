package diagnostic

import (
	"fmt"

	"wither-generator/internal/common"
	"wither-generator/internal/decl"
)

// Domain prefixes every diagnostic code.
const Domain = "wither"

// Kind identifies one entry of the diagnostic vocabulary.
type Kind int

const (
	KindNotARecordType Kind = iota + 1
	KindUnresolvedFieldType
	KindTooManyFields
	KindNoStoredFields
)

// String returns the kind's identifier.
func (k Kind) String() string {
	switch k {
	case KindNotARecordType:
		return "notARecordType"
	case KindUnresolvedFieldType:
		return "unresolvedFieldType"
	case KindTooManyFields:
		return "tooManyFields"
	case KindNoStoredFields:
		return "noStoredFields"
	default:
		return common.UnknownStr
	}
}

// Severity returns the fixed severity of the kind.
func (k Kind) Severity() DiagnosticSeverity {
	switch k {
	case KindNotARecordType:
		return DiagnosticError
	case KindUnresolvedFieldType, KindTooManyFields:
		return DiagnosticWarning
	default:
		return DiagnosticInfo
	}
}

// NotARecordType reports a copy directive on a declaration that is not a struct.
func NotARecordType(d *decl.Declaration) Diagnostic {
	return Diagnostic{
		Kind:     KindNotARecordType,
		Severity: KindNotARecordType.Severity(),
		Code:     Domain + "." + KindNotARecordType.String(),
		Message:  "copy methods can only be generated for a struct type",
		Decl:     d.Name,
		Pos:      d.Pos,
	}
}

// UnresolvedFieldType reports a stored field whose type is not written out.
// The code embeds the field name so repeated occurrences stay distinct.
func UnresolvedFieldType(d *decl.Declaration, b decl.Binding) Diagnostic {
	return Diagnostic{
		Kind:     KindUnresolvedFieldType,
		Severity: KindUnresolvedFieldType.Severity(),
		Code:     fmt.Sprintf("%s.%s(%s)", Domain, KindUnresolvedFieldType, b.Name),
		Message:  fmt.Sprintf("type error for field '%s': %s", b.Name, b.Text()),
		Decl:     d.Name,
		Field:    b.Name,
		Pos:      d.Pos,
		Suggestions: []string{
			fmt.Sprintf("declare the type of '%s' explicitly", b.Name),
		},
	}
}

// TooManyFields reports that combination generation was skipped because the
// number of fields exceeds limit.
func TooManyFields(d *decl.Declaration, fields, limit int) Diagnostic {
	return Diagnostic{
		Kind:     KindTooManyFields,
		Severity: KindTooManyFields.Severity(),
		Code:     Domain + "." + KindTooManyFields.String(),
		Message: fmt.Sprintf("%d fields would produce %s combinations (limit is %d fields); skipped",
			fields, combinationCount(fields), limit),
		Decl: d.Name,
		Pos:  d.Pos,
		Suggestions: []string{
			"raise max_combination_fields or use //wither:copy",
		},
	}
}

// NoStoredFields notes a struct that has no eligible field.
func NoStoredFields(d *decl.Declaration) Diagnostic {
	return Diagnostic{
		Kind:     KindNoStoredFields,
		Severity: KindNoStoredFields.Severity(),
		Code:     Domain + "." + KindNoStoredFields.String(),
		Message:  "no stored fields; nothing to generate",
		Decl:     d.Name,
		Pos:      d.Pos,
	}
}

func combinationCount(n int) string {
	if n >= 63 {
		return fmt.Sprintf("2^%d-1", n)
	}

	return fmt.Sprintf("%d", (uint64(1)<<n)-1)
}
