package decl

import (
	"go/token"

	"wither-generator/internal/common"
)

// Kind is the structural kind of a declaration.
type Kind int

const (
	KindUnknown   Kind = iota
	KindStruct         // value record, reconstructed with a keyed literal
	KindInterface      // method set only
	KindNamed          // defined type over a non-struct (e.g., type Color int)
	KindAlias          // type alias (type A = B)
)

// String returns a human-readable representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindStruct:
		return "struct"
	case KindInterface:
		return "interface"
	case KindNamed:
		return "named"
	case KindAlias:
		return "alias"
	default:
		return common.UnknownStr
	}
}

// IsRecord reports whether declarations of this kind can receive copy methods.
func (k Kind) IsRecord() bool {
	return k == KindStruct
}

// Accessor is the accessor clause attached to a member or binding.
type Accessor int

const (
	AccessorNone     Accessor = iota // plain stored value
	AccessorGetter                   // computed, read only
	AccessorGetSet                   // computed, read and write
	AccessorObserver                 // stored value with a change hook
)

// String returns a human-readable representation of the Accessor.
func (a Accessor) String() string {
	switch a {
	case AccessorNone:
		return "none"
	case AccessorGetter:
		return "getter"
	case AccessorGetSet:
		return "getset"
	case AccessorObserver:
		return "observer"
	default:
		return common.UnknownStr
	}
}

// IsStored reports whether the accessor keeps backing storage.
func (a Accessor) IsStored() bool {
	switch a {
	case AccessorNone, AccessorObserver:
		return true
	case AccessorGetter, AccessorGetSet:
		return false
	default:
		return false
	}
}

// Visibility is an access level. The zero value means "not specified".
type Visibility int

const (
	VisibilityUnset Visibility = iota
	VisibilityPrivate
	VisibilityInternal
	VisibilityPublic
)

// DefaultVisibility applies when nothing in the chain specifies one.
const DefaultVisibility = VisibilityInternal

// String returns a human-readable representation of the Visibility.
func (v Visibility) String() string {
	switch v {
	case VisibilityUnset:
		return ""
	case VisibilityPrivate:
		return "private"
	case VisibilityInternal:
		return "internal"
	case VisibilityPublic:
		return "public"
	default:
		return common.UnknownStr
	}
}

// Exported reports whether a Go identifier with this visibility is exported.
// Internal maps to exported because Go has no access level between package
// and public.
func (v Visibility) Exported() bool {
	return v != VisibilityPrivate
}

// Or returns v, or fallback if v is unset.
func (v Visibility) Or(fallback Visibility) Visibility {
	if v == VisibilityUnset {
		return fallback
	}

	return v
}

// Declaration is a named type handed to the generators.
type Declaration struct {
	Name       string
	Kind       Kind
	Visibility Visibility
	Members    []Member
	// TypeParams lists Go type parameter names (e.g., ["K", "V"]) in order.
	TypeParams []string
	// Pos locates the declaration for diagnostics. May be invalid.
	Pos token.Position
}

// Member is one entry of a declaration body.
type Member struct {
	Accessor   Accessor
	Visibility Visibility
	Bindings   []Binding
}

// Binding is a single name and its declared type within a member.
type Binding struct {
	Name string
	// Type is the declared type as written. Empty if the binding has none.
	Type string
	// Accessor overrides the member accessor when not AccessorNone.
	Accessor   Accessor
	Visibility Visibility
	// Source is the raw fragment the binding was read from.
	Source string
}

// EffectiveAccessor returns the binding's accessor, falling back to the
// member clause.
func (b Binding) EffectiveAccessor(m Member) Accessor {
	if b.Accessor != AccessorNone {
		return b.Accessor
	}

	return m.Accessor
}

// Text returns Source, or a "name type" rendering if Source is empty.
func (b Binding) Text() string {
	if b.Source != "" {
		return b.Source
	}

	if b.Type == "" {
		return b.Name
	}

	return b.Name + " " + b.Type
}

// Bindings returns all bindings of the declaration in member order.
func (d *Declaration) Bindings() []Binding {
	var out []Binding
	for _, m := range d.Members {
		out = append(out, m.Bindings...)
	}

	return out
}

// IsGeneric returns true if the declaration has type parameters.
func (d *Declaration) IsGeneric() bool {
	return len(d.TypeParams) > 0
}

// TypeExpr returns the instantiated type expression used inside the
// declaration's own methods, e.g. "Pair[K, V]".
func (d *Declaration) TypeExpr() string {
	if !d.IsGeneric() {
		return d.Name
	}

	expr := d.Name + "["
	for i, p := range d.TypeParams {
		if i > 0 {
			expr += ", "
		}

		expr += p
	}

	return expr + "]"
}
