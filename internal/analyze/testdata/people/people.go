package people

import (
	"fmt"
	"strings"
	stdtime "time"
)

// Person is a value record with plain, computed and observed members.
//
//wither:copy public
type Person struct {
	Name     string `wither:"private"`
	Age      int
	NickName *string
	Born     stdtime.Time
}

// FullName is computed from Name and can be assigned.
func (p Person) FullName() string { return p.Name }

// SetFullName replaces Name.
func (p *Person) SetFullName(v string) { p.Name = v }

// UppercasedName is a read-only computed value.
func (p Person) UppercasedName() string { return strings.ToUpper(p.Name) }

// SetNickName updates the nickname and reports the change.
func (p *Person) SetNickName(v *string) {
	p.NickName = v
	fmt.Println("nickname changed")
}

//wither:combinations
type Point struct {
	X, Y int
	Z    float64
}

// Color is not a struct.
//
//wither:copy
type Color int

type (
	// Pair is generic.
	//
	//wither:copy
	Pair[K comparable, V any] struct {
		Key   K
		Value V
	}

	// Plain has no directive.
	Plain struct {
		A int
	}
)
