// Package analyze provides package loading and directive discovery.
//
// It uses golang.org/x/tools/go/packages to parse Go packages and converts
// every type spec carrying a wither directive into a decl.Declaration:
//
//	//wither:copy [private|internal|public]
//	type Person struct { ... }
//
//	//wither:combinations [private|internal|public]
//	type Point struct { ... }
//
// Struct fields become members, one binding per name. Methods declared on
// the type are folded in as accessor information:
//   - a field x with a SetX(v) method is observed (stored, with a hook)
//   - a method X() with one result is a computed getter
//   - a getter X() with a SetX(v) method and no field x is a get/set pair
//
// The struct tag `wither:"private"` (or internal, public) sets a field's
// visibility. Only syntax is inspected; field types are never resolved.
package analyze
