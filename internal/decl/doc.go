// Package decl provides the declaration model consumed by the wither
// generators.
//
// A front end (the Go package loader, a declaration file, or any other host)
// converts the type it wants copy methods for into a Declaration. The
// generators only ever read it.
//
// Key types:
//   - Declaration: a named type with its kind, visibility and members
//   - Member: one entry of the type body, with an accessor clause
//   - Binding: a single name/type pair inside a member
//   - Kind, Accessor, Visibility: closed enumerations matched exhaustively
package decl
