// Package diagnostic provides the structured errors, warnings and notes
// produced while generating copy methods.
//
// The vocabulary is fixed:
//   - NotARecordType (error): the directive is attached to a non-struct type
//   - UnresolvedFieldType (warning): a stored field has no declared type
//   - TooManyFields (warning): the combination cap was exceeded
//   - NoStoredFields (info): a struct has nothing to generate for
//
// Constructors are pure functions of their inputs; there is no registry.
package diagnostic
