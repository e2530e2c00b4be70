// Package gen provides deterministic Go code generation for copy methods.
//
// Generation approach uses text/template + golang.org/x/tools/imports for
// readable, gofmt-clean output with unused imports pruned.
//
// One file is produced per package. For a type Person with fields Name and
// Age, the single-field methods look like:
//
//	// CopyWithName returns a copy of the caller whose value for `Name` is different.
//	func (p Person) CopyWithName(name string) Person {
//		return Person{
//			Name: name,
//			Age:  p.Age,
//		}
//	}
//
// Go has no overloading, so the method name spells out the replaced fields
// (CopyWithNameAndAge). Private methods start lower case (copyWithName).
package gen
