// Package classify separates the stored fields of a declaration from its
// computed members.
package classify

import "wither-generator/internal/decl"

// Field is a stored binding with a declared type.
type Field struct {
	Name       string
	Type       string
	Visibility decl.Visibility
}

// Result is the outcome of classifying one declaration.
type Result struct {
	// Fields are the eligible fields in declaration order.
	Fields []Field
	// Untyped are stored bindings that have no declared type, in order.
	Untyped []decl.Binding
	// NotRecord is set when the declaration is not a struct. Fields and
	// Untyped are empty in that case.
	NotRecord bool
}

// Classify walks members and bindings in order and keeps every binding whose
// effective accessor has storage. Each binding is judged on its own.
func Classify(d *decl.Declaration) Result {
	return classify(d, false)
}

// ClassifyWhole is Classify, except that a member is dropped entirely unless
// every one of its bindings is stored.
func ClassifyWhole(d *decl.Declaration) Result {
	return classify(d, true)
}

func classify(d *decl.Declaration, wholeMember bool) Result {
	if !d.Kind.IsRecord() {
		return Result{NotRecord: true}
	}

	declVis := d.Visibility.Or(decl.DefaultVisibility)

	var res Result
	for _, m := range d.Members {
		if wholeMember && !allStored(m) {
			continue
		}

		memberVis := m.Visibility.Or(declVis)

		for _, b := range m.Bindings {
			if !b.EffectiveAccessor(m).IsStored() {
				continue
			}

			if b.Type == "" {
				res.Untyped = append(res.Untyped, b)
				continue
			}

			res.Fields = append(res.Fields, Field{
				Name:       b.Name,
				Type:       b.Type,
				Visibility: b.Visibility.Or(memberVis),
			})
		}
	}

	return res
}

func allStored(m decl.Member) bool {
	for _, b := range m.Bindings {
		if !b.EffectiveAccessor(m).IsStored() {
			return false
		}
	}

	return true
}
