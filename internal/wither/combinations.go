package wither

import (
	"iter"

	"wither-generator/internal/classify"
	"wither-generator/internal/decl"
	"wither-generator/internal/diagnostic"
)

// MaxFieldsLimit is the largest field count Combinations will enumerate.
const MaxFieldsLimit = 62

// Options tunes Combinations.
type Options struct {
	// MaxFields skips generation with a warning when the declaration has more
	// eligible fields. Zero means MaxFieldsLimit.
	MaxFields int
}

// DefaultOptions returns options with no cap below MaxFieldsLimit.
func DefaultOptions() Options {
	return Options{}
}

func (o Options) limit() int {
	if o.MaxFields <= 0 || o.MaxFields > MaxFieldsLimit {
		return MaxFieldsLimit
	}

	return o.MaxFields
}

// Combinations generates one copy method per non-empty subset of the stored
// fields of d. Only members whose bindings are all stored take part. Methods
// share the declaration's visibility and follow PowerSet order.
func Combinations(d *decl.Declaration, opts Options) ([]Method, diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics

	res := classify.ClassifyWhole(d)
	if res.NotRecord {
		diags.Add(diagnostic.NotARecordType(d))
		return nil, diags
	}

	for _, b := range res.Untyped {
		diags.Add(diagnostic.UnresolvedFieldType(d, b))
	}

	if limit := opts.limit(); len(res.Fields) > limit {
		diags.Add(diagnostic.TooManyFields(d, len(res.Fields), limit))
		return nil, diags
	}

	vis := d.Visibility.Or(decl.DefaultVisibility)

	methods := make([]Method, 0, min((1<<len(res.Fields))-1, 1024))
	for subset := range PowerSet(res.Fields) {
		methods = append(methods, newMethod(vis, subset, res.Fields))
	}

	return methods, diags
}

// PowerSet yields every non-empty subset of items. Subset k (counting from 1)
// holds items[i] for each bit i set in k, so for [a b c] the order is
// a, b, ab, c, ac, bc, abc: all subsets of the tail come first, each followed
// by itself prefixed with the head. It panics if len(items) > MaxFieldsLimit.
func PowerSet[T any](items []T) iter.Seq[[]T] {
	n := len(items)
	if n > MaxFieldsLimit {
		panic("wither: power set too large")
	}

	return func(yield func([]T) bool) {
		for mask := uint64(1); mask < uint64(1)<<n; mask++ {
			subset := make([]T, 0, n)
			for i := range n {
				if mask&(uint64(1)<<i) != 0 {
					subset = append(subset, items[i])
				}
			}

			if !yield(subset) {
				return
			}
		}
	}
}
