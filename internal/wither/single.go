package wither

import (
	"wither-generator/internal/classify"
	"wither-generator/internal/decl"
	"wither-generator/internal/diagnostic"
)

// Single generates one copy method per stored field of d, in declaration
// order. Bindings without a type are reported and skipped; a non-struct
// declaration yields no methods and a single error.
func Single(d *decl.Declaration) ([]Method, diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics

	res := classify.Classify(d)
	if res.NotRecord {
		diags.Add(diagnostic.NotARecordType(d))
		return nil, diags
	}

	for _, b := range res.Untyped {
		diags.Add(diagnostic.UnresolvedFieldType(d, b))
	}

	methods := make([]Method, 0, len(res.Fields))
	for _, f := range res.Fields {
		methods = append(methods, newMethod(f.Visibility, []classify.Field{f}, res.Fields))
	}

	return methods, diags
}
