// Package wither builds copy methods ("withers") for struct declarations.
//
// Two generators share the classifier in package classify:
//
//   - Single emits one method per stored field, each replacing that field.
//     The method takes the field's own effective visibility.
//   - Combinations emits one method per non-empty subset of stored fields,
//     all with the declaration's visibility. A member qualifies only if all
//     of its bindings are stored.
//
// Every method reconstructs the whole value: each eligible field is passed
// either the new parameter or the receiver's current value. Output is a
// host-neutral Method description; package gen renders it as Go.
//
// Combinations is exponential: n fields produce 2^n-1 methods. Options.MaxFields
// bounds n, and n is never allowed past MaxFieldsLimit.
package wither
