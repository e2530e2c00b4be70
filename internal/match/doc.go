// Package match suggests the closest known keyword for a misspelled one.
//
// Key functions:
//   - Levenshtein: computes edit distance between strings
//   - Closest: picks the best candidate for a "did you mean" hint
package match
