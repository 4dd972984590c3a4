// Package match ranks field names by edit distance so that a path naming
// an unknown field can be reported together with the closest known names.
//
// Key functions:
//   - Normalize: folds case and strips separators before comparing
//   - Distance: Levenshtein edit distance between two strings
//   - Similarity: distance scaled to 0..1
//   - Closest: the best candidates above a similarity threshold
package match
