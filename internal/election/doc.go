// Package election loads election definitions: the political groups and
// candidates a data entry form is built from.
//
// Definitions come from a YAML file or from a candidate list CSV with one
// row per candidate.
package election
