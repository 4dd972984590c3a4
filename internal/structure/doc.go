// Package structure describes the data entry form of one election as data:
// an ordered list of sections, each made of typed subsections that bind
// path expressions of a tally.Results record.
//
// # Subsection kinds
//
//   - InputGrid: rows of numeric fields (code, label, bound path)
//   - Checkboxes: boolean fields reported together under one error path
//   - Radio: one field with an enumerated set of allowed values
//   - Message, Heading: static text without bound paths
//
// A Structure is built once per election by Build and is read-only
// afterwards, so it can be shared by every form of that election.
package structure
