// Package mapper converts between a tally record and the flat form values
// of one section.
//
// Key capabilities:
//   - Read every path a section binds into a map of display strings
//   - Write a map of display strings back into a copy of the record
//   - Derive the coercion kind of each path from the subsection binding it
package mapper
