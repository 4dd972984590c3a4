// Package validation routes validation findings to the sections of a data
// entry form and builds the per-field severity map used for inline feedback.
//
// Key capabilities:
//   - Global/local classification by finding code
//   - Section lookup by exact or parent-path match
//   - Error-over-warning severity merge per path
package validation
