// Package diagnostic models the validation findings reported by the rule
// evaluator: a code from a closed taxonomy plus the paths it applies to.
//
// Key capabilities:
//   - Closed code taxonomy with severity and global/local classification
//   - Error and warning sets with merge and combined-error helpers
//   - Loading finding files from YAML, with a single path or a path list
package diagnostic
