package diagnostic

import (
	"errors"
	"fmt"
	"strings"
)

// Fields is an ordered list of path expressions. In YAML it may be written
// as a single string or as a list.
type Fields []string

// Finding is one validation result reported by the rule evaluator.
type Finding struct {
	Code   Code   `yaml:"code"`
	Fields Fields `yaml:"fields"`
}

// Findings holds the errors and warnings of one data entry.
type Findings struct {
	Errors   []Finding `yaml:"errors,omitempty"`
	Warnings []Finding `yaml:"warnings,omitempty"`
}

// Severity of the finding, taken from its code.
func (f Finding) Severity() Severity {
	return f.Code.Severity()
}

// String returns a formatted finding string.
func (f Finding) String() string {
	msg := fmt.Sprintf("[%s]", f.Code)
	if d := f.Code.Description(); d != "" {
		msg += " " + d
	}

	if len(f.Fields) > 0 {
		return strings.Join(f.Fields, ", ") + ": " + msg
	}

	return msg
}

// Validate checks that the code is known and at least one path is named.
func (f Finding) Validate() error {
	if !f.Code.IsKnown() {
		return fmt.Errorf("unknown finding code %q", f.Code)
	}

	if len(f.Fields) == 0 {
		return fmt.Errorf("finding %s: no fields", f.Code)
	}

	return nil
}

// AddError adds an error finding.
func (fs *Findings) AddError(code Code, fields ...string) {
	fs.Errors = append(fs.Errors, Finding{Code: code, Fields: fields})
}

// AddWarning adds a warning finding.
func (fs *Findings) AddWarning(code Code, fields ...string) {
	fs.Warnings = append(fs.Warnings, Finding{Code: code, Fields: fields})
}

// Add files f under its code's severity.
func (fs *Findings) Add(f Finding) {
	if f.Severity() == SeverityWarning {
		fs.Warnings = append(fs.Warnings, f)
		return
	}

	fs.Errors = append(fs.Errors, f)
}

// HasErrors returns true if there are any error findings.
func (fs Findings) HasErrors() bool {
	return len(fs.Errors) > 0
}

// IsEmpty reports whether there are no findings at all.
func (fs Findings) IsEmpty() bool {
	return len(fs.Errors) == 0 && len(fs.Warnings) == 0
}

// Merge merges another Findings instance into this one.
func (fs *Findings) Merge(other Findings) {
	fs.Errors = append(fs.Errors, other.Errors...)
	fs.Warnings = append(fs.Warnings, other.Warnings...)
}

// All returns the errors followed by the warnings.
func (fs Findings) All() []Finding {
	out := make([]Finding, 0, len(fs.Errors)+len(fs.Warnings))
	out = append(out, fs.Errors...)

	return append(out, fs.Warnings...)
}

// Validate checks every finding and that each set only holds codes of its
// own severity.
func (fs Findings) Validate() error {
	var errs []error

	check := func(set string, want Severity, list []Finding) {
		for i, f := range list {
			if err := f.Validate(); err != nil {
				errs = append(errs, fmt.Errorf("%s[%d]: %w", set, i, err))
				continue
			}

			if f.Severity() != want {
				errs = append(errs, fmt.Errorf("%s[%d]: code %s is a %s", set, i, f.Code, f.Severity()))
			}
		}
	}

	check("errors", SeverityError, fs.Errors)
	check("warnings", SeverityWarning, fs.Warnings)

	return errors.Join(errs...)
}

// Error returns a combined error from all error findings, or nil.
func (fs Findings) Error() error {
	if !fs.HasErrors() {
		return nil
	}

	parts := make([]string, len(fs.Errors))
	for i, f := range fs.Errors {
		parts[i] = f.String()
	}

	return errors.New(strings.Join(parts, "; "))
}
