package reconcile

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"tally-mapper/internal/common"
	"tally-mapper/internal/diagnostic"
	"tally-mapper/internal/mapper"
	"tally-mapper/internal/validation"
)

// Status tells how two entries disagree on a path.
type Status string

const (
	// StatusDifferent means both entries hold a value and the values differ.
	StatusDifferent Status = "different"
	// StatusOnlyFirst means only the first entry has the path.
	StatusOnlyFirst Status = "only_first"
	// StatusOnlySecond means only the second entry has the path.
	StatusOnlySecond Status = "only_second"
)

// Discrepancy is one path on which the two entries disagree.
type Discrepancy struct {
	Section string `csv:"section"`
	Path    string `csv:"path"`
	First   string `csv:"first_entry"`
	Second  string `csv:"second_entry"`
	Status  Status `csv:"status"`
}

// Compare lists the paths on which first and second disagree, sorted by
// path. A path present in only one entry counts as a disagreement.
func Compare(first, second mapper.FormValues) []Discrepancy {
	var out []Discrepancy

	for _, p := range common.UnionKeys(first, second) {
		a, inFirst := first[p]
		b, inSecond := second[p]

		switch {
		case inFirst && inSecond && a == b:
			continue
		case inFirst && inSecond:
			out = append(out, Discrepancy{Path: p, First: a, Second: b, Status: StatusDifferent})
		case inFirst:
			out = append(out, Discrepancy{Path: p, First: a, Status: StatusOnlyFirst})
		default:
			out = append(out, Discrepancy{Path: p, Second: b, Status: StatusOnlySecond})
		}
	}

	return out
}

// Locate fills in the section id of every discrepancy. A differing entry
// is reported to the router the way the rule evaluator reports it, as a
// W001 finding on the path.
func Locate(ds []Discrepancy, r *validation.Router) error {
	for i := range ds {
		s, err := r.SectionFor(diagnostic.Finding{Code: diagnostic.CodeW001, Fields: diagnostic.Fields{ds[i].Path}})
		if err != nil {
			return fmt.Errorf("locate %s: %w", ds[i].Path, err)
		}

		ds[i].Section = s.ID
	}

	return nil
}

// Findings turns discrepancies into W001 warnings.
func Findings(ds []Discrepancy) diagnostic.Findings {
	var fs diagnostic.Findings
	for _, d := range ds {
		fs.AddWarning(diagnostic.CodeW001, d.Path)
	}

	return fs
}

// WriteReport writes ds as CSV with a header row.
func WriteReport(w io.Writer, ds []Discrepancy) error {
	if ds == nil {
		ds = []Discrepancy{}
	}

	if err := gocsv.Marshal(&ds, w); err != nil {
		return fmt.Errorf("failed to write discrepancy report: %w", err)
	}

	return nil
}

// ReadReport parses a report written by WriteReport.
func ReadReport(r io.Reader) ([]Discrepancy, error) {
	var ds []Discrepancy

	if err := gocsv.Unmarshal(r, &ds); err != nil {
		return nil, fmt.Errorf("failed to read discrepancy report: %w", err)
	}

	return ds, nil
}
