package election

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"golang.org/x/text/encoding/charmap"
	"gopkg.in/yaml.v3"

	"tally-mapper/internal/tally"
)

// Format of an election definition file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
)

// ParseFormat accepts "yaml", "yml" and "csv".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unknown election format %q", s)
	}
}

// FormatOf guesses the format from the file extension.
func FormatOf(path string) (Format, error) {
	return ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
}

// LoadFile loads and validates an election definition. An empty format is
// taken from the file extension.
func LoadFile(path string, format Format, opts ...CSVOption) (*tally.Election, error) {
	if format == "" {
		f, err := FormatOf(path)
		if err != nil {
			return nil, err
		}

		format = f
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read election file %s: %w", path, err)
	}
	defer file.Close()

	switch format {
	case FormatYAML:
		return Parse(file)
	case FormatCSV:
		return ParseCandidatesCSV(file, opts...)
	default:
		return nil, fmt.Errorf("unknown election format %q", format)
	}
}

// Parse reads a YAML election definition.
func Parse(r io.Reader) (*tally.Election, error) {
	var e tally.Election

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(&e); err != nil {
		return nil, fmt.Errorf("failed to parse election YAML: %w", err)
	}

	if err := e.Validate(); err != nil {
		return nil, err
	}

	return &e, nil
}

// Marshal serializes an election definition to YAML.
func Marshal(e *tally.Election) ([]byte, error) {
	return yaml.Marshal(e)
}

// candidateRow is one line of a candidate list CSV.
type candidateRow struct {
	GroupNumber uint32 `csv:"list_number"`
	GroupName   string `csv:"list_name"`
	tally.Candidate
}

type csvOptions struct {
	id     uint32
	name   string
	comma  rune
	latin1 bool
}

// CSVOption configures candidate list parsing.
type CSVOption func(*csvOptions)

// WithElection sets the id and name of the resulting election; a CSV only
// carries the lists.
func WithElection(id uint32, name string) CSVOption {
	return func(o *csvOptions) {
		o.id = id
		o.name = name
	}
}

// WithComma sets the field separator. The default is ','.
func WithComma(r rune) CSVOption {
	return func(o *csvOptions) {
		o.comma = r
	}
}

// WithLatin1 decodes the input as ISO 8859-1 instead of UTF-8.
func WithLatin1() CSVOption {
	return func(o *csvOptions) {
		o.latin1 = true
	}
}

// ParseCandidatesCSV reads a candidate list with one row per candidate.
// Lists appear in order of their first row; candidates keep file order.
func ParseCandidatesCSV(r io.Reader, opts ...CSVOption) (*tally.Election, error) {
	o := csvOptions{comma: ','}
	for _, opt := range opts {
		opt(&o)
	}

	if o.latin1 {
		r = charmap.ISO8859_1.NewDecoder().Reader(r)
	}

	cr := csv.NewReader(r)
	cr.Comma = o.comma
	cr.TrimLeadingSpace = true

	var rows []candidateRow
	if err := gocsv.UnmarshalCSV(cr, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse candidate CSV: %w", err)
	}

	e := &tally.Election{ID: o.id, Name: o.name}
	index := map[uint32]int{}

	for i, row := range rows {
		gi, ok := index[row.GroupNumber]
		if !ok {
			gi = len(e.PoliticalGroups)
			index[row.GroupNumber] = gi
			e.PoliticalGroups = append(e.PoliticalGroups, tally.PoliticalGroup{
				Number: row.GroupNumber,
				Name:   row.GroupName,
			})
		}

		pg := &e.PoliticalGroups[gi]
		if row.GroupName != "" && pg.Name != row.GroupName {
			if pg.Name != "" {
				return nil, fmt.Errorf("candidate CSV row %d: list %d named both %q and %q", i+2, row.GroupNumber, pg.Name, row.GroupName)
			}

			pg.Name = row.GroupName
		}

		pg.Candidates = append(pg.Candidates, row.Candidate)
	}

	if err := e.Validate(); err != nil {
		return nil, err
	}

	return e, nil
}
