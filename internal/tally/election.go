package tally

import (
	"errors"
	"fmt"
)

// ErrInvalidElection is wrapped by every election validation failure.
var ErrInvalidElection = errors.New("invalid election definition")

// Election is the part of an election definition that shapes data entry.
type Election struct {
	ID              uint32           `json:"id" yaml:"id"`
	Name            string           `json:"name" yaml:"name"`
	PoliticalGroups []PoliticalGroup `json:"political_groups" yaml:"political_groups"`
}

// PoliticalGroup is a candidate list.
type PoliticalGroup struct {
	Number     uint32      `json:"number" yaml:"number"`
	Name       string      `json:"name" yaml:"name"`
	Candidates []Candidate `json:"candidates" yaml:"candidates"`
}

// Candidate is one entry on a candidate list.
type Candidate struct {
	Number         uint32 `json:"number" yaml:"number" csv:"candidate_number"`
	Initials       string `json:"initials" yaml:"initials" csv:"initials"`
	FirstName      string `json:"first_name,omitempty" yaml:"first_name,omitempty" csv:"first_name"`
	LastNamePrefix string `json:"last_name_prefix,omitempty" yaml:"last_name_prefix,omitempty" csv:"last_name_prefix"`
	LastName       string `json:"last_name" yaml:"last_name" csv:"last_name"`
	Locality       string `json:"locality,omitempty" yaml:"locality,omitempty" csv:"locality"`
}

// FullName renders "Lastname, I. (First)" the way a list is printed on a ballot.
func (c Candidate) FullName() string {
	name := c.LastName
	if c.LastNamePrefix != "" {
		name = c.LastNamePrefix + " " + name
	}

	if c.Initials != "" {
		name += ", " + c.Initials
	}

	if c.FirstName != "" {
		name += " (" + c.FirstName + ")"
	}

	return name
}

// Validate checks the invariants the section structure and NewResults
// rely on. All problems are reported together.
func (e Election) Validate() error {
	var errs []error

	if len(e.PoliticalGroups) == 0 {
		errs = append(errs, errors.New("no political groups"))
	}

	groups := make(map[uint32]struct{}, len(e.PoliticalGroups))

	for i, pg := range e.PoliticalGroups {
		if _, dup := groups[pg.Number]; dup {
			errs = append(errs, fmt.Errorf("political group %d: duplicate number", pg.Number))
		}

		groups[pg.Number] = struct{}{}

		if len(pg.Candidates) == 0 {
			errs = append(errs, fmt.Errorf("political group %d (index %d): no candidates", pg.Number, i))
		}

		candidates := make(map[uint32]struct{}, len(pg.Candidates))

		for _, c := range pg.Candidates {
			if _, dup := candidates[c.Number]; dup {
				errs = append(errs, fmt.Errorf("political group %d: duplicate candidate number %d", pg.Number, c.Number))
			}

			candidates[c.Number] = struct{}{}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidElection, errors.Join(errs...))
	}

	return nil
}
