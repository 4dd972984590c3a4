package validation

import (
	"errors"
	"fmt"
	"strings"

	"tally-mapper/internal/common"
	"tally-mapper/internal/diagnostic"
	"tally-mapper/internal/match"
	"tally-mapper/internal/path"
	"tally-mapper/internal/structure"
)

// RequestRoot is the root segment the rule evaluator puts in front of
// every path.
const RequestRoot = "data"

// ErrUnroutable is matched by every *UnroutableError.
var ErrUnroutable = errors.New("finding matches no section")

// UnroutableError reports a finding none of whose paths is bound by any
// section.
type UnroutableError struct {
	Finding     diagnostic.Finding
	Suggestions []string
}

func (e *UnroutableError) Error() string {
	msg := fmt.Sprintf("finding %s on %s matches no section", e.Finding.Code, strings.Join(e.Finding.Fields, ", "))
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (closest bound paths: %s)", strings.Join(e.Suggestions, ", "))
	}

	return msg
}

// Unwrap lets errors.Is match ErrUnroutable.
func (e *UnroutableError) Unwrap() error {
	return ErrUnroutable
}

// Scope tells whether a finding can be shown next to a single field.
type Scope int

const (
	ScopeLocal Scope = iota
	ScopeGlobal
)

func (s Scope) String() string {
	if s == ScopeGlobal {
		return "global"
	}

	return "local"
}

// Classify looks the finding's code up in the taxonomy. The paths are not
// inspected.
func Classify(f diagnostic.Finding) Scope {
	if f.Code.IsGlobal() {
		return ScopeGlobal
	}

	return ScopeLocal
}

// Normalize strips the request root and returns the canonical form of a
// finding path. A path that does not parse is returned with only the root
// removed.
func Normalize(field string) string {
	p, err := path.Parse(field)
	if err != nil {
		return strings.TrimPrefix(field, RequestRoot+".")
	}

	return p.TrimRoot(RequestRoot).String()
}

type boundPath struct {
	section int
	path    path.Path
}

// Router answers section lookups for one structure.
type Router struct {
	st    structure.Structure
	bound []boundPath
	names []string
}

// NewRouter parses every routing path of st once.
func NewRouter(st structure.Structure) (*Router, error) {
	r := &Router{st: st}

	for i, s := range st.Sections {
		for _, expr := range s.RoutingPaths() {
			p, err := path.Parse(expr)
			if err != nil {
				return nil, fmt.Errorf("section %s: %w", s.ID, err)
			}

			r.bound = append(r.bound, boundPath{section: i, path: p})
			r.names = append(r.names, p.String())
		}
	}

	return r, nil
}

// SectionFor returns the first section, in structure order, that binds one
// of the finding's paths or a path below it.
func (r *Router) SectionFor(f diagnostic.Finding) (structure.Section, error) {
	var wanted []path.Path

	for _, field := range f.Fields {
		p, err := path.Parse(field)
		if err != nil {
			continue
		}

		wanted = append(wanted, p.TrimRoot(RequestRoot))
	}

	for _, b := range r.bound {
		for _, w := range wanted {
			if b.path.HasPrefix(w) {
				return r.st.Sections[b.section], nil
			}
		}
	}

	e := &UnroutableError{Finding: f}
	if first, ok := common.First(f.Fields); ok {
		e.Suggestions = match.Closest(Normalize(first), r.names, 3)
	}

	return structure.Section{}, e
}

// Route groups findings by section id. Global findings are routed like
// local ones; the caller decides how to show them. Each finding stays in
// the set the caller put it in. The first unroutable finding aborts
// routing.
func (r *Router) Route(fs diagnostic.Findings) (map[string]diagnostic.Findings, error) {
	out := map[string]diagnostic.Findings{}

	for _, f := range fs.Errors {
		s, err := r.SectionFor(f)
		if err != nil {
			return nil, err
		}

		group := out[s.ID]
		group.Errors = append(group.Errors, f)
		out[s.ID] = group
	}

	for _, f := range fs.Warnings {
		s, err := r.SectionFor(f)
		if err != nil {
			return nil, err
		}

		group := out[s.ID]
		group.Warnings = append(group.Warnings, f)
		out[s.ID] = group
	}

	return out, nil
}

// SectionFor routes a single finding against st.
func SectionFor(f diagnostic.Finding, st structure.Structure) (structure.Section, error) {
	r, err := NewRouter(st)
	if err != nil {
		return structure.Section{}, err
	}

	return r.SectionFor(f)
}

// Route groups findings by section id of st.
func Route(fs diagnostic.Findings, st structure.Structure) (map[string]diagnostic.Findings, error) {
	r, err := NewRouter(st)
	if err != nil {
		return nil, err
	}

	return r.Route(fs)
}

// SeverityMap returns the severity of every path named by any finding.
// Error wins when a path appears in both sets.
func SeverityMap(errs, warnings []diagnostic.Finding) map[string]diagnostic.Severity {
	out := map[string]diagnostic.Severity{}

	mark := func(list []diagnostic.Finding, sev diagnostic.Severity) {
		for _, f := range list {
			for _, field := range f.Fields {
				key := Normalize(field)
				out[key] = out[key].Max(sev)
			}
		}
	}

	mark(errs, diagnostic.SeverityError)
	mark(warnings, diagnostic.SeverityWarning)

	return out
}
