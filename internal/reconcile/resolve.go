package reconcile

import (
	"errors"
	"fmt"

	"tally-mapper/internal/common"
	"tally-mapper/internal/mapper"
	"tally-mapper/internal/structure"
	"tally-mapper/internal/tally"
)

// ErrEntriesDiscarded is returned when both entries are thrown away and the
// polling station has to be entered again.
var ErrEntriesDiscarded = errors.New("both entries discarded")

// Action is the coordinator's decision on two differing entries.
type Action int

const (
	ActionKeepFirst Action = iota + 1
	ActionKeepSecond
	ActionDiscardBoth
)

func (a Action) String() string {
	switch a {
	case ActionKeepFirst:
		return "keep_first"
	case ActionKeepSecond:
		return "keep_second"
	case ActionDiscardBoth:
		return "discard_both"
	default:
		return common.UnknownStr
	}
}

// ParseAction is the inverse of Action.String.
func ParseAction(s string) (Action, error) {
	for _, a := range []Action{ActionKeepFirst, ActionKeepSecond, ActionDiscardBoth} {
		if a.String() == s {
			return a, nil
		}
	}

	return 0, fmt.Errorf("unknown resolve action %q", s)
}

// Resolve applies the decision and returns a copy of the kept entry.
func Resolve(action Action, first, second *tally.Results) (*tally.Results, error) {
	switch action {
	case ActionKeepFirst:
		return first.Clone(), nil
	case ActionKeepSecond:
		return second.Clone(), nil
	case ActionDiscardBoth:
		return nil, ErrEntriesDiscarded
	default:
		return nil, fmt.Errorf("unknown resolve action %d", action)
	}
}

// Engine runs a full reconciliation over one form structure.
type Engine struct {
	st structure.Structure
	m  *mapper.Mapper
}

// NewEngine returns an engine for st using m.
func NewEngine(st structure.Structure, m *mapper.Mapper) *Engine {
	return &Engine{st: st, m: m}
}

// Reconciliation is the outcome of comparing two entries.
type Reconciliation struct {
	First         mapper.FormValues
	Second        mapper.FormValues
	Corrections   mapper.FormValues
	Discrepancies []Discrepancy
}

// Equal reports whether the entries agree on every path.
func (r Reconciliation) Equal() bool {
	return len(r.Discrepancies) == 0
}

// Compare flattens both records and compares them.
func (e *Engine) Compare(first, second *tally.Results) (*Reconciliation, error) {
	a, err := e.m.ToAllFormValues(e.st, first)
	if err != nil {
		return nil, fmt.Errorf("first entry: %w", err)
	}

	b, err := e.m.ToAllFormValues(e.st, second)
	if err != nil {
		return nil, fmt.Errorf("second entry: %w", err)
	}

	return &Reconciliation{
		First:         a,
		Second:        b,
		Corrections:   DetermineCorrections(a, b),
		Discrepancies: Compare(a, b),
	}, nil
}

// ApplyResolution writes the human-entered resolution over previous, one
// section at a time, and returns the resolved record. Empty resolution
// values keep the previous value. Resolution paths must be canonical.
func (e *Engine) ApplyResolution(previous *tally.Results, resolution mapper.FormValues) (*tally.Results, error) {
	prev, err := e.m.ToAllFormValues(e.st, previous)
	if err != nil {
		return nil, err
	}

	for _, p := range resolution.Paths() {
		if _, ok := prev[p]; !ok {
			return nil, fmt.Errorf("resolution for %s: path is not part of the form", p)
		}
	}

	resolved := ApplyCorrections(prev, resolution)
	out := previous

	for _, s := range e.st.Sections {
		fv := mapper.FormValues{}
		for _, p := range s.BoundPaths() {
			fv[p] = resolved[p]
		}

		out, err = e.m.ApplyFormValues(s, out, fv)
		if err != nil {
			return nil, err
		}
	}

	return out, nil
}
