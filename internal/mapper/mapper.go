package mapper

import (
	"fmt"
	"maps"

	"tally-mapper/internal/coerce"
	"tally-mapper/internal/common"
	"tally-mapper/internal/path"
	"tally-mapper/internal/structure"
	"tally-mapper/internal/tally"
)

// FormValues maps canonical path expressions to display strings.
type FormValues map[string]string

// Clone returns an independent copy of fv.
func (fv FormValues) Clone() FormValues {
	return maps.Clone(fv)
}

// Paths returns the keys of fv in sorted order.
func (fv FormValues) Paths() []string {
	return common.SortedKeys(fv)
}

// Mapper converts section values using one coercer.
type Mapper struct {
	coercer *coerce.Coercer
}

// New returns a mapper using c; a nil c selects coerce.Default().
func New(c *coerce.Coercer) *Mapper {
	if c == nil {
		c = coerce.Default()
	}

	return &Mapper{coercer: c}
}

// Coercer returns the coercer used by m.
func (m *Mapper) Coercer() *coerce.Coercer {
	return m.coercer
}

// ToFormValues reads every path bound by s from r. The keys of the result
// are exactly the section's bound paths.
func (m *Mapper) ToFormValues(s structure.Section, r *tally.Results) (FormValues, error) {
	if r == nil {
		return nil, fmt.Errorf("section %s: nil results", s.ID)
	}

	fv := FormValues{}

	for _, expr := range s.BoundPaths() {
		v, err := path.Read(r, expr)
		if err != nil {
			return nil, fmt.Errorf("section %s: %w", s.ID, err)
		}

		fv[expr] = m.coercer.ToFormString(v)
	}

	return fv, nil
}

// ToAllFormValues reads the values of every section of st into one map.
func (m *Mapper) ToAllFormValues(st structure.Structure, r *tally.Results) (FormValues, error) {
	all := FormValues{}

	for _, s := range st.Sections {
		fv, err := m.ToFormValues(s, r)
		if err != nil {
			return nil, err
		}

		maps.Copy(all, fv)
	}

	return all, nil
}

// ApplyFormValues writes fv into a copy of r and returns the copy. Entries
// are applied in sorted path order so the first failure is deterministic.
// Paths s does not bind are still written, coerced by the type of the leaf
// they address, so one section can submit values of another.
// r is never modified; on error the result is nil.
func (m *Mapper) ApplyFormValues(s structure.Section, r *tally.Results, fv FormValues) (*tally.Results, error) {
	if r == nil {
		return nil, fmt.Errorf("section %s: nil results", s.ID)
	}

	kinds := FieldKinds(s)
	out := r.Clone()

	for _, expr := range fv.Paths() {
		p, err := path.Parse(expr)
		if err != nil {
			return nil, fmt.Errorf("section %s: %w", s.ID, err)
		}

		k, ok := kinds[p.String()]
		if !ok {
			if k, err = leafKind(out, p); err != nil {
				return nil, fmt.Errorf("section %s: %w", s.ID, err)
			}
		}

		v, err := m.coercer.ToTypedValue(fv[expr], k)
		if err != nil {
			return nil, fmt.Errorf("section %s: %s: %w", s.ID, expr, err)
		}

		if err := path.Set(out, p, v); err != nil {
			return nil, fmt.Errorf("section %s: %w", s.ID, err)
		}
	}

	return out, nil
}

// FieldKinds returns the coercion kind of every path bound by s.
func FieldKinds(s structure.Section) map[string]coerce.Kind {
	kinds := map[string]coerce.Kind{}

	for _, sub := range s.Subsections {
		k, ok := kindOf(sub)
		if !ok {
			continue
		}

		for _, p := range structure.BoundPaths(sub) {
			kinds[p] = k
		}
	}

	return kinds
}

// leafKind picks the coercion for a path no subsection binds.
func leafKind(r *tally.Results, p path.Path) (coerce.Kind, error) {
	vk, err := path.LeafKind(r, p)
	if err != nil {
		return coerce.KindPlainString, err
	}

	switch vk {
	case path.KindBool:
		return coerce.KindBoolean, nil
	case path.KindNumber:
		return coerce.KindFormattedNumber, nil
	default:
		return coerce.KindPlainString, nil
	}
}

func kindOf(sub structure.Subsection) (coerce.Kind, bool) {
	switch s := sub.(type) {
	case *structure.InputGrid:
		return coerce.KindFormattedNumber, true
	case *structure.Checkboxes:
		return coerce.KindBoolean, true
	case *structure.Radio:
		if s.ValueType == structure.RadioValueBoolean {
			return coerce.KindBoolean, true
		}

		return coerce.KindPlainString, true
	default:
		return coerce.KindPlainString, false
	}
}
