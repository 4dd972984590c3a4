package structure

import "fmt"

//go:generate go tool stringer -type=SubsectionKind -linecomment -output=subsection_kind_string.go

// SubsectionKind identifies a Subsection variant.
type SubsectionKind int

const (
	_ SubsectionKind = iota

	KindInputGrid  // inputGrid
	KindCheckboxes // checkboxes
	KindRadio      // radio
	KindMessage    // message
	KindHeading    // heading
)

// Subsection is one of *InputGrid, *Checkboxes, *Radio, *Message or
// *Heading. The set is closed: only this package can add variants.
type Subsection interface {
	Kind() SubsectionKind
	subsection()
}

// InputGrid is a table of numeric input rows.
type InputGrid struct {
	// Headers are the column titles: field code, value, description.
	Headers [3]string
	Rows    []InputGridRow
}

// InputGridRow binds one numeric path.
type InputGridRow struct {
	Code  string
	Path  string
	Title string
	// IsTotal marks a subtotal row computed from the rows above it.
	IsTotal bool
	// IsListTotal marks the total row of a candidate list.
	IsListTotal bool
	// AddSeparator asks the renderer for a visual break after this row.
	AddSeparator bool
	// AutoFocusInput marks the input that gets focus when the form opens.
	AutoFocusInput bool
}

// Checkboxes groups boolean fields that are validated as one question.
type Checkboxes struct {
	Title string
	// ErrorPath is the parent object of the options; findings about the
	// question as a whole name this path.
	ErrorPath string
	Options   []CheckboxOption
}

// CheckboxOption binds one boolean path.
type CheckboxOption struct {
	Path           string
	Label          string
	ShortLabel     string
	AutoFocusInput bool
}

// RadioValueType decides how the chosen option is stored.
type RadioValueType int

const (
	// RadioValueBoolean stores "true"/"false" options as a boolean.
	RadioValueBoolean RadioValueType = iota
	// RadioValueString stores the option value as is.
	RadioValueString
)

// Radio binds one path to a choice between Options.
type Radio struct {
	Title      string
	ShortTitle string
	Path       string
	ValueType  RadioValueType
	Options    []RadioOption
}

// RadioOption is one allowed value.
type RadioOption struct {
	Value          string
	Label          string
	AutoFocusInput bool
}

// Message is static explanatory text.
type Message struct {
	Text string
}

// Heading is a static title.
type Heading struct {
	Title string
}

func (*InputGrid) Kind() SubsectionKind  { return KindInputGrid }
func (*Checkboxes) Kind() SubsectionKind { return KindCheckboxes }
func (*Radio) Kind() SubsectionKind      { return KindRadio }
func (*Message) Kind() SubsectionKind    { return KindMessage }
func (*Heading) Kind() SubsectionKind    { return KindHeading }

func (*InputGrid) subsection()  {}
func (*Checkboxes) subsection() {}
func (*Radio) subsection()      {}
func (*Message) subsection()    {}
func (*Heading) subsection()    {}

// HasOption reports whether value is one of the radio's allowed values.
func (r *Radio) HasOption(value string) bool {
	for _, o := range r.Options {
		if o.Value == value {
			return true
		}
	}

	return false
}

// BoundPaths returns the value paths bound by sub, in display order.
func BoundPaths(sub Subsection) []string {
	switch s := sub.(type) {
	case *InputGrid:
		paths := make([]string, len(s.Rows))
		for i, row := range s.Rows {
			paths[i] = row.Path
		}

		return paths
	case *Checkboxes:
		paths := make([]string, len(s.Options))
		for i, o := range s.Options {
			paths[i] = o.Path
		}

		return paths
	case *Radio:
		return []string{s.Path}
	case *Message, *Heading:
		return nil
	default:
		panic(fmt.Sprintf("structure: unhandled subsection %T", sub))
	}
}

// RoutingPaths returns every path a finding may name to land on sub:
// the bound paths plus the error path of a checkbox group.
func RoutingPaths(sub Subsection) []string {
	paths := BoundPaths(sub)

	if cb, ok := sub.(*Checkboxes); ok && cb.ErrorPath != "" {
		paths = append(paths, cb.ErrorPath)
	}

	return paths
}
