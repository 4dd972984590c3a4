package structure

// Section is one page of the data entry form.
type Section struct {
	ID          string
	Title       string
	ShortTitle  string
	Subsections []Subsection
}

// BoundPaths returns the value paths of all subsections, in display order.
func (s Section) BoundPaths() []string {
	var paths []string
	for _, sub := range s.Subsections {
		paths = append(paths, BoundPaths(sub)...)
	}

	return paths
}

// RoutingPaths returns every path a finding may name to land on s.
func (s Section) RoutingPaths() []string {
	var paths []string
	for _, sub := range s.Subsections {
		paths = append(paths, RoutingPaths(sub)...)
	}

	return paths
}

// Structure is the ordered list of sections of one election's form.
type Structure struct {
	Sections []Section
}

// Section returns the section with the given id.
func (st Structure) Section(id string) (Section, bool) {
	for _, s := range st.Sections {
		if s.ID == id {
			return s, true
		}
	}

	return Section{}, false
}

// IDs returns the section ids in order.
func (st Structure) IDs() []string {
	ids := make([]string, len(st.Sections))
	for i, s := range st.Sections {
		ids[i] = s.ID
	}

	return ids
}

// Len returns the number of sections.
func (st Structure) Len() int {
	return len(st.Sections)
}
