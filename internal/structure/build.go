package structure

import (
	"fmt"
	"strconv"

	"tally-mapper/internal/tally"
)

// Section ids of the fixed sections.
const (
	SectionExtraInvestigation                = "extra_investigation"
	SectionCountingDifferencesPollingStation = "counting_differences_polling_station"
	SectionVotersVotesCounts                 = "voters_votes_counts"
	SectionDifferencesCounts                 = "differences_counts"

	// PoliticalGroupSectionPrefix is followed by the list number.
	PoliticalGroupSectionPrefix = "political_group_votes_"
)

// CandidatesPerBlock is the number of candidate rows between two separators.
const CandidatesPerBlock = 25

var gridHeaders = [3]string{"Field", "Number", "Description"}

// Variant selects which fixed sections precede the candidate lists.
type Variant int

const (
	// VariantFirstSession is the full first-session form: extra
	// investigation, counting differences, voters and votes, differences.
	VariantFirstSession Variant = iota
	// VariantCountsOnly has only voters and votes (opened by the
	// "recounted" question) and differences.
	VariantCountsOnly
)

type options struct {
	variant Variant
}

// Option configures Build.
type Option func(*options)

// WithVariant selects the fixed sections.
func WithVariant(v Variant) Option {
	return func(o *options) {
		o.variant = v
	}
}

// PoliticalGroupSectionID returns the section id of a candidate list.
func PoliticalGroupSectionID(number uint32) string {
	return PoliticalGroupSectionPrefix + strconv.FormatUint(uint64(number), 10)
}

// Build derives the form structure from an election definition. It is a
// pure function of its arguments.
func Build(e tally.Election, opts ...Option) (Structure, error) {
	if err := e.Validate(); err != nil {
		return Structure{}, err
	}

	o := options{variant: VariantFirstSession}
	for _, opt := range opts {
		opt(&o)
	}

	var sections []Section

	switch o.variant {
	case VariantFirstSession:
		sections = append(sections,
			extraInvestigationSection(),
			countingDifferencesSection(),
			votersVotesCountsSection(e, false),
			differencesCountsSection(),
		)
	case VariantCountsOnly:
		sections = append(sections,
			votersVotesCountsSection(e, true),
			differencesCountsSection(),
		)
	default:
		return Structure{}, fmt.Errorf("unknown structure variant %d", o.variant)
	}

	for i, pg := range e.PoliticalGroups {
		sections = append(sections, politicalGroupSection(i, pg))
	}

	return Structure{Sections: sections}, nil
}

func yesNoCheckboxes(title, errorPath string) *Checkboxes {
	return &Checkboxes{
		Title:     title,
		ErrorPath: errorPath,
		Options: []CheckboxOption{
			{Path: errorPath + ".yes", Label: "Yes", ShortLabel: "Yes", AutoFocusInput: true},
			{Path: errorPath + ".no", Label: "No", ShortLabel: "No"},
		},
	}
}

func extraInvestigationSection() Section {
	return Section{
		ID:         SectionExtraInvestigation,
		Title:      "Extra investigation",
		ShortTitle: "Extra investigation",
		Subsections: []Subsection{
			&Message{Text: "Only fill in this page if the central polling station asked for an extra investigation of this polling station."},
			yesNoCheckboxes(
				"Was there an extra investigation for a reason other than an unexplained difference?",
				"extra_investigation.extra_investigation_other_reason",
			),
			yesNoCheckboxes(
				"Were the ballots (partially) recounted as a result of the extra investigation?",
				"extra_investigation.ballots_recounted_extra_investigation",
			),
		},
	}
}

func countingDifferencesSection() Section {
	return Section{
		ID:         SectionCountingDifferencesPollingStation,
		Title:      "Differences in the counts of the polling station",
		ShortTitle: "Counting differences",
		Subsections: []Subsection{
			&Message{Text: "Copy the answers from the report of the polling station."},
			yesNoCheckboxes(
				"Was there an unexplained difference between the number of voters and the number of ballots?",
				"counting_differences_polling_station.unexplained_difference_ballots_voters",
			),
			yesNoCheckboxes(
				"Was there a difference between the number of ballots per list?",
				"counting_differences_polling_station.difference_ballots_per_list",
			),
		},
	}
}

func votersVotesCountsSection(e tally.Election, withRecount bool) Section {
	var subs []Subsection

	if withRecount {
		subs = append(subs, &Radio{
			Title:      "Was the count of this polling station redone?",
			ShortTitle: "Recounted",
			Path:       "recounted",
			ValueType:  RadioValueBoolean,
			Options: []RadioOption{
				{Value: "true", Label: "Yes, there was a recount", AutoFocusInput: true},
				{Value: "false", Label: "No, there was no recount"},
			},
		})
	}

	voters := &InputGrid{
		Headers: gridHeaders,
		Rows: []InputGridRow{
			{Code: "A", Path: "voters_counts.poll_card_count", Title: "Valid poll cards", AutoFocusInput: true},
			{Code: "B", Path: "voters_counts.proxy_certificate_count", Title: "Valid proxy certificates", AddSeparator: true},
			{Code: "D", Path: "voters_counts.total_admitted_voters_count", Title: "Total admitted voters", IsTotal: true},
		},
	}

	votes := &InputGrid{Headers: gridHeaders}

	for i, pg := range e.PoliticalGroups {
		votes.Rows = append(votes.Rows, InputGridRow{
			Code:           "E." + strconv.FormatUint(uint64(pg.Number), 10),
			Path:           fmt.Sprintf("votes_counts.political_group_total_votes[%d].total", i),
			Title:          fmt.Sprintf("Total list %d - %s", pg.Number, pg.Name),
			AutoFocusInput: i == 0,
			AddSeparator:   i == len(e.PoliticalGroups)-1,
		})
	}

	votes.Rows = append(votes.Rows,
		InputGridRow{Code: "E", Path: "votes_counts.total_votes_candidates_count", Title: "Total votes on candidates", IsTotal: true},
		InputGridRow{Code: "F", Path: "votes_counts.blank_votes_count", Title: "Blank ballots"},
		InputGridRow{Code: "G", Path: "votes_counts.invalid_votes_count", Title: "Invalid ballots", AddSeparator: true},
		InputGridRow{Code: "H", Path: "votes_counts.total_votes_cast_count", Title: "Total votes cast", IsTotal: true},
	)

	subs = append(subs,
		&Heading{Title: "Admitted voters"},
		voters,
		&Heading{Title: "Counted votes"},
		votes,
	)

	return Section{
		ID:          SectionVotersVotesCounts,
		Title:       "Number of voters and votes",
		ShortTitle:  "Voters and votes",
		Subsections: subs,
	}
}

func differencesCountsSection() Section {
	return Section{
		ID:         SectionDifferencesCounts,
		Title:      "Differences between admitted voters and counted ballots",
		ShortTitle: "Differences",
		Subsections: []Subsection{
			&Checkboxes{
				Title:     "How does the number of votes cast compare to the number of admitted voters?",
				ErrorPath: "differences_counts.compare_votes_cast_admitted_voters",
				Options: []CheckboxOption{
					{
						Path:           "differences_counts.compare_votes_cast_admitted_voters.admitted_voters_equal_votes_cast",
						Label:          "D and H are equal",
						ShortLabel:     "D = H",
						AutoFocusInput: true,
					},
					{
						Path:       "differences_counts.compare_votes_cast_admitted_voters.votes_cast_greater_than_admitted_voters",
						Label:      "H is greater than D (more ballots counted than voters admitted)",
						ShortLabel: "H > D",
					},
					{
						Path:       "differences_counts.compare_votes_cast_admitted_voters.votes_cast_smaller_than_admitted_voters",
						Label:      "H is smaller than D (fewer ballots counted than voters admitted)",
						ShortLabel: "H < D",
					},
				},
			},
			&InputGrid{
				Headers: gridHeaders,
				Rows: []InputGridRow{
					{Code: "I", Path: "differences_counts.more_ballots_count", Title: "Ballots counted more than admitted voters", AutoFocusInput: true},
					{Code: "J", Path: "differences_counts.fewer_ballots_count", Title: "Ballots counted fewer than admitted voters"},
				},
			},
			yesNoCheckboxes(
				"Is the difference completely accounted for?",
				"differences_counts.difference_completely_accounted_for",
			),
		},
	}
}

func politicalGroupSection(index int, pg tally.PoliticalGroup) Section {
	grid := &InputGrid{Headers: gridHeaders}
	last := len(pg.Candidates) - 1

	for j, c := range pg.Candidates {
		// The list-total row follows the last candidate, so it never gets a separator.
		grid.Rows = append(grid.Rows, InputGridRow{
			Code:           strconv.FormatUint(uint64(c.Number), 10),
			Path:           fmt.Sprintf("political_group_votes[%d].candidate_votes[%d].votes", index, j),
			Title:          c.FullName(),
			AutoFocusInput: j == 0,
			AddSeparator:   (j+1)%CandidatesPerBlock == 0 && j != last,
		})
	}

	grid.Rows = append(grid.Rows, InputGridRow{
		Path:        fmt.Sprintf("political_group_votes[%d].total", index),
		Title:       fmt.Sprintf("Total list %d", pg.Number),
		IsListTotal: true,
	})

	title := fmt.Sprintf("List %d", pg.Number)
	if pg.Name != "" {
		title += " - " + pg.Name
	}

	return Section{
		ID:          PoliticalGroupSectionID(pg.Number),
		Title:       title,
		ShortTitle:  fmt.Sprintf("List %d", pg.Number),
		Subsections: []Subsection{grid},
	}
}
