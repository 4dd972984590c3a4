package mapper

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tally-mapper/internal/coerce"
	"tally-mapper/internal/path"
	"tally-mapper/internal/structure"
	"tally-mapper/internal/tally"
)

func testElection() tally.Election {
	return tally.Election{
		ID:   1,
		Name: "Municipal council",
		PoliticalGroups: []tally.PoliticalGroup{
			{Number: 1, Name: "List A", Candidates: []tally.Candidate{
				{Number: 1, Initials: "A.", LastName: "Jansen"},
				{Number: 2, Initials: "B.", LastName: "Vries", LastNamePrefix: "de"},
				{Number: 3, Initials: "C.", LastName: "Bakker"},
			}},
			{Number: 2, Name: "List B", Candidates: []tally.Candidate{
				{Number: 1, Initials: "D.", LastName: "Visser"},
				{Number: 2, Initials: "E.", LastName: "Smit"},
			}},
		},
	}
}

func testStructure(t *testing.T, opts ...structure.Option) structure.Structure {
	t.Helper()

	st, err := structure.Build(testElection(), opts...)
	require.NoError(t, err)

	return st
}

func section(t *testing.T, st structure.Structure, id string) structure.Section {
	t.Helper()

	s, ok := st.Section(id)
	require.True(t, ok, "section %s", id)

	return s
}

func filledResults() *tally.Results {
	r := tally.NewResults(testElection())
	yes := true
	r.Recounted = &yes
	r.VotersCounts = tally.VotersCounts{PollCardCount: 1234, ProxyCertificateCount: 6, TotalAdmittedVotersCount: 1240}
	r.VotesCounts.PoliticalGroupTotalVotes[0].Total = 1000
	r.VotesCounts.PoliticalGroupTotalVotes[1].Total = 230
	r.VotesCounts.TotalVotesCandidatesCount = 1230
	r.VotesCounts.BlankVotesCount = 4
	r.VotesCounts.InvalidVotesCount = 6
	r.VotesCounts.TotalVotesCastCount = 1240
	r.DifferencesCounts.CompareVotesCastAdmittedVoters.AdmittedVotersEqualVotesCast = true
	r.PoliticalGroupVotes[0].CandidateVotes[0].Votes = 700
	r.PoliticalGroupVotes[0].CandidateVotes[1].Votes = 200
	r.PoliticalGroupVotes[0].CandidateVotes[2].Votes = 100
	r.PoliticalGroupVotes[0].Total = 1000
	r.PoliticalGroupVotes[1].CandidateVotes[0].Votes = 230
	r.PoliticalGroupVotes[1].Total = 230

	return r
}

func TestToFormValues(t *testing.T) {
	m := New(nil)
	st := testStructure(t, structure.WithVariant(structure.VariantCountsOnly))

	s := section(t, st, structure.SectionVotersVotesCounts)
	fv, err := m.ToFormValues(s, filledResults())
	require.NoError(t, err)

	assert.ElementsMatch(t, s.BoundPaths(), fv.Paths())
	assert.Equal(t, "true", fv["recounted"])
	assert.Equal(t, "1.234", fv["voters_counts.poll_card_count"])
	assert.Equal(t, "1.000", fv["votes_counts.political_group_total_votes[0].total"])
	assert.Equal(t, "4", fv["votes_counts.blank_votes_count"])

	s = section(t, st, "political_group_votes_2")
	fv, err = m.ToFormValues(s, filledResults())
	require.NoError(t, err)

	assert.Equal(t, FormValues{
		"political_group_votes[1].candidate_votes[0].votes": "230",
		"political_group_votes[1].candidate_votes[1].votes": "0",
		"political_group_votes[1].total":                    "230",
	}, fv)
}

func TestToFormValues_Unanswered(t *testing.T) {
	m := New(nil)
	st := testStructure(t, structure.WithVariant(structure.VariantCountsOnly))

	fv, err := m.ToFormValues(section(t, st, structure.SectionVotersVotesCounts), tally.NewResults(testElection()))
	require.NoError(t, err)

	assert.Equal(t, "", fv["recounted"])
	assert.Equal(t, "0", fv["voters_counts.poll_card_count"])
}

func TestToFormValues_ShapeMismatch(t *testing.T) {
	m := New(nil)
	st := testStructure(t)

	// a record for a smaller election has no slot for list 2
	small := testElection()
	small.PoliticalGroups = small.PoliticalGroups[:1]

	_, err := m.ToFormValues(section(t, st, "political_group_votes_2"), tally.NewResults(small))
	assert.ErrorIs(t, err, path.ErrShapeMismatch)

	_, err = m.ToFormValues(section(t, st, "political_group_votes_1"), nil)
	assert.Error(t, err)
}

func TestApplyFormValues(t *testing.T) {
	m := New(nil)
	st := testStructure(t, structure.WithVariant(structure.VariantCountsOnly))
	s := section(t, st, structure.SectionVotersVotesCounts)

	in := tally.NewResults(testElection())
	before := in.Clone()

	out, err := m.ApplyFormValues(s, in, FormValues{
		"recounted":                                        "false",
		"voters_counts.poll_card_count":                    "1.234",
		"voters_counts.proxy_certificate_count":            "",
		"votes_counts.political_group_total_votes.1.total": "12",
		"votes_counts.blank_votes_count":                   "7",
	})
	require.NoError(t, err)

	require.NotNil(t, out.Recounted)
	assert.False(t, *out.Recounted)
	assert.Equal(t, uint32(1234), out.VotersCounts.PollCardCount)
	assert.Equal(t, uint32(0), out.VotersCounts.ProxyCertificateCount)
	assert.Equal(t, uint32(12), out.VotesCounts.PoliticalGroupTotalVotes[1].Total)
	assert.Equal(t, uint32(7), out.VotesCounts.BlankVotesCount)
	assert.Equal(t, before, in, "input must not change")

	out, err = m.ApplyFormValues(s, out, FormValues{"recounted": ""})
	require.NoError(t, err)
	assert.Nil(t, out.Recounted)
}

func TestApplyFormValues_Checkboxes(t *testing.T) {
	m := New(nil)
	s := section(t, testStructure(t), structure.SectionDifferencesCounts)

	out, err := m.ApplyFormValues(s, tally.NewResults(testElection()), FormValues{
		"differences_counts.compare_votes_cast_admitted_voters.votes_cast_greater_than_admitted_voters": "true",
		"differences_counts.difference_completely_accounted_for.no":                                     "true",
		"differences_counts.difference_completely_accounted_for.yes":                                    "",
		"differences_counts.more_ballots_count":                                                         "3",
	})
	require.NoError(t, err)

	assert.True(t, out.DifferencesCounts.CompareVotesCastAdmittedVoters.VotesCastGreaterThanAdmittedVoters)
	assert.True(t, out.DifferencesCounts.DifferenceCompletelyAccountedFor.No)
	assert.False(t, out.DifferencesCounts.DifferenceCompletelyAccountedFor.Yes)
	assert.Equal(t, uint32(3), out.DifferencesCounts.MoreBallotsCount)
}

func TestApplyFormValues_Errors(t *testing.T) {
	m := New(nil)
	st := testStructure(t)
	s := section(t, st, "political_group_votes_1")

	tests := []struct {
		name   string
		values FormValues
		check  func(t *testing.T, err error)
	}{
		{
			name:   "malformed number",
			values: FormValues{"political_group_votes[0].total": "12a"},
			check: func(t *testing.T, err error) {
				var fe *coerce.FormatError
				require.ErrorAs(t, err, &fe)
				assert.Equal(t, "12a", fe.Input)
				assert.ErrorIs(t, err, coerce.ErrInvalidInteger)
			},
		},
		{
			name:   "index past the end",
			values: FormValues{"political_group_votes[0].candidate_votes[3].votes": "1"},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, path.ErrShapeMismatch)
			},
		},
		{
			name:   "unbound path with unknown field",
			values: FormValues{"voters_counts.poll_cards": "5"},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, path.ErrShapeMismatch)
			},
		},
		{
			name:   "unbound number path with malformed input",
			values: FormValues{"voters_counts.poll_card_count": "five"},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, coerce.ErrInvalidInteger)
			},
		},
		{
			name:   "malformed path",
			values: FormValues{"political_group_votes[x]": "5"},
			check: func(t *testing.T, err error) {
				assert.Error(t, err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := filledResults()
			before := in.Clone()

			out, err := m.ApplyFormValues(s, in, tt.values)
			assert.Nil(t, out)
			tt.check(t, err)
			assert.Equal(t, before, in)
		})
	}
}

func TestApplyFormValues_PathsOfOtherSections(t *testing.T) {
	m := New(nil)
	st := testStructure(t, structure.WithVariant(structure.VariantCountsOnly))
	s := section(t, st, "political_group_votes_1")

	out, err := m.ApplyFormValues(s, tally.NewResults(testElection()), FormValues{
		"political_group_votes[0].total": "5",
		"voters_counts.poll_card_count":  "1.234",
		"recounted":                      "true",
		"differences_counts.difference_completely_accounted_for.yes":                             "true",
		"differences_counts.compare_votes_cast_admitted_voters.admitted_voters_equal_votes_cast": "",
	})
	require.NoError(t, err)

	assert.Equal(t, uint32(5), out.PoliticalGroupVotes[0].Total)
	assert.Equal(t, uint32(1234), out.VotersCounts.PollCardCount)
	require.NotNil(t, out.Recounted)
	assert.True(t, *out.Recounted)
	assert.True(t, out.DifferencesCounts.DifferenceCompletelyAccountedFor.Yes)
	assert.False(t, out.DifferencesCounts.CompareVotesCastAdmittedVoters.AdmittedVotersEqualVotesCast)
}

func TestApplyFormValues_FirstErrorIsDeterministic(t *testing.T) {
	m := New(nil)
	s := section(t, testStructure(t), "political_group_votes_1")

	fv := FormValues{
		"political_group_votes[0].total":                    "b",
		"political_group_votes[0].candidate_votes[0].votes": "a",
	}

	for range 10 {
		_, err := m.ApplyFormValues(s, filledResults(), fv)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"a"`)
	}
}

func TestRoundTrip(t *testing.T) {
	m := New(nil)

	for _, variant := range []structure.Variant{structure.VariantFirstSession, structure.VariantCountsOnly} {
		st := testStructure(t, structure.WithVariant(variant))

		for _, s := range st.Sections {
			t.Run(s.ID, func(t *testing.T) {
				r := filledResults()

				fv, err := m.ToFormValues(s, r)
				require.NoError(t, err)

				out, err := m.ApplyFormValues(s, r, fv)
				require.NoError(t, err)
				assert.Equal(t, r, out, spew.Sdump(fv))
			})
		}
	}
}

func TestToAllFormValues(t *testing.T) {
	m := New(nil)
	st := testStructure(t)

	all, err := m.ToAllFormValues(st, filledResults())
	require.NoError(t, err)

	var want int
	for _, s := range st.Sections {
		want += len(s.BoundPaths())
	}

	assert.Len(t, all, want)
	assert.Equal(t, "700", all["political_group_votes[0].candidate_votes[0].votes"])
}

func TestFieldKinds(t *testing.T) {
	st := testStructure(t, structure.WithVariant(structure.VariantCountsOnly))
	kinds := FieldKinds(section(t, st, structure.SectionVotersVotesCounts))

	assert.Equal(t, coerce.KindBoolean, kinds["recounted"])
	assert.Equal(t, coerce.KindFormattedNumber, kinds["voters_counts.poll_card_count"])

	kinds = FieldKinds(section(t, st, structure.SectionDifferencesCounts))
	assert.Equal(t, coerce.KindBoolean, kinds["differences_counts.difference_completely_accounted_for.yes"])
	assert.NotContains(t, kinds, "differences_counts.difference_completely_accounted_for")
}

func TestFormValues_Clone(t *testing.T) {
	fv := FormValues{"a": "1"}
	c := fv.Clone()
	c["a"] = "2"

	assert.Equal(t, "1", fv["a"])
}
