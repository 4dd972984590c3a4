package tally

import "slices"

// Results holds one polling station's counted results.
type Results struct {
	// Recounted is answered through a yes/no radio; nil until answered.
	Recounted                         *bool                             `json:"recounted,omitempty"`
	ExtraInvestigation                ExtraInvestigation                `json:"extra_investigation"`
	CountingDifferencesPollingStation CountingDifferencesPollingStation `json:"counting_differences_polling_station"`
	VotersCounts                      VotersCounts                      `json:"voters_counts"`
	VotesCounts                       VotesCounts                       `json:"votes_counts"`
	DifferencesCounts                 DifferencesCounts                 `json:"differences_counts"`
	PoliticalGroupVotes               []PoliticalGroupVotes             `json:"political_group_votes"`
}

// YesNo is a pair of checkboxes; both unchecked means not answered.
type YesNo struct {
	Yes bool `json:"yes"`
	No  bool `json:"no"`
}

// IsAnswered reports whether exactly one of the boxes is checked.
func (yn YesNo) IsAnswered() bool {
	return yn.Yes != yn.No
}

type ExtraInvestigation struct {
	ExtraInvestigationOtherReason      YesNo `json:"extra_investigation_other_reason"`
	BallotsRecountedExtraInvestigation YesNo `json:"ballots_recounted_extra_investigation"`
}

type CountingDifferencesPollingStation struct {
	UnexplainedDifferenceBallotsVoters YesNo `json:"unexplained_difference_ballots_voters"`
	DifferenceBallotsPerList           YesNo `json:"difference_ballots_per_list"`
}

// VotersCounts are the admission counts (A, B and D on the paper form).
type VotersCounts struct {
	PollCardCount            uint32 `json:"poll_card_count"`
	ProxyCertificateCount    uint32 `json:"proxy_certificate_count"`
	TotalAdmittedVotersCount uint32 `json:"total_admitted_voters_count"`
}

// VotesCounts are the vote totals (E to H on the paper form).
type VotesCounts struct {
	PoliticalGroupTotalVotes  []PoliticalGroupTotalVotes `json:"political_group_total_votes"`
	TotalVotesCandidatesCount uint32                     `json:"total_votes_candidates_count"`
	BlankVotesCount           uint32                     `json:"blank_votes_count"`
	InvalidVotesCount         uint32                     `json:"invalid_votes_count"`
	TotalVotesCastCount       uint32                     `json:"total_votes_cast_count"`
}

type PoliticalGroupTotalVotes struct {
	Number uint32 `json:"number"`
	Total  uint32 `json:"total"`
}

type DifferencesCounts struct {
	MoreBallotsCount                 uint32                         `json:"more_ballots_count"`
	FewerBallotsCount                uint32                         `json:"fewer_ballots_count"`
	CompareVotesCastAdmittedVoters   CompareVotesCastAdmittedVoters `json:"compare_votes_cast_admitted_voters"`
	DifferenceCompletelyAccountedFor YesNo                          `json:"difference_completely_accounted_for"`
}

type CompareVotesCastAdmittedVoters struct {
	AdmittedVotersEqualVotesCast       bool `json:"admitted_voters_equal_votes_cast"`
	VotesCastGreaterThanAdmittedVoters bool `json:"votes_cast_greater_than_admitted_voters"`
	VotesCastSmallerThanAdmittedVoters bool `json:"votes_cast_smaller_than_admitted_voters"`
}

// PoliticalGroupVotes is the per-candidate block of one list.
type PoliticalGroupVotes struct {
	Number         uint32           `json:"number"`
	Total          uint32           `json:"total"`
	CandidateVotes []CandidateVotes `json:"candidate_votes"`
}

type CandidateVotes struct {
	Number uint32 `json:"number"`
	Votes  uint32 `json:"votes"`
}

// NewResults returns an empty record shaped for e: one block per political
// group and one slot per candidate, with the identifying numbers filled in.
func NewResults(e Election) *Results {
	r := &Results{
		VotesCounts: VotesCounts{
			PoliticalGroupTotalVotes: make([]PoliticalGroupTotalVotes, len(e.PoliticalGroups)),
		},
		PoliticalGroupVotes: make([]PoliticalGroupVotes, len(e.PoliticalGroups)),
	}

	for i, pg := range e.PoliticalGroups {
		r.VotesCounts.PoliticalGroupTotalVotes[i] = PoliticalGroupTotalVotes{Number: pg.Number}

		votes := make([]CandidateVotes, len(pg.Candidates))
		for j, c := range pg.Candidates {
			votes[j] = CandidateVotes{Number: c.Number}
		}

		r.PoliticalGroupVotes[i] = PoliticalGroupVotes{Number: pg.Number, CandidateVotes: votes}
	}

	return r
}

// Clone returns a deep copy of r that shares no pointers or slices with it.
func (r *Results) Clone() *Results {
	if r == nil {
		return nil
	}

	out := *r

	if r.Recounted != nil {
		v := *r.Recounted
		out.Recounted = &v
	}

	out.VotesCounts.PoliticalGroupTotalVotes = slices.Clone(r.VotesCounts.PoliticalGroupTotalVotes)

	if r.PoliticalGroupVotes != nil {
		out.PoliticalGroupVotes = make([]PoliticalGroupVotes, len(r.PoliticalGroupVotes))
		for i, pg := range r.PoliticalGroupVotes {
			pg.CandidateVotes = slices.Clone(pg.CandidateVotes)
			out.PoliticalGroupVotes[i] = pg
		}
	}

	return &out
}

// MatchesShape reports whether r has the block and candidate counts e
// prescribes.
func (r *Results) MatchesShape(e Election) bool {
	if len(r.PoliticalGroupVotes) != len(e.PoliticalGroups) ||
		len(r.VotesCounts.PoliticalGroupTotalVotes) != len(e.PoliticalGroups) {
		return false
	}

	for i, pg := range e.PoliticalGroups {
		if len(r.PoliticalGroupVotes[i].CandidateVotes) != len(pg.Candidates) {
			return false
		}
	}

	return true
}
