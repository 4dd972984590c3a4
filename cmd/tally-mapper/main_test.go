package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"tally-mapper/internal/config"
	"tally-mapper/internal/tally"
)

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	for _, name := range []string{config.EnvElection, config.EnvVariant, config.EnvLogLevel, config.EnvDebug} {
		t.Setenv(name, "")
	}

	var stdout, stderr bytes.Buffer
	err := run(append([]string{"-e", "testdata/election.yaml"}, args...), &stdout, &stderr)

	return stdout.String(), stderr.String(), err
}

func TestRun_Structure(t *testing.T) {
	out, _, err := runCLI(t, "-variant", "counts-only", "structure")
	require.NoError(t, err)

	assert.Contains(t, out, "voters_votes_counts\t")
	assert.Contains(t, out, "\tradio\trecounted\n")
	assert.Contains(t, out, "political_group_votes_2\t")
	assert.Contains(t, out, "\tinputGrid\tpolitical_group_votes[1].total\n")
	assert.NotContains(t, out, "extra_investigation")
}

func TestRun_New(t *testing.T) {
	out, _, err := runCLI(t, "new")
	require.NoError(t, err)

	var r tally.Results
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	require.Len(t, r.PoliticalGroupVotes, 2)
	assert.Len(t, r.PoliticalGroupVotes[0].CandidateVotes, 2)
}

func TestRun_DebugDumps(t *testing.T) {
	out, stderr, err := runCLI(t, "-debug", "form-values", "-section", "voters_votes_counts", "testdata/first.json")
	require.NoError(t, err)

	assert.NotEmpty(t, out)
	assert.Contains(t, stderr, "level=DEBUG msg=election")
	assert.Contains(t, stderr, "tally.Election")
	assert.Contains(t, stderr, "msg=\"results testdata/first.json\"")

	_, stderr, err = runCLI(t, "new")
	require.NoError(t, err)
	assert.NotContains(t, stderr, "tally.Election")
}

func TestRun_FormValues(t *testing.T) {
	out, _, err := runCLI(t, "form-values", "-section", "voters_votes_counts", "testdata/first.json")
	require.NoError(t, err)

	var fv map[string]string
	require.NoError(t, yaml.Unmarshal([]byte(out), &fv))
	assert.Equal(t, "1.200", fv["voters_counts.poll_card_count"])
	assert.NotContains(t, fv, "political_group_votes[0].total")

	out, _, err = runCLI(t, "form-values", "testdata/first.json")
	require.NoError(t, err)

	fv = nil
	require.NoError(t, yaml.Unmarshal([]byte(out), &fv))
	assert.Equal(t, "800", fv["political_group_votes[0].candidate_votes[0].votes"])
	assert.Equal(t, "true", fv["extra_investigation.extra_investigation_other_reason.no"])
}

func TestRun_Apply(t *testing.T) {
	out, stderr, err := runCLI(t, "apply", "-section", "voters_votes_counts", "testdata/first.json", "testdata/values.yaml")
	require.NoError(t, err)

	var r tally.Results
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, uint32(1234), r.VotersCounts.PollCardCount)
	assert.Equal(t, uint32(0), r.VotersCounts.ProxyCertificateCount)
	assert.Contains(t, stderr, "form values applied")
}

func TestRun_Route(t *testing.T) {
	out, _, err := runCLI(t, "route", "testdata/findings.yaml")
	require.NoError(t, err)

	assert.Contains(t, out, "F401\terror\tglobal\tpolitical_group_votes_1\n")
	assert.Contains(t, out, "W201\twarning\tlocal\tvoters_votes_counts\n")
	assert.Contains(t, out, "political_group_votes[0].total\terror\n")
	assert.Contains(t, out, "votes_counts.blank_votes_count\twarning\n")
}

func TestRun_Diff(t *testing.T) {
	out, _, err := runCLI(t, "diff", "testdata/first.json", "testdata/second.json")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, []string{
		"section,path,first_entry,second_entry,status",
		"political_group_votes_1,political_group_votes[0].candidate_votes[0].votes,800,799,different",
		"voters_votes_counts,voters_counts.poll_card_count,1.200,1.201,different",
	}, lines)
}

func TestRun_Resolve(t *testing.T) {
	out, _, err := runCLI(t, "resolve", "-action", "keep_second", "testdata/first.json", "testdata/second.json")
	require.NoError(t, err)

	var r tally.Results
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, uint32(1201), r.VotersCounts.PollCardCount)

	out, _, err = runCLI(t, "resolve", "-values", "testdata/resolution.yaml", "testdata/first.json", "testdata/second.json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, uint32(1205), r.VotersCounts.PollCardCount)
	assert.Equal(t, uint32(800), r.PoliticalGroupVotes[0].CandidateVotes[0].Votes)

	_, _, err = runCLI(t, "resolve", "-action", "discard_both", "testdata/first.json", "testdata/second.json")
	assert.ErrorContains(t, err, "both entries discarded")
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "unknown command", args: []string{"frobnicate"}, want: "unknown command"},
		{name: "unknown section", args: []string{"form-values", "-section", "nope", "testdata/first.json"}, want: `unknown section "nope"`},
		{name: "missing section", args: []string{"apply", "testdata/first.json", "testdata/values.yaml"}, want: "-section is required"},
		{name: "wrong arg count", args: []string{"diff", "testdata/first.json"}, want: "expected first.json second.json"},
		{name: "shape mismatch", args: []string{"form-values", "testdata/short.json"}, want: "do not match"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, tt.args...)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
