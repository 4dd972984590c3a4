package election

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tally-mapper/internal/tally"
)

func TestLoadFile_YAML(t *testing.T) {
	e, err := LoadFile("testdata/municipal.yaml", "")
	require.NoError(t, err)

	assert.Equal(t, uint32(7), e.ID)
	assert.Equal(t, "Municipal council 2026", e.Name)
	require.Len(t, e.PoliticalGroups, 2)
	assert.Equal(t, "de Vries, B.", e.PoliticalGroups[0].Candidates[1].FullName())
	assert.Equal(t, "de", e.PoliticalGroups[0].Candidates[1].LastNamePrefix)
	assert.Equal(t, "Dirk", e.PoliticalGroups[1].Candidates[0].FirstName)
}

func TestLoadFile_CSV(t *testing.T) {
	e, err := LoadFile("testdata/candidates.csv", FormatCSV, WithElection(3, "Provincial council"))
	require.NoError(t, err)

	assert.Equal(t, uint32(3), e.ID)
	assert.Equal(t, "Provincial council", e.Name)
	require.Len(t, e.PoliticalGroups, 2)

	a := e.PoliticalGroups[0]
	assert.Equal(t, uint32(1), a.Number)
	assert.Equal(t, "List A", a.Name)
	require.Len(t, a.Candidates, 3)
	assert.Equal(t, tally.Candidate{Number: 2, Initials: "B.", LastNamePrefix: "de", LastName: "Vries", Locality: "Amersfoort"}, a.Candidates[1])
	assert.Equal(t, uint32(3), a.Candidates[2].Number)

	assert.Equal(t, "List B", e.PoliticalGroups[1].Name)
}

func TestLoadFile_Latin1(t *testing.T) {
	e, err := LoadFile("testdata/candidates_latin1.csv", FormatCSV, WithComma(';'), WithLatin1())
	require.NoError(t, err)

	require.Len(t, e.PoliticalGroups, 1)
	assert.Equal(t, "Lijst één", e.PoliticalGroups[0].Name)
	assert.Equal(t, "José", e.PoliticalGroups[0].Candidates[0].FirstName)
	assert.Equal(t, "Müller", e.PoliticalGroups[0].Candidates[0].LastName)
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := LoadFile("testdata/missing.yaml", "")
	assert.ErrorContains(t, err, "failed to read election file")

	_, err = LoadFile("testdata/municipal.txt", "")
	assert.ErrorContains(t, err, "unknown election format")
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{name: "unknown field", data: "id: 1\nlists: []\n", want: "failed to parse election YAML"},
		{name: "no groups", data: "id: 1\nname: x\n", want: "no political groups"},
		{
			name: "duplicate candidate",
			data: "id: 1\npolitical_groups:\n  - number: 1\n    candidates:\n      - number: 1\n      - number: 1\n",
			want: "duplicate candidate number 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.data))
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestParseCandidatesCSV_ConflictingListName(t *testing.T) {
	data := "list_number,list_name,candidate_number,initials,first_name,last_name_prefix,last_name,locality\n" +
		"1,List A,1,A.,,,Jansen,\n" +
		"1,List Z,2,B.,,,Vries,\n"

	_, err := ParseCandidatesCSV(strings.NewReader(data))
	assert.ErrorContains(t, err, `list 1 named both "List A" and "List Z"`)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("json")
	assert.Error(t, err)
}

func TestMarshal_RoundTrip(t *testing.T) {
	e, err := LoadFile("testdata/municipal.yaml", FormatYAML)
	require.NoError(t, err)

	data, err := Marshal(e)
	require.NoError(t, err)

	back, err := Parse(strings.NewReader(string(data)))
	require.NoError(t, err)
	assert.Equal(t, e, back)
}
