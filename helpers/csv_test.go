package helpers

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/launchdash/launch"
	"github.com/spektr-org/launchdash/schema"
)

func TestLoadCSV_Testdata(t *testing.T) {
	tbl, err := LoadCSV(filepath.Join("testdata", "spacex_launch_dash.csv"))
	require.NoError(t, err)

	assert.Equal(t, 24, tbl.Len())
	assert.Equal(t, []string{"CCAFS LC-40", "VAFB SLC-4E", "KSC LC-39A", "CCAFS SLC-40"}, tbl.Sites())
	lo, hi := tbl.PayloadBounds()
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 9600.0, hi)

	first := tbl.At(0)
	assert.Equal(t, launch.Record{Site: "CCAFS LC-40", PayloadMassKg: 0, BoosterCategory: "v1.0", Outcome: launch.Failure}, first)

	all := launch.OutcomeDistribution(tbl, launch.AllSites)
	assert.Equal(t, 10.0, all.Total())

	ksc := launch.OutcomeDistribution(tbl, "KSC LC-39A")
	assert.Equal(t, []launch.Slice{{Label: "Success", Value: 4}, {Label: "Failure", Value: 1}}, ksc.Slices)

	mid := launch.PayloadScatter(tbl, launch.AllSites, launch.PayloadRange{Low: 2000, High: 5000})
	assert.Len(t, mid.Rows, 12)
}

func TestLoadCSV_MissingFile(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	assert.ErrorContains(t, err, "failed to read dataset")
}

func TestParseRecords_ColumnOrderIndependent(t *testing.T) {
	data := "class,Booster Version Category,Payload Mass (kg),Launch Site,Extra\n1,FT,2490,KSC LC-39A,x\n"
	records, err := ParseRecords(strings.NewReader(data), schema.Launch())
	require.NoError(t, err)
	assert.Equal(t, []launch.Record{{Site: "KSC LC-39A", PayloadMassKg: 2490, BoosterCategory: "FT", Outcome: launch.Success}}, records)
}

func TestParseRecords_Errors(t *testing.T) {
	header := "Launch Site,Payload Mass (kg),Booster Version Category,class\n"
	cases := []struct {
		name string
		data string
		want string
	}{
		{"missing column", "Launch Site,class\nKSC,1\n", "missing required column"},
		{"bad payload", header + "KSC,heavy,FT,1\n", `line 2: payload mass "heavy"`},
		{"negative payload", header + "KSC,1,FT,1\nKSC,-5,FT,1\n", "line 3: payload mass must be a non-negative"},
		{"bad class", header + "KSC,100,FT,2\n", "outcome flag must be 0 or 1"},
		{"empty site", header + ",100,FT,1\n", "empty launch site"},
		{"no header", "", "failed to read CSV headers"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseRecords(strings.NewReader(tc.data), schema.Launch())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestParseCSV_HeaderOnly(t *testing.T) {
	_, err := ParseCSV([]byte("Launch Site,Payload Mass (kg),Booster Version Category,class\n"), schema.Launch())
	assert.True(t, errors.Is(err, ErrEmptyDataset))
}
