package report

import (
	"bytes"
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ghodss/yaml"
	"github.com/notargets/gocrit/engine"
	"github.com/notargets/gocrit/match"
	"github.com/notargets/gocrit/reference"
	"github.com/stretchr/testify/assert"
)

func testSet(t *testing.T) (set *reference.Set) {
	set, err := reference.NewSet([]reference.Point{
		{Location: []float64{0.5, 0.5}, TypeLabel: "min", RegionLabel: "11"},
		{Location: []float64{-0.5, -0.5}, TypeLabel: "max", RegionLabel: "00"},
	})
	assert.NoError(t, err)
	return
}

func TestWriteDegreeResults(t *testing.T) {
	// deliberately unordered, as worker arrival would be
	results := []engine.DegreeResult{
		{RegionLabel: "11", Degree: 4, ErrorNorm: 0.001, ConditionNumber: 42,
			NCandidates: 1, NReference: 1, NMatched: 1, SuccessRate: 1,
			Converged: true},
		{RegionLabel: "00", Degree: 2, ErrorNorm: math.Inf(1),
			ConditionNumber: 1.e12, FitFailed: true, NReference: 1},
		{RegionLabel: "11", Degree: 2, ErrorNorm: 0.5, ConditionNumber: 10,
			NReference: 1},
	}
	var buf bytes.Buffer
	assert.NoError(t, WriteDegreeResults(&buf, results))

	rows, err := csv.NewReader(&buf).ReadAll()
	assert.NoError(t, err)
	assert.Equal(t, 4, len(rows))
	assert.Equal(t, degreeResultsHeader, rows[0])

	// sorted by region label, then degree
	assert.Equal(t, []string{"r00", "2", "+Inf", "1e+12", "0", "1", "0", "0",
		"false", "0"}, rows[1])
	assert.Equal(t, "r11", rows[2][0])
	assert.Equal(t, "2", rows[2][1])
	assert.Equal(t, "r11", rows[3][0])
	assert.Equal(t, "4", rows[3][1])
	assert.Equal(t, "true", rows[3][8])
}

func TestWriteMatchRecords(t *testing.T) {
	set := testSet(t)
	results := []engine.DegreeResult{
		{RegionLabel: "11", Degree: 2, Records: []match.Record{
			{RefIndex: 0, Distance: 0.3, Capture: match.CaptureNone, Degree: 2},
		}},
		{RegionLabel: "11", Degree: 4, Records: []match.Record{
			{RefIndex: 0, Matched: true, Distance: 0.001,
				Capture: match.CaptureRefined, Degree: 4},
		}},
		{RegionLabel: "00", Degree: 2, Records: []match.Record{
			{RefIndex: 1, Matched: true, Distance: 0.02,
				Capture: match.CaptureRaw, Degree: 2},
		}},
	}
	var buf bytes.Buffer
	assert.NoError(t, WriteMatchRecords(&buf, set, results))

	rows, err := csv.NewReader(&buf).ReadAll()
	assert.NoError(t, err)
	assert.Equal(t, 3, len(rows))
	assert.Equal(t, []string{"ref_index", "x0", "x1", "type", "region_label",
		"distance_d2", "capture_d2", "distance_d4", "capture_d4"}, rows[0])
	assert.Equal(t, []string{"0", "0.5", "0.5", "min", "r11",
		"0.3", "none", "0.001", "refined"}, rows[1])

	// the r00 region never probed degree 4: empty cells
	assert.Equal(t, []string{"1", "-0.5", "-0.5", "max", "r00",
		"0.02", "raw", "", ""}, rows[2])
}

func TestWriteSummary(t *testing.T) {
	rs := &engine.RunSummary{
		RunID:     "run-under-test",
		Objective: "well+cap",
		Tolerance: 0.05,
		Regions: []engine.RegionSummary{
			{Label: "r0", Status: "converged", ConvergedDegree: 4},
		},
		DegreeRates: []engine.DegreeRate{
			{Degree: 4, Matched: 1, Reference: 1, Rate: 1},
		},
		Results: []engine.DegreeResult{{RegionLabel: "0", Degree: 4}},
	}
	var buf bytes.Buffer
	assert.NoError(t, WriteSummary(&buf, rs))
	out := buf.String()
	assert.Contains(t, out, "RunID: run-under-test")
	assert.Contains(t, out, "Objective: well+cap")

	// the raw per-degree rows stay out of the YAML rendering
	var m map[string]interface{}
	assert.NoError(t, yaml.Unmarshal(buf.Bytes(), &m))
	_, present := m["Results"]
	assert.False(t, present)
	_, present = m["Regions"]
	assert.True(t, present)
}

func TestWriteAll(t *testing.T) {
	set := testSet(t)
	rs := &engine.RunSummary{
		RunID: "run-under-test",
		Results: []engine.DegreeResult{
			{RegionLabel: "11", Degree: 2, Records: []match.Record{
				{RefIndex: 0, Matched: true, Distance: 0.001,
					Capture: match.CaptureRaw, Degree: 2},
			}},
		},
	}
	dir := filepath.Join(t.TempDir(), "report")
	assert.NoError(t, WriteAll(dir, set, rs))
	for _, name := range []string{DegreeResultsFile, MatchRecordsFile, SummaryFile} {
		info, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err)
		assert.False(t, info.IsDir())
		assert.NotZero(t, info.Size())
	}
}
