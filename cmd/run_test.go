package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/magiconair/properties/assert"
	"github.com/notargets/gocrit/InputParameters"
	"github.com/notargets/gocrit/critical"
	"github.com/notargets/gocrit/readfiles"
	"github.com/notargets/gocrit/report"
)

func TestRunEngine(t *testing.T) {
	var (
		err error
	)
	fileInput := []byte(`
Title: Test Case
Objective: well
Dims: 1
DomainCenter: [0]
DomainRange: [1]
Levels: 1
DegreeMin: 2
DegreeMax: 6
Tolerance: 1.0e-8
MatchTolerance: 1.0e-4
`)
	var rp InputParameters.RunParameters
	if err = rp.Parse(fileInput); err != nil {
		panic(err)
	}
	rp.ApplyDefaults()
	if err = rp.Validate(); err != nil {
		panic(err)
	}
	assert.Equal(t, rp.Objective, "well")
	assert.Equal(t, rp.DegreeStep, 1)
	rp.Print()

	rp.OutputDir = filepath.Join(t.TempDir(), "report")
	RunEngine(&ModelRun{}, &rp)
	for _, name := range []string{report.DegreeResultsFile,
		report.MatchRecordsFile, report.SummaryFile} {
		if _, err = os.Stat(filepath.Join(rp.OutputDir, name)); err != nil {
			t.Fatalf("missing report file: %v", err)
		}
	}
}

func TestNewProcessor(t *testing.T) {
	rp := &InputParameters.RunParameters{Refiner: "descent", DropUnconverged: true}
	pr := newProcessor(rp)
	_, isDescent := pr.Refiner.(*critical.DescentRefiner)
	assert.Equal(t, isDescent, true)
	assert.Equal(t, pr.KeepUnconverged, false)

	rp = &InputParameters.RunParameters{}
	pr = newProcessor(rp)
	_, isNewton := pr.Refiner.(*critical.NewtonRefiner)
	assert.Equal(t, isNewton, true)
	assert.Equal(t, pr.KeepUnconverged, true)
}

func TestWriteReference(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "refs.csv")
	WriteReference("doublewell", 2, fileName)
	set, err := readfiles.ReadReferenceCSV(fileName)
	if err != nil {
		panic(err)
	}
	// 3 stationary points per axis, squared
	assert.Equal(t, len(set.Points), 9)
	counts := set.TypeCounts()
	assert.Equal(t, counts["min+min"], 4)
	assert.Equal(t, counts["max+max"], 1)
}
