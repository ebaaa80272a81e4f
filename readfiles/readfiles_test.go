package readfiles

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/notargets/gocrit/reference"
	"github.com/stretchr/testify/assert"
)

func TestReferenceCSVRoundTrip(t *testing.T) {
	set, err := reference.NewSet([]reference.Point{
		{Location: []float64{0.5, -0.25}, TypeLabel: "min"},
		{Location: []float64{0, 0}, TypeLabel: "saddle"},
		{Location: []float64{-0.7071067811865476, 1}, TypeLabel: "min+max"},
	})
	assert.NoError(t, err)

	fileName := filepath.Join(t.TempDir(), "refs.csv")
	assert.NoError(t, WriteReferenceCSV(fileName, set))

	got, err := ReadReferenceCSV(fileName)
	assert.NoError(t, err)
	assert.Equal(t, set.Points, got.Points)
}

func TestReferenceCSVValidation(t *testing.T) {
	write := func(contents string) string {
		fileName := filepath.Join(t.TempDir(), "refs.csv")
		assert.NoError(t, os.WriteFile(fileName, []byte(contents), 0644))
		return fileName
	}
	// missing type column
	{
		_, err := ReadReferenceCSV(write("x0,x1\n0,0\n"))
		assert.Error(t, err)
	}
	// out-of-order coordinate headers
	{
		_, err := ReadReferenceCSV(write("x1,x0,type\n0,0,min\n"))
		assert.Error(t, err)
	}
	// non-numeric coordinate
	{
		_, err := ReadReferenceCSV(write("x0,x1,type\n0,oops,min\n"))
		assert.Error(t, err)
	}
	// no data rows
	{
		_, err := ReadReferenceCSV(write("x0,x1,type\n"))
		assert.Error(t, err)
	}
	// missing file
	{
		_, err := ReadReferenceCSV(filepath.Join(t.TempDir(), "absent.csv"))
		assert.Error(t, err)
	}
}
