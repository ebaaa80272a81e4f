package match

import (
	"math"
	"testing"

	"github.com/notargets/gocrit/critical"
	"github.com/notargets/gocrit/reference"
	"github.com/stretchr/testify/assert"
)

func point(loc ...float64) critical.CriticalPoint {
	return critical.CriticalPoint{
		Location:    loc,
		RawLocation: loc,
	}
}

func singleRef(t *testing.T) *reference.Set {
	s, err := reference.NewSet([]reference.Point{
		{Location: []float64{0.5, 0.5}, TypeLabel: "min"},
	})
	assert.NoError(t, err)
	return s
}

func TestMatchTolerance(t *testing.T) {
	set := singleRef(t)
	// A candidate at [0.51,0.48] sits ~0.0224 from the reference: inside a
	// 0.1 tolerance, outside a 0.01 tolerance with the distance unchanged
	{
		pts := []critical.CriticalPoint{point(0.51, 0.48)}
		recs := Match(set, []int{0}, pts, 0.1, Nearest)
		assert.Len(t, recs, 1)
		assert.True(t, recs[0].Matched)
		assert.InDelta(t, 0.0224, recs[0].Distance, 5.e-4)

		recs = Match(set, []int{0}, pts, 0.01, Nearest)
		assert.False(t, recs[0].Matched)
		assert.InDelta(t, 0.0224, recs[0].Distance, 5.e-4)
		assert.Equal(t, CaptureNone, recs[0].Capture)
	}
	// The same conclusions hold for a candidate at [0.51,0.49]
	{
		pts := []critical.CriticalPoint{point(0.51, 0.49)}
		recs := Match(set, []int{0}, pts, 0.1, Nearest)
		assert.True(t, recs[0].Matched)
		assert.InDelta(t, math.Sqrt(2)/100, recs[0].Distance, 1.e-12)

		recs = Match(set, []int{0}, pts, 0.01, Nearest)
		assert.False(t, recs[0].Matched)
	}
}

func TestMatchEmptySides(t *testing.T) {
	set := singleRef(t)
	// no reference points in the region: empty records, not an error
	assert.Empty(t, Match(set, nil, []critical.CriticalPoint{point(0, 0)}, 0.1, Nearest))
	// no computed points: unmatched at infinite distance
	recs := Match(set, []int{0}, nil, 0.1, Nearest)
	assert.Len(t, recs, 1)
	assert.False(t, recs[0].Matched)
	assert.True(t, math.IsInf(recs[0].Distance, 1))
	assert.True(t, math.IsInf(recs[0].RawDistance, 1))
	assert.False(t, math.IsNaN(recs[0].Distance))
	assert.Equal(t, CaptureNone, recs[0].Capture)
}

func TestManyToOneNearest(t *testing.T) {
	// Two references nearest to the same single computed point: both match
	set, err := reference.NewSet([]reference.Point{
		{Location: []float64{0.5, 0.5}, TypeLabel: "min"},
		{Location: []float64{0.54, 0.5}, TypeLabel: "min"},
	})
	assert.NoError(t, err)
	pts := []critical.CriticalPoint{point(0.52, 0.5)}
	recs := Match(set, []int{0, 1}, pts, 0.1, Nearest)
	assert.Len(t, recs, 2)
	assert.True(t, recs[0].Matched)
	assert.True(t, recs[1].Matched)
	assert.InDelta(t, 0.02, recs[0].Distance, 1.e-12)
	assert.InDelta(t, 0.02, recs[1].Distance, 1.e-12)
}

func TestAssignedPolicy(t *testing.T) {
	set, err := reference.NewSet([]reference.Point{
		{Location: []float64{0.5, 0.5}, TypeLabel: "min"},
		{Location: []float64{0.54, 0.5}, TypeLabel: "min"},
	})
	assert.NoError(t, err)
	// One computed point cannot serve both references under assignment
	{
		pts := []critical.CriticalPoint{point(0.51, 0.5)}
		recs := Match(set, []int{0, 1}, pts, 0.1, Assigned)
		assert.True(t, recs[0].Matched) // closer reference wins
		assert.False(t, recs[1].Matched)
		assert.InDelta(t, 0.03, recs[1].Distance, 1.e-12)
	}
	// Two computed points pair off one-to-one
	{
		pts := []critical.CriticalPoint{point(0.51, 0.5), point(0.545, 0.5)}
		recs := Match(set, []int{0, 1}, pts, 0.1, Assigned)
		assert.True(t, recs[0].Matched)
		assert.True(t, recs[1].Matched)
		assert.InDelta(t, 0.01, recs[0].Distance, 1.e-12)
		assert.InDelta(t, 0.005, recs[1].Distance, 1.e-12)
	}
}

func TestCaptureMethod(t *testing.T) {
	set := singleRef(t)
	// Raw candidate far, refined location close: refinement earned the match
	cp := critical.CriticalPoint{
		Location:    []float64{0.505, 0.495},
		RawLocation: []float64{0.45, 0.45},
	}
	recs := Match(set, []int{0}, []critical.CriticalPoint{cp}, 0.01, Nearest)
	assert.True(t, recs[0].Matched)
	assert.Equal(t, CaptureRefined, recs[0].Capture)

	// With a loose tolerance the raw candidate already captures it
	recs = Match(set, []int{0}, []critical.CriticalPoint{cp}, 0.1, Nearest)
	assert.Equal(t, CaptureRaw, recs[0].Capture)
}

func TestPolicyParsing(t *testing.T) {
	assert.Equal(t, Nearest, NewPolicy(""))
	assert.Equal(t, Nearest, NewPolicy("nearest"))
	assert.Equal(t, Assigned, NewPolicy(" Assigned "))
	assert.Equal(t, "assigned", Assigned.String())
	assert.Panics(t, func() { NewPolicy("hungarian") })
}
