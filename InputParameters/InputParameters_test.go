package InputParameters

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	data := []byte(`
Title: Double well sweep
Objective: doublewell
Dims: 2
DomainCenter: [0, 0]
DomainRange: [1, 1]
Levels: 2
Basis: legendre
DegreeMin: 2
DegreeMax: 10
DegreeStep: 2
Tolerance: 1.0e-6
MatchTolerance: 0.01
RegionBudgetSec: 0.5
Workers: 4
Refiner: descent
MatchPolicy: assigned
TypeFilters: [min+min, max+max]
OutputDir: out
`)
	var rp RunParameters
	assert.NoError(t, rp.Parse(data))
	assert.Equal(t, "Double well sweep", rp.Title)
	assert.Equal(t, "doublewell", rp.Objective)
	assert.Equal(t, 2, rp.Dims)
	assert.Equal(t, []float64{0, 0}, rp.DomainCenter)
	assert.Equal(t, []float64{1, 1}, rp.DomainRange)
	assert.Equal(t, "legendre", rp.Basis)
	assert.Equal(t, 2, rp.DegreeMin)
	assert.Equal(t, 10, rp.DegreeMax)
	assert.Equal(t, 2, rp.DegreeStep)
	assert.InDelta(t, 1.0e-6, rp.Tolerance, 1.e-15)
	assert.Equal(t, 500*time.Millisecond, rp.RegionBudget())
	assert.Equal(t, "descent", rp.Refiner)
	assert.Equal(t, "assigned", rp.MatchPolicy)
	assert.Equal(t, []string{"min+min", "max+max"}, rp.TypeFilters)
	assert.NoError(t, rp.Validate())
}

func TestDefaults(t *testing.T) {
	rp := RunParameters{
		Objective:    "well",
		DomainCenter: []float64{0, 0, 0},
		DomainRange:  []float64{1, 1, 1},
	}
	rp.ApplyDefaults()
	assert.Equal(t, 3, rp.Dims)
	assert.Equal(t, "chebyshev", rp.Basis)
	assert.Equal(t, 1, rp.DegreeStep)
	assert.Equal(t, "report", rp.OutputDir)
	assert.NoError(t, rp.Validate())
}

func TestValidate(t *testing.T) {
	{ // missing objective
		rp := RunParameters{Dims: 1,
			DomainCenter: []float64{0}, DomainRange: []float64{1}}
		assert.Error(t, rp.Validate())
	}
	{ // center width disagrees with Dims
		rp := RunParameters{Objective: "well", Dims: 2,
			DomainCenter: []float64{0}, DomainRange: []float64{1, 1}}
		assert.Error(t, rp.Validate())
	}
	{ // range width disagrees with Dims
		rp := RunParameters{Objective: "well", Dims: 2,
			DomainCenter: []float64{0, 0}, DomainRange: []float64{1}}
		assert.Error(t, rp.Validate())
	}
}
