package objectives

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalogFactors(t *testing.T) {
	assert.Equal(t, []string{"cap", "cosine", "doublewell", "well"}, Names())
	// each catalogued stationary point is a zero of the numerical derivative
	for _, name := range Names() {
		fac := catalog[name]
		for _, st := range fac.Stationary {
			h := 1.e-6
			d := (fac.F(st.X+h) - fac.F(st.X-h)) / (2 * h)
			assert.InDelta(t, 0., d, 1.e-8)
			d2 := (fac.F(st.X+h) - 2*fac.F(st.X) + fac.F(st.X-h)) / (h * h)
			if st.Type == "min" {
				assert.Greater(t, d2, 0.01)
			} else {
				assert.Less(t, d2, -0.01)
			}
		}
	}
}

func TestGet(t *testing.T) {
	// replicated factor
	{
		ts, err := Get("well", 2)
		assert.NoError(t, err)
		assert.Equal(t, "well+well", ts.Name)
		assert.Equal(t, 2, ts.Dims())
		f := ts.Func()
		assert.InDelta(t, 0., f([]float64{0.5, 0.5}), 1.e-15)
		assert.InDelta(t, 0.5, f([]float64{0, 0}), 1.e-15)
	}
	// composite name fixes the dimension
	{
		ts, err := Get("well+cap", 0)
		assert.NoError(t, err)
		assert.Equal(t, 2, ts.Dims())
		_, err = Get("well+cap", 3)
		assert.Error(t, err)
	}
	// unknown names and zero dims fail
	{
		_, err := Get("rosenbrock", 2)
		assert.Error(t, err)
		_, err = Get("well+banana", 0)
		assert.Error(t, err)
		_, err = Get("well", 0)
		assert.Error(t, err)
	}
}

func TestReferencePoints(t *testing.T) {
	// well x cap: a single min+max saddle at (0.5, -0.5)
	{
		ts, err := Get("well+cap", 0)
		assert.NoError(t, err)
		pts := ts.ReferencePoints()
		assert.Len(t, pts, 1)
		assert.Equal(t, []float64{0.5, -0.5}, pts[0].Location)
		assert.Equal(t, "min+max", pts[0].TypeLabel)
	}
	// doublewell x doublewell: the full 3x3 product
	{
		ts, err := Get("doublewell", 2)
		assert.NoError(t, err)
		pts := ts.ReferencePoints()
		assert.Len(t, pts, 9)

		byLabel := make(map[string]int)
		for _, p := range pts {
			byLabel[p.TypeLabel]++
		}
		assert.Equal(t, 4, byLabel["min+min"])
		assert.Equal(t, 2, byLabel["min+max"])
		assert.Equal(t, 2, byLabel["max+min"])
		assert.Equal(t, 1, byLabel["max+max"])

		// axis 0 varies slowest, each axis ascending in X
		assert.Equal(t, []float64{-0.5, -0.5}, pts[0].Location)
		assert.Equal(t, []float64{-0.5, 0}, pts[1].Location)
		assert.Equal(t, []float64{0.5, 0.5}, pts[8].Location)
	}
	// cosine endpoints are interior to [-1,1]
	{
		ts, err := Get("cosine", 1)
		assert.NoError(t, err)
		set, err := ts.ReferenceSet()
		assert.NoError(t, err)
		assert.Equal(t, 1, set.Dims())
		for _, p := range set.Points {
			assert.Less(t, math.Abs(p.Location[0]), 1.)
		}
	}
}
