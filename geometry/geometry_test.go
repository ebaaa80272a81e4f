package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestSubdivide(t *testing.T) {
	root := NewRegion([]float64{0, 0}, []float64{1, 1})
	// One level of a 2D box: four quadrants in label order
	{
		regions, err := Subdivide(root, 1)
		assert.NoError(t, err)
		assert.Len(t, regions, 4)
		labels := make([]string, len(regions))
		for i, reg := range regions {
			labels[i] = reg.Label
		}
		assert.Equal(t, []string{"00", "01", "10", "11"}, labels)
		// first label bit is axis 0: "01" is the lower-x, upper-y quadrant
		assert.Equal(t, []float64{-0.5, 0.5}, regions[1].Center)
		assert.Equal(t, []float64{0.5, 0.5}, regions[1].Range)
		assert.Equal(t, "r01", regions[1].LabelString())
	}
	// Zero levels returns the root itself
	{
		regions, err := Subdivide(root, 0)
		assert.NoError(t, err)
		assert.Len(t, regions, 1)
		assert.Equal(t, "", regions[0].Label)
		assert.Equal(t, "r", regions[0].LabelString())
	}
	// Negative levels fail with the typed error
	{
		_, err := Subdivide(root, -1)
		var ile *InvalidLevelsError
		assert.True(t, errors.As(err, &ile))
		assert.Equal(t, -1, ile.Levels)
	}
}

func TestSubdivisionCompleteness(t *testing.T) {
	// Anisotropic box off the origin, two levels: children tile the parent
	root := NewRegion([]float64{1, -2}, []float64{0.3, 2})
	regions, err := Subdivide(root, 2)
	assert.NoError(t, err)
	assert.Len(t, regions, 16)

	var vol float64
	seen := make(map[string]bool)
	for _, reg := range regions {
		vol += reg.Volume()
		assert.False(t, seen[reg.Label])
		seen[reg.Label] = true
		for _, pt := range reg.Corners() {
			assert.True(t, root.Contains(pt))
		}
	}
	assert.InDelta(t, root.Volume(), vol, 1.e-12)

	// Sibling interiors are disjoint: every pair is separated on some axis
	for i := 0; i < len(regions); i++ {
		for j := i + 1; j < len(regions); j++ {
			var apart bool
			for d := 0; d < root.Dims(); d++ {
				gap := math.Abs(regions[i].Center[d] - regions[j].Center[d])
				if gap >= regions[i].Range[d]+regions[j].Range[d]-NodeTol {
					apart = true
				}
			}
			assert.True(t, apart)
		}
	}
}

func TestSubdivideIdempotence(t *testing.T) {
	root := NewRegion([]float64{0.5, 0.5, 0.5}, []float64{0.5, 0.5, 0.5})
	a, err := Subdivide(root, 2)
	assert.NoError(t, err)
	b, err := Subdivide(root, 2)
	assert.NoError(t, err)
	assert.Len(t, a, 64)
	assert.Empty(t, cmp.Diff(a, b))
}

func TestContains(t *testing.T) {
	root := NewRegion([]float64{0, 0}, []float64{1, 1})
	regions, _ := Subdivide(root, 1)
	// A shared corner belongs to all four quadrants
	for _, reg := range regions {
		assert.True(t, reg.Contains([]float64{0, 0}))
	}
	// A face point belongs to both regions across the face
	p := []float64{0, 0.25}
	assert.True(t, regions[1].Contains(p)) // "01"
	assert.True(t, regions[3].Contains(p)) // "11"
	assert.False(t, regions[0].Contains(p))
	assert.False(t, regions[2].Contains(p))
	// Outside the slack is outside
	assert.False(t, regions[0].Contains([]float64{-1.01, 0}))
	assert.True(t, regions[0].Contains([]float64{-1, -1}))
}

func TestAdjacency(t *testing.T) {
	// 1D, two levels: a chain of four intervals
	{
		root := NewRegion([]float64{0}, []float64{1})
		regions, _ := Subdivide(root, 2)
		adj := BuildAdjacency(regions)
		assert.Equal(t, []int{1, 2, 2, 1}, []int{
			adj.NeighborCount(0), adj.NeighborCount(1),
			adj.NeighborCount(2), adj.NeighborCount(3),
		})
		assert.False(t, adj.Interior(0))
		assert.True(t, adj.Interior(1))
	}
	// 2D, one level: every quadrant touches the other three, all boundary
	{
		root := NewRegion([]float64{0, 0}, []float64{1, 1})
		regions, _ := Subdivide(root, 1)
		adj := BuildAdjacency(regions)
		for i := range regions {
			assert.Equal(t, 3, adj.NeighborCount(i))
			assert.False(t, adj.Interior(i))
		}
	}
	// 2D, two levels on an anisotropic box: a 4x4 grid with four interior
	// cells of eight neighbors each
	{
		root := NewRegion([]float64{1, -2}, []float64{0.3, 2})
		regions, _ := Subdivide(root, 2)
		adj := BuildAdjacency(regions)
		var interior int
		for i := range regions {
			if adj.Interior(i) {
				interior++
				assert.Equal(t, 8, adj.NeighborCount(i))
			}
		}
		assert.Equal(t, 4, interior)
	}
}
