package geometry

import "fmt"

// InvalidLevelsError reports a negative subdivision level count.
type InvalidLevelsError struct {
	Levels int
}

func (e *InvalidLevelsError) Error() string {
	return fmt.Sprintf("subdivision levels must be non-negative, got %d", e.Levels)
}

// Subdivide recursively bisects every axis of the root region at its midpoint,
// levels times, producing exactly 2^(n*levels) equal sub-regions. Each child's
// label extends its parent's by one bit per axis, axis 0 first, 0 for the
// lower half and 1 for the upper half, so the returned slice is ordered by
// label and the label set is identical across runs.
func Subdivide(root Region, levels int) (regions []Region, err error) {
	if levels < 0 {
		err = &InvalidLevelsError{Levels: levels}
		return
	}
	regions = []Region{root}
	for l := 0; l < levels; l++ {
		next := make([]Region, 0, len(regions)*(1<<uint(root.Dims())))
		for _, parent := range regions {
			next = append(next, bisect(parent)...)
		}
		regions = next
	}
	return
}

// bisect splits one region into its 2^n children, ordered by label suffix.
func bisect(parent Region) (children []Region) {
	var (
		n  = parent.Dims()
		nc = 1 << uint(n)
	)
	children = make([]Region, nc)
	for c := 0; c < nc; c++ {
		var (
			center = make([]float64, n)
			rng    = make([]float64, n)
			bits   = make([]byte, n)
		)
		for i := 0; i < n; i++ {
			rng[i] = 0.5 * parent.Range[i]
			if c>>(uint(n-1-i))&1 == 0 {
				center[i] = parent.Center[i] - rng[i]
				bits[i] = '0'
			} else {
				center[i] = parent.Center[i] + rng[i]
				bits[i] = '1'
			}
		}
		children[c] = Region{
			Label:  parent.Label + string(bits),
			Center: center,
			Range:  rng,
		}
	}
	return
}
