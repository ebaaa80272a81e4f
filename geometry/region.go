package geometry

import "math"

// NodeTol is the slack used for point-in-region containment tests. Points
// within NodeTol of a face are inside, so subdivision boundaries belong to
// every region they touch.
const NodeTol = 1.e-10

// Region is an axis-aligned box described by a center point and a half-width
// per axis. Regions are produced by Subdivide and are immutable afterwards.
// The Label is the concatenated bisection bit string, one bit per axis per
// subdivision level, empty for the root domain.
type Region struct {
	Label  string
	Center []float64
	Range  []float64
}

func NewRegion(center, rng []float64) (reg Region) {
	if len(center) != len(rng) {
		panic("center and range dimensions differ")
	}
	for _, h := range rng {
		if h <= 0 {
			panic("region half-widths must be positive")
		}
	}
	reg = Region{
		Center: append([]float64{}, center...),
		Range:  append([]float64{}, rng...),
	}
	return
}

func (reg Region) Dims() int {
	return len(reg.Center)
}

// Contains reports whether x lies within the closed box, with NodeTol slack
// on every face.
func (reg Region) Contains(x []float64) bool {
	if len(x) != len(reg.Center) {
		panic("point dimension does not match region")
	}
	for i, c := range reg.Center {
		if math.Abs(x[i]-c) > reg.Range[i]+NodeTol {
			return false
		}
	}
	return true
}

// LabelString renders the label for reports: "r" for the root domain,
// "r"+bits for subdivided regions.
func (reg Region) LabelString() string {
	return "r" + reg.Label
}

// Bounds returns the closed interval covered by the region along axis i.
func (reg Region) Bounds(i int) (lo, hi float64) {
	lo, hi = reg.Center[i]-reg.Range[i], reg.Center[i]+reg.Range[i]
	return
}

// Corners enumerates the 2^n box corners in a fixed order, axis 0 varying
// slowest, lower bound before upper.
func (reg Region) Corners() (pts [][]float64) {
	var (
		n  = reg.Dims()
		nc = 1 << uint(n)
	)
	pts = make([][]float64, nc)
	for c := 0; c < nc; c++ {
		pt := make([]float64, n)
		for i := 0; i < n; i++ {
			if c>>(uint(n-1-i))&1 == 0 {
				pt[i] = reg.Center[i] - reg.Range[i]
			} else {
				pt[i] = reg.Center[i] + reg.Range[i]
			}
		}
		pts[c] = pt
	}
	return
}

func (reg Region) Volume() (vol float64) {
	vol = 1
	for _, h := range reg.Range {
		vol *= 2 * h
	}
	return
}
