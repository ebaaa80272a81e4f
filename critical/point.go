package critical

// Classification is the curvature type of a critical point.
type Classification uint8

const (
	Unclassified Classification = iota
	Minimum
	Maximum
	Saddle
)

func (c Classification) String() (label string) {
	switch c {
	case Minimum:
		label = "min"
	case Maximum:
		label = "max"
	case Saddle:
		label = "saddle"
	default:
		label = "unclassified"
	}
	return
}

// CriticalPoint is a refined and classified stationary-point candidate.
// RawLocation preserves the pre-refinement candidate so recovery statistics
// can distinguish points captured by the polynomial fit alone from points
// captured only after local refinement. A point that exhausted its iteration
// cap is retained with Converged=false, never silently dropped.
type CriticalPoint struct {
	Location       []float64
	RawLocation    []float64
	FunctionValue  float64
	Classification Classification
	Iterations     int
	Converged      bool
	RegionLabel    string
}
