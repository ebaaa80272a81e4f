package approx

import (
	"fmt"

	"github.com/notargets/gocrit/geometry"
	"github.com/notargets/gocrit/objectives"
)

// Result is one polynomial fit of a region at a fixed degree: the fit
// quality, the conditioning of the solve, and the stationary points of the
// fitted polynomial as raw critical-point candidates.
type Result struct {
	Degree          int
	ErrorNorm       float64
	ConditionNumber float64
	RawCandidates   [][]float64
}

// Oracle fits an objective over a region at a requested degree. A fit whose
// linear system cannot be trusted fails with FitFailureError; the degree
// controller records such degrees as non-convergent and keeps escalating.
type Oracle interface {
	Fit(reg geometry.Region, degree int, f objectives.Func) (res Result, err error)
}

// FitFailureError reports a least-squares system that was singular or
// conditioned beyond the configured ceiling.
type FitFailureError struct {
	Degree          int
	ConditionNumber float64
	Reason          string
}

func (e *FitFailureError) Error() string {
	return fmt.Sprintf("degree %d fit failed: %s (condition number %.3e)",
		e.Degree, e.Reason, e.ConditionNumber)
}
