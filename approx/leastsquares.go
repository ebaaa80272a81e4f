package approx

import (
	"math"

	"github.com/notargets/gocrit/basis"
	"github.com/notargets/gocrit/geometry"
	"github.com/notargets/gocrit/objectives"
	"github.com/notargets/gocrit/utils"
	"gonum.org/v1/gonum/mat"
)

// zeroNormEps switches the fit error norm from relative to absolute when the
// sampled function norm is this small.
const zeroNormEps = 1.e-12

// LeastSquares is the default Oracle: an unweighted tensor-product
// least-squares fit on an oversampled Gauss grid, with SVD conditioning
// checks and Newton extraction of the fitted polynomial's stationary points.
type LeastSquares struct {
	Basis        basis.BasisKind
	Oversample   int     // extra 1D sample nodes beyond degree+1
	CondCeiling  float64 // fits conditioned above this fail
	SeedsPerAxis int     // Newton seed grid for stationary extraction
	NewtonMax    int     // iteration cap per seed
	GradTol      float64 // stationarity threshold on the fitted gradient
}

func NewLeastSquares(bk basis.BasisKind) (ls *LeastSquares) {
	ls = &LeastSquares{
		Basis:        bk,
		Oversample:   2,
		CondCeiling:  1.e+10,
		SeedsPerAxis: 4,
		NewtonMax:    50,
		GradTol:      1.e-8,
	}
	return
}

func (ls *LeastSquares) Fit(reg geometry.Region, degree int,
	f objectives.Func) (res Result, err error) {
	var (
		tb  = basis.NewTensor(ls.Basis, degree, reg)
		pts = tb.SampleGrid(degree + 1 + ls.Oversample)
	)
	fvals := make([]float64, len(pts))
	for k, pt := range pts {
		fvals[k] = f(pt)
	}

	V := tb.Vandermonde(pts)
	cond := utils.ConditionNumber(V)
	if math.IsInf(cond, 1) || cond > ls.CondCeiling {
		err = &FitFailureError{
			Degree:          degree,
			ConditionNumber: cond,
			Reason:          "vandermonde condition number above ceiling",
		}
		return
	}

	var C mat.Dense
	b := mat.NewDense(len(pts), 1, fvals)
	if solveErr := C.Solve(V, b); solveErr != nil {
		err = &FitFailureError{
			Degree:          degree,
			ConditionNumber: cond,
			Reason:          "least-squares solve failed",
		}
		return
	}
	coeffs := make([]float64, tb.Np())
	for j := range coeffs {
		coeffs[j] = C.At(j, 0)
	}

	// Fit quality over the sample grid
	approxVals := make([]float64, len(pts))
	for k, pt := range pts {
		approxVals[k] = tb.Eval(coeffs, pt)
	}

	res = Result{
		Degree:          degree,
		ErrorNorm:       utils.RelativeL2(fvals, approxVals, zeroNormEps),
		ConditionNumber: cond,
		RawCandidates:   ls.extractStationary(tb, coeffs),
	}
	return
}
