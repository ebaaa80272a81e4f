package critical

import (
	"fmt"
	"math"

	"github.com/notargets/gocrit/objectives"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"
)

// Curvature returns the ascending Hessian eigenvalues of the objective at x,
// with the Hessian taken by finite differences.
func Curvature(x []float64, f objectives.Func) (eig []float64, err error) {
	var (
		n = len(x)
		H = mat.NewSymDense(n, nil)
	)
	fd.Hessian(H, f, x, nil)
	var es mat.EigenSym
	if ok := es.Factorize(H, false); !ok {
		err = fmt.Errorf("hessian eigendecomposition failed at %v", x)
		return
	}
	eig = es.Values(nil)
	for _, ev := range eig {
		if math.IsNaN(ev) || math.IsInf(ev, 0) {
			eig = nil
			err = fmt.Errorf("hessian eigenvalues not finite at %v", x)
			return
		}
	}
	return
}

// Classify maps Hessian eigenvalues to a curvature type: positive definite is
// a minimum, negative definite a maximum, mixed signs a saddle. Any
// eigenvalue within tol of zero (scaled by the spectral radius) leaves the
// point Unclassified.
func Classify(eig []float64, tol float64) (c Classification) {
	if len(eig) == 0 {
		return Unclassified
	}
	var scale float64
	for _, ev := range eig {
		if a := math.Abs(ev); a > scale {
			scale = a
		}
	}
	cut := tol * math.Max(1, scale)
	var pos, neg int
	for _, ev := range eig {
		switch {
		case ev > cut:
			pos++
		case ev < -cut:
			neg++
		default:
			return Unclassified
		}
	}
	switch {
	case pos == len(eig):
		c = Minimum
	case neg == len(eig):
		c = Maximum
	default:
		c = Saddle
	}
	return
}
