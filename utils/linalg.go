package utils

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// NewSymTriDiagonal builds a symmetric tridiagonal matrix from the main
// diagonal d0 and the first super-diagonal d1, len(d1) == len(d0)-1. The
// banded storage satisfies mat.Symmetric, which is what EigenSym wants.
func NewSymTriDiagonal(d0, d1 []float64) (JJ *mat.SymBandDense) {
	var (
		n    = len(d0)
		data = make([]float64, 2*n)
	)
	if len(d1) != n-1 {
		panic("super-diagonal must be one element shorter than the diagonal")
	}
	for i := 0; i < n; i++ {
		data[2*i] = d0[i]
		if i < n-1 {
			data[2*i+1] = d1[i]
		}
	}
	JJ = mat.NewSymBandDense(n, 1, data)
	return
}

// ConditionNumber estimates the 2-norm condition number of A as the ratio of
// its largest to smallest singular values via a thin SVD. A zero smallest
// singular value or a failed factorization yields +Inf.
func ConditionNumber(A *mat.Dense) float64 {
	var svd mat.SVD
	ok := svd.Factorize(A, mat.SVDThin)
	if !ok {
		return math.Inf(1)
	}
	singularValues := svd.Values(nil)
	if len(singularValues) == 0 {
		return math.Inf(1)
	}
	sigmaMax := singularValues[0]
	sigmaMin := singularValues[len(singularValues)-1]
	if sigmaMin <= 0 {
		return math.Inf(1)
	}
	return sigmaMax / sigmaMin
}
