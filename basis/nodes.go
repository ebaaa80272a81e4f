package basis

import (
	"math"

	"github.com/notargets/gocrit/utils"
	"gonum.org/v1/gonum/mat"
)

// GaussNodes returns the m roots of the degree-m basis polynomial on [-1,1]
// in ascending order. Chebyshev–Gauss nodes have a closed form; Legendre–
// Gauss nodes are the eigenvalues of the Golub–Welsch symmetric tridiagonal
// recurrence matrix.
func (bk BasisKind) GaussNodes(m int) (x []float64) {
	if m <= 0 {
		return
	}
	switch bk {
	case Chebyshev:
		x = make([]float64, m)
		for i := 0; i < m; i++ {
			x[i] = -math.Cos(math.Pi * float64(2*i+1) / float64(2*m))
		}
	case Legendre:
		x = legendreGauss(m)
	}
	return
}

func legendreGauss(m int) (x []float64) {
	var (
		d0 = make([]float64, m)
		d1 = make([]float64, m-1)
	)
	for j := 1; j < m; j++ {
		fj := float64(j)
		d1[j-1] = fj / math.Sqrt(4*fj*fj-1)
	}
	JJ := utils.NewSymTriDiagonal(d0, d1)
	var eig mat.EigenSym
	if ok := eig.Factorize(JJ, false); !ok {
		panic("gauss node eigendecomposition failed")
	}
	x = eig.Values(nil)
	return
}
