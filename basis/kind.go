package basis

import (
	"fmt"
	"strings"
)

// BasisKind selects the 1D orthogonal polynomial family used to build the
// tensor-product approximation basis.
type BasisKind uint8

const (
	Chebyshev BasisKind = iota
	Legendre
)

func NewBasisKind(label string) (bk BasisKind) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "chebyshev", "cheb":
		bk = Chebyshev
	case "legendre", "leg":
		bk = Legendre
	default:
		panic(fmt.Errorf("unknown basis kind %q", label))
	}
	return
}

func (bk BasisKind) String() (label string) {
	switch bk {
	case Chebyshev:
		label = "chebyshev"
	case Legendre:
		label = "legendre"
	}
	return
}

// Eval1DUpTo evaluates the basis polynomials of degree 0..p at x in [-1,1],
// returning value, first and second derivative per degree. Both families obey
// three-term recurrences, differentiated here term by term:
//
//	T_j = 2x T_{j-1} - T_{j-2}
//	j P_j = (2j-1) x P_{j-1} - (j-1) P_{j-2}
func (bk BasisKind) Eval1DUpTo(x float64, p int) (vals, d1, d2 []float64) {
	vals = make([]float64, p+1)
	d1 = make([]float64, p+1)
	d2 = make([]float64, p+1)
	vals[0] = 1
	if p == 0 {
		return
	}
	vals[1], d1[1] = x, 1
	for j := 2; j <= p; j++ {
		switch bk {
		case Chebyshev:
			vals[j] = 2*x*vals[j-1] - vals[j-2]
			d1[j] = 2*vals[j-1] + 2*x*d1[j-1] - d1[j-2]
			d2[j] = 4*d1[j-1] + 2*x*d2[j-1] - d2[j-2]
		case Legendre:
			var (
				a = float64(2*j-1) / float64(j)
				b = float64(j-1) / float64(j)
			)
			vals[j] = a*x*vals[j-1] - b*vals[j-2]
			d1[j] = a*(vals[j-1]+x*d1[j-1]) - b*d1[j-2]
			d2[j] = a*(2*d1[j-1]+x*d2[j-1]) - b*d2[j-2]
		}
	}
	return
}

// Eval1D returns the degree-j basis polynomial with derivatives at x.
func (bk BasisKind) Eval1D(x float64, j int) (p, dp, d2p float64) {
	vals, d1, d2 := bk.Eval1DUpTo(x, j)
	p, dp, d2p = vals[j], d1[j], d2[j]
	return
}
