package objectives

import (
	"strings"

	"github.com/notargets/gocrit/reference"
)

// TensorSum is the separable objective sum g_i(x_i). Its critical points are
// the cartesian products of the factors' 1D stationary points, and each
// point's type label joins the 1D types axis by axis ("min+max", ...), which
// for a sum is also its exact curvature signature.
type TensorSum struct {
	Name    string
	Factors []Factor
}

func NewTensorSum(factors ...Factor) (ts *TensorSum) {
	names := make([]string, len(factors))
	for i, fac := range factors {
		names[i] = fac.Name
	}
	ts = &TensorSum{
		Name:    strings.Join(names, "+"),
		Factors: factors,
	}
	return
}

func (ts *TensorSum) Dims() int {
	return len(ts.Factors)
}

// Func returns the objective as a black-box evaluation.
func (ts *TensorSum) Func() Func {
	factors := ts.Factors
	return func(x []float64) (f float64) {
		for i, fac := range factors {
			f += fac.F(x[i])
		}
		return
	}
}

// ReferencePoints enumerates the full critical-point set, axis 0 varying
// slowest, each factor's stationary points in catalogue order.
func (ts *TensorSum) ReferencePoints() (pts []reference.Point) {
	var (
		n     = ts.Dims()
		total = 1
	)
	for _, fac := range ts.Factors {
		total *= len(fac.Stationary)
	}
	pts = make([]reference.Point, 0, total)
	for k := 0; k < total; k++ {
		var (
			loc   = make([]float64, n)
			types = make([]string, n)
			rem   = k
		)
		for i := n - 1; i >= 0; i-- {
			st := ts.Factors[i].Stationary
			loc[i] = st[rem%len(st)].X
			types[i] = st[rem%len(st)].Type
			rem /= len(st)
		}
		pts = append(pts, reference.Point{
			Location:  loc,
			TypeLabel: strings.Join(types, "+"),
		})
	}
	return
}

// ReferenceSet wraps ReferencePoints as a validated set.
func (ts *TensorSum) ReferenceSet() (s *reference.Set, err error) {
	s, err = reference.NewSet(ts.ReferencePoints())
	return
}
