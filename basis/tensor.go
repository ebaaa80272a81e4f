package basis

import (
	"github.com/notargets/gocrit/geometry"
	"gonum.org/v1/gonum/mat"
)

// Tensor is the tensor-product polynomial basis of per-axis degree P over a
// region. Evaluation maps the region affinely onto the reference cube
// [-1,1]^n, so derivative formulas carry a 1/h factor per differentiated
// axis.
type Tensor struct {
	Kind BasisKind
	P    int
	Reg  geometry.Region
	np   int
}

func NewTensor(kind BasisKind, p int, reg geometry.Region) (tb *Tensor) {
	if p < 0 {
		panic("basis degree must be non-negative")
	}
	np := 1
	for i := 0; i < reg.Dims(); i++ {
		np *= p + 1
	}
	tb = &Tensor{Kind: kind, P: p, Reg: reg, np: np}
	return
}

// Np is the basis dimension (P+1)^n.
func (tb *Tensor) Np() int {
	return tb.np
}

// Degrees decodes basis index j into per-axis 1D degrees, axis 0 most
// significant, fixing the enumeration order.
func (tb *Tensor) Degrees(j int) (deg []int) {
	n := tb.Reg.Dims()
	deg = make([]int, n)
	for i := n - 1; i >= 0; i-- {
		deg[i] = j % (tb.P + 1)
		j /= tb.P + 1
	}
	return
}

// axisTables evaluates the 1D family with derivatives along every axis at x,
// in reference coordinates.
func (tb *Tensor) axisTables(x []float64) (vals, d1, d2 [][]float64) {
	n := tb.Reg.Dims()
	if len(x) != n {
		panic("point dimension does not match basis")
	}
	vals = make([][]float64, n)
	d1 = make([][]float64, n)
	d2 = make([][]float64, n)
	for i := 0; i < n; i++ {
		xi := (x[i] - tb.Reg.Center[i]) / tb.Reg.Range[i]
		vals[i], d1[i], d2[i] = tb.Kind.Eval1DUpTo(xi, tb.P)
	}
	return
}

// Vandermonde assembles the generalized Vandermonde matrix. Row k holds every
// basis function evaluated at pts[k].
func (tb *Tensor) Vandermonde(pts [][]float64) (V *mat.Dense) {
	V = mat.NewDense(len(pts), tb.np, nil)
	for k, pt := range pts {
		vals, _, _ := tb.axisTables(pt)
		for j := 0; j < tb.np; j++ {
			var (
				deg  = tb.Degrees(j)
				prod = 1.
			)
			for i, d := range deg {
				prod *= vals[i][d]
			}
			V.Set(k, j, prod)
		}
	}
	return
}

// Eval computes the fitted polynomial value at x for coefficient vector
// coeffs (length Np).
func (tb *Tensor) Eval(coeffs, x []float64) (f float64) {
	if len(coeffs) != tb.np {
		panic("coefficient count does not match basis dimension")
	}
	vals, _, _ := tb.axisTables(x)
	for j, c := range coeffs {
		prod := c
		for i, d := range tb.Degrees(j) {
			prod *= vals[i][d]
		}
		f += prod
	}
	return
}

// Gradient computes the exact gradient of the fitted polynomial at x.
func (tb *Tensor) Gradient(coeffs, x []float64) (g []float64) {
	if len(coeffs) != tb.np {
		panic("coefficient count does not match basis dimension")
	}
	var (
		n            = tb.Reg.Dims()
		vals, d1v, _ = tb.axisTables(x)
	)
	g = make([]float64, n)
	for j, c := range coeffs {
		deg := tb.Degrees(j)
		for a := 0; a < n; a++ {
			term := c * d1v[a][deg[a]] / tb.Reg.Range[a]
			for i, d := range deg {
				if i != a {
					term *= vals[i][d]
				}
			}
			g[a] += term
		}
	}
	return
}

// Hessian computes the exact Hessian of the fitted polynomial at x.
func (tb *Tensor) Hessian(coeffs, x []float64) (H *mat.SymDense) {
	if len(coeffs) != tb.np {
		panic("coefficient count does not match basis dimension")
	}
	var (
		n              = tb.Reg.Dims()
		vals, d1v, d2v = tb.axisTables(x)
	)
	H = mat.NewSymDense(n, nil)
	for a := 0; a < n; a++ {
		for b := a; b < n; b++ {
			var sum float64
			for j, c := range coeffs {
				deg := tb.Degrees(j)
				var term float64
				if a == b {
					term = c * d2v[a][deg[a]] / (tb.Reg.Range[a] * tb.Reg.Range[a])
				} else {
					term = c * d1v[a][deg[a]] * d1v[b][deg[b]] /
						(tb.Reg.Range[a] * tb.Reg.Range[b])
				}
				for i, d := range deg {
					if i != a && i != b {
						term *= vals[i][d]
					}
				}
				sum += term
			}
			H.SetSym(a, b, sum)
		}
	}
	return
}

// SampleGrid builds the tensor product of m 1D Gauss nodes per axis, mapped
// into the region, axis 0 varying slowest.
func (tb *Tensor) SampleGrid(m int) (pts [][]float64) {
	var (
		n     = tb.Reg.Dims()
		nodes = tb.Kind.GaussNodes(m)
		total = 1
	)
	for i := 0; i < n; i++ {
		total *= m
	}
	pts = make([][]float64, total)
	for k := 0; k < total; k++ {
		var (
			pt  = make([]float64, n)
			rem = k
		)
		for i := n - 1; i >= 0; i-- {
			pt[i] = tb.Reg.Center[i] + tb.Reg.Range[i]*nodes[rem%m]
			rem /= m
		}
		pts[k] = pt
	}
	return
}
