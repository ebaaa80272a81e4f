package approx

import (
	"math"

	"github.com/notargets/gocrit/basis"
	"github.com/notargets/gocrit/geometry"
	"github.com/notargets/gocrit/utils"
	"gonum.org/v1/gonum/mat"
)

// stationaryInflate widens the acceptance box around the region so that
// near-boundary stationary points survive extraction; the critical-point
// processor applies the exact containment filter afterwards.
const stationaryInflate = 1.05

// extractStationary runs damped Newton iteration on the fitted polynomial's
// exact gradient from every seed-grid point and returns the distinct
// converged roots. The polynomial's closed-form gradient and Hessian from the
// basis recurrences make the iteration cheap relative to objective
// evaluations.
func (ls *LeastSquares) extractStationary(tb *basis.Tensor,
	coeffs []float64) (cands [][]float64) {
	if tb.P == 0 {
		// a constant fit is stationary everywhere, nowhere isolated
		return
	}
	seedN := ls.SeedsPerAxis
	if tb.P+1 > seedN {
		// at least one seed per possible 1D gradient root
		seedN = tb.P + 1
	}
	var (
		n        = tb.Reg.Dims()
		seeds    = tb.SampleGrid(seedN)
		maxStep  float64
		mergeTol float64
	)
	for i := 0; i < n; i++ {
		if h := tb.Reg.Range[i]; h > maxStep {
			maxStep = h
		}
	}
	mergeTol = 2 * maxStep * 1.e-6

	for _, seed := range seeds {
		x := append([]float64{}, seed...)
		var converged bool
		for it := 0; it < ls.NewtonMax; it++ {
			g := tb.Gradient(coeffs, x)
			if utils.L2Norm(g) <= ls.GradTol {
				converged = true
				break
			}
			H := tb.Hessian(coeffs, x)
			rhs := mat.NewVecDense(n, nil)
			for a := range g {
				rhs.SetVec(a, -g[a])
			}
			var delta mat.VecDense
			if solveErr := delta.SolveVec(H, rhs); solveErr != nil {
				break
			}
			step := make([]float64, n)
			for a := 0; a < n; a++ {
				step[a] = delta.AtVec(a)
			}
			if sn := utils.L2Norm(step); sn > maxStep {
				for a := range step {
					step[a] *= maxStep / sn
				}
			}
			var strayed bool
			for a := 0; a < n; a++ {
				x[a] += step[a]
				if math.Abs(x[a]-tb.Reg.Center[a]) > 3*tb.Reg.Range[a] {
					strayed = true
				}
			}
			if strayed {
				break
			}
		}
		if !converged || !inflatedContains(tb.Reg, x) {
			continue
		}
		var dup bool
		for _, c := range cands {
			if utils.EuclideanDistance(c, x) < mergeTol {
				dup = true
				break
			}
		}
		if !dup {
			cands = append(cands, x)
		}
	}
	return
}

func inflatedContains(reg geometry.Region, x []float64) bool {
	for i, c := range reg.Center {
		if math.Abs(x[i]-c) > stationaryInflate*reg.Range[i] {
			return false
		}
	}
	return true
}
