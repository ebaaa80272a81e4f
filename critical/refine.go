package critical

import (
	"math"

	"github.com/notargets/gocrit/objectives"
	"github.com/notargets/gocrit/utils"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
)

// Refinement is the outcome of one local refinement from a raw candidate.
type Refinement struct {
	Location   []float64
	Converged  bool
	Iterations int
}

// Refiner polishes a raw candidate toward a stationary point of the
// objective. Implementations must return the seed unchanged rather than fail
// when they cannot improve it.
type Refiner interface {
	Refine(seed []float64, f objectives.Func) (ref Refinement)
}

// NewtonRefiner solves grad f = 0 by damped Newton iteration with
// finite-difference derivatives. Unlike a descent method it converges to
// saddles and maxima as readily as to minima.
type NewtonRefiner struct {
	MaxIterations int
	GradTol       float64
	MaxStep       float64
}

func NewNewtonRefiner() *NewtonRefiner {
	return &NewtonRefiner{
		MaxIterations: 30,
		// central differences keep the gradient noise floor near 1e-10 for
		// O(1) objectives, well under this threshold
		GradTol: 1.e-7,
		MaxStep: 0.5,
	}
}

func (nr *NewtonRefiner) Refine(seed []float64, f objectives.Func) (ref Refinement) {
	var (
		n   = len(seed)
		x   = append([]float64{}, seed...)
		g   = make([]float64, n)
		H   = mat.NewSymDense(n, nil)
		fds = &fd.Settings{Formula: fd.Central}
	)
	for it := 0; it < nr.MaxIterations; it++ {
		fd.Gradient(g, f, x, fds)
		if utils.L2Norm(g) <= nr.GradTol {
			ref = Refinement{Location: x, Converged: true, Iterations: it}
			return
		}
		fd.Hessian(H, f, x, nil)
		rhs := mat.NewVecDense(n, nil)
		for a := 0; a < n; a++ {
			rhs.SetVec(a, -g[a])
		}
		var delta mat.VecDense
		if err := delta.SolveVec(H, rhs); err != nil {
			// singular curvature, hold position
			ref = Refinement{Location: x, Converged: false, Iterations: it}
			return
		}
		step := make([]float64, n)
		for a := 0; a < n; a++ {
			step[a] = delta.AtVec(a)
		}
		if sn := utils.L2Norm(step); sn > nr.MaxStep {
			for a := range step {
				step[a] *= nr.MaxStep / sn
			}
		}
		for a := 0; a < n; a++ {
			x[a] += step[a]
		}
	}
	fd.Gradient(g, f, x, fds)
	ref = Refinement{
		Location:   x,
		Converged:  utils.L2Norm(g) <= nr.GradTol,
		Iterations: nr.MaxIterations,
	}
	return
}

// DescentRefiner minimizes the squared gradient norm of the objective with
// gonum's optimizer, so stationary points of every curvature type are fixed
// points of the search. Optimizer failures fall back to the seed.
type DescentRefiner struct {
	MaxIterations int
	GradTol       float64
}

func NewDescentRefiner() *DescentRefiner {
	return &DescentRefiner{
		MaxIterations: 1000,
		GradTol:       1.e-6,
	}
}

func (dr *DescentRefiner) Refine(seed []float64, f objectives.Func) (ref Refinement) {
	var (
		n   = len(seed)
		fds = &fd.Settings{Formula: fd.Central}
	)
	gradNormSq := func(x []float64) float64 {
		g := make([]float64, n)
		fd.Gradient(g, f, x, fds)
		var s float64
		for _, gi := range g {
			s += gi * gi
		}
		return s
	}
	problem := optimize.Problem{
		Func: gradNormSq,
		Grad: func(grad, x []float64) {
			fd.Gradient(grad, gradNormSq, x, fds)
		},
	}
	settings := optimize.Settings{
		MajorIterations:   dr.MaxIterations,
		GradientThreshold: dr.GradTol,
	}
	initial := append([]float64{}, seed...)
	result, err := optimize.Minimize(problem, initial, &settings, nil)
	if err != nil || result == nil {
		ref = Refinement{Location: initial, Converged: false, Iterations: 0}
		return
	}
	ref = Refinement{
		Location:   result.X,
		Converged:  math.Sqrt(gradNormSq(result.X)) <= dr.GradTol,
		Iterations: result.Stats.MajorIterations,
	}
	return
}
