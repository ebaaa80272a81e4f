package utils

import (
	"math"
)

func ConstArray(N int, val float64) (v []float64) {
	v = make([]float64, N)
	for i := range v {
		v[i] = val
	}
	return
}

func POW(x float64, pp int) (y float64) {
	var (
		p       = pp
		flipped bool
	)
	if pp > 8 || pp < -8 {
		goto MATHPOW
	}

	if p < 0 {
		p = -pp
		flipped = true
	}
	switch p {
	case 0:
		y = 1
	case 1:
		y = x
	case 2:
		y = x * x
	case 3:
		y = x * x * x
	case 4:
		y = x * x
		y = y * y
	case 5:
		y = x * x
		y = y * y * x
	case 6:
		y = x * x
		y = y * y * y
	case 7:
		y = x * x
		y = y * y * y * x
	case 8:
		y = x * x
		y = y * y * y * y
	}
	if flipped {
		y = 1. / y
	}
	return

MATHPOW:
	y = math.Pow(x, float64(p))
	return
}

// EuclideanDistance returns the L2 distance between two points of equal
// dimension. Mismatched lengths are a programming error upstream.
func EuclideanDistance(a, b []float64) (d float64) {
	if len(a) != len(b) {
		panic("mismatched point dimensions")
	}
	for i := range a {
		dx := a[i] - b[i]
		d += dx * dx
	}
	d = math.Sqrt(d)
	return
}

func L2Norm(v []float64) (n float64) {
	for _, val := range v {
		n += val * val
	}
	n = math.Sqrt(n)
	return
}

// RelativeL2 computes ||approx-exact|| / ||exact|| with an absolute fallback:
// when ||exact|| is below eps the raw residual norm is returned instead, so a
// function that is numerically zero over the sample set does not blow up the
// quotient.
func RelativeL2(exact, approx []float64, eps float64) (norm float64) {
	var (
		num, den float64
	)
	if len(exact) != len(approx) {
		panic("mismatched sample lengths")
	}
	for i := range exact {
		d := approx[i] - exact[i]
		num += d * d
		den += exact[i] * exact[i]
	}
	num, den = math.Sqrt(num), math.Sqrt(den)
	if den < eps {
		return num
	}
	norm = num / den
	return
}
