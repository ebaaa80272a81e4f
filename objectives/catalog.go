package objectives

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Stationary1D is one known stationary point of a 1D factor.
type Stationary1D struct {
	X    float64
	Type string // "min" or "max"
}

// Factor is a 1D objective factor with its interior stationary points known
// in closed form, listed in ascending X order.
type Factor struct {
	Name       string
	F          func(x float64) float64
	Stationary []Stationary1D
}

// catalog holds the named 1D factors. Locations are chosen off-center so the
// owning region after one subdivision level is unambiguous.
var catalog = map[string]Factor{
	"well": {
		Name: "well",
		F:    func(x float64) float64 { return (x - 0.5) * (x - 0.5) },
		Stationary: []Stationary1D{
			{X: 0.5, Type: "min"},
		},
	},
	"cap": {
		Name: "cap",
		F:    func(x float64) float64 { return -(x + 0.5) * (x + 0.5) },
		Stationary: []Stationary1D{
			{X: -0.5, Type: "max"},
		},
	},
	"doublewell": {
		Name: "doublewell",
		F: func(x float64) float64 {
			q := x*x - 0.25
			return q * q
		},
		Stationary: []Stationary1D{
			{X: -0.5, Type: "min"},
			{X: 0, Type: "max"},
			{X: 0.5, Type: "min"},
		},
	},
	"cosine": {
		Name: "cosine",
		F:    func(x float64) float64 { return math.Cos(1.5 * math.Pi * x) },
		Stationary: []Stationary1D{
			{X: -2. / 3., Type: "min"},
			{X: 0, Type: "max"},
			{X: 2. / 3., Type: "min"},
		},
	},
}

// Names lists the catalogued factor names, sorted.
func Names() (names []string) {
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// Get resolves an objective name into a tensor-sum construction. A composite
// name like "well+cap" takes one factor per axis; a plain factor name is
// replicated across dims axes. dims may be zero for composite names, where
// the part count fixes the dimension.
func Get(name string, dims int) (ts *TensorSum, err error) {
	var factors []Factor
	if strings.Contains(name, "+") {
		parts := strings.Split(name, "+")
		if dims != 0 && dims != len(parts) {
			err = fmt.Errorf("objective %q spans %d axes, but dims is %d",
				name, len(parts), dims)
			return
		}
		for _, part := range parts {
			fac, ok := catalog[strings.TrimSpace(part)]
			if !ok {
				err = fmt.Errorf("unknown objective factor %q (have %v)",
					part, Names())
				return
			}
			factors = append(factors, fac)
		}
	} else {
		fac, ok := catalog[strings.TrimSpace(name)]
		if !ok {
			err = fmt.Errorf("unknown objective %q (have %v)", name, Names())
			return
		}
		if dims < 1 {
			err = fmt.Errorf("objective %q needs dims >= 1, got %d", name, dims)
			return
		}
		for i := 0; i < dims; i++ {
			factors = append(factors, fac)
		}
	}
	ts = NewTensorSum(factors...)
	return
}
