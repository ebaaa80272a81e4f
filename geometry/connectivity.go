package geometry

import (
	"math"
	"strconv"

	"github.com/james-bowman/sparse"
)

// Adjacency records which regions of a subdivision share at least one box
// corner, built from the sparse region-to-corner incidence matrix: the product
// R*Rᵀ counts shared corners per region pair, so any off-diagonal nonzero is a
// neighbor (face, edge or corner contact).
type Adjacency struct {
	Dims      int
	Neighbors [][]int
}

// BuildAdjacency computes the corner-sharing neighbor table for a region set
// produced by Subdivide. Corner identity is established on the integer
// bisection grid, so float roundoff in the center arithmetic cannot split a
// shared corner in two.
func BuildAdjacency(regions []Region) (adj *Adjacency) {
	if len(regions) == 0 {
		return &Adjacency{}
	}
	var (
		n     = regions[0].Dims()
		nc    = 1 << uint(n)
		kMax  int
		lo    = make([]float64, n)
		width = make([]float64, n)
	)
	for i := 0; i < n; i++ {
		lo[i] = math.Inf(1)
		width[i] = math.Inf(-1)
	}
	for _, reg := range regions {
		if reg.Dims() != n {
			panic("mixed region dimensions in adjacency build")
		}
		if k := len(reg.Label) / n; k > kMax {
			kMax = k
		}
		for i := 0; i < n; i++ {
			if l := reg.Center[i] - reg.Range[i]; l < lo[i] {
				lo[i] = l
			}
			if h := reg.Center[i] + reg.Range[i]; h > width[i] {
				width[i] = h
			}
		}
	}
	for i := 0; i < n; i++ {
		width[i] -= lo[i]
	}

	// Pass 1: assign ids to unique grid corners
	var (
		scale   = float64(int(1) << uint(kMax))
		ids     = make(map[string]int)
		corners = make([][]int, len(regions)) // per region: corner ids
	)
	for ri, reg := range regions {
		corners[ri] = make([]int, nc)
		for ci, pt := range reg.Corners() {
			key := make([]byte, 0, 4*n)
			for i := 0; i < n; i++ {
				m := int(math.Round((pt[i] - lo[i]) / width[i] * scale))
				key = strconv.AppendInt(key, int64(m), 10)
				key = append(key, ',')
			}
			id, ok := ids[string(key)]
			if !ok {
				id = len(ids)
				ids[string(key)] = id
			}
			corners[ri][ci] = id
		}
	}

	// Pass 2: incidence matrix and its self-product
	RtoC := sparse.NewDOK(len(regions), len(ids))
	for ri := range regions {
		for _, id := range corners[ri] {
			RtoC.Set(ri, id, 1)
		}
	}
	shared := sparse.NewCSR(len(regions), len(regions), nil, nil, nil)
	R := RtoC.ToCSR()
	shared.Mul(R, R.T())

	adj = &Adjacency{
		Dims:      n,
		Neighbors: make([][]int, len(regions)),
	}
	for i := range regions {
		for j := range regions {
			if i != j && shared.At(i, j) > 0 {
				adj.Neighbors[i] = append(adj.Neighbors[i], j)
			}
		}
	}
	return
}

func (adj *Adjacency) NeighborCount(i int) int {
	return len(adj.Neighbors[i])
}

// Interior reports whether region i has the full complement of 3^n-1
// corner-sharing neighbors, i.e. touches no face of the root domain.
func (adj *Adjacency) Interior(i int) bool {
	full := 1
	for d := 0; d < adj.Dims; d++ {
		full *= 3
	}
	return len(adj.Neighbors[i]) == full-1
}
