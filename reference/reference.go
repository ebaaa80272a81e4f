package reference

import (
	"fmt"

	"github.com/notargets/gocrit/geometry"
)

// Point is a known critical point used as ground truth for recovery scoring.
// TypeLabel carries the curvature type, composite for tensor constructions
// ("min", "saddle", "min+max", ...). RegionLabel is assigned once by
// containment and never re-derived per degree.
type Point struct {
	Location    []float64
	TypeLabel   string
	RegionLabel string
}

// Set is the read-only reference collection for one run.
type Set struct {
	Points []Point
}

func NewSet(pts []Point) (s *Set, err error) {
	if len(pts) == 0 {
		err = fmt.Errorf("reference set is empty")
		return
	}
	n := len(pts[0].Location)
	for i, p := range pts {
		if len(p.Location) != n {
			err = fmt.Errorf("reference point %d has dimension %d, want %d",
				i, len(p.Location), n)
			return
		}
	}
	s = &Set{Points: pts}
	return
}

func (s *Set) Dims() int {
	return len(s.Points[0].Location)
}

// AssignRegions computes each point's owning region by containment. A point
// on a shared boundary is contained by several regions; the tie-break is
// deterministic: the shortest, then lexicographically lowest, label wins.
// Such points are reported in ambiguous so the caller can log them. A point
// contained by no region fails the whole assignment.
func (s *Set) AssignRegions(regions []geometry.Region) (ambiguous []int, err error) {
	for i := range s.Points {
		var owners []string
		for _, reg := range regions {
			if reg.Contains(s.Points[i].Location) {
				owners = append(owners, reg.Label)
			}
		}
		if len(owners) == 0 {
			err = fmt.Errorf("reference point %d at %v lies outside every region",
				i, s.Points[i].Location)
			return
		}
		best := owners[0]
		for _, label := range owners[1:] {
			if len(label) < len(best) || (len(label) == len(best) && label < best) {
				best = label
			}
		}
		s.Points[i].RegionLabel = best
		if len(owners) > 1 {
			ambiguous = append(ambiguous, i)
		}
	}
	return
}

// ForRegion returns the indices of the points owned by the labeled region,
// in set order.
func (s *Set) ForRegion(label string) (idx []int) {
	for i, p := range s.Points {
		if p.RegionLabel == label {
			idx = append(idx, i)
		}
	}
	return
}

// TypeCounts tallies points per type label.
func (s *Set) TypeCounts() (counts map[string]int) {
	counts = make(map[string]int)
	for _, p := range s.Points {
		counts[p.TypeLabel]++
	}
	return
}
