package match

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/notargets/gocrit/critical"
	"github.com/notargets/gocrit/reference"
	"github.com/notargets/gocrit/utils"
)

// CaptureMethod records how a reference point was recovered: by a raw fit
// candidate alone, only after local refinement, or not at all. The split is
// diagnostic of how much the refinement step contributes.
type CaptureMethod uint8

const (
	CaptureNone CaptureMethod = iota
	CaptureRaw
	CaptureRefined
)

func (cm CaptureMethod) String() (label string) {
	switch cm {
	case CaptureRaw:
		label = "raw"
	case CaptureRefined:
		label = "refined"
	default:
		label = "none"
	}
	return
}

// Policy selects the matching rule. Nearest scores every reference point
// against its nearest computed point independently, so one computed point may
// serve several references. Assigned adds a one-to-one constraint via greedy
// assignment in ascending distance order.
type Policy uint8

const (
	Nearest Policy = iota
	Assigned
)

func NewPolicy(label string) (p Policy) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "", "nearest":
		p = Nearest
	case "assigned":
		p = Assigned
	default:
		panic(fmt.Errorf("unknown match policy %q", label))
	}
	return
}

func (p Policy) String() (label string) {
	switch p {
	case Assigned:
		label = "assigned"
	default:
		label = "nearest"
	}
	return
}

// Record scores one reference point against one region/degree's computed
// critical points. Distance is +Inf, never NaN, when nothing was there to
// measure. Degree and RegionLabel are stamped by the degree controller.
type Record struct {
	RefIndex    int
	Matched     bool
	Distance    float64
	RawDistance float64
	Capture     CaptureMethod
	Degree      int
	RegionLabel string
}

// Match scores the reference points idx (global indices into set) against the
// computed points of one region and degree. An empty idx yields an empty
// record list; empty computed points yield unmatched records at infinite
// distance.
func Match(set *reference.Set, idx []int, pts []critical.CriticalPoint,
	tol float64, policy Policy) (records []Record) {
	if len(idx) == 0 {
		return
	}
	records = make([]Record, len(idx))
	for i, ri := range idx {
		records[i] = Record{
			RefIndex:    ri,
			Distance:    math.Inf(1),
			RawDistance: math.Inf(1),
		}
		loc := set.Points[ri].Location
		for _, cp := range pts {
			if d := utils.EuclideanDistance(loc, cp.Location); d < records[i].Distance {
				records[i].Distance = d
			}
			if d := utils.EuclideanDistance(loc, cp.RawLocation); d < records[i].RawDistance {
				records[i].RawDistance = d
			}
		}
	}
	switch policy {
	case Assigned:
		assignGreedy(set, idx, pts, tol, records)
	default:
		for i := range records {
			records[i].Matched = records[i].Distance <= tol
		}
	}
	for i := range records {
		records[i].Capture = capture(records[i], tol)
	}
	return
}

// assignGreedy enforces one-to-one matching: reference/computed pairs are
// taken in ascending distance order, each computed point serving at most one
// reference. Unmatched records keep their nearest-neighbor distance for
// diagnostics.
func assignGreedy(set *reference.Set, idx []int, pts []critical.CriticalPoint,
	tol float64, records []Record) {
	type pair struct {
		ri, ci int
		d      float64
	}
	var pairs []pair
	for i, ri := range idx {
		for ci, cp := range pts {
			d := utils.EuclideanDistance(set.Points[ri].Location, cp.Location)
			if d <= tol {
				pairs = append(pairs, pair{ri: i, ci: ci, d: d})
			}
		}
	}
	sort.Slice(pairs, func(a, b int) bool {
		if pairs[a].d != pairs[b].d {
			return pairs[a].d < pairs[b].d
		}
		if pairs[a].ri != pairs[b].ri {
			return pairs[a].ri < pairs[b].ri
		}
		return pairs[a].ci < pairs[b].ci
	})
	used := make(map[int]bool)
	for _, pr := range pairs {
		if records[pr.ri].Matched || used[pr.ci] {
			continue
		}
		records[pr.ri].Matched = true
		records[pr.ri].Distance = pr.d
		used[pr.ci] = true
	}
}

func capture(rec Record, tol float64) CaptureMethod {
	switch {
	case rec.Matched && rec.RawDistance <= tol:
		return CaptureRaw
	case rec.Matched:
		return CaptureRefined
	default:
		return CaptureNone
	}
}
