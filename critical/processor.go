package critical

import (
	"sort"

	"github.com/notargets/gocrit/geometry"
	"github.com/notargets/gocrit/objectives"
	"github.com/notargets/gocrit/utils"
)

// Processor turns the oracle's raw candidates into refined, classified,
// deduplicated critical points confined to their origin region.
type Processor struct {
	Refiner         Refiner
	MergeTol        float64 // cluster radius for duplicate stationary points
	CurvatureTol    float64 // degenerate-eigenvalue cutoff for Classify
	KeepUnconverged bool    // retain candidates whose refinement did not converge
}

func NewProcessor(r Refiner) (pr *Processor) {
	pr = &Processor{
		Refiner:         r,
		MergeTol:        1.e-5,
		CurvatureTol:    1.e-6,
		KeepUnconverged: true,
	}
	return
}

// Process filters raw candidates to the region, refines each against the true
// objective, classifies by curvature and merges duplicates. A refinement that
// leaves the region is treated as divergence: the candidate is retained at
// its raw location, flagged unconverged. Output is sorted by function value
// for reproducible downstream reports.
func (pr *Processor) Process(raw [][]float64, reg geometry.Region,
	f objectives.Func) (pts []CriticalPoint) {
	for _, cand := range raw {
		if !reg.Contains(cand) {
			continue
		}
		var (
			ref = pr.Refiner.Refine(cand, f)
			loc = ref.Location
			cvg = ref.Converged
		)
		if !reg.Contains(loc) {
			loc = cand
			cvg = false
		}
		if !cvg && !pr.KeepUnconverged {
			continue
		}
		cp := CriticalPoint{
			Location:      append([]float64{}, loc...),
			RawLocation:   append([]float64{}, cand...),
			FunctionValue: f(loc),
			Iterations:    ref.Iterations,
			Converged:     cvg,
			RegionLabel:   reg.Label,
		}
		if eig, err := Curvature(loc, f); err == nil {
			cp.Classification = Classify(eig, pr.CurvatureTol)
		}
		pts = merge(pts, cp, pr.MergeTol)
	}
	sort.Slice(pts, func(i, j int) bool {
		return pts[i].FunctionValue < pts[j].FunctionValue
	})
	return
}

// merge appends cp unless it duplicates an existing point, in which case the
// better of the two is kept: a converged point beats an unconverged one, a
// classified point an unclassified one, then the more extreme function value
// for the incumbent's type (lower for minima, higher for maxima).
func merge(pts []CriticalPoint, cp CriticalPoint, mergeTol float64) []CriticalPoint {
	for i, inc := range pts {
		if utils.EuclideanDistance(inc.Location, cp.Location) >= mergeTol {
			continue
		}
		if replaces(cp, inc) {
			pts[i] = cp
		}
		return pts
	}
	return append(pts, cp)
}

func replaces(challenger, incumbent CriticalPoint) bool {
	if challenger.Converged != incumbent.Converged {
		return challenger.Converged
	}
	if (challenger.Classification == Unclassified) !=
		(incumbent.Classification == Unclassified) {
		return incumbent.Classification == Unclassified
	}
	if incumbent.Classification == Maximum {
		return challenger.FunctionValue > incumbent.FunctionValue
	}
	return challenger.FunctionValue < incumbent.FunctionValue
}
