package engine

import (
	"sort"
	"strings"
	"time"

	"github.com/notargets/gocrit/match"
	"github.com/notargets/gocrit/reference"
	"gonum.org/v1/gonum/stat"
)

// DegreeRate is the recovery rate at one degree across all regions probed at
// that degree: sum of matches over sum of references. Each degree is rated
// independently, never cumulatively, and regions without reference points
// contribute to neither side.
type DegreeRate struct {
	Degree    int
	Matched   int
	Reference int
	Rate      float64
}

// DistanceStats summarizes match distances over matched records only.
type DistanceStats struct {
	Count  int
	Min    float64
	Q25    float64
	Median float64
	Q75    float64
	Mean   float64
	Max    float64
}

// CaptureSplit counts reference-degree records by how the reference was
// recovered: by the raw fit, only after refinement, or never.
type CaptureSplit struct {
	Raw     int
	Refined int
	None    int
}

// RegionSummary is the per-region block of the run summary.
type RegionSummary struct {
	Label           string
	Status          string
	FinalDegree     int
	ConvergedDegree int // -1 when the region never converged
	BestErrorNorm   float64
	BestDegree      int
	NReference      int
	ElapsedSeconds  float64
	Instructions    uint64
	Neighbors       int
	Interior        bool
}

// BitCountGroup groups regions by the number of set bits in their label,
// i.e. how many upper-half bisections produced them, and reports the degree
// needed there.
type BitCountGroup struct {
	Bits                int
	Regions             int
	Converged           int
	MeanConvergedDegree float64
}

// RunSummary is the aggregate of every DegreeResult and RegionOutcome of a
// run. Results carries the raw per-degree rows for tabular reports and is
// excluded from the YAML rendering.
type RunSummary struct {
	RunID       string
	StartedAt   time.Time
	FinishedAt  time.Time
	Objective   string
	BasisKind   string
	MatchPolicy string
	Levels      int
	DegreeMin   int
	DegreeMax   int
	DegreeStep  int
	Tolerance   float64
	MatchTol    float64
	Workers     int

	Regions      []RegionSummary
	DegreeRates  []DegreeRate
	TypeRates    map[string][]DegreeRate
	Capture      CaptureSplit
	Distances    DistanceStats
	DegreeGroups []BitCountGroup

	Results []DegreeResult `json:"-"`
}

// RegionFacts carries subdivision-level context the runner knows but results
// do not: corner-sharing neighbor count and interior flag per region label.
type RegionFacts struct {
	Neighbors int
	Interior  bool
}

// Aggregator folds the unordered stream of per-degree results and region
// outcomes from concurrent workers into a RunSummary. It owns all aggregate
// state; workers communicate with it exclusively by message passing.
type Aggregator struct {
	set      *reference.Set
	results  []DegreeResult
	outcomes []RegionOutcome
}

func NewAggregator(set *reference.Set) *Aggregator {
	return &Aggregator{set: set}
}

func (agg *Aggregator) Add(dr DegreeResult) {
	agg.results = append(agg.results, dr)
}

func (agg *Aggregator) AddOutcome(oc RegionOutcome) {
	agg.outcomes = append(agg.outcomes, oc)
}

// Consume drains both worker channels until closed. It is the single
// consumer: no aggregate state is touched from any other goroutine while it
// runs.
func (agg *Aggregator) Consume(results <-chan DegreeResult, outcomes <-chan RegionOutcome) {
	for results != nil || outcomes != nil {
		select {
		case dr, ok := <-results:
			if !ok {
				results = nil
				continue
			}
			agg.Add(dr)
		case oc, ok := <-outcomes:
			if !ok {
				outcomes = nil
				continue
			}
			agg.AddOutcome(oc)
		}
	}
}

func (agg *Aggregator) Summarize(cfg *Config, runID string,
	started, finished time.Time, facts map[string]RegionFacts) (rs *RunSummary) {
	rs = &RunSummary{
		RunID:       runID,
		StartedAt:   started,
		FinishedAt:  finished,
		Objective:   cfg.ObjectiveName,
		BasisKind:   cfg.Basis.String(),
		MatchPolicy: cfg.Policy.String(),
		Levels:      cfg.Levels,
		DegreeMin:   cfg.DegreeMin,
		DegreeMax:   cfg.DegreeMax,
		DegreeStep:  cfg.DegreeStep,
		Tolerance:   cfg.Tolerance,
		MatchTol:    cfg.MatchTol,
		Workers:     cfg.Workers,
		Results:     agg.results,
	}

	// Per-region blocks, in label order
	sort.Slice(agg.outcomes, func(i, j int) bool {
		return agg.outcomes[i].RegionLabel < agg.outcomes[j].RegionLabel
	})
	for _, oc := range agg.outcomes {
		regSum := RegionSummary{
			Label:           "r" + oc.RegionLabel,
			Status:          oc.Status.String(),
			FinalDegree:     oc.FinalDegree,
			ConvergedDegree: oc.ConvergedDegree,
			BestErrorNorm:   oc.BestErrorNorm,
			BestDegree:      oc.BestDegree,
			NReference:      oc.NReference,
			ElapsedSeconds:  oc.ElapsedSeconds,
			Instructions:    oc.Instructions,
		}
		if fct, ok := facts[oc.RegionLabel]; ok {
			regSum.Neighbors = fct.Neighbors
			regSum.Interior = fct.Interior
		}
		rs.Regions = append(rs.Regions, regSum)
	}

	rs.DegreeRates = agg.degreeRates(func(match.Record) bool { return true })
	rs.TypeRates = make(map[string][]DegreeRate)
	for _, filter := range cfg.TypeFilters {
		filter := filter
		rs.TypeRates[filter] = agg.degreeRates(func(rec match.Record) bool {
			return agg.set.Points[rec.RefIndex].TypeLabel == filter
		})
	}

	var matchedDistances []float64
	for _, dr := range agg.results {
		for _, rec := range dr.Records {
			switch rec.Capture {
			case match.CaptureRaw:
				rs.Capture.Raw++
			case match.CaptureRefined:
				rs.Capture.Refined++
			default:
				rs.Capture.None++
			}
			if rec.Matched {
				matchedDistances = append(matchedDistances, rec.Distance)
			}
		}
	}
	rs.Distances = distanceStats(matchedDistances)
	rs.DegreeGroups = agg.bitCountGroups()
	return
}

// degreeRates computes the independent per-degree recovery rate over records
// passing the filter.
func (agg *Aggregator) degreeRates(keep func(match.Record) bool) (rates []DegreeRate) {
	byDegree := make(map[int]*DegreeRate)
	for _, dr := range agg.results {
		for _, rec := range dr.Records {
			if !keep(rec) {
				continue
			}
			rate, ok := byDegree[rec.Degree]
			if !ok {
				rate = &DegreeRate{Degree: rec.Degree}
				byDegree[rec.Degree] = rate
			}
			rate.Reference++
			if rec.Matched {
				rate.Matched++
			}
		}
	}
	for _, rate := range byDegree {
		if rate.Reference > 0 {
			rate.Rate = float64(rate.Matched) / float64(rate.Reference)
		}
		rates = append(rates, *rate)
	}
	sort.Slice(rates, func(i, j int) bool { return rates[i].Degree < rates[j].Degree })
	return
}

func (agg *Aggregator) bitCountGroups() (groups []BitCountGroup) {
	byBits := make(map[int]*BitCountGroup)
	for _, oc := range agg.outcomes {
		bits := strings.Count(oc.RegionLabel, "1")
		grp, ok := byBits[bits]
		if !ok {
			grp = &BitCountGroup{Bits: bits}
			byBits[bits] = grp
		}
		grp.Regions++
		if oc.Status == Converged {
			grp.Converged++
			grp.MeanConvergedDegree += float64(oc.ConvergedDegree)
		}
	}
	for _, grp := range byBits {
		if grp.Converged > 0 {
			grp.MeanConvergedDegree /= float64(grp.Converged)
		}
		groups = append(groups, *grp)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Bits < groups[j].Bits })
	return
}

func distanceStats(distances []float64) (ds DistanceStats) {
	ds.Count = len(distances)
	if ds.Count == 0 {
		return
	}
	sort.Float64s(distances)
	ds.Min = distances[0]
	ds.Max = distances[len(distances)-1]
	ds.Mean = stat.Mean(distances, nil)
	ds.Q25 = stat.Quantile(0.25, stat.Empirical, distances, nil)
	ds.Median = stat.Quantile(0.5, stat.Empirical, distances, nil)
	ds.Q75 = stat.Quantile(0.75, stat.Empirical, distances, nil)
	return
}
