package engine

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/notargets/gocrit/approx"
	"github.com/notargets/gocrit/geometry"
	"github.com/notargets/gocrit/match"
)

// RegionStatus is the terminal state of one region's degree escalation.
// Converged, Exhausted and TimedOut are ordinary outcomes, never run
// failures; Aborted marks regions cut short by run-level cancellation.
type RegionStatus uint8

const (
	Probing RegionStatus = iota
	Converged
	Exhausted
	TimedOut
	Aborted
)

func (rs RegionStatus) String() (label string) {
	switch rs {
	case Probing:
		label = "probing"
	case Converged:
		label = "converged"
	case Exhausted:
		label = "exhausted"
	case TimedOut:
		label = "timedout"
	case Aborted:
		label = "aborted"
	}
	return
}

// DegreeResult is the immutable, append-only unit of aggregation: one
// (region, degree) probe. SuccessRate is zero when NReference is zero; rate
// aggregations exclude such results from their denominators by NReference.
type DegreeResult struct {
	RegionLabel     string
	Degree          int
	ErrorNorm       float64
	ConditionNumber float64
	NCandidates     int
	NReference      int
	NMatched        int
	SuccessRate     float64
	Converged       bool
	FitFailed       bool
	ElapsedSeconds  float64
	Records         []match.Record
}

// RegionOutcome summarizes one region's finished escalation loop.
type RegionOutcome struct {
	RegionLabel     string
	Status          RegionStatus
	FinalDegree     int     // last degree probed
	ConvergedDegree int     // first converged degree, -1 when none
	BestErrorNorm   float64 // running minimum across degrees
	BestDegree      int     // degree achieving BestErrorNorm
	NReference      int
	ElapsedSeconds  float64
	Instructions    uint64 // hardware counter, 0 when unavailable
}

// Controller drives the per-region state machine: Probing at DegreeMin,
// escalating by DegreeStep until the error norm crosses the tolerance
// (Converged), the degree cap is hit (Exhausted), the soft time budget runs
// out (TimedOut) or the run context is cancelled (Aborted). Escalation is
// strictly sequential within a region; deadlines and cancellation are checked
// between iterations only, since a fit in flight is not cancellable.
type Controller struct {
	cfg *Config
}

func NewController(cfg *Config) *Controller {
	return &Controller{cfg: cfg}
}

// Run escalates one region, emitting a DegreeResult per probed degree. Fit
// failures are recorded as infinite-error results and escalated past. The
// returned error is nil except for unexpected oracle failures.
func (ctrl *Controller) Run(ctx context.Context, reg geometry.Region,
	refIdx []int, emit func(DegreeResult)) (outcome RegionOutcome, err error) {
	var (
		cfg   = ctrl.cfg
		start = time.Now()
	)
	outcome = RegionOutcome{
		RegionLabel:     reg.Label,
		Status:          Probing,
		ConvergedDegree: -1,
		BestErrorNorm:   math.Inf(1),
		BestDegree:      -1,
		NReference:      len(refIdx),
	}
	for degree := cfg.DegreeMin; ; degree += cfg.DegreeStep {
		if ctx.Err() != nil {
			outcome.Status = Aborted
			break
		}
		var dr DegreeResult
		if dr, err = ctrl.probe(reg, degree, refIdx); err != nil {
			outcome.Status = Aborted
			break
		}
		emit(dr)
		outcome.FinalDegree = degree
		if dr.ErrorNorm < outcome.BestErrorNorm {
			outcome.BestErrorNorm = dr.ErrorNorm
			outcome.BestDegree = degree
		}
		if dr.Converged {
			outcome.Status = Converged
			outcome.ConvergedDegree = degree
			break
		}
		if degree+cfg.DegreeStep > cfg.DegreeMax {
			outcome.Status = Exhausted
			break
		}
		if cfg.RegionBudget > 0 && time.Since(start) > cfg.RegionBudget {
			outcome.Status = TimedOut
			break
		}
	}
	outcome.ElapsedSeconds = time.Since(start).Seconds()
	return
}

// probe runs one degree: fit, process, match.
func (ctrl *Controller) probe(reg geometry.Region, degree int,
	refIdx []int) (dr DegreeResult, err error) {
	var (
		cfg       = ctrl.cfg
		iterStart = time.Now()
	)
	dr = DegreeResult{
		RegionLabel: reg.Label,
		Degree:      degree,
		NReference:  len(refIdx),
	}
	res, fitErr := cfg.Oracle.Fit(reg, degree, cfg.Objective)
	if fitErr != nil {
		var ffe *approx.FitFailureError
		if !errors.As(fitErr, &ffe) {
			err = fitErr
			return
		}
		// non-convergent degree, keep escalating
		dr.ErrorNorm = math.Inf(1)
		dr.ConditionNumber = ffe.ConditionNumber
		dr.FitFailed = true
		dr.Records = stamp(match.Match(cfg.References, refIdx, nil,
			cfg.MatchTol, cfg.Policy), reg.Label, degree)
		dr.ElapsedSeconds = time.Since(iterStart).Seconds()
		return
	}

	pts := cfg.Processor.Process(res.RawCandidates, reg, cfg.Objective)
	records := stamp(match.Match(cfg.References, refIdx, pts,
		cfg.MatchTol, cfg.Policy), reg.Label, degree)

	dr.ErrorNorm = res.ErrorNorm
	dr.ConditionNumber = res.ConditionNumber
	dr.NCandidates = len(pts)
	dr.Converged = res.ErrorNorm <= cfg.Tolerance
	dr.Records = records
	for _, rec := range records {
		if rec.Matched {
			dr.NMatched++
		}
	}
	if dr.NReference > 0 {
		dr.SuccessRate = float64(dr.NMatched) / float64(dr.NReference)
	}
	dr.ElapsedSeconds = time.Since(iterStart).Seconds()
	return
}

func stamp(records []match.Record, label string, degree int) []match.Record {
	for i := range records {
		records[i].RegionLabel = label
		records[i].Degree = degree
	}
	return records
}
