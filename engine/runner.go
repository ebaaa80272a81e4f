package engine

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/notargets/gocrit/geometry"
	"github.com/notargets/gocrit/utils"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Runner executes one configured recovery run end to end: subdivide the
// domain, assign reference points, escalate every region on a worker pool
// and aggregate the result stream.
type Runner struct {
	cfg *Config
}

func New(cfg *Config) (r *Runner, err error) {
	if err = cfg.Validate(); err != nil {
		return
	}
	cfg.setDefaults()
	r = &Runner{cfg: cfg}
	return
}

// Run executes the pipeline. Regions are distributed over Workers goroutines
// in contiguous buckets; all aggregation happens on a single consumer fed by
// channels, so no aggregate state is shared. Cancellation is not an error:
// remaining regions finish as Aborted and the summary covers whatever
// completed. A non-nil error reports an unexpected oracle failure; the
// summary is still returned with the completed portion.
func (r *Runner) Run(ctx context.Context) (rs *RunSummary, err error) {
	var (
		cfg     = r.cfg
		log     = cfg.Logger
		runID   = uuid.New().String()
		started = time.Now()
	)
	regions, err := geometry.Subdivide(cfg.Domain, cfg.Levels)
	if err != nil {
		return nil, err
	}
	ambiguous, err := cfg.References.AssignRegions(regions)
	if err != nil {
		return nil, err
	}
	for _, idx := range ambiguous {
		log.Warn("reference point on a shared region boundary",
			zap.Int("point", idx),
			zap.String("owner", "r"+cfg.References.Points[idx].RegionLabel))
	}

	adj := geometry.BuildAdjacency(regions)
	facts := make(map[string]RegionFacts, len(regions))
	for i, reg := range regions {
		facts[reg.Label] = RegionFacts{
			Neighbors: adj.NeighborCount(i),
			Interior:  adj.Interior(i),
		}
	}

	log.Info("starting recovery run",
		zap.String("run_id", runID),
		zap.String("objective", cfg.ObjectiveName),
		zap.Int("regions", len(regions)),
		zap.Int("references", len(cfg.References.Points)),
		zap.Int("workers", cfg.Workers))

	var (
		agg      = NewAggregator(cfg.References)
		results  = make(chan DegreeResult, 4*len(regions))
		outcomes = make(chan RegionOutcome, len(regions))
		done     = make(chan struct{})
	)
	go func() {
		agg.Consume(results, outcomes)
		close(done)
	}()

	pm := utils.NewPartitionMap(cfg.Workers, len(regions))
	eg, egCtx := errgroup.WithContext(ctx)
	for n := 0; n < pm.ParallelDegree; n++ {
		n := n
		eg.Go(func() error {
			var (
				ctrl       = NewController(cfg)
				imin, imax = pm.GetBucketRange(n)
			)
			for i := imin; i < imax; i++ {
				var (
					reg    = regions[i]
					refIdx = cfg.References.ForRegion(reg.Label)
					oc     RegionOutcome
					runErr error
				)
				work := func() {
					oc, runErr = ctrl.Run(egCtx, reg, refIdx, func(dr DegreeResult) {
						log.Debug("degree probed",
							zap.String("region", "r"+dr.RegionLabel),
							zap.Int("degree", dr.Degree),
							zap.Float64("error_norm", dr.ErrorNorm),
							zap.Int("matched", dr.NMatched))
						results <- dr
					})
				}
				if cfg.PerfCounters {
					oc.Instructions = countInstructions(work)
				} else {
					work()
				}
				log.Info("region finished",
					zap.String("region", "r"+reg.Label),
					zap.String("status", oc.Status.String()),
					zap.Int("final_degree", oc.FinalDegree),
					zap.Float64("best_error_norm", oc.BestErrorNorm))
				// the outcome is flushed even when the controller errored
				outcomes <- oc
				if runErr != nil {
					return runErr
				}
			}
			return nil
		})
	}
	err = eg.Wait()
	close(results)
	close(outcomes)
	<-done

	rs = agg.Summarize(cfg, runID, started, time.Now(), facts)
	log.Info("recovery run complete",
		zap.String("run_id", runID),
		zap.Duration("elapsed", rs.FinishedAt.Sub(rs.StartedAt)),
		zap.Int("degree_results", len(rs.Results)))
	return
}
