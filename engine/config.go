package engine

import (
	"fmt"
	"time"

	"github.com/notargets/gocrit/approx"
	"github.com/notargets/gocrit/basis"
	"github.com/notargets/gocrit/critical"
	"github.com/notargets/gocrit/geometry"
	"github.com/notargets/gocrit/match"
	"github.com/notargets/gocrit/objectives"
	"github.com/notargets/gocrit/reference"
	"go.uber.org/zap"
)

// Config assembles one run of the recovery engine. Validation is fail-fast:
// no region work starts on a bad configuration.
type Config struct {
	Objective     objectives.Func
	ObjectiveName string // echoed into reports
	Domain        geometry.Region
	Levels        int
	References    *reference.Set

	DegreeMin  int
	DegreeMax  int
	DegreeStep int
	Tolerance  float64 // error-norm convergence target per region
	MatchTol   float64 // match distance cutoff

	RegionBudget time.Duration // soft per-region time budget, 0 = unlimited
	Workers      int

	Basis        basis.BasisKind
	Policy       match.Policy
	TypeFilters  []string // reference type labels given their own rate views
	PerfCounters bool

	// Oracle, Processor and Logger default to the standard stack when nil.
	Oracle    approx.Oracle
	Processor *critical.Processor
	Logger    *zap.Logger
}

func (cfg *Config) Validate() (err error) {
	switch {
	case cfg.Objective == nil:
		err = fmt.Errorf("configuration: objective function is required")
	case cfg.Domain.Dims() == 0:
		err = fmt.Errorf("configuration: domain region is required")
	case cfg.Levels < 0:
		err = fmt.Errorf("configuration: levels must be non-negative, got %d", cfg.Levels)
	case cfg.References == nil || len(cfg.References.Points) == 0:
		err = fmt.Errorf("configuration: reference set is required")
	case cfg.References.Dims() != cfg.Domain.Dims():
		err = fmt.Errorf("configuration: reference dimension %d does not match domain dimension %d",
			cfg.References.Dims(), cfg.Domain.Dims())
	case cfg.DegreeMin < 0:
		err = fmt.Errorf("configuration: degree_min must be non-negative, got %d", cfg.DegreeMin)
	case cfg.DegreeMax < cfg.DegreeMin:
		err = fmt.Errorf("configuration: degree_max %d below degree_min %d",
			cfg.DegreeMax, cfg.DegreeMin)
	case cfg.DegreeStep < 1:
		err = fmt.Errorf("configuration: degree_step must be positive, got %d", cfg.DegreeStep)
	case cfg.Tolerance <= 0:
		err = fmt.Errorf("configuration: tolerance must be positive, got %g", cfg.Tolerance)
	case cfg.MatchTol <= 0:
		err = fmt.Errorf("configuration: match_tolerance must be positive, got %g", cfg.MatchTol)
	case cfg.RegionBudget < 0:
		err = fmt.Errorf("configuration: region_budget must be non-negative, got %v", cfg.RegionBudget)
	case cfg.Workers < 0:
		err = fmt.Errorf("configuration: workers must be non-negative, got %d", cfg.Workers)
	}
	return
}

// setDefaults fills the pluggable collaborators after validation.
func (cfg *Config) setDefaults() {
	if cfg.Workers == 0 {
		cfg.Workers = 1
	}
	if cfg.Oracle == nil {
		cfg.Oracle = approx.NewLeastSquares(cfg.Basis)
	}
	if cfg.Processor == nil {
		cfg.Processor = critical.NewProcessor(critical.NewNewtonRefiner())
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
}
