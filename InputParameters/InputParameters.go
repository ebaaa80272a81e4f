package InputParameters

import (
	"fmt"
	"time"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type RunParameters struct {
	Title           string    `yaml:"Title"`
	Objective       string    `yaml:"Objective"`
	Dims            int       `yaml:"Dims"`
	DomainCenter    []float64 `yaml:"DomainCenter"`
	DomainRange     []float64 `yaml:"DomainRange"`
	Levels          int       `yaml:"Levels"`
	Basis           string    `yaml:"Basis"`
	DegreeMin       int       `yaml:"DegreeMin"`
	DegreeMax       int       `yaml:"DegreeMax"`
	DegreeStep      int       `yaml:"DegreeStep"`
	Tolerance       float64   `yaml:"Tolerance"`
	MatchTolerance  float64   `yaml:"MatchTolerance"`
	RegionBudgetSec float64   `yaml:"RegionBudgetSec"`
	Workers         int       `yaml:"Workers"`
	Refiner         string    `yaml:"Refiner"`     // newton (default) or descent
	MatchPolicy     string    `yaml:"MatchPolicy"` // nearest (default) or assigned
	DropUnconverged bool      `yaml:"DropUnconverged"`
	TypeFilters     []string  `yaml:"TypeFilters"`
	ReferenceFile   string    `yaml:"ReferenceFile"` // overrides the objective's analytic references
	OutputDir       string    `yaml:"OutputDir"`
	PerfCounters    bool      `yaml:"PerfCounters"`
}

func (rp *RunParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, rp)
}

func (rp *RunParameters) ApplyDefaults() {
	if rp.Dims == 0 {
		rp.Dims = len(rp.DomainCenter)
	}
	if rp.Basis == "" {
		rp.Basis = "chebyshev"
	}
	if rp.DegreeStep == 0 {
		rp.DegreeStep = 1
	}
	if rp.OutputDir == "" {
		rp.OutputDir = "report"
	}
}

func (rp *RunParameters) Validate() (err error) {
	switch {
	case rp.Objective == "":
		err = fmt.Errorf("run parameters: Objective is required")
	case rp.Dims < 1:
		err = fmt.Errorf("run parameters: Dims must be at least 1, got %d", rp.Dims)
	case len(rp.DomainCenter) != rp.Dims:
		err = fmt.Errorf("run parameters: DomainCenter has %d entries, want Dims=%d",
			len(rp.DomainCenter), rp.Dims)
	case len(rp.DomainRange) != rp.Dims:
		err = fmt.Errorf("run parameters: DomainRange has %d entries, want Dims=%d",
			len(rp.DomainRange), rp.Dims)
	}
	return
}

// RegionBudget converts the YAML seconds field to a duration, zero meaning
// unlimited.
func (rp *RunParameters) RegionBudget() time.Duration {
	return time.Duration(rp.RegionBudgetSec * float64(time.Second))
}

func (rp *RunParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", rp.Title)
	fmt.Printf("[%s]\t\t= Objective\n", rp.Objective)
	fmt.Printf("[%d]\t\t\t= Dims\n", rp.Dims)
	fmt.Printf("%v\t= Domain Center\n", rp.DomainCenter)
	fmt.Printf("%v\t= Domain Range\n", rp.DomainRange)
	fmt.Printf("[%d]\t\t\t= Levels\n", rp.Levels)
	fmt.Printf("[%s]\t= Basis\n", rp.Basis)
	fmt.Printf("[%d..%d by %d]\t\t= Degree Range\n", rp.DegreeMin, rp.DegreeMax, rp.DegreeStep)
	fmt.Printf("%8.5f\t= Tolerance\n", rp.Tolerance)
	fmt.Printf("%8.5f\t= Match Tolerance\n", rp.MatchTolerance)
	fmt.Printf("[%d]\t\t\t= Workers\n", rp.Workers)
}
