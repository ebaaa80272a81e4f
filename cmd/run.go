/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"io/ioutil"
	"os"
	"os/signal"

	"github.com/notargets/gocrit/InputParameters"
	"github.com/notargets/gocrit/basis"
	"github.com/notargets/gocrit/critical"
	"github.com/notargets/gocrit/engine"
	"github.com/notargets/gocrit/geometry"
	"github.com/notargets/gocrit/match"
	"github.com/notargets/gocrit/objectives"
	"github.com/notargets/gocrit/readfiles"
	"github.com/notargets/gocrit/reference"
	"github.com/notargets/gocrit/report"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type ModelRun struct {
	ParamsFile string
	Profile    bool
	Verbose    bool
}

// RunCmd represents the run command
var RunCmd = &cobra.Command{
	Use:   "run",
	Short: "Recover the critical points of a named objective over a subdivided domain",
	Long: `
Fits orthogonal polynomials to the objective per region, escalating degree
until the fit converges, and scores the recovered critical points against the
objective's known reference points,

gocrit run -I params.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		mr := &ModelRun{}
		if mr.ParamsFile, err = cmd.Flags().GetString("inputParametersFile"); err != nil {
			panic(err)
		}
		mr.Profile, _ = cmd.Flags().GetBool("profile")
		mr.Verbose, _ = cmd.Flags().GetBool("verbose")
		rp := processRunInput(mr)
		RunEngine(mr, rp)
	},
}

func init() {
	rootCmd.AddCommand(RunCmd)
	RunCmd.Flags().StringP("inputParametersFile", "I", "", "YAML file of run parameters like:\n\t- Objective\n\t- DegreeMax\n\t- Tolerance")
	RunCmd.Flags().Bool("profile", false, "write a CPU profile for this run")
	RunCmd.Flags().BoolP("verbose", "v", false, "per-degree debug logging")
}

func processRunInput(mr *ModelRun) (rp *InputParameters.RunParameters) {
	var (
		err      error
		willExit bool
	)
	if len(mr.ParamsFile) == 0 {
		err = fmt.Errorf("must supply a run parameters file (-I, --inputParametersFile) in YAML format")
		fmt.Printf("error: %s\n", err.Error())
		exampleFile := `
########################################
Title: "Double Well"
Objective: doublewell
Dims: 2
DomainCenter: [0, 0]
DomainRange: [1, 1]
Levels: 2
DegreeMin: 2
DegreeMax: 12
Tolerance: 1.0e-6
MatchTolerance: 0.01
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		willExit = true
	}
	if willExit {
		os.Exit(1)
	}
	var data []byte
	if data, err = ioutil.ReadFile(mr.ParamsFile); err != nil {
		panic(err)
	}
	rp = &InputParameters.RunParameters{}
	if err = rp.Parse(data); err != nil {
		panic(err)
	}
	rp.ApplyDefaults()
	if err = rp.Validate(); err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	return
}

func RunEngine(mr *ModelRun, rp *InputParameters.RunParameters) {
	var (
		err error
		set *reference.Set
	)
	if mr.Profile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}
	rp.Print()

	ts, err := objectives.Get(rp.Objective, rp.Dims)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	if len(rp.ReferenceFile) != 0 {
		if set, err = readfiles.ReadReferenceCSV(rp.ReferenceFile); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	} else {
		if set, err = ts.ReferenceSet(); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	}

	logger := newLogger(mr.Verbose)
	defer logger.Sync()

	cfg := &engine.Config{
		Objective:     ts.Func(),
		ObjectiveName: ts.Name,
		Domain:        geometry.NewRegion(rp.DomainCenter, rp.DomainRange),
		Levels:        rp.Levels,
		References:    set,
		DegreeMin:     rp.DegreeMin,
		DegreeMax:     rp.DegreeMax,
		DegreeStep:    rp.DegreeStep,
		Tolerance:     rp.Tolerance,
		MatchTol:      rp.MatchTolerance,
		RegionBudget:  rp.RegionBudget(),
		Workers:       rp.Workers,
		Basis:         basis.NewBasisKind(rp.Basis),
		Policy:        match.NewPolicy(rp.MatchPolicy),
		TypeFilters:   rp.TypeFilters,
		PerfCounters:  rp.PerfCounters,
		Processor:     newProcessor(rp),
		Logger:        logger,
	}
	r, err := engine.New(cfg)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}

	// an interrupt cancels outstanding regions; completed work still reports
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	rs, err := r.Run(ctx)
	if err != nil {
		fmt.Printf("run error: %s\n", err.Error())
	}
	if rs == nil {
		os.Exit(1)
	}
	if err = report.WriteAll(rp.OutputDir, set, rs); err != nil {
		fmt.Printf("error writing report: %s\n", err.Error())
		os.Exit(1)
	}
	printSummary(rs, rp.OutputDir)
}

func newProcessor(rp *InputParameters.RunParameters) (pr *critical.Processor) {
	var r critical.Refiner
	switch rp.Refiner {
	case "", "newton":
		r = critical.NewNewtonRefiner()
	case "descent":
		r = critical.NewDescentRefiner()
	default:
		fmt.Printf("error: unknown refiner %q, want newton or descent\n", rp.Refiner)
		os.Exit(1)
	}
	pr = critical.NewProcessor(r)
	pr.KeepUnconverged = !rp.DropUnconverged
	return
}

func newLogger(verbose bool) (logger *zap.Logger) {
	var err error
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	return
}

func printSummary(rs *engine.RunSummary, outputDir string) {
	fmt.Printf("\nRun %s finished in %.3f seconds\n", rs.RunID,
		rs.FinishedAt.Sub(rs.StartedAt).Seconds())
	statusCounts := make(map[string]int)
	for _, reg := range rs.Regions {
		statusCounts[reg.Status]++
	}
	fmt.Printf("[%d]\t\t\t= Regions", len(rs.Regions))
	for _, status := range []string{"converged", "exhausted", "timedout", "aborted"} {
		if statusCounts[status] > 0 {
			fmt.Printf(", %d %s", statusCounts[status], status)
		}
	}
	fmt.Printf("\nRecovery by degree:\n")
	for _, rate := range rs.DegreeRates {
		fmt.Printf("  degree %2d: %3d/%3d matched (%5.1f%%)\n",
			rate.Degree, rate.Matched, rate.Reference, 100*rate.Rate)
	}
	if rs.Distances.Count > 0 {
		fmt.Printf("Match distances: min %.3e median %.3e max %.3e over %d matches\n",
			rs.Distances.Min, rs.Distances.Median, rs.Distances.Max, rs.Distances.Count)
	}
	fmt.Printf("Report written to %s\n", outputDir)
}
