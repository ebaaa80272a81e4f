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
	"fmt"
	"os"

	"github.com/notargets/gocrit/geometry"
	"github.com/spf13/cobra"
)

// SubdivideCmd represents the subdivide command
var SubdivideCmd = &cobra.Command{
	Use:   "subdivide",
	Short: "Print the region table for a domain and subdivision level",
	Long: `
Prints the labeled region boxes a domain subdivides into, with corner-sharing
neighbor counts, for inspection before a run,

gocrit subdivide -c 0,0 -r 1,1 -l 2`,
	Run: func(cmd *cobra.Command, args []string) {
		center, _ := cmd.Flags().GetFloat64Slice("center")
		rng, _ := cmd.Flags().GetFloat64Slice("range")
		levels, _ := cmd.Flags().GetInt("levels")
		if len(center) == 0 || len(center) != len(rng) {
			fmt.Printf("error: center and range must be equal-length coordinate lists\n")
			os.Exit(1)
		}
		PrintRegions(geometry.NewRegion(center, rng), levels)
	},
}

func init() {
	rootCmd.AddCommand(SubdivideCmd)
	SubdivideCmd.Flags().Float64SliceP("center", "c", []float64{0, 0}, "domain center coordinates")
	SubdivideCmd.Flags().Float64SliceP("range", "r", []float64{1, 1}, "domain half-widths per axis")
	SubdivideCmd.Flags().IntP("levels", "l", 1, "number of bisection levels")
}

func PrintRegions(root geometry.Region, levels int) {
	regions, err := geometry.Subdivide(root, levels)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	adj := geometry.BuildAdjacency(regions)
	fmt.Printf("%d regions at level %d\n", len(regions), levels)
	fmt.Printf("%-12s %-24s %-24s %9s %8s\n",
		"label", "center", "range", "neighbors", "interior")
	for i, reg := range regions {
		fmt.Printf("%-12s %-24s %-24s %9d %8v\n",
			reg.LabelString(), fmt.Sprintf("%.4g", reg.Center),
			fmt.Sprintf("%.4g", reg.Range),
			adj.NeighborCount(i), adj.Interior(i))
	}
}
