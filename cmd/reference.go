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
	"sort"
	"strings"

	"github.com/notargets/gocrit/objectives"
	"github.com/notargets/gocrit/readfiles"
	"github.com/spf13/cobra"
)

// ReferenceCmd represents the reference command
var ReferenceCmd = &cobra.Command{
	Use:   "reference",
	Short: "Write the reference critical points of a named objective to CSV",
	Long: `
Writes the analytic critical points of a catalogue objective in the reference
CSV schema (x0,...,x{n-1},type), for editing or reuse as a run's
ReferenceFile,

gocrit reference -o doublewell -d 2 -f refs.csv`,
	Run: func(cmd *cobra.Command, args []string) {
		name, _ := cmd.Flags().GetString("objective")
		dims, _ := cmd.Flags().GetInt("dims")
		fileName, _ := cmd.Flags().GetString("file")
		if len(name) == 0 {
			fmt.Printf("error: must supply an objective name (-o), one of: %s\n",
				strings.Join(objectives.Names(), ", "))
			os.Exit(1)
		}
		WriteReference(name, dims, fileName)
	},
}

func init() {
	rootCmd.AddCommand(ReferenceCmd)
	ReferenceCmd.Flags().StringP("objective", "o", "", "catalogue objective name, e.g. doublewell or well+cap")
	ReferenceCmd.Flags().IntP("dims", "d", 2, "dimension to build the objective in")
	ReferenceCmd.Flags().StringP("file", "f", "reference.csv", "output CSV file")
}

func WriteReference(name string, dims int, fileName string) {
	ts, err := objectives.Get(name, dims)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	set, err := ts.ReferenceSet()
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	if err = readfiles.WriteReferenceCSV(fileName, set); err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	counts := set.TypeCounts()
	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	fmt.Printf("%d reference points of %s written to %s\n",
		len(set.Points), ts.Name, fileName)
	for _, label := range labels {
		fmt.Printf("  %-16s %d\n", label, counts[label])
	}
}
