package main

import (
	"bufio"
	"encoding/csv"
	"flag"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
)

var (
	csvFile string
)

func main() {
	csvFilePtr := flag.String("csvFile", csvFile, "degree_results.csv from a recovery run")
	flag.Parse()
	csvFile = *csvFilePtr
	if len(csvFile) == 0 {
		flag.Usage()
		os.Exit(1)
	}
	fmt.Printf("Input file: %v\n", csvFile)
	studies := readCSV(csvFile)
	labels := make([]string, 0, len(studies))
	for label := range studies {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		es := studies[label]
		fmt.Printf("Region = %s\n", label)
		for i := range es.degrees {
			if i == 0 {
				fmt.Printf("%d, %v\n", es.degrees[i], es.errNorms[i])
				continue
			}
			fmt.Printf("%d, %v, order = %5.2f\n",
				es.degrees[i], es.errNorms[i], es.Order(i))
		}
	}
}

type EscalationStudy struct {
	label    string
	degrees  []int
	errNorms []float64
}

func NewEscalationStudy(label string) *EscalationStudy {
	return &EscalationStudy{label: label}
}

func (es *EscalationStudy) Add(degree int, errNorm float64) {
	es.degrees = append(es.degrees, degree)
	es.errNorms = append(es.errNorms, errNorm)
}

// Order estimates the algebraic convergence order between rows i-1 and i of
// the escalation, log(e1/e2)/log(d2/d1). Failed fits carry infinite error
// norms and yield NaN here.
func (es *EscalationStudy) Order(i int) (order float64) {
	var (
		e1, e2 = es.errNorms[i-1], es.errNorms[i]
		d1, d2 = float64(es.degrees[i-1]), float64(es.degrees[i])
	)
	if e1 <= 0 || e2 <= 0 || math.IsInf(e1, 1) || math.IsInf(e2, 1) {
		return math.NaN()
	}
	order = math.Log(e1/e2) / math.Log(d2/d1)
	return
}

func readCSV(csvFile string) (studies map[string]*EscalationStudy) {
	var (
		records [][]string
		err     error
		f       *os.File
		ok      bool
		es      *EscalationStudy
	)
	studies = make(map[string]*EscalationStudy)
	if f, err = os.Open(csvFile); err != nil {
		panic(err)
	}
	r := csv.NewReader(bufio.NewReader(f))
	if records, err = r.ReadAll(); err != nil {
		panic(err)
	}
	for i, rec := range records {
		if i == 0 {
			continue
		}
		label := rec[0]
		degree, _ := strconv.Atoi(rec[1])
		errNorm, _ := strconv.ParseFloat(rec[2], 64)
		if es, ok = studies[label]; !ok {
			es = NewEscalationStudy(label)
			studies[label] = es
		}
		es.Add(degree, errNorm)
	}
	return
}
