package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/ghodss/yaml"
	"github.com/notargets/gocrit/engine"
	"github.com/notargets/gocrit/match"
	"github.com/notargets/gocrit/reference"
)

// Output file names within a run's report directory.
const (
	DegreeResultsFile = "degree_results.csv"
	MatchRecordsFile  = "match_records.csv"
	SummaryFile       = "summary.yaml"
)

var degreeResultsHeader = []string{
	"region_label", "degree", "error_norm", "condition_number",
	"n_candidates", "n_reference", "n_matched", "success_rate",
	"converged", "elapsed_seconds",
}

// WriteDegreeResults writes one row per region and degree, sorted by region
// label then degree so runs diff cleanly regardless of worker scheduling.
func WriteDegreeResults(w io.Writer, results []engine.DegreeResult) (err error) {
	rows := append([]engine.DegreeResult{}, results...)
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].RegionLabel != rows[j].RegionLabel {
			return rows[i].RegionLabel < rows[j].RegionLabel
		}
		return rows[i].Degree < rows[j].Degree
	})
	cw := csv.NewWriter(w)
	defer func() {
		cw.Flush()
		if err == nil {
			err = cw.Error()
		}
	}()
	if err = cw.Write(degreeResultsHeader); err != nil {
		return
	}
	for _, dr := range rows {
		rec := []string{
			"r" + dr.RegionLabel,
			strconv.Itoa(dr.Degree),
			fnum(dr.ErrorNorm),
			fnum(dr.ConditionNumber),
			strconv.Itoa(dr.NCandidates),
			strconv.Itoa(dr.NReference),
			strconv.Itoa(dr.NMatched),
			fnum(dr.SuccessRate),
			strconv.FormatBool(dr.Converged),
			fnum(dr.ElapsedSeconds),
		}
		if err = cw.Write(rec); err != nil {
			return
		}
	}
	return
}

// WriteMatchRecords writes one row per reference point with distance and
// capture columns pivoted by degree (distance_d2, capture_d2, ...) so
// recovery can be read across the escalation. Degrees a point's region never
// probed leave empty cells.
func WriteMatchRecords(w io.Writer, set *reference.Set,
	results []engine.DegreeResult) (err error) {
	type cell struct {
		distance float64
		capture  match.CaptureMethod
	}
	var (
		degreeSet = make(map[int]bool)
		cells     = make(map[[2]int]cell) // keyed by reference index, degree
	)
	for _, dr := range results {
		for _, rec := range dr.Records {
			degreeSet[rec.Degree] = true
			cells[[2]int{rec.RefIndex, rec.Degree}] = cell{rec.Distance, rec.Capture}
		}
	}
	degrees := make([]int, 0, len(degreeSet))
	for d := range degreeSet {
		degrees = append(degrees, d)
	}
	sort.Ints(degrees)

	n := set.Dims()
	header := []string{"ref_index"}
	for i := 0; i < n; i++ {
		header = append(header, fmt.Sprintf("x%d", i))
	}
	header = append(header, "type", "region_label")
	for _, d := range degrees {
		header = append(header,
			fmt.Sprintf("distance_d%d", d), fmt.Sprintf("capture_d%d", d))
	}

	cw := csv.NewWriter(w)
	defer func() {
		cw.Flush()
		if err == nil {
			err = cw.Error()
		}
	}()
	if err = cw.Write(header); err != nil {
		return
	}
	for ri, p := range set.Points {
		rec := []string{strconv.Itoa(ri)}
		for _, x := range p.Location {
			rec = append(rec, fnum(x))
		}
		rec = append(rec, p.TypeLabel, "r"+p.RegionLabel)
		for _, d := range degrees {
			if c, ok := cells[[2]int{ri, d}]; ok {
				rec = append(rec, fnum(c.distance), c.capture.String())
			} else {
				rec = append(rec, "", "")
			}
		}
		if err = cw.Write(rec); err != nil {
			return
		}
	}
	return
}

// WriteSummary renders the aggregate as YAML.
func WriteSummary(w io.Writer, rs *engine.RunSummary) (err error) {
	var data []byte
	if data, err = yaml.Marshal(rs); err != nil {
		err = fmt.Errorf("unable to marshal run summary: %v", err)
		return
	}
	_, err = w.Write(data)
	return
}

// WriteAll writes the three run products into dir, creating it if needed.
func WriteAll(dir string, set *reference.Set, rs *engine.RunSummary) (err error) {
	if err = os.MkdirAll(dir, 0755); err != nil {
		return
	}
	write := func(name string, fill func(io.Writer) error) error {
		f, ferr := os.Create(filepath.Join(dir, name))
		if ferr != nil {
			return ferr
		}
		defer f.Close()
		return fill(f)
	}
	if err = write(DegreeResultsFile, func(w io.Writer) error {
		return WriteDegreeResults(w, rs.Results)
	}); err != nil {
		return
	}
	if err = write(MatchRecordsFile, func(w io.Writer) error {
		return WriteMatchRecords(w, set, rs.Results)
	}); err != nil {
		return
	}
	err = write(SummaryFile, func(w io.Writer) error {
		return WriteSummary(w, rs)
	})
	return
}

func fnum(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
