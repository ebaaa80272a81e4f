package readfiles

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/notargets/gocrit/reference"
)

// ReadReferenceCSV loads a reference-point table. The schema is one header
// row "x0,...,x{n-1},type" followed by one row per point, coordinates then
// type label.
func ReadReferenceCSV(fileName string) (set *reference.Set, err error) {
	var (
		f       *os.File
		records [][]string
	)
	if f, err = os.Open(fileName); err != nil {
		err = fmt.Errorf("unable to open reference file %s: %v", fileName, err)
		return
	}
	defer f.Close()
	r := csv.NewReader(bufio.NewReader(f))
	if records, err = r.ReadAll(); err != nil {
		err = fmt.Errorf("unable to parse reference file %s: %v", fileName, err)
		return
	}
	if len(records) < 2 {
		err = fmt.Errorf("reference file %s has no data rows", fileName)
		return
	}
	header := records[0]
	nDims := len(header) - 1
	if nDims < 1 || header[nDims] != "type" {
		err = fmt.Errorf("reference file %s: header must be x0..x%d,type, got %v",
			fileName, nDims-1, header)
		return
	}
	for i := 0; i < nDims; i++ {
		if header[i] != fmt.Sprintf("x%d", i) {
			err = fmt.Errorf("reference file %s: column %d named %q, want x%d",
				fileName, i, header[i], i)
			return
		}
	}

	pts := make([]reference.Point, 0, len(records)-1)
	for row, rec := range records[1:] {
		if len(rec) != nDims+1 {
			err = fmt.Errorf("reference file %s row %d: %d fields, want %d",
				fileName, row+2, len(rec), nDims+1)
			return
		}
		loc := make([]float64, nDims)
		for i := 0; i < nDims; i++ {
			if loc[i], err = strconv.ParseFloat(rec[i], 64); err != nil {
				err = fmt.Errorf("reference file %s row %d: bad coordinate %q: %v",
					fileName, row+2, rec[i], err)
				return
			}
		}
		pts = append(pts, reference.Point{Location: loc, TypeLabel: rec[nDims]})
	}
	set, err = reference.NewSet(pts)
	return
}

// WriteReferenceCSV writes the reference table in the schema ReadReferenceCSV
// expects.
func WriteReferenceCSV(fileName string, set *reference.Set) (err error) {
	var f *os.File
	if f, err = os.Create(fileName); err != nil {
		err = fmt.Errorf("unable to create reference file %s: %v", fileName, err)
		return
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer func() {
		w.Flush()
		if err == nil {
			err = w.Error()
		}
	}()

	n := set.Dims()
	header := make([]string, n+1)
	for i := 0; i < n; i++ {
		header[i] = fmt.Sprintf("x%d", i)
	}
	header[n] = "type"
	if err = w.Write(header); err != nil {
		return
	}
	for _, p := range set.Points {
		rec := make([]string, n+1)
		for i, x := range p.Location {
			rec[i] = strconv.FormatFloat(x, 'g', -1, 64)
		}
		rec[n] = p.TypeLabel
		if err = w.Write(rec); err != nil {
			return
		}
	}
	return
}
