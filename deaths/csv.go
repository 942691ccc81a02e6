// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

package deaths

import (
	"compress/gzip"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// readCSVFile reads records from the CSV file at p, decompressing it if it ends in ".gz".
func readCSVFile(p string) ([]Record, error) {
	f, err := os.Open(p)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(strings.ToLower(p), ".gz") {
		gr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("failed decompressing %v: %w", p, err)
		}
		defer gr.Close()
		r = gr
	}
	return ReadCSV(r)
}

// ReadCSV reads records from CSV data with a header line naming the columns.
func ReadCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	// Find the positions of columns that we care about.
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed reading header: %w", err)
	}
	pos := make(map[string]int, len(columns))
	for _, name := range columns {
		found := false
		for i, s := range header {
			if strings.TrimLeft(s, "\ufeff") == name { // pandas sometimes writes a BOM
				pos[name] = i
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w %q", ErrMissingColumn, name)
		}
	}

	var recs []Record
	for line := 2; ; line++ {
		vals, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}

		var rec Record
		for name, dst := range map[string]*int{
			ColYear:     &rec.Year,
			ColMonth:    &rec.Month,
			ColAgeGroup: &rec.AgeGroup,
		} {
			s := vals[pos[name]]
			if *dst, err = parseInt(s); err != nil {
				return nil, fmt.Errorf("line %d: bad %v value %q: %w", line, name, s, err)
			}
		}
		rec.Department = vals[pos[ColDepartment]]
		rec.Municipality = vals[pos[ColMunicipality]]
		rec.Manner = vals[pos[ColManner]]
		rec.CauseCode = vals[pos[ColCauseCode]]
		rec.CauseDesc = vals[pos[ColCauseDesc]]
		rec.Sex = vals[pos[ColSex]]
		recs = append(recs, rec)
	}
	return recs, nil
}

// parseInt parses s as an integer. Integral floats like "2019.0" are also
// accepted since that's what pandas writes for integer columns containing nulls.
func parseInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("%q is not an integer", s)
	}
	return int(f), nil
}
