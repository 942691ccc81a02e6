// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

package deaths

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/parquet-go/parquet-go"
)

// readParquetFile reads records from the Parquet file at p.
func readParquetFile(p string) ([]Record, error) {
	f, err := os.Open(p)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	return ReadParquet(f, st.Size())
}

// ReadParquet reads records from Parquet data of the supplied size.
// The file's schema must be flat and contain all of the required columns.
func ReadParquet(r io.ReaderAt, size int64) ([]Record, error) {
	pf, err := parquet.OpenFile(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed opening parquet data: %w", err)
	}

	// Map leaf column indexes to the names that we care about.
	names := make(map[int]string, len(columns))
	for _, name := range columns {
		leaf, ok := pf.Schema().Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrMissingColumn, name)
		}
		names[leaf.ColumnIndex] = name
	}

	recs := make([]Record, 0, pf.NumRows())
	buf := make([]parquet.Row, 256)
	for _, rg := range pf.RowGroups() {
		rows := rg.Rows()
		for {
			n, rerr := rows.ReadRows(buf)
			for _, row := range buf[:n] {
				rec, err := makeRecord(row, names)
				if err != nil {
					rows.Close()
					return nil, fmt.Errorf("row %d: %w", len(recs), err)
				}
				recs = append(recs, rec)
			}
			if rerr == io.EOF {
				break
			} else if rerr != nil {
				rows.Close()
				return nil, rerr
			}
		}
		if err := rows.Close(); err != nil {
			return nil, err
		}
	}
	return recs, nil
}

// makeRecord converts row into a Record using names, which maps column indexes to names.
func makeRecord(row parquet.Row, names map[int]string) (Record, error) {
	var rec Record
	for _, v := range row {
		name, ok := names[v.Column()]
		if !ok {
			continue
		}
		var err error
		switch name {
		case ColYear:
			rec.Year, err = intValue(v)
		case ColMonth:
			rec.Month, err = intValue(v)
		case ColAgeGroup:
			rec.AgeGroup, err = intValue(v)
		case ColDepartment:
			rec.Department = stringValue(v)
		case ColMunicipality:
			rec.Municipality = stringValue(v)
		case ColManner:
			rec.Manner = stringValue(v)
		case ColCauseCode:
			rec.CauseCode = stringValue(v)
		case ColCauseDesc:
			rec.CauseDesc = stringValue(v)
		case ColSex:
			rec.Sex = stringValue(v)
		}
		if err != nil {
			return rec, fmt.Errorf("bad %v value: %w", name, err)
		}
	}
	return rec, nil
}

// intValue returns v as an int. pandas may store integer columns as doubles.
func intValue(v parquet.Value) (int, error) {
	if v.IsNull() {
		return 0, fmt.Errorf("null value")
	}
	switch v.Kind() {
	case parquet.Int32:
		return int(v.Int32()), nil
	case parquet.Int64:
		return int(v.Int64()), nil
	case parquet.Float, parquet.Double:
		f := v.Double()
		if v.Kind() == parquet.Float {
			f = float64(v.Float())
		}
		if f != math.Trunc(f) {
			return 0, fmt.Errorf("%v is not an integer", f)
		}
		return int(f), nil
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return parseInt(string(v.ByteArray()))
	default:
		return 0, fmt.Errorf("unsupported kind %v", v.Kind())
	}
}

// stringValue returns v as a string. Nulls become empty strings.
func stringValue(v parquet.Value) string {
	if v.IsNull() {
		return ""
	}
	switch v.Kind() {
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return string(v.ByteArray())
	default:
		return v.String()
	}
}
