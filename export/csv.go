// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

package export

import (
	"io"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/derat/mortalidad/aggregate"
	"github.com/derat/mortalidad/filewriter"
)

// frame converts t to a dataframe with a string column per key and an int count column.
func frame(t *aggregate.Table) dataframe.DataFrame {
	nkeys := len(t.Columns) - 1
	cols := make([]series.Series, 0, len(t.Columns))
	for k := 0; k < nkeys; k++ {
		vals := make([]string, len(t.Rows))
		for i, r := range t.Rows {
			vals[i] = r.Keys[k]
		}
		cols = append(cols, series.New(vals, series.String, t.Columns[k]))
	}
	counts := make([]int, len(t.Rows))
	for i, r := range t.Rows {
		counts[i] = r.Count
	}
	cols = append(cols, series.New(counts, series.Int, t.Columns[nkeys]))
	return dataframe.New(cols...)
}

// WriteCSV writes t to w as CSV with a header row.
func WriteCSV(w io.Writer, t *aggregate.Table) error {
	df := frame(t)
	if df.Err != nil {
		return df.Err
	}
	return df.WriteCSV(w)
}

// WriteCSVFile atomically writes t to a CSV file at p.
func WriteCSVFile(p string, t *aggregate.Table) error {
	fw, err := filewriter.New(p)
	if err != nil {
		return err
	}
	fw.Fail(WriteCSV(fw, t))
	return fw.Close()
}
