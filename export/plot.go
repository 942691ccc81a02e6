// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

package export

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/derat/mortalidad/aggregate"
	"github.com/derat/mortalidad/filewriter"
	"github.com/derat/mortalidad/gnuplot"
)

const (
	plotWidth  = 1100
	plotHeight = 450
)

var (
	lineTmpl = template.Must(template.New("line").Parse(linePlotTmpl))
	barTmpl  = template.Must(template.New("bar").Parse(barPlotTmpl))
)

// plotDef describes a table to plot with gnuplot.
type plotDef struct {
	table    *aggregate.Table
	tmpl     *template.Template
	labelKey int // key used to label data points
}

// plotData is passed to the gnuplot templates. Strings are already quoted.
type plotData struct {
	Title, XLabel, YLabel string
	DataPath, OutPath     string
	Width, Height         int
}

// WritePlots uses r to plot the monthly, homicide and age-group tables from set
// to PNG files in dir. Each plot's data is also left in a .tsv file next to it.
// The paths of written files are returned.
func WritePlots(ctx context.Context, r *gnuplot.Runner, dir string, set *aggregate.Set) ([]string, error) {
	var paths []string
	for _, ps := range []plotDef{
		{set.Months, lineTmpl, 0},
		{set.Homicides, barTmpl, 0},
		{set.AgeGroups, barTmpl, 1},
	} {
		t := ps.table
		if len(t.Rows) == 0 {
			continue // gnuplot fails on empty data
		}
		dp := filepath.Join(dir, t.Name+".tsv")
		if err := writePlotData(dp, t, ps.labelKey); err != nil {
			return paths, fmt.Errorf("failed writing %v: %w", dp, err)
		}
		paths = append(paths, dp)

		op := filepath.Join(dir, t.Name+".png")
		if err := r.ExecTemplate(ctx, ps.tmpl, plotData{
			Title:    gnuplot.Quote(t.Title),
			XLabel:   gnuplot.Quote(t.Columns[ps.labelKey]),
			YLabel:   gnuplot.Quote(t.Columns[len(t.Columns)-1]),
			DataPath: gnuplot.Quote(dp),
			OutPath:  gnuplot.Quote(op),
			Width:    plotWidth,
			Height:   plotHeight,
		}); err != nil {
			return paths, fmt.Errorf("failed plotting %v: %w", t.Name, err)
		}
		paths = append(paths, op)
	}
	return paths, nil
}

// writePlotData writes t's rows to p in gnuplot's format, i.e. lines with
// tab-separated values: the label key and the count.
func writePlotData(p string, t *aggregate.Table, labelKey int) error {
	fw, err := filewriter.New(p)
	if err != nil {
		return err
	}
	for _, r := range t.Rows {
		label := strings.NewReplacer("\t", " ", "\n", " ").Replace(r.Keys[labelKey])
		fw.Printf("%s\t%d\n", label, r.Count)
	}
	return fw.Close()
}
