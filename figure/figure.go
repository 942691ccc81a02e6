// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

// Package figure renders aggregate tables as static SVG charts and HTML tables.
package figure

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/derat/mortalidad/aggregate"
	"github.com/derat/mortalidad/geo"
)

// Default chart dimensions in pixels.
const (
	chartWidth  = 1100
	chartHeight = 450
)

// Figure is a rendered chart ready to be placed on a page.
type Figure struct {
	Name  string        // identifier of the source table, e.g. "meses"
	Title string        // heading shown above the chart
	Body  template.HTML // inline SVG or HTML markup
}

// printer formats numbers the way Colombian readers expect, e.g. "12.345".
var printer = message.NewPrinter(language.Spanish)

func formatCount(n int) string { return printer.Sprintf("%d", n) }

// countFormatter formats axis values as whole numbers.
func countFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return formatCount(int(f))
	}
	return ""
}

// Build renders the dashboard's figures from set in page order:
// map, line, bar, pie, table, histogram and stacked bar.
func Build(set *aggregate.Set, bs *geo.Boundaries) ([]Figure, error) {
	var figs []Figure
	for _, fn := range []func() (Figure, error){
		func() (Figure, error) { return Choropleth(set.Departments, bs) },
		func() (Figure, error) { return Line(set.Months) },
		func() (Figure, error) { return Bar(set.Homicides, 0) },
		func() (Figure, error) { return Donut(set.LeastDeaths) },
		func() (Figure, error) { return Table(set.Causes) },
		func() (Figure, error) { return Bar(set.AgeGroups, 1) },
		func() (Figure, error) { return StackedBar(set.SexByDepartment) },
	} {
		f, err := fn()
		if err != nil {
			return nil, err
		}
		figs = append(figs, f)
	}
	return figs, nil
}

// renderable is implemented by go-chart's chart types.
type renderable interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

// render renders c as SVG and wraps the result in a Figure.
func render(t *aggregate.Table, c renderable) (Figure, error) {
	var b bytes.Buffer
	if err := c.Render(chart.SVG, &b); err != nil {
		return Figure{}, fmt.Errorf("failed rendering %v: %w", t.Name, err)
	}
	return newFigure(t, b.String()), nil
}

func newFigure(t *aggregate.Table, body string) Figure {
	return Figure{Name: t.Name, Title: t.Title, Body: template.HTML(body)}
}

// empty returns a placeholder figure for a table without rows.
// go-chart refuses to render charts without values.
func empty(t *aggregate.Table) Figure {
	return newFigure(t, `<p class="empty">Sin datos</p>`)
}

// maxCount returns the largest count in t, or 1 if t has no positive counts.
func maxCount(t *aggregate.Table) float64 {
	max := 1
	for _, r := range t.Rows {
		if r.Count > max {
			max = r.Count
		}
	}
	return float64(max)
}

// Line renders a line chart of counts per month with one tick per month.
// Each row of t must have a single numeric key.
func Line(t *aggregate.Table) (Figure, error) {
	if len(t.Rows) == 0 {
		return empty(t), nil
	}
	xs := make([]float64, len(t.Rows))
	ys := make([]float64, len(t.Rows))
	// Unlabeled ticks half a month beyond the data set the x range, since
	// go-chart derives it from the ticks. This also keeps a lone month drawable.
	ticks := make([]chart.Tick, 0, len(t.Rows)+2)
	for i, r := range t.Rows {
		m, err := strconv.Atoi(r.Keys[0])
		if err != nil {
			return Figure{}, fmt.Errorf("bad month %q in %v", r.Keys[0], t.Name)
		}
		xs[i], ys[i] = float64(m), float64(r.Count)
		ticks = append(ticks, chart.Tick{Value: xs[i], Label: r.Keys[0]})
	}
	ticks = append([]chart.Tick{{Value: xs[0] - 0.5}}, ticks...)
	ticks = append(ticks, chart.Tick{Value: xs[len(xs)-1] + 0.5})

	c := chart.Chart{
		Width:  chartWidth,
		Height: chartHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:  t.Columns[0],
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name:           "Número de Muertes",
			Range:          &chart.ContinuousRange{Min: 0, Max: maxCount(t) * 1.1},
			ValueFormatter: countFormatter,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    t.Columns[len(t.Columns)-1],
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: seriesColor,
					StrokeWidth: 3,
					DotColor:    seriesColor,
					DotWidth:    4,
				},
			},
		},
	}
	return render(t, c)
}
