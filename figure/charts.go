// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

package figure

import (
	"bytes"
	"fmt"
	"html/template"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/derat/mortalidad/aggregate"
)

var (
	seriesColor = drawing.ColorFromHex("c0392b")

	// sexColors holds fixed colors for the sexes that appear in the dataset.
	sexColors = map[string]drawing.Color{
		"Masculino": drawing.ColorFromHex("1f77b4"),
		"Femenino":  drawing.ColorFromHex("e377c2"),
	}
	// extraColors is used in order for any other values.
	extraColors = []drawing.Color{
		drawing.ColorFromHex("7f7f7f"),
		drawing.ColorFromHex("bcbd22"),
		drawing.ColorFromHex("17becf"),
		drawing.ColorFromHex("ff7f0e"),
	}
)

func hexColor(c drawing.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// legendEntry describes a color used in a chart.
type legendEntry struct {
	Name  string
	Color template.CSS
}

// Bar renders a vertical bar chart with one bar per row of t.
// Bars are labeled with the row key at index labelKey.
func Bar(t *aggregate.Table, labelKey int) (Figure, error) {
	if len(t.Rows) == 0 {
		return empty(t), nil
	}
	bars := make([]chart.Value, len(t.Rows))
	for i, r := range t.Rows {
		bars[i] = chart.Value{
			Value: float64(r.Count),
			Label: r.Keys[labelKey],
			Style: chart.Style{FillColor: seriesColor, StrokeColor: seriesColor},
		}
	}

	barWidth := 120
	if len(bars) > 10 {
		barWidth = 40
	}
	return render(t, chart.BarChart{
		Width:    chartWidth,
		Height:   chartHeight,
		BarWidth: barWidth,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.Style{TextRotationDegrees: rotation(len(bars))},
		YAxis: chart.YAxis{
			Name:           t.Columns[len(t.Columns)-1],
			Range:          &chart.ContinuousRange{Min: 0, Max: maxCount(t) * 1.1},
			ValueFormatter: countFormatter,
		},
		Bars: bars,
	})
}

// rotation returns the x-axis label rotation to use for n bars.
func rotation(n int) float64 {
	if n > 10 {
		return 45
	}
	return 0
}

// Donut renders a donut chart with one slice per row of t, labeled with the
// row's first key and its share of the total.
func Donut(t *aggregate.Table) (Figure, error) {
	total := t.Total()
	if total == 0 {
		return empty(t), nil
	}
	vals := make([]chart.Value, len(t.Rows))
	for i, r := range t.Rows {
		pct := 100 * float64(r.Count) / float64(total)
		vals[i] = chart.Value{
			Value: float64(r.Count),
			Label: printer.Sprintf("%s %.1f%%", r.Keys[0], pct),
		}
	}
	return render(t, chart.DonutChart{
		Width:  chartHeight * 3 / 2,
		Height: chartHeight * 3 / 2,
		Values: vals,
	})
}

// stackLegendTmpl lists the colors used for each stack segment.
var stackLegendTmpl = template.Must(template.New("").Parse(`<ul class="legend">
{{- range .}}<li><span class="swatch" style="background: {{.Color}}"></span>{{.Name}}</li>{{end -}}
</ul>`))

// StackedBar renders a stacked bar chart from t, which must have two key columns.
// Each distinct first key becomes a bar and each distinct second key a colored segment.
func StackedBar(t *aggregate.Table) (Figure, error) {
	if len(t.Rows) == 0 {
		return empty(t), nil
	}

	// Rows are sorted by key, so all segments of a bar are adjacent.
	var bars []chart.StackedBar
	var legend []legendEntry
	colors := make(map[string]drawing.Color)
	colorFor := func(name string) drawing.Color {
		if c, ok := colors[name]; ok {
			return c
		}
		c, ok := sexColors[name]
		if !ok {
			c = extraColors[len(colors)%len(extraColors)]
		}
		colors[name] = c
		legend = append(legend, legendEntry{name, template.CSS(hexColor(c))})
		return c
	}

	const barWidth, barSpacing = 28, 6
	for _, r := range t.Rows {
		if len(bars) == 0 || bars[len(bars)-1].Name != r.Keys[0] {
			bars = append(bars, chart.StackedBar{Name: r.Keys[0], Width: barWidth})
		}
		c := colorFor(r.Keys[1])
		b := &bars[len(bars)-1]
		b.Values = append(b.Values, chart.Value{
			Value: float64(r.Count),
			Label: r.Keys[1],
			Style: chart.Style{FillColor: c, StrokeColor: c},
		})
	}

	width := chartWidth
	if w := len(bars)*(barWidth+barSpacing) + 120; w > width {
		width = w
	}
	fig, err := render(t, chart.StackedBarChart{
		Width:      width,
		Height:     chartHeight + 150,
		BarSpacing: barSpacing,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.Style{TextRotationDegrees: 90},
		Bars:  bars,
	})
	if err != nil {
		return Figure{}, err
	}

	var b bytes.Buffer
	if err := stackLegendTmpl.Execute(&b, legend); err != nil {
		return Figure{}, err
	}
	fig.Body += template.HTML(b.String())
	return fig, nil
}
