// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

package figure

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/derat/mortalidad/aggregate"
	"github.com/derat/mortalidad/geo"
)

const (
	mapWidth   = 900
	mapHeight  = 800
	mapPadding = 20
)

// redScale holds evenly-spaced stops of a white-to-dark-red sequential scale.
var redScale = []drawing.Color{
	drawing.ColorFromHex("fff5f0"),
	drawing.ColorFromHex("fcbba1"),
	drawing.ColorFromHex("fb6a4a"),
	drawing.ColorFromHex("cb181d"),
	drawing.ColorFromHex("67000d"),
}

// scaleColor returns the color at position f (clamped to [0, 1]) along redScale.
func scaleColor(f float64) drawing.Color {
	if f <= 0 {
		return redScale[0]
	} else if f >= 1 {
		return redScale[len(redScale)-1]
	}
	pos := f * float64(len(redScale)-1)
	i := int(pos)
	frac := pos - float64(i)
	a, b := redScale[i], redScale[i+1]
	lerp := func(x, y uint8) uint8 { return uint8(float64(x) + (float64(y)-float64(x))*frac + 0.5) }
	return drawing.Color{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: 255}
}

type mapRegion struct {
	Name  string
	Count string
	Path  string
	Fill  string
}

type mapStop struct {
	Offset string
	Color  string
}

var choroplethTmpl = template.Must(template.New("").Parse(`<svg xmlns="http://www.w3.org/2000/svg" class="choropleth" width="{{.Width}}" height="{{.Height}}" viewBox="0 0 {{.Width}} {{.Height}}">
<defs><linearGradient id="scale-{{.ID}}" x1="0" y1="1" x2="0" y2="0">
{{- range .Stops}}<stop offset="{{.Offset}}" stop-color="{{.Color}}"/>{{end -}}
</linearGradient></defs>
{{- range .Regions}}
<path d="{{.Path}}" fill="{{.Fill}}" fill-rule="evenodd" stroke="#666" stroke-width="0.5"><title>{{.Name}}: {{.Count}}</title></path>
{{- end}}
<g class="legend" transform="translate({{.LegendX}},{{.Pad}})">
<text x="0" y="-6" font-size="12">{{.Label}}</text>
<rect width="16" height="200" fill="url(#scale-{{.ID}})" stroke="#999"/>
<text x="22" y="10" font-size="12">{{.Max}}</text>
<text x="22" y="200" font-size="12">{{.Min}}</text>
</g>
</svg>`))

// Choropleth renders a map shading each region of bs by its count in t,
// which must have the region name as its only key.
//
// The view is fitted to the regions that have data and regions without data
// aren't drawn. Names in t without a matching region are skipped.
func Choropleth(t *aggregate.Table, bs *geo.Boundaries) (Figure, error) {
	if len(t.Rows) == 0 {
		return empty(t), nil
	}

	var names []string
	min, max := -1, 0
	for _, r := range t.Rows {
		if _, ok := bs.Lookup(r.Keys[0]); !ok {
			continue
		}
		names = append(names, r.Keys[0])
		if min < 0 || r.Count < min {
			min = r.Count
		}
		if r.Count > max {
			max = r.Count
		}
	}
	if len(names) == 0 {
		return empty(t), nil
	}

	proj := geo.NewProjection(bs.Bounds(names), mapWidth-100, mapHeight, mapPadding)
	var regions []mapRegion
	for _, r := range t.Rows {
		f, ok := bs.Lookup(r.Keys[0])
		if !ok {
			continue
		}
		frac := 1.0
		if max > min {
			frac = float64(r.Count-min) / float64(max-min)
		}
		regions = append(regions, mapRegion{
			Name:  f.Name,
			Count: formatCount(r.Count),
			Path:  proj.Path(f.Geometry),
			Fill:  hexColor(scaleColor(frac)),
		})
	}

	var stops []mapStop
	for i, c := range redScale {
		stops = append(stops, mapStop{
			Offset: fmt.Sprintf("%d%%", i*100/(len(redScale)-1)),
			Color:  hexColor(c),
		})
	}

	var b bytes.Buffer
	if err := choroplethTmpl.Execute(&b, struct {
		ID            string
		Width, Height int
		Pad, LegendX  int
		Regions       []mapRegion
		Stops         []mapStop
		Label         string
		Min, Max      string
	}{
		ID:      t.Name,
		Width:   mapWidth,
		Height:  mapHeight,
		Pad:     mapPadding + 20,
		LegendX: mapWidth - 70,
		Regions: regions,
		Stops:   stops,
		Label:   "Número de Muertes",
		Min:     formatCount(min),
		Max:     formatCount(max),
	}); err != nil {
		return Figure{}, fmt.Errorf("failed rendering %v: %w", t.Name, err)
	}
	return newFigure(t, b.String()), nil
}
