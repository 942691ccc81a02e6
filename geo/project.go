// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

package geo

import (
	"math"
	"strconv"
	"strings"

	"github.com/twpayne/go-geom"
)

// Projection maps longitude/latitude coordinates into a width x height canvas
// with y increasing downward. An equirectangular projection scaled by the
// cosine of the central latitude keeps regions near the equator undistorted.
type Projection struct {
	minX, maxY float64 // top-left corner in degrees
	xScale     float64 // pixels per degree of longitude
	yScale     float64 // pixels per degree of latitude
	offX, offY float64 // centering offsets in pixels
}

// NewProjection returns a Projection that fits b into the canvas, leaving pad pixels
// on each side and preserving the aspect ratio.
func NewProjection(b *geom.Bounds, width, height, pad float64) Projection {
	if b == nil || b.IsEmpty() {
		return Projection{xScale: 1, yScale: 1}
	}
	minX, minY, maxX, maxY := b.Min(0), b.Min(1), b.Max(0), b.Max(1)
	aspect := math.Cos((minY + maxY) / 2 * math.Pi / 180)

	w := (maxX - minX) * aspect
	h := maxY - minY
	availW, availH := width-2*pad, height-2*pad
	scale := math.Inf(1)
	if w > 0 {
		scale = availW / w
	}
	if h > 0 {
		scale = math.Min(scale, availH/h)
	}
	if math.IsInf(scale, 1) {
		scale = 1 // single point
	}

	return Projection{
		minX:   minX,
		maxY:   maxY,
		xScale: scale * aspect,
		yScale: scale,
		offX:   pad + (availW-w*scale)/2,
		offY:   pad + (availH-h*scale)/2,
	}
}

// Point projects c.
func (p Projection) Point(c geom.Coord) (x, y float64) {
	return p.offX + (c.X()-p.minX)*p.xScale, p.offY + (p.maxY-c.Y())*p.yScale
}

// Path returns SVG path data for g's rings. Only polygons are drawn;
// other geometries produce an empty string.
func (p Projection) Path(g geom.T) string {
	var sb strings.Builder
	switch t := g.(type) {
	case *geom.Polygon:
		p.writePolygon(&sb, t)
	case *geom.MultiPolygon:
		for i := 0; i < t.NumPolygons(); i++ {
			p.writePolygon(&sb, t.Polygon(i))
		}
	}
	return sb.String()
}

func (p Projection) writePolygon(sb *strings.Builder, poly *geom.Polygon) {
	for i := 0; i < poly.NumLinearRings(); i++ {
		for j, c := range poly.LinearRing(i).Coords() {
			if j == 0 {
				sb.WriteString("M")
			} else {
				sb.WriteString("L")
			}
			x, y := p.Point(c)
			sb.WriteString(formatCoord(x))
			sb.WriteByte(' ')
			sb.WriteString(formatCoord(y))
		}
		sb.WriteString("Z")
	}
}

// formatCoord formats v with a tenth of a pixel of precision.
func formatCoord(v float64) string {
	return strconv.FormatFloat(math.Round(v*10)/10, 'f', -1, 64)
}
