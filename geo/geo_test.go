// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

package geo

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/twpayne/go-geom"
)

// testGeoJSON describes two square departments side by side and a multipolygon island group.
const testGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"NOMBRE_DPT": "A", "DPTO": "01"},
     "geometry": {"type": "Polygon", "coordinates": [[[0,0],[1,0],[1,1],[0,1],[0,0]]]}},
    {"type": "Feature", "properties": {"NOMBRE_DPT": "B", "DPTO": "02"},
     "geometry": {"type": "Polygon", "coordinates": [[[1,0],[2,0],[2,1],[1,1],[1,0]]]}},
    {"type": "Feature", "properties": {"NOMBRE_DPT": "ISLAS", "DPTO": "88"},
     "geometry": {"type": "MultiPolygon", "coordinates": [
       [[[10,10],[11,10],[11,11],[10,10]]],
       [[[12,12],[13,12],[13,13],[12,12]]]
     ]}}
  ]
}`

func TestParse(t *testing.T) {
	bs, err := Parse([]byte(testGeoJSON), DefaultKeyProperty)
	if err != nil {
		t.Fatal("Parse failed: ", err)
	}
	if len(bs.Features) != 3 {
		t.Fatalf("Parse returned %d features; want 3", len(bs.Features))
	}
	for i, want := range []string{"A", "B", "ISLAS"} {
		if got := bs.Features[i].Name; got != want {
			t.Errorf("Feature %d name = %q; want %q", i, got, want)
		}
	}
	if f, ok := bs.Lookup("ISLAS"); !ok {
		t.Error("Lookup(ISLAS) failed")
	} else if _, ok := f.Geometry.(*geom.MultiPolygon); !ok {
		t.Errorf("ISLAS geometry is %T; want *geom.MultiPolygon", f.Geometry)
	}
	if _, ok := bs.Lookup("BOGOTÁ"); ok {
		t.Error("Lookup(BOGOTÁ) unexpectedly succeeded")
	}

	// The other property can also be used as a key.
	if bs, err := Parse([]byte(testGeoJSON), "DPTO"); err != nil {
		t.Error("Parse with DPTO failed: ", err)
	} else if _, ok := bs.Lookup("88"); !ok {
		t.Error("Lookup(88) failed with DPTO key")
	}
}

func TestParse_Errors(t *testing.T) {
	for _, tc := range []struct {
		desc string
		in   string
		key  string
	}{
		{"invalid JSON", `{"type":`, DefaultKeyProperty},
		{"not a collection", `{"type":"Feature"}`, DefaultKeyProperty},
		{"missing key", testGeoJSON, "NAME"},
		{"null geometry", `{"type":"FeatureCollection","features":[
			{"type":"Feature","properties":{"NOMBRE_DPT":"A"},"geometry":null}]}`, DefaultKeyProperty},
		{"duplicate name", `{"type":"FeatureCollection","features":[
			{"type":"Feature","properties":{"NOMBRE_DPT":"A"},"geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}},
			{"type":"Feature","properties":{"NOMBRE_DPT":"A"},"geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}}]}`,
			DefaultKeyProperty},
		{"malformed geometry", `{"type":"FeatureCollection","features":[
			{"type":"Feature","properties":{"NOMBRE_DPT":"A"},"geometry":{"type":"Polygon","coordinates":"x"}}]}`,
			DefaultKeyProperty},
	} {
		if _, err := Parse([]byte(tc.in), tc.key); err == nil {
			t.Errorf("Parse unexpectedly succeeded for %v", tc.desc)
		}
	}

	const point = `{"type":"FeatureCollection","features":[
		{"type":"Feature","properties":{"NOMBRE_DPT":"A"},"geometry":{"type":"Point","coordinates":[1,2]}}]}`
	if _, err := Parse([]byte(point), DefaultKeyProperty); !errors.Is(err, ErrUnsupportedGeometry) {
		t.Errorf("Parse of point returned %v; want %v", err, ErrUnsupportedGeometry)
	}
}

func TestLoadFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "deps.geojson")
	if err := os.WriteFile(p, []byte(testGeoJSON), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(p, DefaultKeyProperty); err != nil {
		t.Error("LoadFile failed: ", err)
	}
	if _, err := LoadFile(p+".missing", DefaultKeyProperty); err == nil {
		t.Error("LoadFile unexpectedly succeeded for missing file")
	}
}

func TestBounds(t *testing.T) {
	bs, err := Parse([]byte(testGeoJSON), DefaultKeyProperty)
	if err != nil {
		t.Fatal("Parse failed: ", err)
	}
	for _, tc := range []struct {
		names                  []string
		minX, minY, maxX, maxY float64
	}{
		{[]string{"A"}, 0, 0, 1, 1},
		{[]string{"A", "B", "SIN DATOS"}, 0, 0, 2, 1},
		{[]string{"SIN DATOS"}, 0, 0, 13, 13}, // falls back to everything
		{nil, 0, 0, 13, 13},
	} {
		b := bs.Bounds(tc.names)
		if b.Min(0) != tc.minX || b.Min(1) != tc.minY || b.Max(0) != tc.maxX || b.Max(1) != tc.maxY {
			t.Errorf("Bounds(%q) = [%v %v %v %v]; want [%v %v %v %v]", tc.names,
				b.Min(0), b.Min(1), b.Max(0), b.Max(1), tc.minX, tc.minY, tc.maxX, tc.maxY)
		}
	}
}

func TestProjection(t *testing.T) {
	bs, err := Parse([]byte(testGeoJSON), DefaultKeyProperty)
	if err != nil {
		t.Fatal("Parse failed: ", err)
	}
	// A and B together span 2x1 degrees near the equator, so a 220x120 canvas with
	// 10 pixels of padding fits them exactly at 100 pixels per degree.
	p := NewProjection(bs.Bounds([]string{"A", "B"}), 220, 120, 10)
	for _, tc := range []struct {
		c    geom.Coord
		x, y float64
	}{
		{geom.Coord{0, 1}, 10, 10},
		{geom.Coord{2, 0}, 210, 110},
	} {
		x, y := p.Point(tc.c)
		if diff := x - tc.x; diff > 0.5 || diff < -0.5 {
			t.Errorf("Point(%v) x = %v; want %v", tc.c, x, tc.x)
		}
		if diff := y - tc.y; diff > 0.5 || diff < -0.5 {
			t.Errorf("Point(%v) y = %v; want %v", tc.c, y, tc.y)
		}
	}

	a, _ := bs.Lookup("A")
	if path := p.Path(a.Geometry); !strings.HasPrefix(path, "M") || strings.Count(path, "Z") != 1 {
		t.Errorf("Path(A) = %q; want a single closed ring", path)
	}
	islas, _ := bs.Lookup("ISLAS")
	if path := p.Path(islas.Geometry); strings.Count(path, "Z") != 2 {
		t.Errorf("Path(ISLAS) = %q; want two closed rings", path)
	}
	if path := p.Path(geom.NewPointFlat(geom.XY, []float64{1, 1})); path != "" {
		t.Errorf("Path(point) = %q; want empty", path)
	}
}

func TestProjection_Empty(t *testing.T) {
	p := NewProjection(geom.NewBounds(geom.XY), 100, 100, 0)
	if x, y := p.Point(geom.Coord{3, 4}); x != 3 || y != -4 {
		t.Errorf("Point with empty bounds = (%v, %v); want (3, -4)", x, y)
	}
}
