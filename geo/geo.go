// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

// Package geo loads administrative boundaries from GeoJSON and projects them for drawing.
package geo

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// DefaultKeyProperty is the feature property holding department names in
// the Colombian departments GeoJSON file.
const DefaultKeyProperty = "NOMBRE_DPT"

// ErrUnsupportedGeometry is wrapped by errors for features that aren't polygons.
var ErrUnsupportedGeometry = errors.New("unsupported geometry")

// Feature is a named region.
type Feature struct {
	Name     string
	Geometry geom.T // *geom.Polygon or *geom.MultiPolygon
}

// Boundaries holds named regions in document order.
type Boundaries struct {
	Features []*Feature
	byName   map[string]*Feature
}

// featureCollection is decoded first so each geometry can be handed to geojson.Unmarshal.
type featureCollection struct {
	Type     string `json:"type"`
	Features []struct {
		Properties map[string]interface{} `json:"properties"`
		Geometry   json.RawMessage        `json:"geometry"`
	} `json:"features"`
}

// LoadFile reads the GeoJSON FeatureCollection at p.
// Each feature is named by its keyProp property.
func LoadFile(p, keyProp string) (*Boundaries, error) {
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, err
	}
	return Parse(b, keyProp)
}

// Parse parses a GeoJSON FeatureCollection.
// Each feature is named by its keyProp property, which must be a unique string.
func Parse(data []byte, keyProp string) (*Boundaries, error) {
	var fc featureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed decoding GeoJSON: %w", err)
	}
	if fc.Type != "FeatureCollection" {
		return nil, fmt.Errorf("got GeoJSON %q instead of FeatureCollection", fc.Type)
	}

	bs := &Boundaries{byName: make(map[string]*Feature, len(fc.Features))}
	for i, f := range fc.Features {
		name, ok := f.Properties[keyProp].(string)
		if !ok {
			return nil, fmt.Errorf("feature %d lacks string property %q", i, keyProp)
		}
		if _, ok := bs.byName[name]; ok {
			return nil, fmt.Errorf("feature %d has duplicate name %q", i, name)
		}
		if len(f.Geometry) == 0 || string(f.Geometry) == "null" {
			return nil, fmt.Errorf("feature %q has no geometry", name)
		}
		var g geom.T
		if err := geojson.Unmarshal(f.Geometry, &g); err != nil {
			return nil, fmt.Errorf("feature %q has bad geometry: %w", name, err)
		}
		switch g.(type) {
		case *geom.Polygon, *geom.MultiPolygon:
		default:
			return nil, fmt.Errorf("feature %q: %w %T", name, ErrUnsupportedGeometry, g)
		}
		feat := &Feature{Name: name, Geometry: g}
		bs.Features = append(bs.Features, feat)
		bs.byName[name] = feat
	}
	return bs, nil
}

// Lookup returns the feature with the supplied name.
func (bs *Boundaries) Lookup(name string) (*Feature, bool) {
	f, ok := bs.byName[name]
	return f, ok
}

// Bounds returns the bounding box of the named features.
// Names without features are ignored. If none of the names match,
// the bounds of all features are returned.
func (bs *Boundaries) Bounds(names []string) *geom.Bounds {
	b := geom.NewBounds(geom.XY)
	matched := false
	for _, n := range names {
		if f, ok := bs.byName[n]; ok {
			b.Extend(f.Geometry)
			matched = true
		}
	}
	if !matched {
		for _, f := range bs.Features {
			b.Extend(f.Geometry)
		}
	}
	return b
}
