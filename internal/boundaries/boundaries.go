// Package boundaries loads country polygons and answers point membership queries.
package boundaries

import (
	"errors"
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

var (
	ErrDatasetUnreadable = errors.New("country boundaries dataset is unreadable")
	ErrEmptyDataset      = errors.New("country boundaries dataset has no usable features")
)

// Country identifies a polygon of the dataset.
type Country struct {
	Name      string
	Continent string
}

// Feature is one country with its planar shape, kept for drawing.
type Feature struct {
	Country
	Shape orb.MultiPolygon
}

type indexedFeature struct {
	Feature
	bound orb.Bound
}

// Atlas is an in-memory country boundaries dataset.
type Atlas struct {
	nameKeys      []string
	continentKeys []string
	features      []indexedFeature
}

// Option applies a configuration option to the Atlas.
type Option func(*Atlas)

// WithNameKeys sets the feature properties looked up for the country name, in order.
func WithNameKeys(keys ...string) Option {
	return func(a *Atlas) {
		if len(keys) > 0 {
			a.nameKeys = keys
		}
	}
}

// WithContinentKeys sets the feature properties looked up for the continent, in order.
func WithContinentKeys(keys ...string) Option {
	return func(a *Atlas) {
		if len(keys) > 0 {
			a.continentKeys = keys
		}
	}
}

// Load reads a GeoJSON FeatureCollection of country polygons from path.
func Load(path string, opts ...Option) (*Atlas, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatasetUnreadable, err)
	}

	return Parse(data, opts...)
}

// Parse builds an Atlas from GeoJSON bytes. Features without a name or with a
// non-polygonal geometry are skipped.
func Parse(data []byte, opts ...Option) (*Atlas, error) {
	a := &Atlas{
		nameKeys:      []string{"NAME", "ADMIN", "name"},
		continentKeys: []string{"CONTINENT", "continent"},
	}

	for _, opt := range opts {
		opt(a)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatasetUnreadable, err)
	}

	for _, f := range fc.Features {
		name := lookup(f.Properties, a.nameKeys)
		if name == "" {
			continue
		}

		var shape orb.MultiPolygon
		switch g := f.Geometry.(type) {
		case orb.Polygon:
			shape = usable(orb.MultiPolygon{g})
		case orb.MultiPolygon:
			shape = usable(g)
		}
		if len(shape) == 0 {
			continue
		}

		a.features = append(a.features, indexedFeature{
			Feature: Feature{
				Country: Country{Name: name, Continent: lookup(f.Properties, a.continentKeys)},
				Shape:   shape,
			},
			bound: shape.Bound(),
		})
	}

	if len(a.features) == 0 {
		return nil, ErrEmptyDataset
	}

	return a, nil
}

// Locate returns the first country whose polygon contains the point.
// Coordinates are treated as planar lon/lat, like the dataset itself.
func (a *Atlas) Locate(lat, lon float64) (Country, bool) {
	point := orb.Point{lon, lat}

	for _, f := range a.features {
		if !f.bound.Contains(point) {
			continue
		}

		if planar.MultiPolygonContains(f.Shape, point) {
			return f.Country, true
		}
	}

	return Country{}, false
}

// Features returns the countries in dataset order.
func (a *Atlas) Features() []Feature {
	features := make([]Feature, 0, len(a.features))
	for _, f := range a.features {
		features = append(features, f.Feature)
	}

	return features
}

// Len returns the number of usable features.
func (a *Atlas) Len() int {
	return len(a.features)
}

func lookup(props geojson.Properties, keys []string) string {
	for _, k := range keys {
		if v, ok := props[k].(string); ok && v != "" {
			return v
		}
	}

	return ""
}

// usable drops polygons whose outer ring cannot enclose an area.
func usable(shape orb.MultiPolygon) orb.MultiPolygon {
	out := make(orb.MultiPolygon, 0, len(shape))
	for _, p := range shape {
		if len(p) == 0 || len(p[0]) < 4 {
			continue
		}
		out = append(out, p)
	}

	return out
}
