package boundaries

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/tj/assert"
)

const testDataset = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"NAME": "Alpha", "CONTINENT": "Europe"},
      "geometry": {
        "type": "Polygon",
        "coordinates": [
          [[0, 40], [10, 40], [10, 50], [0, 50], [0, 40]],
          [[4, 44], [4, 46], [6, 46], [6, 44], [4, 44]]
        ]
      }
    },
    {
      "type": "Feature",
      "properties": {"name": "Beta", "continent": "Asia"},
      "geometry": {
        "type": "MultiPolygon",
        "coordinates": [
          [[[20, 40], [30, 40], [30, 50], [20, 50], [20, 40]]],
          [[[32, 40], [34, 40], [34, 42], [32, 42], [32, 40]]]
        ]
      }
    },
    {
      "type": "Feature",
      "properties": {"NAME": "Nowhere"},
      "geometry": {"type": "Point", "coordinates": [1, 1]}
    },
    {
      "type": "Feature",
      "properties": {},
      "geometry": {
        "type": "Polygon",
        "coordinates": [[[50, 0], [60, 0], [60, 10], [50, 0]]]
      }
    }
  ]
}`

func TestParseAndLocate(t *testing.T) {
	atlas, err := Parse([]byte(testDataset))
	assert.NoError(t, err)
	assert.Equal(t, 2, atlas.Len())

	cases := []struct {
		name     string
		lat, lon float64
		expected Country
		found    bool
	}{
		{name: "inside alpha", lat: 42, lon: 2, expected: Country{Name: "Alpha", Continent: "Europe"}, found: true},
		{name: "inside alpha hole", lat: 45, lon: 5},
		{name: "inside beta main part", lat: 45, lon: 25, expected: Country{Name: "Beta", Continent: "Asia"}, found: true},
		{name: "inside beta island", lat: 41, lon: 33, expected: Country{Name: "Beta", Continent: "Asia"}, found: true},
		{name: "sea", lat: 45, lon: 15},
		{name: "far away", lat: -30, lon: -60},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, ok := atlas.Locate(tc.lat, tc.lon)
			assert.Equal(t, tc.found, ok)
			assert.Equal(t, tc.expected, c)
		})
	}
}

func TestFeatures(t *testing.T) {
	atlas, err := Parse([]byte(testDataset))
	assert.NoError(t, err)

	features := atlas.Features()
	assert.Len(t, features, 2)
	assert.Equal(t, "Alpha", features[0].Name)
	assert.Len(t, features[0].Shape, 1)
	assert.Len(t, features[1].Shape, 2)
}

func TestLocateNearLongParallelEdge(t *testing.T) {
	data := `{"type":"FeatureCollection","features":[{"type":"Feature","properties":{"NAME":"Wideland","CONTINENT":"Europe"},
"geometry":{"type":"Polygon","coordinates":[[[-40,20],[60,20],[60,60],[-40,60],[-40,20]]]}}]}`

	atlas, err := Parse([]byte(data))
	assert.NoError(t, err)

	cases := []struct {
		name     string
		lat, lon float64
		found    bool
	}{
		{name: "near southern edge", lat: 25, lon: 10, found: true},
		{name: "near northern edge", lat: 59, lon: 10, found: true},
		{name: "just north of the box", lat: 61, lon: 10},
		{name: "just south of the box", lat: 19, lon: 10},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, ok := atlas.Locate(tc.lat, tc.lon)
			assert.Equal(t, tc.found, ok)
			if tc.found {
				assert.Equal(t, "Wideland", c.Name)
			}
		})
	}
}

func TestCustomKeys(t *testing.T) {
	data := `{"type":"FeatureCollection","features":[{"type":"Feature","properties":{"SOVEREIGNT":"Gamma","REGION_UN":"Africa"},
"geometry":{"type":"Polygon","coordinates":[[[0,0],[5,0],[5,5],[0,5],[0,0]]]}}]}`

	atlas, err := Parse([]byte(data), WithNameKeys("SOVEREIGNT"), WithContinentKeys("REGION_UN"))
	assert.NoError(t, err)

	c, ok := atlas.Locate(2, 2)
	assert.True(t, ok)
	assert.Equal(t, Country{Name: "Gamma", Continent: "Africa"}, c)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.geojson"))
	assert.True(t, errors.Is(err, ErrDatasetUnreadable))

	path := filepath.Join(t.TempDir(), "broken.geojson")
	assert.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	_, err = Load(path)
	assert.True(t, errors.Is(err, ErrDatasetUnreadable))

	_, err = Parse([]byte(`{"type":"FeatureCollection","features":[]}`))
	assert.True(t, errors.Is(err, ErrEmptyDataset))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "countries.geojson")
	assert.NoError(t, os.WriteFile(path, []byte(testDataset), 0o600))

	atlas, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, 2, atlas.Len())
}
