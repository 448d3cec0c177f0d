// Package grid builds the rectangular sampling mesh over a region.
package grid

import (
	"errors"
	"fmt"

	"github.com/katiamach/wind-viability-report/internal/model"
	"github.com/umahmood/haversine"
)

var (
	ErrInvalidResolution = errors.New("grid resolution should be at least 1")
	ErrUnknownRegion     = errors.New("unknown region")
)

// Generate returns n*n points covering the region's box, latitude-major.
// Both edges of the box are included; n == 1 yields the south-west corner.
func Generate(region model.Region, n int) ([]model.GridPoint, error) {
	if n < 1 {
		return nil, ErrInvalidResolution
	}

	box, ok := region.Box()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRegion, region)
	}

	lats := linspace(box.MinLat, box.MaxLat, n)
	lons := linspace(box.MinLon, box.MaxLon, n)

	points := make([]model.GridPoint, 0, n*n)
	for _, lat := range lats {
		for _, lon := range lons {
			points = append(points, model.GridPoint{Latitude: lat, Longitude: lon})
		}
	}

	return points, nil
}

// Spacing returns the approximate distance in km between neighbouring points
// along a parallel and along a meridian, measured at the box centre. A single
// point grid has zero spacing.
func Spacing(region model.Region, n int) (float64, float64, error) {
	if n < 1 {
		return 0, 0, ErrInvalidResolution
	}

	box, ok := region.Box()
	if !ok {
		return 0, 0, fmt.Errorf("%w: %s", ErrUnknownRegion, region)
	}

	if n == 1 {
		return 0, 0, nil
	}

	midLat := (box.MinLat + box.MaxLat) / 2
	stepLat := (box.MaxLat - box.MinLat) / float64(n-1)
	stepLon := (box.MaxLon - box.MinLon) / float64(n-1)

	origin := haversine.Coord{Lat: midLat, Lon: box.MinLon}
	_, kmLon := haversine.Distance(origin, haversine.Coord{Lat: midLat, Lon: box.MinLon + stepLon})
	_, kmLat := haversine.Distance(origin, haversine.Coord{Lat: midLat + stepLat, Lon: box.MinLon})

	return kmLon, kmLat, nil
}

// linspace returns n evenly spaced values from start to end. The last value is
// pinned to end to keep the box edges exact.
func linspace(start, end float64, n int) []float64 {
	if n == 1 {
		return []float64{start}
	}

	step := (end - start) / float64(n-1)
	values := make([]float64, n)
	for i := range values {
		values[i] = start + float64(i)*step
	}
	values[n-1] = end

	return values
}
