// Package country joins observations to countries and ranks them by wind.
package country

import (
	"sort"

	"github.com/katiamach/wind-viability-report/internal/boundaries"
	"github.com/katiamach/wind-viability-report/internal/model"
	"gonum.org/v1/gonum/stat"
)

// Locator finds the country enclosing a point.
type Locator interface {
	Locate(lat, lon float64) (boundaries.Country, bool)
}

// Assign joins observations with their enclosing country. Observations
// outside every polygon are dropped.
func Assign(observations []model.WindObservation, locator Locator) []model.CountryAssignment {
	assignments := make([]model.CountryAssignment, 0, len(observations))

	for _, o := range observations {
		c, ok := locator.Locate(o.Latitude, o.Longitude)
		if !ok {
			continue
		}

		assignments = append(assignments, model.CountryAssignment{
			WindObservation: o,
			Country:         c.Name,
			Continent:       c.Continent,
		})
	}

	return assignments
}

// FilterRegion keeps the assignments on the region's continent. Global keeps all.
func FilterRegion(assignments []model.CountryAssignment, region model.Region) []model.CountryAssignment {
	if region == model.Global {
		return append([]model.CountryAssignment(nil), assignments...)
	}

	filtered := make([]model.CountryAssignment, 0, len(assignments))
	for _, a := range assignments {
		if a.Continent == string(region) {
			filtered = append(filtered, a)
		}
	}

	return filtered
}

// Stats groups assignments by country and sorts by mean wind speed,
// descending. Countries with equal means keep their first-seen order.
func Stats(assignments []model.CountryAssignment) []model.CountryStat {
	order := make([]string, 0)
	speeds := make(map[string][]float64)
	continents := make(map[string]string)

	for _, a := range assignments {
		if _, ok := speeds[a.Country]; !ok {
			order = append(order, a.Country)
			continents[a.Country] = a.Continent
		}
		speeds[a.Country] = append(speeds[a.Country], a.AvgWindSpeed)
	}

	stats := make([]model.CountryStat, 0, len(order))
	for _, name := range order {
		stats = append(stats, model.CountryStat{
			Country:       name,
			Continent:     continents[name],
			MeanWindSpeed: stat.Mean(speeds[name], nil),
			Points:        len(speeds[name]),
		})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].MeanWindSpeed > stats[j].MeanWindSpeed
	})

	return stats
}

// Top returns the names of the first n countries of ranked stats.
func Top(stats []model.CountryStat, n int) []string {
	if n > len(stats) {
		n = len(stats)
	}
	if n < 0 {
		n = 0
	}

	names := make([]string, 0, n)
	for _, s := range stats[:n] {
		names = append(names, s.Country)
	}

	return names
}
