// Package chart prepares plot series from pipeline results and renders them
// as PNG images.
package chart

import (
	"github.com/katiamach/wind-viability-report/internal/boundaries"
	"github.com/katiamach/wind-viability-report/internal/model"
	"github.com/paulmach/orb"
	"gonum.org/v1/plot/plotter"
)

// CoverageSeries splits fetched points into those with and without a
// forecast. X is longitude, Y is latitude.
func CoverageSeries(results []model.ForecastResult) (plotter.XYs, plotter.XYs) {
	var fetched, failed plotter.XYs

	for _, r := range results {
		xy := plotter.XY{X: r.Point.Longitude, Y: r.Point.Latitude}
		if r.Record != nil {
			fetched = append(fetched, xy)
		} else {
			failed = append(failed, xy)
		}
	}

	return fetched, failed
}

// HeatmapSeries returns longitude, latitude and average wind speed per observation.
func HeatmapSeries(observations []model.WindObservation) plotter.XYZs {
	xyz := make(plotter.XYZs, 0, len(observations))
	for _, o := range observations {
		xyz = append(xyz, plotter.XYZ{X: o.Longitude, Y: o.Latitude, Z: o.AvgWindSpeed})
	}

	return xyz
}

// Area is a country shape with its rentability, if one was computed.
type Area struct {
	Country     string
	Shape       orb.MultiPolygon
	Rentability float64
	HasValue    bool
}

// ChoroplethSeries attaches rentability to every country shape of the dataset.
func ChoroplethSeries(features []boundaries.Feature, results []model.FinancialResult) []Area {
	byCountry := make(map[string]float64, len(results))
	for _, r := range results {
		byCountry[r.Country] = r.Rentability
	}

	areas := make([]Area, 0, len(features))
	for _, f := range features {
		v, ok := byCountry[f.Name]
		areas = append(areas, Area{Country: f.Name, Shape: f.Shape, Rentability: v, HasValue: ok})
	}

	return areas
}

// CashFlow holds the yearly and cumulative cash flow of one country.
type CashFlow struct {
	Country    string
	Annual     plotter.XYs
	Cumulative plotter.XYs
}

// CashFlowSeries returns year/cash-flow pairs for every result.
func CashFlowSeries(results []model.FinancialResult) []CashFlow {
	series := make([]CashFlow, 0, len(results))

	for _, r := range results {
		cf := CashFlow{
			Country:    r.Country,
			Annual:     make(plotter.XYs, len(r.CashFlows)),
			Cumulative: make(plotter.XYs, len(r.CashFlows)),
		}

		var total float64
		for year, v := range r.CashFlows {
			total += v
			cf.Annual[year] = plotter.XY{X: float64(year), Y: v}
			cf.Cumulative[year] = plotter.XY{X: float64(year), Y: total}
		}

		series = append(series, cf)
	}

	return series
}

// PaybackIRR is one bar group of the payback/IRR chart.
type PaybackIRR struct {
	Country    string
	IRRPercent *float64
	Payback    *int
}

// PaybackIRRSeries extracts IRR in percent and payback year per result.
func PaybackIRRSeries(results []model.FinancialResult) []PaybackIRR {
	series := make([]PaybackIRR, 0, len(results))

	for _, r := range results {
		item := PaybackIRR{Country: r.Country, Payback: r.Payback}
		if r.IRR != nil {
			pct := *r.IRR * 100
			item.IRRPercent = &pct
		}
		series = append(series, item)
	}

	return series
}
