// Package model contains the data passed between the pipeline stages.
package model

import "time"

// GridPoint is a single sampling location in degrees.
type GridPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ForecastRecord is the decoded payload of one successful forecast request.
type ForecastRecord struct {
	Timestamps []int64   `json:"ts"`
	WindU      []float64 `json:"windU"`
	WindV      []float64 `json:"windV"`
	AcquiredAt time.Time `json:"acquiredAt"`
}

// ForecastResult pairs a requested point with its record. Record is nil when
// the request failed.
type ForecastResult struct {
	Point  GridPoint
	Record *ForecastRecord
}

// WindObservation is the representative wind speed of one point.
type WindObservation struct {
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	AvgWindSpeed float64   `json:"avgWindSpeed"`
	AcquiredAt   time.Time `json:"acquiredAt"`
}

// CountryAssignment is an observation located inside a country polygon.
type CountryAssignment struct {
	WindObservation
	Country   string `json:"country"`
	Continent string `json:"continent"`
}

// CountryStat holds the mean wind speed of all observations of a country.
type CountryStat struct {
	Country       string  `json:"country"`
	Continent     string  `json:"continent"`
	MeanWindSpeed float64 `json:"meanWindSpeed"`
	Points        int     `json:"points"`
}

// FinancialResult is the outcome of the financial model for one country.
// IRR and Payback are nil when not applicable.
type FinancialResult struct {
	Country        string    `json:"country"`
	AvgWindSpeed   float64   `json:"avgWindSpeed"`
	EnergyMWh      float64   `json:"energyMWh"`
	RevenuePerYear float64   `json:"revenuePerYear"`
	CashFlows      []float64 `json:"cashFlows"`
	NPV            float64   `json:"npv"`
	IRR            *float64  `json:"irr"`
	Payback        *int      `json:"payback"`
	Rentability    float64   `json:"rentability"`
}

// Params is the parameter set of one run.
type Params struct {
	Region       Region  `json:"region"`
	GridSize     int     `json:"gridSize"`
	TurbineArea  float64 `json:"turbineArea"`
	Efficiency   float64 `json:"efficiency"`
	PricePerKWh  float64 `json:"pricePerKWh"`
	Capex        float64 `json:"capex"`
	Opex         float64 `json:"opex"`
	DiscountRate float64 `json:"discountRate"` // fraction, 0.07 for 7%
	Lifetime     int     `json:"lifetime"`
	TopN         int     `json:"topN"`
}
