package finance

import (
	"errors"
	"math"
	"testing"

	"github.com/katiamach/wind-viability-report/internal/model"
	"github.com/tj/assert"
)

func defaultParams() model.Params {
	return model.Params{
		Region:       model.Europe,
		GridSize:     5,
		TurbineArea:  12400,
		Efficiency:   0.4,
		PricePerKWh:  0.12,
		Capex:        1_500_000,
		Opex:         65_000,
		DiscountRate: 0.07,
		Lifetime:     20,
		TopN:         3,
	}
}

func TestEnergy(t *testing.T) {
	expected := 0.5 * 1.225 * 512 * 10000 * 0.4 * 8760 / 1e6
	assert.InDelta(t, expected, Energy(8, 10000, 0.4), 1e-9)
	assert.InDelta(t, 10988.544, Energy(8, 10000, 0.4), 1e-6)
	assert.Equal(t, 0.0, Energy(0, 10000, 0.4))
}

func TestRevenue(t *testing.T) {
	assert.InDelta(t, 120_000, Revenue(1000, 0.12), 1e-9)
}

func TestCashFlows(t *testing.T) {
	flows := CashFlows(1000, 150, 3)
	assert.Equal(t, []float64{-1000, 150, 150, 150}, flows)
	assert.Len(t, CashFlows(1000, 150, 20), 21)
}

func TestNPVMatchesAnnuity(t *testing.T) {
	const (
		capex = 1_000_000.0
		net   = 150_000.0
		rate  = 0.07
		years = 20
	)

	annuity := net*(1-math.Pow(1+rate, -years))/rate - capex
	assert.InDelta(t, annuity, NPV(rate, capex, net, years), 1e-6)
	assert.InDelta(t, annuity, SeriesNPV(rate, CashFlows(capex, net, years)), 1e-6)
}

func TestIRR(t *testing.T) {
	cases := []struct {
		name  string
		flows []float64
		isNil bool
	}{
		{name: "single period", flows: []float64{-100, 110}},
		{name: "annuity", flows: CashFlows(1_000_000, 150_000, 20)},
		{name: "negative rate", flows: []float64{-100, 40, 40}},
		{name: "no inflow", flows: []float64{-100, -10, -10}, isNil: true},
		{name: "no outflow", flows: []float64{100, 10}, isNil: true},
		{name: "flat zero", flows: []float64{-100, 0, 0}, isNil: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			irr := IRR(tc.flows)
			if tc.isNil {
				assert.Nil(t, irr)
				return
			}

			assert.NotNil(t, irr)
			assert.InDelta(t, 0, SeriesNPV(*irr, tc.flows), 1e-6)
		})
	}

	assert.InDelta(t, 0.1, *IRR([]float64{-100, 110}), 1e-9)
	assert.True(t, *IRR([]float64{-100, 40, 40}) < 0)
}

func TestPayback(t *testing.T) {
	cases := []struct {
		name     string
		flows    []float64
		expected *int
	}{
		{name: "third year", flows: []float64{-100, 40, 40, 40}, expected: intPtr(3)},
		{name: "exact break even is not payback", flows: []float64{-100, 50, 50, 1}, expected: intPtr(3)},
		{name: "first year", flows: []float64{-100, 200}, expected: intPtr(1)},
		{name: "never", flows: []float64{-100, 10, 10}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Payback(tc.flows))
		})
	}
}

func TestAnalyze(t *testing.T) {
	p := defaultParams()

	res, err := Analyze("Ireland", 8, p)
	assert.NoError(t, err)

	energy := Energy(8, p.TurbineArea, p.Efficiency)
	revenue := energy * 1000 * p.PricePerKWh
	net := revenue - p.Opex

	assert.Equal(t, "Ireland", res.Country)
	assert.Equal(t, 8.0, res.AvgWindSpeed)
	assert.InDelta(t, revenue, res.RevenuePerYear, 1e-9)
	assert.Len(t, res.CashFlows, p.Lifetime+1)
	assert.Equal(t, -p.Capex, res.CashFlows[0])
	assert.Equal(t, net, res.CashFlows[p.Lifetime])
	assert.InDelta(t, NPV(p.DiscountRate, p.Capex, net, p.Lifetime), res.NPV, 1e-9)
	assert.InDelta(t, res.NPV/p.Capex, res.Rentability, 1e-12)
	assert.NotNil(t, res.IRR)
	assert.NotNil(t, res.Payback)
}

func TestAnalyzeUnprofitable(t *testing.T) {
	p := defaultParams()

	// revenue at 1 m/s is far below opex
	res, err := Analyze("Calm", 1, p)
	assert.NoError(t, err)
	assert.Nil(t, res.IRR)
	assert.Nil(t, res.Payback)
	assert.True(t, res.NPV < -p.Capex)
	assert.True(t, res.Rentability < -1)
}

func TestAnalyzeInvalid(t *testing.T) {
	p := defaultParams()
	p.Capex = 0
	_, err := Analyze("X", 8, p)
	assert.True(t, errors.Is(err, ErrInvalidParams))

	p = defaultParams()
	p.Lifetime = 0
	_, err = Analyze("X", 8, p)
	assert.True(t, errors.Is(err, ErrInvalidParams))
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	p := defaultParams()

	first, err := Analyze("Denmark", 7.3, p)
	assert.NoError(t, err)
	second, err := Analyze("Denmark", 7.3, p)
	assert.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, math.Float64bits(*first.IRR), math.Float64bits(*second.IRR))
	assert.Equal(t, math.Float64bits(first.NPV), math.Float64bits(second.NPV))
}

func TestAnalyzeAll(t *testing.T) {
	stats := []model.CountryStat{
		{Country: "A", MeanWindSpeed: 9},
		{Country: "B", MeanWindSpeed: 4},
	}

	results, err := AnalyzeAll(stats, defaultParams())
	assert.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, "A", results[0].Country)
	assert.True(t, results[0].NPV > results[1].NPV)
}

func intPtr(v int) *int {
	return &v
}
