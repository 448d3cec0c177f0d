// Package finance implements the wind turbine investment model. All functions
// are pure; identical inputs give bit-identical outputs.
package finance

import (
	"errors"
	"fmt"
	"math"

	"github.com/katiamach/wind-viability-report/internal/model"
)

// Model constants.
const (
	AirDensity   = 1.225 // kg/m³
	HoursPerYear = 8760
)

const (
	irrLowerBound = -0.99
	irrUpperLimit = 1e6
	irrTolerance  = 1e-12
	irrMaxIter    = 500
)

var ErrInvalidParams = errors.New("invalid financial parameters")

// Energy returns the annual energy yield in MWh of a turbine with the given
// swept area (m²) and efficiency at a constant wind speed (m/s).
func Energy(speed, area, efficiency float64) float64 {
	return 0.5 * AirDensity * math.Pow(speed, 3) * area * efficiency * HoursPerYear / 1e6
}

// Revenue returns the yearly revenue of energyMWh sold at pricePerKWh.
func Revenue(energyMWh, pricePerKWh float64) float64 {
	return energyMWh * 1000 * pricePerKWh
}

// CashFlows returns [-capex, net, net, ...] with lifetime yearly entries.
func CashFlows(capex, net float64, lifetime int) []float64 {
	if lifetime < 0 {
		lifetime = 0
	}

	flows := make([]float64, lifetime+1)
	flows[0] = -capex
	for i := 1; i <= lifetime; i++ {
		flows[i] = net
	}

	return flows
}

// NPV discounts a constant yearly net cash flow over lifetime years and
// subtracts the initial investment.
func NPV(rate, capex, net float64, lifetime int) float64 {
	var sum float64
	for i := 1; i <= lifetime; i++ {
		sum += net / math.Pow(1+rate, float64(i))
	}

	return sum - capex
}

// SeriesNPV discounts an arbitrary series where index 0 is undiscounted.
func SeriesNPV(rate float64, cashFlows []float64) float64 {
	var sum float64
	for i, cf := range cashFlows {
		sum += cf / math.Pow(1+rate, float64(i))
	}

	return sum
}

// IRR returns the rate at which the series' NPV is zero, or nil when the
// series has no sign change or no root can be bracketed.
func IRR(cashFlows []float64) *float64 {
	var hasNeg, hasPos bool
	for _, cf := range cashFlows {
		hasNeg = hasNeg || cf < 0
		hasPos = hasPos || cf > 0
	}
	if !hasNeg || !hasPos {
		return nil
	}

	lo, hi := irrLowerBound, 1.0
	fLo, fHi := SeriesNPV(lo, cashFlows), SeriesNPV(hi, cashFlows)
	for sameSign(fLo, fHi) && hi < irrUpperLimit {
		hi *= 2
		fHi = SeriesNPV(hi, cashFlows)
	}
	if sameSign(fLo, fHi) {
		return nil
	}

	for i := 0; i < irrMaxIter && hi-lo > irrTolerance; i++ {
		mid := lo + (hi-lo)/2
		fMid := SeriesNPV(mid, cashFlows)
		if fMid == 0 {
			lo, hi = mid, mid
			break
		}
		if sameSign(fMid, fLo) {
			lo, fLo = mid, fMid
		} else {
			hi = mid
		}
	}

	rate := lo + (hi-lo)/2
	return &rate
}

// Payback returns the first year in which the cumulative cash flow is
// positive, or nil if it never is.
func Payback(cashFlows []float64) *int {
	var cumulative float64
	for i, cf := range cashFlows {
		cumulative += cf
		if cumulative > 0 {
			year := i
			return &year
		}
	}

	return nil
}

// Rentability is NPV per unit of invested capital.
func Rentability(npv, capex float64) float64 {
	return npv / capex
}

// Analyze runs the complete model for one country at its mean wind speed.
func Analyze(country string, speed float64, p model.Params) (model.FinancialResult, error) {
	if p.Capex <= 0 {
		return model.FinancialResult{}, fmt.Errorf("%w: capex should be positive, got %v", ErrInvalidParams, p.Capex)
	}
	if p.Lifetime < 1 {
		return model.FinancialResult{}, fmt.Errorf("%w: lifetime should be at least 1, got %d", ErrInvalidParams, p.Lifetime)
	}

	energy := Energy(speed, p.TurbineArea, p.Efficiency)
	revenue := Revenue(energy, p.PricePerKWh)
	net := revenue - p.Opex
	flows := CashFlows(p.Capex, net, p.Lifetime)
	npv := NPV(p.DiscountRate, p.Capex, net, p.Lifetime)

	var irr *float64
	if net > 0 {
		irr = IRR(flows)
	}

	return model.FinancialResult{
		Country:        country,
		AvgWindSpeed:   speed,
		EnergyMWh:      energy,
		RevenuePerYear: revenue,
		CashFlows:      flows,
		NPV:            npv,
		IRR:            irr,
		Payback:        Payback(flows),
		Rentability:    Rentability(npv, p.Capex),
	}, nil
}

// AnalyzeAll runs Analyze for every country stat, keeping the ranking order.
func AnalyzeAll(stats []model.CountryStat, p model.Params) ([]model.FinancialResult, error) {
	results := make([]model.FinancialResult, 0, len(stats))
	for _, s := range stats {
		r, err := Analyze(s.Country, s.MeanWindSpeed, p)
		if err != nil {
			return nil, fmt.Errorf("failed to analyze %s: %w", s.Country, err)
		}
		results = append(results, r)
	}

	return results, nil
}

func sameSign(a, b float64) bool {
	return (a > 0 && b > 0) || (a < 0 && b < 0)
}
