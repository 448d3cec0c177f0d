// Package wind turns raw forecast vectors into representative wind speeds.
package wind

import (
	"errors"
	"math"

	"github.com/katiamach/wind-viability-report/internal/model"
	"gonum.org/v1/gonum/stat"
)

var ErrNoObservations = errors.New("no usable wind observations")

// Process computes one observation per result with usable U/V data. Results
// with a nil record or empty vectors are skipped.
func Process(results []model.ForecastResult) ([]model.WindObservation, error) {
	observations := make([]model.WindObservation, 0, len(results))

	for _, res := range results {
		if res.Record == nil {
			continue
		}

		avg, ok := AverageSpeed(res.Record.WindU, res.Record.WindV)
		if !ok {
			continue
		}

		observations = append(observations, model.WindObservation{
			Latitude:     res.Point.Latitude,
			Longitude:    res.Point.Longitude,
			AvgWindSpeed: avg,
			AcquiredAt:   res.Record.AcquiredAt,
		})
	}

	if len(observations) == 0 {
		return nil, ErrNoObservations
	}

	return observations, nil
}

// AverageSpeed returns the mean magnitude of the (u, v) vectors over their
// common length. Timesteps with a missing component are ignored.
func AverageSpeed(u, v []float64) (float64, bool) {
	n := len(u)
	if len(v) < n {
		n = len(v)
	}

	speeds := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if math.IsNaN(u[i]) || math.IsNaN(v[i]) {
			continue
		}
		speeds = append(speeds, math.Hypot(u[i], v[i]))
	}

	if len(speeds) == 0 {
		return 0, false
	}

	return stat.Mean(speeds, nil), true
}
