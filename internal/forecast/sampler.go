package forecast

import (
	"math/rand"
	"sort"

	"github.com/katiamach/wind-viability-report/internal/model"
)

// Sampler selects n of the given points. Implementations must not modify points.
type Sampler interface {
	Sample(points []model.GridPoint, n int) []model.GridPoint
}

// RandomSampler picks a uniform random subset without replacement.
// The selection keeps the original grid order.
type RandomSampler struct {
	rng *rand.Rand
}

// NewRandomSampler creates a sampler seeded with seed.
func NewRandomSampler(seed int64) *RandomSampler {
	return &RandomSampler{rng: rand.New(rand.NewSource(seed))}
}

// Sample implements Sampler.
func (s *RandomSampler) Sample(points []model.GridPoint, n int) []model.GridPoint {
	if n >= len(points) {
		return append([]model.GridPoint(nil), points...)
	}

	idx := s.rng.Perm(len(points))[:n]
	sort.Ints(idx)

	selected := make([]model.GridPoint, 0, n)
	for _, i := range idx {
		selected = append(selected, points[i])
	}

	return selected
}

// FirstSampler deterministically keeps the first n points.
type FirstSampler struct{}

// Sample implements Sampler.
func (FirstSampler) Sample(points []model.GridPoint, n int) []model.GridPoint {
	if n > len(points) {
		n = len(points)
	}

	return append([]model.GridPoint(nil), points[:n]...)
}
