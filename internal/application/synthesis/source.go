// Package synthesis produces the seeded synthetic liability ledgers.
package synthesis

import (
	"math/rand/v2"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
)

// streamMix selects the PCG stream for a seed
const streamMix = 0x9e3779b97f4a7c15

// Source is a deterministic stream of draws. Numeric draws and fake names
// consume the same PCG state, so a seed fixes the whole sequence.
// A Source is not safe for concurrent use; each generation call owns one.
type Source struct {
	rng   *rand.Rand
	faker *gofakeit.Faker
}

// NewSource creates a source seeded with seed
func NewSource(seed uint64) *Source {
	pcg := rand.NewPCG(seed, seed^streamMix)
	return &Source{
		rng:   rand.New(pcg),
		faker: gofakeit.NewFaker(pcg, false),
	}
}

// IntRange returns a uniform integer in [min, max]
func (s *Source) IntRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + s.rng.IntN(max-min+1)
}

// Float64Range returns a uniform float in [min, max)
func (s *Source) Float64Range(min, max float64) float64 {
	return min + s.rng.Float64()*(max-min)
}

// Money returns a uniform amount in [min, max] rounded to cents
func (s *Source) Money(min, max float64) decimal.Decimal {
	return decimal.NewFromFloat(s.Float64Range(min, max)).Round(2)
}

// Pick returns a uniform index in [0, n)
func (s *Source) Pick(n int) int {
	return s.rng.IntN(n)
}

// Weighted returns an index drawn with probability proportional to weights
func (s *Source) Weighted(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	r := s.rng.Float64() * total
	for i, w := range weights {
		if r < w {
			return i
		}
		r -= w
	}
	return len(weights) - 1
}

// Company returns a fake company name
func (s *Source) Company() string {
	return s.faker.Company()
}

// PersonName returns a fake full name
func (s *Source) PersonName() string {
	return s.faker.Name()
}
