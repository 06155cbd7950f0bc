package account

import (
	"math/rand"

	"github.com/shopspring/decimal"
)

// ReturnSource draws an annual return for a sleeve with the given mean and
// volatility.
type ReturnSource interface {
	Draw(mean, volatility decimal.Decimal) decimal.Decimal
}

// GaussianSource draws normally distributed returns from its own generator.
// A GaussianSource must not be shared between goroutines.
type GaussianSource struct {
	rng *rand.Rand
}

// NewGaussianSource returns a source seeded with seed.
func NewGaussianSource(seed int64) *GaussianSource {
	return &GaussianSource{rng: rand.New(rand.NewSource(seed))}
}

func (g *GaussianSource) Draw(mean, volatility decimal.Decimal) decimal.Decimal {
	if volatility.IsZero() {
		return mean
	}
	z := decimal.NewFromFloat(g.rng.NormFloat64())
	return mean.Add(volatility.Mul(z))
}

// ExpectedSource always returns the mean. It gives deterministic projections.
type ExpectedSource struct{}

func (ExpectedSource) Draw(mean, _ decimal.Decimal) decimal.Decimal { return mean }

// SequenceSource replays fixed returns in order, then repeats the last one.
// It is useful for historical back-tests and for tests.
type SequenceSource struct {
	Returns []decimal.Decimal
	next    int
}

func (s *SequenceSource) Draw(mean, _ decimal.Decimal) decimal.Decimal {
	if len(s.Returns) == 0 {
		return mean
	}
	i := s.next
	if i >= len(s.Returns) {
		i = len(s.Returns) - 1
	} else {
		s.next++
	}
	return s.Returns[i]
}

func draw(src ReturnSource, mean, volatility decimal.Decimal) decimal.Decimal {
	if src == nil {
		return mean
	}
	return src.Draw(mean, volatility)
}
