package bot

import "math/rand/v2"

// RandomSource produces integers uniformly distributed in [low, high).
type RandomSource interface {
	IntRange(low, high int) int
}

type mathRandSource struct {
	rng *rand.Rand
}

// NewRandomSource returns a source backed by the automatically seeded global generator.
func NewRandomSource() RandomSource {
	return &mathRandSource{}
}

// NewSeededRandomSource returns a reproducible source.
func NewSeededRandomSource(seed uint64) RandomSource {
	return &mathRandSource{
		rng: rand.New(rand.NewPCG(seed, seed>>1|1)),
	}
}

func (that *mathRandSource) IntRange(low, high int) int {
	if that.rng == nil {
		return low + rand.IntN(high-low) //nolint: gosec // move choice does not need crypto
	}

	return low + that.rng.IntN(high-low)
}
