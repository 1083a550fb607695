package core

// Rand is the randomness the core consumes. *math/rand.Rand satisfies it.
type Rand interface {
	// Intn returns a uniform integer in [0, n).
	Intn(n int) int
	// Float64 returns a uniform float in [0.0, 1.0).
	Float64() float64
}

// pick returns a uniformly chosen element of candidates.
// candidates must not be empty.
func pick(rng Rand, candidates []Coord) Coord {
	return candidates[rng.Intn(len(candidates))]
}
