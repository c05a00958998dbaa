package core

import (
	"math"
	"math/rand"
)

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler backed by a generator with the given seed
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Float64 returns a random float64 in [0, 1)
func (r *RandomSampler) Float64() float64 {
	return r.random.Float64()
}

// Range returns a random float64 in [min, max)
func (r *RandomSampler) Range(min, max float64) float64 {
	return min + (max-min)*r.random.Float64()
}

// FixedRandom replays a fixed sequence of values in [0, 1), cycling when exhausted.
// An empty sequence always returns 0.
type FixedRandom struct {
	values []float64
	next   int
}

// NewFixedRandom creates a deterministic random source from the given values
func NewFixedRandom(values ...float64) *FixedRandom {
	return &FixedRandom{values: values}
}

// Float64 returns the next value of the sequence
func (f *FixedRandom) Float64() float64 {
	if len(f.values) == 0 {
		return 0
	}
	v := f.values[f.next]
	f.next = (f.next + 1) % len(f.values)
	return v
}

// Range maps the next value of the sequence into [min, max)
func (f *FixedRandom) Range(min, max float64) float64 {
	return min + (max-min)*f.Float64()
}

// RandomVec3Range returns a vector with components in [min, max)
func RandomVec3Range(random Random, min, max float64) Vec3 {
	return NewVec3(random.Range(min, max), random.Range(min, max), random.Range(min, max))
}

// maxRejectionAttempts bounds the cube rejection loop in RandomUnitVector
const maxRejectionAttempts = 64

// RandomUnitVector returns a uniformly distributed direction on the unit sphere.
// Points are rejection-sampled from the [-1,1)³ cube; tiny vectors are rejected
// so normalization never underflows. Sources that never land inside the ball
// fall back to sampling z and the azimuth directly.
func RandomUnitVector(random Random) Vec3 {
	for range maxRejectionAttempts {
		p := RandomVec3Range(random, -1, 1)
		lensq := p.LengthSquared()
		if 1e-160 < lensq && lensq < 1 {
			return p.Normalize()
		}
	}

	z := random.Range(-1, 1)
	phi := 2 * math.Pi * random.Float64()
	r := math.Sqrt(1 - z*z)
	return NewVec3(r*math.Cos(phi), r*math.Sin(phi), z)
}
