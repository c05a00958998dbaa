package core

// Logger is implemented by anything that can report render progress
type Logger interface {
	Printf(format string, args ...interface{})
}

// Random is the source of uniform random numbers used while rendering.
// Can be swapped out for deterministic testing.
type Random interface {
	// Float64 returns a value in [0, 1)
	Float64() float64
	// Range returns a value in [min, max)
	Range(min, max float64) float64
}
