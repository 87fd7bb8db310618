package math

import "golang.org/x/exp/constraints"

// Clamp returns the value `f` clamped to the range [low, high].
// It works for any numeric type (integers and floats).
func Clamp[T constraints.Ordered](f, low, high T) T {
	if f < low {
		return low
	}
	if f > high {
		return high
	}
	return f
}

// Step adds delta to f and clamps the result to [low, high].
func Step[T constraints.Float | constraints.Integer](f, delta, low, high T) T {
	return Clamp(f+delta, low, high)
}
