package math

import (
	m "math"
)

// float32 versions of the constants and functions of package math that the
// rig and the cameras need.
const (
	K_PI                 float32 = m.Pi
	K_PI_2               float32 = 2 * K_PI
	K_HALF_PI            float32 = 0.5 * K_PI
	K_DEG2RAD_MULTIPLIER float32 = K_PI / 180
	// Smallest x with 1 + x != 1.
	K_FLOAT_EPSILON float32 = 1.192092896e-07
)

func Sin(x float32) float32 {
	return float32(m.Sin(float64(x)))
}

func Cos(x float32) float32 {
	return float32(m.Cos(float64(x)))
}

func Abs(x float32) float32 {
	return float32(m.Abs(float64(x)))
}

// Asin clamps x into [-1, 1] first, so rounding never yields NaN.
func Asin(x float32) float32 {
	return float32(m.Asin(float64(Clamp(x, -1, 1))))
}

func Atan2(y, x float32) float32 {
	return float32(m.Atan2(float64(y), float64(x)))
}

func DegToRad(degrees float32) float32 {
	return degrees * K_DEG2RAD_MULTIPLIER
}
