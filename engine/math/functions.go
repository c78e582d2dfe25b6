package math

import (
	m "math"
)

const (
	/** @brief An approximate representation of PI. */
	K_PI float32 = 3.14159265358979323846
	/** @brief An approximate representation of PI multiplied by 2. */
	K_PI_2 float32 = 2.0 * K_PI
	/** @brief An approximate representation of PI divided by 2. */
	K_HALF_PI float32 = 0.5 * K_PI
	/** @brief A multiplier used to convert degrees to radians. */
	K_DEG2RAD_MULTIPLIER float32 = K_PI / 180.0
	/** @brief A multiplier used to convert radians to degrees. */
	K_RAD2DEG_MULTIPLIER float32 = 180.0 / K_PI
	/** @brief Smallest positive number where 1.0 + FLOAT_EPSILON != 1.0 */
	K_FLOAT_EPSILON float32 = 1.192092896e-07
)

/**
 * Note that these are here in order to prevent having to convert
 * back and forth between float32 and float64 everywhere.
 */
func Sin(x float32) float32 {
	return float32(m.Sin(float64(x)))
}

func Cos(x float32) float32 {
	return float32(m.Cos(float64(x)))
}

func Asin(x float32) float32 {
	return float32(m.Asin(float64(x)))
}

func Atan2(y, x float32) float32 {
	return float32(m.Atan2(float64(y), float64(x)))
}

func Sqrt(x float32) float32 {
	return float32(m.Sqrt(float64(x)))
}

func Abs(x float32) float32 {
	return float32(m.Abs(float64(x)))
}

func Pow(x, y float32) float32 {
	return float32(m.Pow(float64(x), float64(y)))
}

// IsFinite reports whether x is neither NaN nor an infinity.
func IsFinite(x float32) bool {
	f := float64(x)
	return !m.IsNaN(f) && !m.IsInf(f, 0)
}

func DegToRad(degrees float32) float32 {
	return degrees * K_DEG2RAD_MULTIPLIER
}

func RadToDeg(radians float32) float32 {
	return radians * K_RAD2DEG_MULTIPLIER
}

// WrapPi wraps an angle into the range (-PI, PI]. The wrap is continuous:
// incrementing an angle by a small delta and wrapping never produces a jump
// larger than the delta itself (modulo the 2*PI identification).
func WrapPi(angle float32) float32 {
	wrapped := float32(m.Mod(float64(angle), float64(K_PI_2)))
	if wrapped > K_PI {
		wrapped -= K_PI_2
	} else if wrapped <= -K_PI {
		wrapped += K_PI_2
	}
	return wrapped
}

// FloatEqual compares two floats within the given tolerance.
func FloatEqual(a, b, tolerance float32) bool {
	return Abs(a-b) <= tolerance
}
