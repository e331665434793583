package core

import "math"

// Epsilon is the magnitude below which a value is treated as exactly zero
const Epsilon = 1e-10

// IsZero reports whether x is within Epsilon of zero
func IsZero(x float64) bool {
	return math.Abs(x) < Epsilon
}

// AlignZero snaps values within Epsilon of zero to exactly zero
func AlignZero(x float64) float64 {
	if IsZero(x) {
		return 0
	}
	return x
}

// CompareSign reports whether a and b are both strictly positive or both strictly negative
func CompareSign(a, b float64) bool {
	return (a < 0 && b < 0) || (a > 0 && b > 0)
}
