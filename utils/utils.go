package utils

import (
	"math"
)

func Deg(rads float64) float64 {
	return rads / (math.Pi / 180)
}

func Rad(degrees float64) float64 {
	return (math.Pi / 180) * degrees
}

// Constrain returns v limited to the range [lo, hi].
func Constrain(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

// ConstrainInt is Constrain for ints.
func ConstrainInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}

	if v > hi {
		return hi
	}

	return v
}

// Map linearly re-maps v from the range [inMin, inMax] to [outMin, outMax].
// The output is not constrained, so values outside of the input range map to
// values outside of the output range.
func Map(v, inMin, inMax, outMin, outMax float64) float64 {
	return (v-inMin)*(outMax-outMin)/(inMax-inMin) + outMin
}
