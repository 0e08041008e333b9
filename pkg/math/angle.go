package math

import "math"

// TwoPi is a full turn in radians.
const TwoPi = 2 * math.Pi

// NormalizeAngle wraps a radian angle into [0, 2π).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, TwoPi)
	if a < 0 {
		a += TwoPi
	}
	// Mod of a tiny negative value can round up to exactly 2π.
	if a >= TwoPi {
		a = 0
	}
	return a
}

// NormalizeDegrees wraps a degree angle into [0, 360).
func NormalizeDegrees(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	if d >= 360 {
		d = 0
	}
	return d
}

// Radians converts degrees to a radian angle in [0, 2π).
func Radians(deg float64) float64 {
	return NormalizeAngle(NormalizeDegrees(deg) * math.Pi / 180)
}

// Degrees converts radians to degrees in [0, 360).
func Degrees(rad float64) float64 {
	return NormalizeDegrees(rad * 180 / math.Pi)
}

// AngleDelta returns b - a wrapped into (-π, π].
func AngleDelta(a, b float64) float64 {
	d := math.Mod(b-a, TwoPi)
	if d > math.Pi {
		d -= TwoPi
	} else if d <= -math.Pi {
		d += TwoPi
	}
	return d
}
