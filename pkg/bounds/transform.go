package bounds

import (
	gomath "math"

	"github.com/Faultbox/rotabounds/pkg/math"
)

// Pose is an object's placement for one update.
type Pose struct {
	Pos  math.Vec2 // lower-left corner
	Size math.Vec2 // width, height
	// Angle is in degrees. It is wrapped to [0, 360) on use.
	Angle float64
	// Origin is the rotation point in world coordinates.
	Origin math.Vec2
}

// Center returns the middle of the pose's unrotated rectangle.
func (p Pose) Center() math.Vec2 {
	return p.Pos.Add(p.Size.Scale(0.5))
}

// PivotOrigin returns the world point at the fractional position frac of
// the rectangle at pos with the given size. (0.5, 0.5) is the center.
func PivotOrigin(pos, size, frac math.Vec2) math.Vec2 {
	return pos.Add(size.Mul(frac))
}

// resize returns dst resized to n points, reusing its storage when possible.
func resize(dst []math.Vec2, n int) []math.Vec2 {
	if cap(dst) < n {
		return make([]math.Vec2, n)
	}
	return dst[:n]
}

// ScalePoints writes hints scaled by size into dst and returns it.
func ScalePoints(dst, hints []math.Vec2, size math.Vec2) []math.Vec2 {
	dst = resize(dst, len(hints))
	for i, h := range hints {
		dst[i] = h.Mul(size)
	}
	return dst
}

// TranslatePoints writes pts offset by pos into dst and returns it.
func TranslatePoints(dst, pts []math.Vec2, pos math.Vec2) []math.Vec2 {
	dst = resize(dst, len(pts))
	for i, p := range pts {
		dst[i] = p.Add(pos)
	}
	return dst
}

// RotatePoint moves p around origin by angle radians. The point is
// re-projected from its polar form about origin, so rotating a tracked point
// to a new pose uses the same math as rotating bounds.
func RotatePoint(p, origin math.Vec2, angle float64) math.Vec2 {
	d := p.Sub(origin)
	dist := gomath.Hypot(d.X, d.Y)
	a := math.NormalizeAngle(angle + gomath.Atan2(d.Y, d.X))
	sin, cos := gomath.Sincos(a)
	return math.Vec2{X: origin.X + dist*cos, Y: origin.Y + dist*sin}
}

// RotatePoints writes pts rotated about origin into dst and returns it.
// A zero angle copies pts unchanged.
func RotatePoints(dst, pts []math.Vec2, origin math.Vec2, angle float64) []math.Vec2 {
	dst = resize(dst, len(pts))
	if angle == 0 {
		copy(dst, pts)
		return dst
	}
	for i, p := range pts {
		dst[i] = RotatePoint(p, origin, angle)
	}
	return dst
}
