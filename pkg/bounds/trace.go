package bounds

import (
	gomath "math"

	"github.com/Faultbox/rotabounds/pkg/math"
)

// RayPair holds the directions, in radians, of the two sides that meet at a
// checkpoint, both pointing away from it.
type RayPair struct {
	In  float64 // back along the incoming side (incoming edge angle + π)
	Out float64 // along the outgoing side
}

// Tracing is the pose-independent analysis of one polygon.
type Tracing struct {
	// Negative is set for polygons wound clockwise (with Y pointing up).
	Negative bool
	// Rays holds one pair per checkpoint, in checkpoint order.
	Rays []RayPair
}

// Trace analyzes pts: winding direction plus a ray pair for every checkpoint.
func Trace(pts []math.Vec2, checkpoints []int) Tracing {
	return Tracing{
		Negative: Winding(pts),
		Rays:     RayPairs(nil, pts, checkpoints),
	}
}

// Winding reports whether pts wind negatively. It sums the turn between every
// pair of consecutive edges, closing edge included. Translation, rotation and
// positive scaling leave the result unchanged.
func Winding(pts []math.Vec2) bool {
	n := len(pts)
	if n < 3 {
		return false
	}
	var turns float64
	last := pts[0].Sub(pts[n-1]).Angle()
	for i := range pts {
		angle := pts[(i+1)%n].Sub(pts[i]).Angle()
		turns += math.AngleDelta(last, angle)
		last = angle
	}
	return turns < 0
}

// RayPairs writes the ray pair of each checkpoint of pts into dst and
// returns it. Checkpoints must be valid indices into pts.
func RayPairs(dst []RayPair, pts []math.Vec2, checkpoints []int) []RayPair {
	if cap(dst) < len(checkpoints) {
		dst = make([]RayPair, len(checkpoints))
	}
	dst = dst[:len(checkpoints)]

	n := len(pts)
	for k, i := range checkpoints {
		v := pts[i]
		in := v.Sub(pts[(i+n-1)%n]).Angle()
		out := pts[(i+1)%n].Sub(v).Angle()
		dst[k] = RayPair{
			In:  math.NormalizeAngle(in + gomath.Pi),
			Out: math.NormalizeAngle(out),
		}
	}
	return dst
}
