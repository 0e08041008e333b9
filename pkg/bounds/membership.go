package bounds

import "github.com/Faultbox/rotabounds/pkg/math"

// membershipState is the derived state of a Membership polygon.
type membershipState struct {
	checkpoints []int
	// negative comes from the hints and survives every pose change.
	negative bool
	// rays follow the scaled points and are rebuilt when the size changes.
	rays []RayPair
}

func newMembershipState(p Polygon) *membershipState {
	return &membershipState{
		checkpoints: p.Checkpoints(),
		negative:    Winding(p.Hints),
	}
}

func (m *membershipState) resized(scaled []math.Vec2) {
	m.rays = RayPairs(m.rays, scaled, m.checkpoints)
}

// contains runs the checkpoint test of p against the world-space vertices,
// stopping at the first checkpoint that rejects it. A polygon without
// checkpoints contains nothing.
func (m *membershipState) contains(world []math.Vec2, p math.Vec2, rotation float64) bool {
	if len(m.checkpoints) == 0 || len(world) == 0 {
		return false
	}
	for k, idx := range m.checkpoints {
		if !inSector(p, world[idx], m.rays[k], rotation, m.negative) {
			return false
		}
	}
	return true
}

// inSector reports whether p lies strictly inside the sector that the
// checkpoint cp keeps: the region between its two sides, extended to
// infinite rays and turned by rotation radians.
func inSector(p, cp math.Vec2, ray RayPair, rotation float64, negative bool) bool {
	ray0 := math.NormalizeAngle(p.Sub(cp).Angle())
	ray1 := math.NormalizeAngle(ray.In + rotation)
	ray2 := math.NormalizeAngle(ray.Out + rotation)
	if negative {
		ray1, ray2 = ray2, ray1
	}
	// Shift everything so the sector does not straddle the 0/2π seam.
	if ray1 <= ray2 {
		ray1 = math.NormalizeAngle(ray1 - ray2)
		ray0 = math.NormalizeAngle(ray0 - ray2)
		ray2 = 0
	}
	return ray2 < ray0 && ray0 < ray1
}
