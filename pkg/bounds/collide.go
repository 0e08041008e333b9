package bounds

import "github.com/Faultbox/rotabounds/pkg/math"

// Queries only read the frame, so several may run at once as long as no
// Update runs on the same frame.

// PointInBounds reports whether p is inside the frame's bounds and, if so,
// the index of the first polygon containing it. Hidden polygons count.
//
// In segment mode the point is tested with the even-odd rule on closed
// polygons, and a ray from p that crosses any open polygon means no hit.
func (f *Frame) PointInBounds(p math.Vec2) (int, bool) {
	if !f.box.ContainsPoint(p) {
		return -1, false
	}
	if f.mode == ModeSegment {
		return f.pointInSegments(p)
	}
	for i, ps := range f.polygons {
		if f.containsPoint(ps, p) {
			return i, true
		}
	}
	return -1, false
}

// CollidePoints reports the first polygon, in definition order, that
// contains any of pts.
func (f *Frame) CollidePoints(pts []math.Vec2) (int, bool) {
	if f.mode == ModeSegment {
		best := -1
		for _, p := range pts {
			if i, ok := f.PointInBounds(p); ok && (best < 0 || i < best) {
				best = i
			}
		}
		return best, best >= 0
	}
	for i, ps := range f.polygons {
		for _, p := range pts {
			if f.containsPoint(ps, p) {
				return i, true
			}
		}
	}
	return -1, false
}

// CollideWith tests the frame against a peer's published bounds. Membership
// mode tests the peer's visible points; segment mode looks for a crossing
// pair of edges. The first match is returned.
func (f *Frame) CollideWith(peer Peer) (Hit, bool) {
	other := peer.WorldBounds()
	if !f.box.Intersects(other.Box) {
		return Hit{}, false
	}
	if f.mode == ModeSegment {
		return f.collideSegments(other)
	}
	return f.collideMembers(other)
}

// containsPoint is the membership test of p against one polygon, behind its
// bounding box.
func (f *Frame) containsPoint(ps *polygonState, p math.Vec2) bool {
	m, ok := ps.variant.(*membershipState)
	if !ok || !ps.box.ContainsPoint(p) {
		return false
	}
	return m.contains(ps.world, p, f.rotation)
}

func (f *Frame) collideMembers(other WorldBounds) (Hit, bool) {
	for i, ps := range f.polygons {
		if !overlapsAll(ps.box, other.Box) {
			continue
		}
		for _, op := range other.Polygons {
			if !overlapsAll(ps.box, op.Box) {
				continue
			}
			for _, p := range op.Points {
				if f.containsPoint(ps, p) {
					return Hit{Polygon: i, Edge: -1, OtherPolygon: op.ID, OtherEdge: -1}, true
				}
			}
		}
	}
	return Hit{}, false
}

func (f *Frame) collideSegments(other WorldBounds) (Hit, bool) {
	for i, ps := range f.polygons {
		if !overlapsAll(ps.box, other.Box) {
			continue
		}
		for e, eb := range ps.edgeBoxes {
			if !overlapsAll(eb, other.Box) {
				continue
			}
			a1, a2 := edgeAt(ps.world, e)
			for _, op := range other.Polygons {
				if !overlapsAll(eb, op.Box) {
					continue
				}
				for j := 0; j < edgeCount(len(op.Points), op.Open); j++ {
					b1, b2 := edgeAt(op.Points, j)
					if !overlapsAll(eb, segmentBox(b1, b2)) {
						continue
					}
					if SegmentsIntersect(a1, a2, b1, b2) {
						return Hit{Polygon: i, Edge: e, OtherPolygon: op.ID, OtherEdge: j}, true
					}
				}
			}
		}
	}
	return Hit{}, false
}

func (f *Frame) pointInSegments(p math.Vec2) (int, bool) {
	for _, ps := range f.polygons {
		if ps.open() && crossings(p, ps.world, true) > 0 {
			return -1, false
		}
	}
	for i, ps := range f.polygons {
		if ps.open() || !ps.box.ContainsPoint(p) {
			continue
		}
		if crossings(p, ps.world, false)%2 == 1 {
			return i, true
		}
	}
	return -1, false
}
