package bounds

import "github.com/Faultbox/rotabounds/pkg/math"

// Edge is one side of a polygon in world space.
type Edge struct {
	A, B    math.Vec2
	Polygon int // owning polygon's index
	Index   int // i for the edge from point i to point i+1
}

// Box returns the edge's bounding box.
func (e Edge) Box() Box {
	return segmentBox(e.A, e.B)
}

// edgeCount returns how many edges a polygon of n points has. The closing
// edge of an open polygon is left out.
func edgeCount(n int, open bool) int {
	switch {
	case n < 2:
		return 0
	case open:
		return n - 1
	default:
		return n
	}
}

// edgeAt returns the endpoints of edge i of pts.
func edgeAt(pts []math.Vec2, i int) (math.Vec2, math.Vec2) {
	return pts[i], pts[(i+1)%len(pts)]
}

// appendEdges appends the edges of pts to dst.
func appendEdges(dst []Edge, pts []math.Vec2, open bool, polygon int) []Edge {
	for i := 0; i < edgeCount(len(pts), open); i++ {
		a, b := edgeAt(pts, i)
		dst = append(dst, Edge{A: a, B: b, Polygon: polygon, Index: i})
	}
	return dst
}

// side returns the sign of the turn a -> b -> c: 1 left, -1 right, 0 collinear.
func side(a, b, c math.Vec2) int {
	cross := b.Sub(a).Cross(c.Sub(a))
	switch {
	case cross > 0:
		return 1
	case cross < 0:
		return -1
	default:
		return 0
	}
}

// SegmentsIntersect reports whether segment a1-a2 properly crosses b1-b2.
// Each segment's endpoints must lie strictly on opposite sides of the other,
// so touching and collinear segments do not count.
func SegmentsIntersect(a1, a2, b1, b2 math.Vec2) bool {
	return side(b1, b2, a1)*side(b1, b2, a2) < 0 &&
		side(a1, a2, b1)*side(a1, a2, b2) < 0
}

// crossings counts the edges of pts crossed by the ray from p towards +X.
func crossings(p math.Vec2, pts []math.Vec2, open bool) int {
	count := 0
	for i := 0; i < edgeCount(len(pts), open); i++ {
		a, b := edgeAt(pts, i)
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			count++
		}
	}
	return count
}
