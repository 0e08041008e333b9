package bounds

import "github.com/Faultbox/rotabounds/pkg/math"

// WorldPolygon is one visible polygon as seen by other objects.
type WorldPolygon struct {
	ID     int // index in the owner's definition
	Points []math.Vec2
	Box    Box
	Open   bool
}

// WorldBounds is the read-only geometry an object publishes for other
// objects' collision queries: visible polygons only.
type WorldBounds struct {
	Box      Box
	Polygons []WorldPolygon
}

// Points returns every visible world point, polygon by polygon.
func (w WorldBounds) Points() []math.Vec2 {
	n := 0
	for _, p := range w.Polygons {
		n += len(p.Points)
	}
	out := make([]math.Vec2, 0, n)
	for _, p := range w.Polygons {
		out = append(out, p.Points...)
	}
	return out
}

// Edges returns every visible edge. Open polygons have no closing edge.
func (w WorldBounds) Edges() []Edge {
	var out []Edge
	for _, p := range w.Polygons {
		out = appendEdges(out, p.Points, p.Open, p.ID)
	}
	return out
}

// Peer is anything another object can be tested against.
type Peer interface {
	WorldBounds() WorldBounds
}

// WorldBounds makes WorldBounds a Peer of itself.
func (w WorldBounds) WorldBounds() WorldBounds {
	return w
}

// Rect is a plain axis-aligned rectangle peer, such as a widget without
// custom bounds. It is seen as four corners and four edges.
type Rect struct {
	X, Y, W, H float64
}

// WorldBounds returns the rectangle as one closed polygon.
func (r Rect) WorldBounds() WorldBounds {
	pts := []math.Vec2{
		{X: r.X, Y: r.Y},
		{X: r.X + r.W, Y: r.Y},
		{X: r.X + r.W, Y: r.Y + r.H},
		{X: r.X, Y: r.Y + r.H},
	}
	box := BoxOf(pts)
	return WorldBounds{
		Box:      box,
		Polygons: []WorldPolygon{{ID: 0, Points: pts, Box: box}},
	}
}

// Hit describes a positive collision.
type Hit struct {
	// Polygon is the index of the polygon that was hit.
	Polygon int
	// Edge is the own edge that crossed the peer, or -1 in membership mode.
	Edge int
	// OtherPolygon is the ID of the peer polygon involved.
	OtherPolygon int
	// OtherEdge is the peer edge that was crossed, or -1 in membership mode.
	OtherEdge int
}
