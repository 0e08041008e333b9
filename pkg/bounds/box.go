package bounds

import (
	gomath "math"

	"github.com/Faultbox/rotabounds/pkg/math"
)

// Box is an axis-aligned bounding box. An empty box has Min above Max and
// neither contains nor intersects anything.
type Box struct {
	Min, Max math.Vec2
}

// EmptyBox returns a box that contains nothing.
func EmptyBox() Box {
	inf := gomath.Inf(1)
	return Box{Min: math.Vec2{X: inf, Y: inf}, Max: math.Vec2{X: -inf, Y: -inf}}
}

// IsEmpty reports whether the box contains nothing.
func (b Box) IsEmpty() bool {
	return b.Max.X < b.Min.X || b.Max.Y < b.Min.Y
}

// ContainsPoint reports whether p is inside b, edges included.
func (b Box) ContainsPoint(p math.Vec2) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Intersects reports whether b and other share at least one point.
func (b Box) Intersects(other Box) bool {
	return !(other.Max.X < b.Min.X || other.Min.X > b.Max.X ||
		other.Max.Y < b.Min.Y || other.Min.Y > b.Max.Y)
}

// expand grows b to include p.
func (b *Box) expand(p math.Vec2) {
	b.Min.X = gomath.Min(b.Min.X, p.X)
	b.Min.Y = gomath.Min(b.Min.Y, p.Y)
	b.Max.X = gomath.Max(b.Max.X, p.X)
	b.Max.Y = gomath.Max(b.Max.Y, p.Y)
}

// BoxOf returns the bounding box of points. No points gives an empty box.
func BoxOf(points []math.Vec2) Box {
	b := EmptyBox()
	for _, p := range points {
		b.expand(p)
	}
	return b
}

// segmentBox returns the bounding box of the segment a-b.
func segmentBox(a, b math.Vec2) Box {
	return Box{
		Min: math.Vec2{X: gomath.Min(a.X, b.X), Y: gomath.Min(a.Y, b.Y)},
		Max: math.Vec2{X: gomath.Max(a.X, b.X), Y: gomath.Max(a.Y, b.Y)},
	}
}

// Union returns the smallest box enclosing every non-empty box given.
// A single box is returned unchanged.
func Union(boxes ...Box) Box {
	if len(boxes) == 1 {
		return boxes[0]
	}
	out := EmptyBox()
	for _, b := range boxes {
		if b.IsEmpty() {
			continue
		}
		out.expand(b.Min)
		out.expand(b.Max)
	}
	return out
}

// overlapsAll is the pruning step shared by both collision algorithms: it
// reports whether b intersects every one of boxes, checked in order.
func overlapsAll(b Box, boxes ...Box) bool {
	for _, o := range boxes {
		if !b.Intersects(o) {
			return false
		}
	}
	return true
}
