package bounds

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/rotabounds/pkg/math"
)

// Frame errors.
var (
	ErrNotPosed   = errors.New("frame has not been posed")
	ErrPointRange = errors.New("point index out of range")
)

// variant is the mode-specific derived state of one polygon.
type variant interface {
	resized(scaled []math.Vec2)
}

// segmentState is the derived state of a Segment polygon.
type segmentState struct {
	open bool
}

func (segmentState) resized([]math.Vec2) {}

// polygonState is one polygon's derived geometry. It is rebuilt in place on
// every pose update and never edited by hand.
type polygonState struct {
	hints   []math.Vec2
	hidden  bool
	variant variant

	scaled     []math.Vec2
	translated []math.Vec2
	world      []math.Vec2
	box        Box
	// edgeBoxes holds one box per edge for the current pose (segment mode).
	edgeBoxes []Box
}

func newPolygonState(p Polygon) *polygonState {
	ps := &polygonState{hints: p.Hints, hidden: p.Hidden, box: EmptyBox()}
	switch k := p.Kind.(type) {
	case Segment:
		ps.variant = segmentState{open: k.Open}
	default:
		ps.variant = newMembershipState(p)
	}
	return ps
}

func (ps *polygonState) open() bool {
	s, ok := ps.variant.(segmentState)
	return ok && s.open
}

func (ps *polygonState) refreshEdgeBoxes() {
	n := edgeCount(len(ps.world), ps.open())
	if cap(ps.edgeBoxes) < n {
		ps.edgeBoxes = make([]Box, n)
	}
	ps.edgeBoxes = ps.edgeBoxes[:n]
	for i := range ps.edgeBoxes {
		a, b := edgeAt(ps.world, i)
		ps.edgeBoxes[i] = segmentBox(a, b)
	}
}

// Frame is the live geometry of one Definition: the derived per-polygon state
// for the latest Pose, plus the WorldBounds it publishes to peers.
type Frame struct {
	mode     Mode
	def      Definition
	polygons []*polygonState
	log      *zap.Logger

	pose     Pose
	rotation float64 // radians, [0, 2π)
	posed    bool
	stale    bool

	box     Box // every polygon, hidden ones included
	visible WorldBounds
	boxes   []Box
}

// NewFrame validates def and builds an unposed frame in def's own mode.
func NewFrame(def Definition) (*Frame, error) {
	return newFrame(def.Mode(), def, zap.NewNop())
}

func newFrame(mode Mode, def Definition, log *zap.Logger) (*Frame, error) {
	f := &Frame{mode: mode, log: log, box: EmptyBox()}
	f.visible.Box = EmptyBox()
	if err := f.setDefinition(def); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *Frame) setDefinition(def Definition) error {
	if err := def.Validate(); err != nil {
		return err
	}
	if len(def.Polygons) > 0 && def.Mode() != f.mode {
		return fmt.Errorf("%w: %s definition, %s object", ErrModeMismatch, def.Mode(), f.mode)
	}
	f.def = def.Clone()
	f.polygons = make([]*polygonState, len(f.def.Polygons))
	for i, p := range f.def.Polygons {
		f.polygons[i] = newPolygonState(p)
	}
	f.stale = true
	return nil
}

// Mode returns the frame's collision algorithm.
func (f *Frame) Mode() Mode {
	return f.mode
}

// Definition returns a copy of the frame's definition.
func (f *Frame) Definition() Definition {
	return f.def.Clone()
}

// Redefine replaces the frame's definition wholesale. Winding and checkpoint
// rays are rebuilt; an already posed frame is re-derived at its last pose.
// An identical definition is a no-op.
func (f *Frame) Redefine(def Definition) error {
	if f.def.Equal(def) {
		return nil
	}
	if err := f.setDefinition(def); err != nil {
		f.log.Warn("bounds definition rejected", zap.Error(err))
		return err
	}
	f.log.Debug("bounds redefined",
		zap.Stringer("mode", f.mode),
		zap.Int("polygons", len(f.polygons)),
	)
	if f.posed {
		f.Update(f.pose)
	}
	return nil
}

// Pose returns the last pose applied, if any.
func (f *Frame) Pose() (Pose, bool) {
	return f.pose, f.posed
}

// Rotation returns the applied rotation in radians.
func (f *Frame) Rotation() float64 {
	return f.rotation
}

// Invalidate makes the next Update recompute everything, even if the pose
// has not changed.
func (f *Frame) Invalidate() {
	f.stale = true
}

// Update re-derives world geometry for p. Scaling only reruns when the size
// changed and translation only when the position or size changed.
func (f *Frame) Update(p Pose) {
	rotation := math.Radians(p.Angle)
	if f.posed && !f.stale && p == f.pose {
		return
	}

	resized := !f.posed || f.stale || p.Size != f.pose.Size
	moved := resized || p.Pos != f.pose.Pos
	turned := moved || rotation != f.rotation || p.Origin != f.pose.Origin

	for _, ps := range f.polygons {
		if resized {
			ps.scaled = ScalePoints(ps.scaled, ps.hints, p.Size)
			ps.variant.resized(ps.scaled)
		}
		if moved {
			ps.translated = TranslatePoints(ps.translated, ps.scaled, p.Pos)
		}
		if turned {
			ps.world = RotatePoints(ps.world, ps.translated, p.Origin, rotation)
			ps.box = BoxOf(ps.world)
			if f.mode == ModeSegment {
				ps.refreshEdgeBoxes()
			}
		}
	}

	f.pose = p
	f.rotation = rotation
	f.posed = true
	f.stale = false
	f.publish()
}

// publish rebuilds the aggregate boxes and the visible geometry.
func (f *Frame) publish() {
	f.boxes = f.boxes[:0]
	for _, ps := range f.polygons {
		f.boxes = append(f.boxes, ps.box)
	}
	f.box = Union(f.boxes...)

	f.boxes = f.boxes[:0]
	f.visible.Polygons = f.visible.Polygons[:0]
	for i, ps := range f.polygons {
		if ps.hidden {
			continue
		}
		f.boxes = append(f.boxes, ps.box)
		f.visible.Polygons = append(f.visible.Polygons, WorldPolygon{
			ID:     i,
			Points: ps.world,
			Box:    ps.box,
			Open:   ps.open(),
		})
	}
	f.visible.Box = Union(f.boxes...)
}

// Box returns the bounding box of every polygon, hidden ones included.
func (f *Frame) Box() Box {
	return f.box
}

// PolygonBox returns one polygon's bounding box.
func (f *Frame) PolygonBox(polygon int) (Box, error) {
	if polygon < 0 || polygon >= len(f.polygons) {
		return EmptyBox(), fmt.Errorf("%w: polygon %d of %d", ErrPointRange, polygon, len(f.polygons))
	}
	return f.polygons[polygon].box, nil
}

// WorldBounds returns the geometry published to peers. The slices alias the
// frame's state and stay valid until the next Update.
func (f *Frame) WorldBounds() WorldBounds {
	return f.visible
}

// WorldBox returns the bounding box of the visible polygons.
func (f *Frame) WorldBox() Box {
	return f.visible.Box
}

// VisiblePoints returns the world points of the visible polygons.
func (f *Frame) VisiblePoints() []math.Vec2 {
	return f.visible.Points()
}

// VisibleEdges returns the edges of the visible polygons.
func (f *Frame) VisibleEdges() []Edge {
	return f.visible.Edges()
}

// WorldPoints returns a copy of one polygon's world points.
func (f *Frame) WorldPoints(polygon int) ([]math.Vec2, error) {
	if polygon < 0 || polygon >= len(f.polygons) {
		return nil, fmt.Errorf("%w: polygon %d of %d", ErrPointRange, polygon, len(f.polygons))
	}
	return append([]math.Vec2(nil), f.polygons[polygon].world...), nil
}

// Point returns the current world position of an authored vertex.
func (f *Frame) Point(polygon, index int) (math.Vec2, error) {
	if polygon < 0 || polygon >= len(f.polygons) {
		return math.Vec2{}, fmt.Errorf("%w: polygon %d of %d", ErrPointRange, polygon, len(f.polygons))
	}
	ps := f.polygons[polygon]
	if index < 0 || index >= len(ps.hints) {
		return math.Vec2{}, fmt.Errorf("%w: point %d of %d", ErrPointRange, index, len(ps.hints))
	}
	if !f.posed {
		return math.Vec2{}, ErrNotPosed
	}
	return ps.world[index], nil
}
