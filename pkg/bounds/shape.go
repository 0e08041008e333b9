// Package bounds keeps custom 2D collision bounds in step with an object's
// position, size and rotation, and hit-tests them against points and other
// objects.
//
// A Definition describes one or more polygons in hint space, where (0, 0) is
// the object's (x, y) corner and (1, 1) its opposite corner. A Frame holds the
// world-space geometry derived from a Definition and the object's current
// Pose. An Object maps animation-frame keys to Frames.
//
// Two collision algorithms are available, selected per Object:
//
//	ModeMembership  checkpoint sector tests (Membership polygons)
//	ModeSegment     edge-vs-edge intersection (Segment polygons, may be open)
//
// Nothing in this package is safe for concurrent mutation. Pose updates and
// queries on the same Frame must be serialized by the caller; queries only
// read a peer's published WorldBounds.
package bounds

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/Faultbox/rotabounds/pkg/math"
)

// Definition errors.
var (
	ErrMissingKind     = errors.New("polygon has no kind")
	ErrTooFewPoints    = errors.New("too few points for polygon")
	ErrCheckpointRange = errors.New("checkpoint index out of range")
	ErrMixedModes      = errors.New("polygons of different modes in one definition")
	ErrModeMismatch    = errors.New("definition mode does not match object mode")
	ErrUnknownMode     = errors.New("unknown collision mode")
)

// Mode selects the collision algorithm.
type Mode int

const (
	// ModeMembership tests points against checkpoint sectors.
	ModeMembership Mode = iota
	// ModeSegment tests polygon edges for intersection.
	ModeSegment
)

// String returns the mode's config name.
func (m Mode) String() string {
	switch m {
	case ModeMembership:
		return "membership"
	case ModeSegment:
		return "segment"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses a mode name. The empty string means ModeMembership.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "membership", "checkpoint":
		return ModeMembership, nil
	case "segment", "segments":
		return ModeSegment, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// minPoints is the smallest polygon each mode accepts.
func (m Mode) minPoints() int {
	if m == ModeSegment {
		return 1
	}
	return 3
}

// Kind is the mode-specific half of a Polygon. It is either Membership or
// Segment.
type Kind interface {
	mode() Mode
}

// Membership marks a polygon for checkpoint tests. Checkpoints are vertex
// indices whose two adjacent sides, extended to rays, keep the whole polygon
// between them. A polygon without checkpoints never collides.
type Membership struct {
	Checkpoints []int
}

func (Membership) mode() Mode { return ModeMembership }

// Segment marks a polygon for edge intersection tests. An open polygon has
// no closing edge from its last point back to the first.
type Segment struct {
	Open bool
}

func (Segment) mode() Mode { return ModeSegment }

// Polygon is one authored boundary polygon.
type Polygon struct {
	// Hints are the vertices as fractions of the object's width and height.
	Hints []math.Vec2
	// Hidden polygons are left out of the geometry published to peers but
	// still take part in this object's own queries.
	Hidden bool
	Kind   Kind
}

// Mode returns the polygon's collision mode.
func (p Polygon) Mode() Mode {
	if p.Kind == nil {
		return ModeMembership
	}
	return p.Kind.mode()
}

// Open reports whether the polygon is an open Segment polygon.
func (p Polygon) Open() bool {
	s, ok := p.Kind.(Segment)
	return ok && s.Open
}

// Checkpoints returns the polygon's sorted, de-duplicated checkpoints.
// Segment polygons have none.
func (p Polygon) Checkpoints() []int {
	m, ok := p.Kind.(Membership)
	if !ok || len(m.Checkpoints) == 0 {
		return nil
	}
	out := slices.Clone(m.Checkpoints)
	slices.Sort(out)
	return slices.Compact(out)
}

// Validate checks point counts and checkpoint indices.
func (p Polygon) Validate() error {
	if p.Kind == nil {
		return ErrMissingKind
	}
	mode := p.Kind.mode()
	if len(p.Hints) < mode.minPoints() {
		return fmt.Errorf("%w: %s needs %d, got %d", ErrTooFewPoints, mode, mode.minPoints(), len(p.Hints))
	}
	for _, idx := range p.Checkpoints() {
		if idx < 0 || idx >= len(p.Hints) {
			return fmt.Errorf("%w: %d (polygon has %d points)", ErrCheckpointRange, idx, len(p.Hints))
		}
	}
	return nil
}

// Equal reports whether two polygons describe the same bounds.
func (p Polygon) Equal(other Polygon) bool {
	return p.Hidden == other.Hidden &&
		p.Mode() == other.Mode() &&
		p.Open() == other.Open() &&
		slices.Equal(p.Hints, other.Hints) &&
		slices.Equal(p.Checkpoints(), other.Checkpoints())
}

// Definition is the ordered polygon list of one frame. Polygon indices are
// their positions in Polygons.
type Definition struct {
	Polygons []Polygon
}

// Mode returns the definition's collision mode. An empty definition reports
// ModeMembership.
func (d Definition) Mode() Mode {
	if len(d.Polygons) == 0 {
		return ModeMembership
	}
	return d.Polygons[0].Mode()
}

// Validate checks every polygon and that all polygons share one mode.
func (d Definition) Validate() error {
	for i, p := range d.Polygons {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("polygon %d: %w", i, err)
		}
		if p.Mode() != d.Mode() {
			return fmt.Errorf("polygon %d: %w", i, ErrMixedModes)
		}
	}
	return nil
}

// Equal reports whether two definitions describe the same bounds.
func (d Definition) Equal(other Definition) bool {
	return slices.EqualFunc(d.Polygons, other.Polygons, Polygon.Equal)
}

// Clone returns a deep copy, so later edits to d's slices cannot reach the copy.
func (d Definition) Clone() Definition {
	out := Definition{Polygons: make([]Polygon, len(d.Polygons))}
	for i, p := range d.Polygons {
		q := Polygon{Hints: slices.Clone(p.Hints), Hidden: p.Hidden, Kind: p.Kind}
		if m, ok := p.Kind.(Membership); ok {
			q.Kind = Membership{Checkpoints: slices.Clone(m.Checkpoints)}
		}
		out.Polygons[i] = q
	}
	return out
}

// unitSquare is the object's own rectangle in hint space.
var unitSquare = []math.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}

// DefaultDefinition returns bounds that match the object's rectangle.
func DefaultDefinition(mode Mode) Definition {
	p := Polygon{Hints: slices.Clone(unitSquare)}
	if mode == ModeSegment {
		p.Kind = Segment{}
	} else {
		p.Kind = Membership{Checkpoints: []int{0, 2}}
	}
	return Definition{Polygons: []Polygon{p}}
}
