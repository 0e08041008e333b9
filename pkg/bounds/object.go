package bounds

import (
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/Faultbox/rotabounds/pkg/math"
)

// Registry errors.
var (
	ErrUnknownFrame  = errors.New("unknown frame")
	ErrNoActiveFrame = errors.New("no active frame")
)

// DefaultFrame is the key used for objects with a single, unanimated shape.
const DefaultFrame = ""

// Option configures an Object.
type Option func(*Object)

// WithLogger sets the logger used for registration and activation events.
func WithLogger(l *zap.Logger) Option {
	return func(o *Object) {
		if l != nil {
			o.log = l
		}
	}
}

// WithMode sets the collision algorithm. The default is ModeMembership.
func WithMode(m Mode) Option {
	return func(o *Object) {
		o.mode = m
	}
}

// Object owns the frames of one collision-aware object, keyed by animation
// frame name. Each frame keeps its own derived state, so editing one never
// touches another.
//
// Exactly one frame is active at a time. Activate hands back that frame and
// the caller poses and queries it directly.
type Object struct {
	mode   Mode
	log    *zap.Logger
	frames map[string]*Frame
	active *Frame
	key    string
}

// New returns an Object with no frames.
func New(opts ...Option) *Object {
	o := &Object{
		mode:   ModeMembership,
		log:    zap.NewNop(),
		frames: make(map[string]*Frame),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// NewSingle returns an Object whose only frame, DefaultFrame, holds def and
// is already active.
func NewSingle(def Definition, opts ...Option) (*Object, *Frame, error) {
	o := New(opts...)
	if _, err := o.Register(DefaultFrame, def); err != nil {
		return nil, nil, err
	}
	f, err := o.Activate(DefaultFrame)
	if err != nil {
		return nil, nil, err
	}
	return o, f, nil
}

// Mode returns the object's collision algorithm.
func (o *Object) Mode() Mode {
	return o.mode
}

// Register stores def under key. Registering an identical definition again
// is a no-op; a different one replaces the frame's definition.
func (o *Object) Register(key string, def Definition) (*Frame, error) {
	if f, ok := o.frames[key]; ok {
		if err := f.Redefine(def); err != nil {
			return nil, fmt.Errorf("frame %q: %w", key, err)
		}
		return f, nil
	}

	f, err := newFrame(o.mode, def, o.log.With(zap.String("frame", key)))
	if err != nil {
		o.log.Warn("bounds definition rejected", zap.String("frame", key), zap.Error(err))
		return nil, fmt.Errorf("frame %q: %w", key, err)
	}
	o.frames[key] = f
	o.log.Debug("frame registered",
		zap.String("frame", key),
		zap.Stringer("mode", o.mode),
		zap.Int("polygons", len(def.Polygons)),
	)
	return f, nil
}

// Activate makes the frame under key the active one and returns it. Nothing
// is recomputed here: the frame is marked stale, and the caller's next
// Update on it re-derives its geometry even if the pose has not changed.
func (o *Object) Activate(key string) (*Frame, error) {
	f, ok := o.frames[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFrame, key)
	}
	if f != o.active {
		o.log.Debug("frame activated", zap.String("frame", key), zap.String("previous", o.key))
	}
	f.Invalidate()
	o.active = f
	o.key = key
	return f, nil
}

// Active returns the active frame.
func (o *Object) Active() (*Frame, error) {
	if o.active == nil {
		return nil, ErrNoActiveFrame
	}
	return o.active, nil
}

// ActiveKey returns the active frame's key, or false if none is active.
func (o *Object) ActiveKey() (string, bool) {
	return o.key, o.active != nil
}

// Frame returns the frame registered under key.
func (o *Object) Frame(key string) (*Frame, bool) {
	f, ok := o.frames[key]
	return f, ok
}

// Keys returns the registered frame keys in sorted order.
func (o *Object) Keys() []string {
	keys := make([]string, 0, len(o.frames))
	for k := range o.frames {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// WorldBounds publishes the active frame's visible geometry. An object with
// no active frame publishes nothing.
func (o *Object) WorldBounds() WorldBounds {
	if o.active == nil {
		return WorldBounds{Box: EmptyBox()}
	}
	return o.active.WorldBounds()
}

// Update poses the active frame.
func (o *Object) Update(p Pose) error {
	if o.active == nil {
		return ErrNoActiveFrame
	}
	o.active.Update(p)
	return nil
}

// PointInBounds tests p against the active frame.
func (o *Object) PointInBounds(p math.Vec2) (int, bool) {
	if o.active == nil {
		return -1, false
	}
	return o.active.PointInBounds(p)
}

// CollideWith tests the active frame against peer.
func (o *Object) CollideWith(peer Peer) (Hit, bool) {
	if o.active == nil {
		return Hit{}, false
	}
	return o.active.CollideWith(peer)
}

// Point returns a vertex of the active frame in world space.
func (o *Object) Point(polygon, index int) (math.Vec2, error) {
	if o.active == nil {
		return math.Vec2{}, ErrNoActiveFrame
	}
	return o.active.Point(polygon, index)
}
