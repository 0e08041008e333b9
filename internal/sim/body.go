package sim

import (
	"math/rand/v2"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/Faultbox/rotabounds/pkg/bounds"
	"github.com/Faultbox/rotabounds/pkg/math"
)

// Tweened pose channels.
const (
	chanX = iota
	chanY
	chanAngle
	chanSize
	numChans
)

// Body is one simulated object: a bounds.Object whose pose is driven by
// tweens toward random targets, cycling through its animation frames.
type Body struct {
	ID     int
	Object *bounds.Object

	frame  *bounds.Frame
	keys   []string
	keyIdx int
	shown  time.Duration // time on the current animation frame

	pose   bounds.Pose
	values [numChans]float64
	tweens [numChans]*gween.Tween

	rng      *rand.Rand
	easing   ease.TweenFunc
	world    math.Vec2
	baseSize float64
	duration float32

	retargets int
}

func newBody(id int, obj *bounds.Object, w *World) (*Body, error) {
	b := &Body{
		ID:       id,
		Object:   obj,
		keys:     obj.Keys(),
		rng:      rand.New(rand.NewPCG(uint64(w.cfg.Seed), uint64(id))),
		easing:   w.easing,
		world:    math.Vec2{X: w.cfg.WorldWidth, Y: w.cfg.WorldHeight},
		baseSize: w.cfg.BodySize,
		duration: float32(w.cfg.TweenSeconds),
	}

	f, err := obj.Activate(b.keys[0])
	if err != nil {
		return nil, err
	}
	b.frame = f

	b.values[chanSize] = b.baseSize
	b.values[chanX] = b.rng.Float64() * (b.world.X - b.baseSize)
	b.values[chanY] = b.rng.Float64() * (b.world.Y - b.baseSize)
	b.values[chanAngle] = b.rng.Float64() * 360
	b.retarget()
	b.applyPose()
	return b, nil
}

// retarget starts fresh tweens from the current values toward new random
// ones.
func (b *Body) retarget() {
	size := b.baseSize * (0.5 + b.rng.Float64())
	targets := [numChans]float64{
		chanX:     b.rng.Float64() * max(b.world.X-size, 0),
		chanY:     b.rng.Float64() * max(b.world.Y-size, 0),
		chanAngle: b.values[chanAngle] + (b.rng.Float64()*2-1)*180,
		chanSize:  size,
	}
	for i := range b.tweens {
		b.tweens[i] = gween.New(float32(b.values[i]), float32(targets[i]), b.duration, b.easing)
	}
	b.retargets++
}

// advance moves the body's tweens and animation clock forward by dt.
func (b *Body) advance(dt time.Duration, frameLen time.Duration) error {
	done := true
	for i, tw := range b.tweens {
		v, finished := tw.Update(float32(dt.Seconds()))
		b.values[i] = float64(v)
		done = done && finished
	}
	if done {
		b.retarget()
	}

	if len(b.keys) > 1 {
		b.shown += dt
		if b.shown >= frameLen {
			b.shown -= frameLen
			b.keyIdx = (b.keyIdx + 1) % len(b.keys)
			f, err := b.Object.Activate(b.keys[b.keyIdx])
			if err != nil {
				return err
			}
			b.frame = f
		}
	}

	b.applyPose()
	return nil
}

func (b *Body) applyPose() {
	size := math.Vec2{X: b.values[chanSize], Y: b.values[chanSize]}
	pos := math.Vec2{X: b.values[chanX], Y: b.values[chanY]}
	b.pose = bounds.Pose{
		Pos:    pos,
		Size:   size,
		Angle:  math.NormalizeDegrees(b.values[chanAngle]),
		Origin: bounds.PivotOrigin(pos, size, math.Vec2{X: 0.5, Y: 0.5}),
	}
	b.values[chanAngle] = b.pose.Angle
	b.frame.Update(b.pose)
}

// Pose returns the body's current pose.
func (b *Body) Pose() bounds.Pose {
	return b.pose
}

// Frame returns the body's active frame.
func (b *Body) Frame() *bounds.Frame {
	return b.frame
}

// Retargets returns how many tween legs the body has started.
func (b *Body) Retargets() int {
	return b.retargets
}

// FrameKey returns the key of the body's active frame.
func (b *Body) FrameKey() string {
	return b.keys[b.keyIdx]
}
