// Package sim runs many bounds objects headlessly: each step tweens every
// body to its next pose, then tests every pair of bodies for contact.
//
// A step has two passes separated by a barrier. The update pass poses each
// body's active frame in parallel; bodies share nothing, so no locking is
// needed. The query pass then tests pairs in parallel, which is safe because
// queries only read frames and no update runs until the pass is over.
package sim

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/rotabounds/internal/config"
	"github.com/Faultbox/rotabounds/pkg/bounds"
	"github.com/Faultbox/rotabounds/pkg/formats"
)

// Contact is a pair of bodies touching in one step. Hit is seen from A.
type Contact struct {
	A, B int
	Hit  bounds.Hit
}

// Stats summarizes a run.
type Stats struct {
	Steps       int
	Contacts    int
	MaxContacts int
	Simulated   time.Duration
	Wall        time.Duration
}

// World owns the simulated bodies.
type World struct {
	cfg     config.SimConfig
	mode    bounds.Mode
	easing  ease.TweenFunc
	log     *zap.Logger
	workers int

	bodies []*Body
	found  [][]Contact // per-body scratch for the query pass

	steps   int
	elapsed time.Duration
}

// New builds a world of cfg.Bodies bodies. With a bounds file every body
// uses its frames and mode; otherwise each body collides as its rectangle
// in mode.
func New(cfg config.SimConfig, mode bounds.Mode, file *formats.BoundsFile, log *zap.Logger) (*World, error) {
	if log == nil {
		log = zap.NewNop()
	}
	easing, err := Easing(cfg.Easing)
	if err != nil {
		return nil, err
	}
	if file != nil && file.Mode != mode {
		log.Warn("bounds file overrides collision mode",
			zap.Stringer("configured", mode),
			zap.Stringer("file", file.Mode),
		)
		mode = file.Mode
	}

	w := &World{
		cfg:     cfg,
		mode:    mode,
		easing:  easing,
		log:     log,
		workers: cfg.Workers,
	}
	if w.workers <= 0 {
		w.workers = runtime.GOMAXPROCS(0)
	}

	boundsLog := log.Named("bounds")
	for i := 0; i < cfg.Bodies; i++ {
		opts := []bounds.Option{bounds.WithLogger(boundsLog.With(zap.Int("body", i)))}
		var obj *bounds.Object
		if file != nil {
			obj, err = file.NewObject(opts...)
		} else {
			obj, _, err = bounds.NewSingle(bounds.DefaultDefinition(mode), append(opts, bounds.WithMode(mode))...)
		}
		if err != nil {
			return nil, fmt.Errorf("body %d: %w", i, err)
		}
		if len(obj.Keys()) == 0 {
			return nil, fmt.Errorf("body %d: %w", i, formats.ErrEmptyBounds)
		}

		b, err := newBody(i, obj, w)
		if err != nil {
			return nil, fmt.Errorf("body %d: %w", i, err)
		}
		w.bodies = append(w.bodies, b)
	}
	w.found = make([][]Contact, len(w.bodies))

	log.Debug("world created",
		zap.Int("bodies", len(w.bodies)),
		zap.Stringer("mode", mode),
		zap.Int("workers", w.workers),
	)
	return w, nil
}

// Bodies returns the world's bodies in ID order.
func (w *World) Bodies() []*Body {
	return w.bodies
}

// Mode returns the collision mode every body uses.
func (w *World) Mode() bounds.Mode {
	return w.mode
}

// Step advances every body by one step and returns the contacts found at
// the new poses, ordered by (A, B).
func (w *World) Step(ctx context.Context) ([]Contact, error) {
	dt, frameLen := w.cfg.Step(), w.cfg.Frame()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.workers)
	for _, b := range w.bodies {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return b.advance(dt, frameLen)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("update pass: %w", err)
	}

	contacts, err := w.collide(ctx)
	if err != nil {
		return nil, err
	}
	w.steps++
	w.elapsed += dt
	return contacts, nil
}

// collide tests every pair of bodies at their current poses.
func (w *World) collide(ctx context.Context) ([]Contact, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.workers)
	for i := range w.bodies {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			w.found[i] = w.contactsOf(i, w.found[i][:0])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("query pass: %w", err)
	}

	var out []Contact
	for _, c := range w.found {
		out = append(out, c...)
	}
	return out, nil
}

// contactsOf appends the contacts of body i with every later body.
func (w *World) contactsOf(i int, dst []Contact) []Contact {
	a := w.bodies[i].frame
	for j := i + 1; j < len(w.bodies); j++ {
		b := w.bodies[j].frame
		if hit, ok := a.CollideWith(b); ok {
			dst = append(dst, Contact{A: i, B: j, Hit: hit})
			continue
		}
		// Membership tests are one-sided: A may lie inside B with none of
		// B's points inside A.
		if hit, ok := b.CollideWith(a); ok {
			dst = append(dst, Contact{A: i, B: j, Hit: bounds.Hit{
				Polygon:      hit.OtherPolygon,
				Edge:         hit.OtherEdge,
				OtherPolygon: hit.Polygon,
				OtherEdge:    hit.Edge,
			}})
		}
	}
	return dst
}

// Run performs steps steps, or until ctx is done.
func (w *World) Run(ctx context.Context, steps int) (Stats, error) {
	w.log.Info("simulation started",
		zap.Int("bodies", len(w.bodies)),
		zap.Int("steps", steps),
		zap.Stringer("mode", w.mode),
		zap.Int("workers", w.workers),
	)

	var st Stats
	start := time.Now()
	for i := 0; i < steps; i++ {
		contacts, err := w.Step(ctx)
		if err != nil {
			st.Wall = time.Since(start)
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				w.log.Warn("simulation interrupted", zap.Int("step", st.Steps))
			}
			return st, err
		}
		st.Steps++
		st.Contacts += len(contacts)
		st.MaxContacts = max(st.MaxContacts, len(contacts))
		if len(contacts) > 0 {
			w.log.Debug("contacts",
				zap.Int("step", w.steps),
				zap.Int("count", len(contacts)),
				zap.Int("first_a", contacts[0].A),
				zap.Int("first_b", contacts[0].B),
			)
		}
	}
	st.Simulated = w.elapsed
	st.Wall = time.Since(start)

	w.log.Info("simulation finished",
		zap.Int("steps", st.Steps),
		zap.Int("contacts", st.Contacts),
		zap.Int("max_contacts", st.MaxContacts),
		zap.Duration("simulated", st.Simulated),
		zap.Duration("wall", st.Wall),
	)
	return st, nil
}
