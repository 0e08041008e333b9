package sim

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/Faultbox/rotabounds/internal/config"
	"github.com/Faultbox/rotabounds/pkg/bounds"
	"github.com/Faultbox/rotabounds/pkg/formats"
	"github.com/Faultbox/rotabounds/pkg/math"
)

func simConfig(bodies int) config.SimConfig {
	cfg := config.Default().Sim
	cfg.Bodies = bodies
	cfg.Workers = 4
	return cfg
}

func place(b *Body, x, y, size float64) {
	pos := math.Vec2{X: x, Y: y}
	sz := math.Vec2{X: size, Y: size}
	b.frame.Update(bounds.Pose{Pos: pos, Size: sz, Origin: bounds.PivotOrigin(pos, sz, math.Vec2{X: 0.5, Y: 0.5})})
}

func TestEasing(t *testing.T) {
	for _, name := range []string{"linear", "inOutQuad", "OUTBOUNCE"} {
		if _, err := Easing(name); err != nil {
			t.Errorf("Easing(%q): %v", name, err)
		}
	}
	if _, err := Easing("wobble"); !errors.Is(err, ErrUnknownEasing) {
		t.Errorf("Easing(wobble) error = %v, want ErrUnknownEasing", err)
	}
	if !slices.IsSorted(Easings()) || len(Easings()) != len(easings) {
		t.Errorf("Easings() = %v", Easings())
	}
}

func TestNewWorld(t *testing.T) {
	cfg := simConfig(8)
	w, err := New(cfg, bounds.ModeMembership, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if len(w.Bodies()) != 8 {
		t.Fatalf("got %d bodies, want 8", len(w.Bodies()))
	}
	for _, b := range w.Bodies() {
		p := b.Pose()
		if p.Pos.X < 0 || p.Pos.Y < 0 || p.Pos.X > cfg.WorldWidth || p.Pos.Y > cfg.WorldHeight {
			t.Errorf("body %d placed outside the world: %+v", b.ID, p)
		}
		if _, ok := b.Frame().Pose(); !ok {
			t.Errorf("body %d frame not posed", b.ID)
		}
		if b.FrameKey() != bounds.DefaultFrame {
			t.Errorf("body %d frame key = %q", b.ID, b.FrameKey())
		}
	}

	cfg.Easing = "wobble"
	if _, err := New(cfg, bounds.ModeMembership, nil, nil); !errors.Is(err, ErrUnknownEasing) {
		t.Errorf("New with bad easing error = %v", err)
	}
}

func TestCollideMembership(t *testing.T) {
	w, err := New(simConfig(4), bounds.ModeMembership, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	bs := w.Bodies()
	place(bs[0], 100, 100, 50)
	place(bs[1], 120, 120, 50) // overlaps 0
	place(bs[2], 500, 400, 10) // inside 3
	place(bs[3], 450, 350, 200)

	contacts, err := w.collide(context.Background())
	if err != nil {
		t.Fatalf("collide: %v", err)
	}
	want := []Contact{
		{A: 0, B: 1, Hit: bounds.Hit{Polygon: 0, Edge: -1, OtherPolygon: 0, OtherEdge: -1}},
		{A: 2, B: 3, Hit: bounds.Hit{Polygon: 0, Edge: -1, OtherPolygon: 0, OtherEdge: -1}},
	}
	if !slices.Equal(contacts, want) {
		t.Errorf("contacts = %+v, want %+v", contacts, want)
	}
}

func TestCollideSegment(t *testing.T) {
	w, err := New(simConfig(3), bounds.ModeSegment, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	bs := w.Bodies()
	place(bs[0], 100, 100, 50)
	place(bs[1], 120, 120, 50)
	place(bs[2], 115, 115, 10) // inside 0 with no edges crossing, crosses 1

	contacts, err := w.collide(context.Background())
	if err != nil {
		t.Fatalf("collide: %v", err)
	}
	if len(contacts) != 2 {
		t.Fatalf("contacts = %+v, want 0-1 and 1-2", contacts)
	}
	if contacts[0].A != 0 || contacts[0].B != 1 || contacts[0].Hit.Edge < 0 {
		t.Errorf("first contact = %+v", contacts[0])
	}
}

func TestStepDeterministic(t *testing.T) {
	run := func(workers int) [][]Contact {
		cfg := simConfig(12)
		cfg.Workers = workers
		cfg.BodySize = 120
		w, err := New(cfg, bounds.ModeMembership, nil, nil)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		var all [][]Contact
		for i := 0; i < 40; i++ {
			c, err := w.Step(context.Background())
			if err != nil {
				t.Fatalf("Step: %v", err)
			}
			all = append(all, c)
		}
		return all
	}

	serial, parallel := run(1), run(8)
	total := 0
	for i := range serial {
		if !slices.Equal(serial[i], parallel[i]) {
			t.Fatalf("step %d differs:\n serial %+v\n parallel %+v", i, serial[i], parallel[i])
		}
		total += len(serial[i])
	}
	if total == 0 {
		t.Error("expected crowded bodies to touch at least once")
	}
}

func TestRetarget(t *testing.T) {
	cfg := simConfig(1)
	cfg.TweenSeconds = 0.05
	w, err := New(cfg, bounds.ModeMembership, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	b := w.Bodies()[0]
	for i := 0; i < 10; i++ {
		if _, err := w.Step(context.Background()); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}
	if b.Retargets() < 3 {
		t.Errorf("Retargets() = %d, want several legs", b.Retargets())
	}
	if a := b.Pose().Angle; a < 0 || a >= 360 {
		t.Errorf("angle %v not wrapped", a)
	}
}

func TestFrameCycling(t *testing.T) {
	file, err := formats.ParseBounds([]byte(`
bounds:
  "00":
    - points: [[0, 0], [1, 0], [1, 1], [0, 1]]
      checkpoints: [0, 2]
  "01":
    - points: [[0, 0], [0.5, 0], [0.5, 1], [0, 1]]
      checkpoints: [0, 2]
`))
	if err != nil {
		t.Fatalf("ParseBounds: %v", err)
	}

	cfg := simConfig(2)
	cfg.FrameMillis = 2 * cfg.StepMillis
	w, err := New(cfg, bounds.ModeSegment, file, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if w.Mode() != bounds.ModeMembership {
		t.Errorf("Mode() = %s, want the file's membership", w.Mode())
	}

	b := w.Bodies()[0]
	var keys []string
	for i := 0; i < 4; i++ {
		if _, err := w.Step(context.Background()); err != nil {
			t.Fatalf("Step: %v", err)
		}
		keys = append(keys, b.FrameKey())
	}
	if want := []string{"00", "01", "01", "00"}; !slices.Equal(keys, want) {
		t.Errorf("frame keys = %v, want %v", keys, want)
	}
	if active, _ := b.Object.ActiveKey(); active != b.FrameKey() {
		t.Errorf("object active key %q, body says %q", active, b.FrameKey())
	}
}

func TestRunCanceled(t *testing.T) {
	w, err := New(simConfig(3), bounds.ModeMembership, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	st, err := w.Run(ctx, 10)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
	if st.Steps != 0 {
		t.Errorf("Steps = %d, want 0", st.Steps)
	}
}

func TestRun(t *testing.T) {
	cfg := simConfig(6)
	w, err := New(cfg, bounds.ModeSegment, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	st, err := w.Run(context.Background(), 25)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if st.Steps != 25 || st.Simulated != 25*cfg.Step() {
		t.Errorf("stats = %+v", st)
	}
	if st.MaxContacts > st.Contacts {
		t.Errorf("max %d exceeds total %d", st.MaxContacts, st.Contacts)
	}
}
