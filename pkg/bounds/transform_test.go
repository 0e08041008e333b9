package bounds

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/rotabounds/pkg/math"
)

const eps = 1e-6

func approxPoints(t *testing.T, got, want []math.Vec2) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d points, want %d", len(got), len(want))
	}
	for i := range got {
		if !got[i].ApproxEqual(want[i], eps) {
			t.Errorf("point %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestScalePoints(t *testing.T) {
	hints := []math.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0.5}, {X: 0.25, Y: 1}}
	got := ScalePoints(nil, hints, math.Vec2{X: 40, Y: 20})
	want := []math.Vec2{{X: 0, Y: 0}, {X: 40, Y: 10}, {X: 10, Y: 20}}
	approxPoints(t, got, want)
}

func TestScalePointsReusesBuffer(t *testing.T) {
	buf := make([]math.Vec2, 0, 8)
	hints := []math.Vec2{{X: 1, Y: 1}, {X: 2, Y: 2}}
	got := ScalePoints(buf, hints, math.Vec2{X: 2, Y: 2})
	if &got[0] != &buf[:1][0] {
		t.Error("ScalePoints should reuse a large enough buffer")
	}
}

func TestTranslatePoints(t *testing.T) {
	pts := []math.Vec2{{X: 0, Y: 0}, {X: 50, Y: 50}}
	got := TranslatePoints(nil, pts, math.Vec2{X: 100, Y: -10})
	want := []math.Vec2{{X: 100, Y: -10}, {X: 150, Y: 40}}
	approxPoints(t, got, want)
}

func TestRotatePoint(t *testing.T) {
	origin := math.Vec2{X: 125, Y: 125}
	tests := []struct {
		name  string
		p     math.Vec2
		angle float64
		want  math.Vec2
	}{
		{"quarter turn", math.Vec2{X: 150, Y: 125}, gomath.Pi / 2, math.Vec2{X: 125, Y: 150}},
		{"half turn", math.Vec2{X: 100, Y: 100}, gomath.Pi, math.Vec2{X: 150, Y: 150}},
		{"negative angle", math.Vec2{X: 150, Y: 125}, -gomath.Pi / 2, math.Vec2{X: 125, Y: 100}},
		{"origin stays", origin, 1.234, origin},
		{"full turn", math.Vec2{X: 130, Y: 170}, 2 * gomath.Pi, math.Vec2{X: 130, Y: 170}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RotatePoint(tt.p, origin, tt.angle)
			if !got.ApproxEqual(tt.want, eps) {
				t.Errorf("RotatePoint(%v, %v) = %v, want %v", tt.p, tt.angle, got, tt.want)
			}
		})
	}
}

func TestRotatePointsZeroAngleCopies(t *testing.T) {
	pts := []math.Vec2{{X: 1, Y: 2}, {X: 3, Y: 4}}
	got := RotatePoints(nil, pts, math.Vec2{X: 100, Y: 100}, 0)
	for i := range pts {
		if got[i] != pts[i] {
			t.Errorf("point %d changed: %v -> %v", i, pts[i], got[i])
		}
	}
}

func TestRotateRoundTrip(t *testing.T) {
	pts := []math.Vec2{
		{X: 0, Y: 0}, {X: 17.5, Y: -3}, {X: -42, Y: 8.25},
		{X: 1000, Y: 1000}, {X: 3, Y: 3},
	}
	origin := math.Vec2{X: 3, Y: 3}

	for _, deg := range []float64{1, 30, 89.9, 90, 180, 233.7, 359.99} {
		theta := math.Radians(deg)
		there := RotatePoints(nil, pts, origin, theta)
		back := RotatePoints(nil, there, origin, -theta)
		for i := range pts {
			if !back[i].ApproxEqual(pts[i], eps) {
				t.Errorf("%v°: point %d came back as %v, want %v", deg, i, back[i], pts[i])
			}
		}
		// The complementary angle must also close the loop.
		back = RotatePoints(nil, there, origin, math.TwoPi-theta)
		for i := range pts {
			if !back[i].ApproxEqual(pts[i], eps) {
				t.Errorf("%v° + complement: point %d came back as %v, want %v", deg, i, back[i], pts[i])
			}
		}
	}
}

func TestPoseCenterAndPivot(t *testing.T) {
	p := Pose{Pos: math.Vec2{X: 100, Y: 100}, Size: math.Vec2{X: 50, Y: 30}}
	if got := p.Center(); got != (math.Vec2{X: 125, Y: 115}) {
		t.Errorf("Center() = %v, want (125, 115)", got)
	}
	got := PivotOrigin(p.Pos, p.Size, math.Vec2{X: 0, Y: 1})
	if got != (math.Vec2{X: 100, Y: 130}) {
		t.Errorf("PivotOrigin() = %v, want (100, 130)", got)
	}
}
