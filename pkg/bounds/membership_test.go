package bounds

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/rotabounds/pkg/math"
)

func membershipFrame(t *testing.T, polygons ...Polygon) *Frame {
	t.Helper()
	f, err := NewFrame(Definition{Polygons: polygons})
	if err != nil {
		t.Fatalf("NewFrame: %v", err)
	}
	return f
}

func unitPose(angle float64) Pose {
	return Pose{
		Size:   math.Vec2{X: 1, Y: 1},
		Angle:  angle,
		Origin: math.Vec2{X: 0.5, Y: 0.5},
	}
}

func TestInSector(t *testing.T) {
	// The first quadrant, seen from the origin.
	quadrant := RayPair{In: gomath.Pi / 2, Out: 0}
	cp := math.Vec2{}
	tests := []struct {
		name     string
		p        math.Vec2
		ray      RayPair
		rotation float64
		negative bool
		want     bool
	}{
		{"inside", math.Vec2{X: 1, Y: 1}, quadrant, 0, false, true},
		{"outside", math.Vec2{X: -1, Y: 1}, quadrant, 0, false, false},
		{"on a side", math.Vec2{X: 1, Y: 0}, quadrant, 0, false, false},
		{"rotated in", math.Vec2{X: -1, Y: 1}, quadrant, gomath.Pi / 2, false, true},
		{"rotated out", math.Vec2{X: 1, Y: 1}, quadrant, gomath.Pi, false, false},
		// The fourth quadrant straddles the seam.
		{"seam inside", math.Vec2{X: 1, Y: -1}, RayPair{In: 0, Out: 3 * gomath.Pi / 2}, 0, false, true},
		{"seam outside", math.Vec2{X: -1, Y: -1}, RayPair{In: 0, Out: 3 * gomath.Pi / 2}, 0, false, false},
		{"negative swaps sides", math.Vec2{X: 1, Y: 1}, RayPair{In: 0, Out: gomath.Pi / 2}, 0, true, true},
		{"negative outside", math.Vec2{X: -1, Y: -1}, RayPair{In: 0, Out: gomath.Pi / 2}, 0, true, false},
		{"degenerate sector", math.Vec2{X: 1, Y: 1}, RayPair{In: 1, Out: 1}, 0, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := inSector(tt.p, cp, tt.ray, tt.rotation, tt.negative)
			if got != tt.want {
				t.Errorf("inSector(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestMembershipSquare(t *testing.T) {
	for _, checkpoints := range [][]int{{0, 2}, {1, 3}} {
		f := membershipFrame(t, Polygon{Hints: unitSquare, Kind: Membership{Checkpoints: checkpoints}})
		f.Update(unitPose(0))

		if _, ok := f.PointInBounds(math.Vec2{X: 0.5, Y: 0.5}); !ok {
			t.Errorf("checkpoints %v: center should be inside", checkpoints)
		}
		if _, ok := f.PointInBounds(math.Vec2{X: 1.5, Y: 0.5}); ok {
			t.Errorf("checkpoints %v: (1.5, 0.5) should be outside", checkpoints)
		}
	}
}

func TestMembershipConcave(t *testing.T) {
	f := membershipFrame(t, Polygon{Hints: lShape, Kind: Membership{Checkpoints: []int{1, 3, 5}}})
	f.Update(Pose{Size: math.Vec2{X: 1, Y: 1}})

	tests := []struct {
		p    math.Vec2
		want bool
	}{
		{math.Vec2{X: 0.25, Y: 0.25}, true},
		{math.Vec2{X: 0.25, Y: 0.75}, true},
		{math.Vec2{X: 0.75, Y: 0.75}, true},
		{math.Vec2{X: 0.75, Y: 0.25}, false}, // the notch
		{math.Vec2{X: 1.5, Y: 0.25}, false},
		{math.Vec2{X: -0.1, Y: 0.5}, false},
	}

	for _, tt := range tests {
		if _, got := f.PointInBounds(tt.p); got != tt.want {
			t.Errorf("PointInBounds(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestMembershipClockwise(t *testing.T) {
	// Vertex 0 stays at the origin; 2 is the opposite corner.
	cw := []math.Vec2{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}}
	f := membershipFrame(t, Polygon{Hints: cw, Kind: Membership{Checkpoints: []int{0, 2}}})

	for _, angle := range []float64{0, 33, 90, 180, 250} {
		f.Update(unitPose(angle))
		if _, ok := f.PointInBounds(math.Vec2{X: 0.5, Y: 0.5}); !ok {
			t.Errorf("%v°: center should be inside a clockwise square", angle)
		}
		if _, ok := f.PointInBounds(math.Vec2{X: 2, Y: 2}); ok {
			t.Errorf("%v°: (2, 2) should be outside", angle)
		}
	}
}

func TestMembershipNoCheckpoints(t *testing.T) {
	f := membershipFrame(t, Polygon{Hints: unitSquare, Kind: Membership{}})
	f.Update(unitPose(0))

	for _, p := range []math.Vec2{{X: 0.5, Y: 0.5}, {X: 0.1, Y: 0.9}, {X: 5, Y: 5}} {
		if _, ok := f.PointInBounds(p); ok {
			t.Errorf("polygon without checkpoints should not contain %v", p)
		}
	}
}

func TestMembershipRotatedThin(t *testing.T) {
	// A thin bar: rotation must move its inside along with it.
	bar := []math.Vec2{{X: 0, Y: 0.45}, {X: 1, Y: 0.45}, {X: 1, Y: 0.55}, {X: 0, Y: 0.55}}
	f := membershipFrame(t, Polygon{Hints: bar, Kind: Membership{Checkpoints: []int{0, 2}}})
	pose := Pose{Size: math.Vec2{X: 100, Y: 100}, Origin: math.Vec2{X: 50, Y: 50}}

	pose.Angle = 0
	f.Update(pose)
	if _, ok := f.PointInBounds(math.Vec2{X: 90, Y: 50}); !ok {
		t.Error("unrotated bar should contain (90, 50)")
	}
	if _, ok := f.PointInBounds(math.Vec2{X: 50, Y: 90}); ok {
		t.Error("unrotated bar should not contain (50, 90)")
	}

	pose.Angle = 90
	f.Update(pose)
	if _, ok := f.PointInBounds(math.Vec2{X: 50, Y: 90}); !ok {
		t.Error("rotated bar should contain (50, 90)")
	}
	if _, ok := f.PointInBounds(math.Vec2{X: 90, Y: 50}); ok {
		t.Error("rotated bar should not contain (90, 50)")
	}
}

func TestMembershipPolygonIndex(t *testing.T) {
	left := []math.Vec2{{X: 0, Y: 0}, {X: 0.4, Y: 0}, {X: 0.4, Y: 1}, {X: 0, Y: 1}}
	right := []math.Vec2{{X: 0.6, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0.6, Y: 1}}
	f := membershipFrame(t,
		Polygon{Hints: left, Kind: Membership{Checkpoints: []int{0, 2}}},
		Polygon{Hints: right, Kind: Membership{Checkpoints: []int{0, 2}}},
	)
	f.Update(unitPose(0))

	if i, ok := f.PointInBounds(math.Vec2{X: 0.8, Y: 0.5}); !ok || i != 1 {
		t.Errorf("PointInBounds(right) = %d, %v; want 1, true", i, ok)
	}
	if i, ok := f.PointInBounds(math.Vec2{X: 0.2, Y: 0.5}); !ok || i != 0 {
		t.Errorf("PointInBounds(left) = %d, %v; want 0, true", i, ok)
	}
	if _, ok := f.PointInBounds(math.Vec2{X: 0.5, Y: 0.5}); ok {
		t.Error("the gap should not collide")
	}

	pts := []math.Vec2{{X: 0.9, Y: 0.9}, {X: 0.1, Y: 0.1}}
	if i, ok := f.CollidePoints(pts); !ok || i != 0 {
		t.Errorf("CollidePoints() = %d, %v; want first polygon 0", i, ok)
	}
}
