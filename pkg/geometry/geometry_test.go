package geometry

import "testing"

func TestCloneDeepCopiesSlices(t *testing.T) {
	p := Polyline{Points: []Vec2{{X: 1, Y: 1}, {X: 2, Y: 2}}}
	c := Clone(p).(Polyline)
	c.Points[0] = Vec2{X: 99, Y: 99}
	if p.Points[0] == c.Points[0] {
		t.Fatal("Clone shared backing array with original")
	}
}

func TestCloneNil(t *testing.T) {
	if Clone(nil) != nil {
		t.Fatal("Clone(nil) should return nil")
	}
}

func TestEqualValueTypes(t *testing.T) {
	a := Circle{Center: Vec2{X: 1, Y: 2}, Radius: 3}
	b := Circle{Center: Vec2{X: 1, Y: 2}, Radius: 3}
	if !Equal(a, b) {
		t.Fatal("expected equal circles to compare equal")
	}
	c := Circle{Center: Vec2{X: 1, Y: 2}, Radius: 4}
	if Equal(a, c) {
		t.Fatal("expected differing radius circles to compare unequal")
	}
}

func TestEqualDifferentVariants(t *testing.T) {
	if Equal(Point{Pos: Vec2{X: 1, Y: 1}}, Circle{Center: Vec2{X: 1, Y: 1}, Radius: 1}) {
		t.Fatal("expected different variants to compare unequal")
	}
}

func TestEqualNilHandling(t *testing.T) {
	if !Equal(nil, nil) {
		t.Fatal("expected nil == nil")
	}
	if Equal(nil, Point{}) || Equal(Point{}, nil) {
		t.Fatal("expected nil != non-nil")
	}
}

func TestEqualSliceVariants(t *testing.T) {
	a := Polygon{Vertices: []Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}}}
	b := Polygon{Vertices: []Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}}}
	if !Equal(a, b) {
		t.Fatal("expected equal polygons to compare equal")
	}
	c := Polygon{Vertices: []Vec2{{X: 0, Y: 0}}}
	if Equal(a, c) {
		t.Fatal("expected different-length polygons to compare unequal")
	}
}

func TestIs3DPartition(t *testing.T) {
	twoD := []Value{Point{}, Pose{}, Circle{}, Box2D{}, Polyline{}, Trajectory{}, Polygon{}}
	for _, v := range twoD {
		if v.Is3D() {
			t.Fatalf("%T reported Is3D() true", v)
		}
	}
	threeD := []Value{Point3{}, Pose3{}, Ball{}, Box3{}}
	for _, v := range threeD {
		if !v.Is3D() {
			t.Fatalf("%T reported Is3D() false", v)
		}
	}
}
