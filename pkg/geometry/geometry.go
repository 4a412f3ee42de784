// Package geometry defines the closed set of geometric primitive values
// that visstream tracks and streams. Values are immutable once
// constructed: mutation happens by replacing the value held by a
// vis.Source, never by mutating a Value in place.
package geometry

// Vec2 is a 2D vector.
type Vec2 struct {
	X, Y float32
}

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z float32
}

// Quat is a unit quaternion, w-first to match the wire layout in
// vis_primitives.h's Quaternion.
type Quat struct {
	W, X, Y, Z float32
}

// Pose2D is a 2D position plus heading.
type Pose2D struct {
	Pos   Vec2
	Theta float32
}

// Pose3D is a 3D position plus orientation.
type Pose3D struct {
	Pos  Vec3
	Quat Quat
}

// Value is a tagged union over the closed set of geometry variants.
// There is no inheritance; polymorphism is by variant via IsGeometryValue
// and Is3D. New variants may only be added by extending this closed set,
// never by external packages.
type Value interface {
	IsGeometryValue()
	Is3D() bool
	clone() Value
}

// Clone returns a deep copy of v, duplicating any backing slices so the
// returned value shares no mutable state with v.
func Clone(v Value) Value {
	if v == nil {
		return nil
	}
	return v.clone()
}

// Equal reports whether a and b are the same variant with structurally
// equal fields.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case Point:
		bv, ok := b.(Point)
		return ok && av == bv
	case Pose:
		bv, ok := b.(Pose)
		return ok && av == bv
	case Circle:
		bv, ok := b.(Circle)
		return ok && av == bv
	case Box2D:
		bv, ok := b.(Box2D)
		return ok && av == bv
	case Polyline:
		bv, ok := b.(Polyline)
		return ok && equalVec2Slice(av.Points, bv.Points)
	case Trajectory:
		bv, ok := b.(Trajectory)
		return ok && equalBox2DSlice(av.Boxes, bv.Boxes)
	case Polygon:
		bv, ok := b.(Polygon)
		return ok && equalVec2Slice(av.Vertices, bv.Vertices)
	case Point3:
		bv, ok := b.(Point3)
		return ok && av == bv
	case Pose3:
		bv, ok := b.(Pose3)
		return ok && av == bv
	case Ball:
		bv, ok := b.(Ball)
		return ok && av == bv
	case Box3:
		bv, ok := b.(Box3)
		return ok && av == bv
	default:
		return false
	}
}

func equalVec2Slice(a, b []Vec2) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalBox2DSlice(a, b []Box2D) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// --- 2D variants ---

// Point is a bare 2D position.
type Point struct{ Pos Vec2 }

func (Point) IsGeometryValue()   {}
func (Point) Is3D() bool         { return false }
func (v Point) clone() Value     { return v }

// Pose is a 2D position plus heading.
type Pose struct {
	Pos   Vec2
	Theta float32
}

func (Pose) IsGeometryValue() {}
func (Pose) Is3D() bool       { return false }
func (v Pose) clone() Value   { return v }

// Circle is a 2D center and radius.
type Circle struct {
	Center Vec2
	Radius float32
}

func (Circle) IsGeometryValue() {}
func (Circle) Is3D() bool       { return false }
func (v Circle) clone() Value   { return v }

// Box2D is an oriented rectangle split into front/rear lengths from its
// center pose, matching vis_primitives.h's Box2D.
type Box2D struct {
	Center   Pose2D
	Width    float32
	LenFront float32
	LenRear  float32
}

func (Box2D) IsGeometryValue() {}
func (Box2D) Is3D() bool       { return false }
func (v Box2D) clone() Value   { return v }

// Polyline is an ordered list of 2D points.
type Polyline struct {
	Points []Vec2
}

func (Polyline) IsGeometryValue() {}
func (Polyline) Is3D() bool       { return false }
func (v Polyline) clone() Value {
	return Polyline{Points: append([]Vec2(nil), v.Points...)}
}

// Trajectory is an ordered list of oriented boxes.
type Trajectory struct {
	Boxes []Box2D
}

func (Trajectory) IsGeometryValue() {}
func (Trajectory) Is3D() bool       { return false }
func (v Trajectory) clone() Value {
	return Trajectory{Boxes: append([]Box2D(nil), v.Boxes...)}
}

// Polygon is an ordered list of 2D vertices.
type Polygon struct {
	Vertices []Vec2
}

func (Polygon) IsGeometryValue() {}
func (Polygon) Is3D() bool       { return false }
func (v Polygon) clone() Value {
	return Polygon{Vertices: append([]Vec2(nil), v.Vertices...)}
}

// --- 3D variants ---

// Point3 is a bare 3D position.
type Point3 struct{ Pos Vec3 }

func (Point3) IsGeometryValue() {}
func (Point3) Is3D() bool       { return true }
func (v Point3) clone() Value   { return v }

// Pose3 is a 3D position plus orientation.
type Pose3 struct {
	Pos  Vec3
	Quat Quat
}

func (Pose3) IsGeometryValue() {}
func (Pose3) Is3D() bool       { return true }
func (v Pose3) clone() Value   { return v }

// Ball is a 3D center and radius.
type Ball struct {
	Center Vec3
	Radius float32
}

func (Ball) IsGeometryValue() {}
func (Ball) Is3D() bool       { return true }
func (v Ball) clone() Value   { return v }

// Box3 is an oriented cuboid.
type Box3 struct {
	Center Pose3D
	XLen   float32
	YLen   float32
	ZLen   float32
}

func (Box3) IsGeometryValue() {}
func (Box3) Is3D() bool       { return true }
func (v Box3) clone() Value   { return v }
