package vis

import (
	"sync"

	"github.com/kdsutter/visstream/pkg/geometry"
)

// Notifier is the engine side of the observer relationship. A Source
// holds a Notifier as its back-reference and calls notifySource on
// every mutation. Engine implements this interface; nothing else is
// expected to.
type Notifier interface {
	notifySource(b *base)
}

// Source is a host-owned mutable holder of one geometry.Value. The
// interface is sealed to this package (via the unexported baseRef
// method) because the engine resolves a Source's identity through its
// embedded *base, and only the concrete types declared in this file
// embed one correctly.
type Source interface {
	// Snapshot returns the current geometry value.
	Snapshot() geometry.Value
	baseRef() *base
}

// base is embedded by every concrete Source type. It owns the mutex
// guarding concurrent setter calls from host threads and the single
// optional back-reference to the observing engine. Per §3 of the
// specification, exactly one engine may back-reference a source at a
// time; Add installs it, and a matching detach call is the only way to
// clear it.
type base struct {
	mu     sync.Mutex
	engine Notifier
	value  geometry.Value
}

func (b *base) baseRef() *base { return b }

func (b *base) snapshot() geometry.Value {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.value
}

func (b *base) set(v geometry.Value) {
	b.mu.Lock()
	b.value = v
	n := b.engine
	b.mu.Unlock()
	if n != nil {
		n.notifySource(b)
	}
}

// attach installs n as the observing engine, overwriting any prior
// back-reference (transferring ownership clears it implicitly, since
// only the new engine is retained).
func (b *base) attach(n Notifier) {
	b.mu.Lock()
	b.engine = n
	b.mu.Unlock()
}

// detach clears the back-reference, but only if n is still the current
// observer — a source re-added to a different engine must not have its
// new back-reference clobbered by the old engine's cleanup.
func (b *base) detach(n Notifier) {
	b.mu.Lock()
	if b.engine == n {
		b.engine = nil
	}
	b.mu.Unlock()
}

// --- 2D source types, named and shaped after vis_primitives.h ---

// PointSource tracks a mutable 2D point.
type PointSource struct{ base }

// NewPoint creates a PointSource at pos, untracked by any engine.
func NewPoint(pos geometry.Vec2) *PointSource {
	s := &PointSource{}
	s.value = geometry.Point{Pos: pos}
	return s
}

func (s *PointSource) Snapshot() geometry.Value { return s.snapshot() }
func (s *PointSource) Position() geometry.Vec2  { return s.snapshot().(geometry.Point).Pos }
func (s *PointSource) SetPosition(pos geometry.Vec2) {
	s.set(geometry.Point{Pos: pos})
}

// PoseSource tracks a mutable 2D pose (position + heading).
type PoseSource struct{ base }

// NewPose creates a PoseSource at pos/theta, untracked by any engine.
func NewPose(pos geometry.Vec2, theta float32) *PoseSource {
	s := &PoseSource{}
	s.value = geometry.Pose{Pos: pos, Theta: theta}
	return s
}

func (s *PoseSource) Snapshot() geometry.Value { return s.snapshot() }
func (s *PoseSource) Position() geometry.Vec2  { return s.snapshot().(geometry.Pose).Pos }
func (s *PoseSource) Angle() float32           { return s.snapshot().(geometry.Pose).Theta }
func (s *PoseSource) SetPosition(pos geometry.Vec2) {
	cur := s.snapshot().(geometry.Pose)
	cur.Pos = pos
	s.set(cur)
}
func (s *PoseSource) SetAngle(theta float32) {
	cur := s.snapshot().(geometry.Pose)
	cur.Theta = theta
	s.set(cur)
}
func (s *PoseSource) SetPose(pos geometry.Vec2, theta float32) {
	s.set(geometry.Pose{Pos: pos, Theta: theta})
}

// CircleSource tracks a mutable 2D circle.
type CircleSource struct{ base }

// NewCircle creates a CircleSource, untracked by any engine.
func NewCircle(center geometry.Vec2, radius float32) *CircleSource {
	s := &CircleSource{}
	s.value = geometry.Circle{Center: center, Radius: radius}
	return s
}

func (s *CircleSource) Snapshot() geometry.Value { return s.snapshot() }
func (s *CircleSource) Center() geometry.Vec2    { return s.snapshot().(geometry.Circle).Center }
func (s *CircleSource) Radius() float32          { return s.snapshot().(geometry.Circle).Radius }
func (s *CircleSource) SetCenter(center geometry.Vec2) {
	cur := s.snapshot().(geometry.Circle)
	cur.Center = center
	s.set(cur)
}
func (s *CircleSource) SetRadius(radius float32) {
	cur := s.snapshot().(geometry.Circle)
	cur.Radius = radius
	s.set(cur)
}

// Box2DSource tracks a mutable oriented 2D box.
type Box2DSource struct{ base }

// NewBox2D creates a Box2DSource, untracked by any engine.
func NewBox2D(center geometry.Pose2D, width, lenFront, lenRear float32) *Box2DSource {
	s := &Box2DSource{}
	s.value = geometry.Box2D{Center: center, Width: width, LenFront: lenFront, LenRear: lenRear}
	return s
}

func (s *Box2DSource) Snapshot() geometry.Value { return s.snapshot() }
func (s *Box2DSource) SetCenter(center geometry.Pose2D) {
	cur := s.snapshot().(geometry.Box2D)
	cur.Center = center
	s.set(cur)
}
func (s *Box2DSource) SetWidth(width float32) {
	cur := s.snapshot().(geometry.Box2D)
	cur.Width = width
	s.set(cur)
}
func (s *Box2DSource) SetLengthFront(v float32) {
	cur := s.snapshot().(geometry.Box2D)
	cur.LenFront = v
	s.set(cur)
}
func (s *Box2DSource) SetLengthRear(v float32) {
	cur := s.snapshot().(geometry.Box2D)
	cur.LenRear = v
	s.set(cur)
}

// PolylineSource tracks a mutable ordered list of 2D points.
type PolylineSource struct{ base }

// NewPolyline creates a PolylineSource, untracked by any engine. points
// is copied.
func NewPolyline(points []geometry.Vec2) *PolylineSource {
	s := &PolylineSource{}
	s.value = geometry.Polyline{Points: append([]geometry.Vec2(nil), points...)}
	return s
}

func (s *PolylineSource) Snapshot() geometry.Value { return s.snapshot() }
func (s *PolylineSource) SetPoints(points []geometry.Vec2) {
	s.set(geometry.Polyline{Points: append([]geometry.Vec2(nil), points...)})
}
func (s *PolylineSource) AddPoint(p geometry.Vec2) {
	cur := s.snapshot().(geometry.Polyline)
	pts := append(append([]geometry.Vec2(nil), cur.Points...), p)
	s.set(geometry.Polyline{Points: pts})
}
func (s *PolylineSource) ClearPoints() {
	s.set(geometry.Polyline{})
}

// TrajectorySource tracks a mutable ordered list of oriented boxes.
type TrajectorySource struct{ base }

// NewTrajectory creates a TrajectorySource, untracked by any engine.
func NewTrajectory(boxes []geometry.Box2D) *TrajectorySource {
	s := &TrajectorySource{}
	s.value = geometry.Trajectory{Boxes: append([]geometry.Box2D(nil), boxes...)}
	return s
}

func (s *TrajectorySource) Snapshot() geometry.Value { return s.snapshot() }
func (s *TrajectorySource) SetPoses(boxes []geometry.Box2D) {
	s.set(geometry.Trajectory{Boxes: append([]geometry.Box2D(nil), boxes...)})
}
func (s *TrajectorySource) AddPose(b geometry.Box2D) {
	cur := s.snapshot().(geometry.Trajectory)
	boxes := append(append([]geometry.Box2D(nil), cur.Boxes...), b)
	s.set(geometry.Trajectory{Boxes: boxes})
}
func (s *TrajectorySource) ClearPoses() {
	s.set(geometry.Trajectory{})
}

// PolygonSource tracks a mutable ordered list of 2D vertices.
type PolygonSource struct{ base }

// NewPolygon creates a PolygonSource, untracked by any engine.
func NewPolygon(vertices []geometry.Vec2) *PolygonSource {
	s := &PolygonSource{}
	s.value = geometry.Polygon{Vertices: append([]geometry.Vec2(nil), vertices...)}
	return s
}

func (s *PolygonSource) Snapshot() geometry.Value { return s.snapshot() }
func (s *PolygonSource) SetVertices(vertices []geometry.Vec2) {
	s.set(geometry.Polygon{Vertices: append([]geometry.Vec2(nil), vertices...)})
}
func (s *PolygonSource) AddVertex(v geometry.Vec2) {
	cur := s.snapshot().(geometry.Polygon)
	verts := append(append([]geometry.Vec2(nil), cur.Vertices...), v)
	s.set(geometry.Polygon{Vertices: verts})
}
func (s *PolygonSource) ClearVertices() {
	s.set(geometry.Polygon{})
}

// --- 3D source types ---

// Point3Source tracks a mutable 3D point.
type Point3Source struct{ base }

// NewPoint3 creates a Point3Source, untracked by any engine.
func NewPoint3(pos geometry.Vec3) *Point3Source {
	s := &Point3Source{}
	s.value = geometry.Point3{Pos: pos}
	return s
}

func (s *Point3Source) Snapshot() geometry.Value { return s.snapshot() }
func (s *Point3Source) Position() geometry.Vec3  { return s.snapshot().(geometry.Point3).Pos }
func (s *Point3Source) SetPosition(pos geometry.Vec3) {
	s.set(geometry.Point3{Pos: pos})
}

// Pose3Source tracks a mutable 3D pose (position + orientation).
type Pose3Source struct{ base }

// NewPose3 creates a Pose3Source, untracked by any engine.
func NewPose3(pos geometry.Vec3, quat geometry.Quat) *Pose3Source {
	s := &Pose3Source{}
	s.value = geometry.Pose3{Pos: pos, Quat: quat}
	return s
}

func (s *Pose3Source) Snapshot() geometry.Value    { return s.snapshot() }
func (s *Pose3Source) Position() geometry.Vec3     { return s.snapshot().(geometry.Pose3).Pos }
func (s *Pose3Source) Orientation() geometry.Quat  { return s.snapshot().(geometry.Pose3).Quat }
func (s *Pose3Source) SetPosition(pos geometry.Vec3) {
	cur := s.snapshot().(geometry.Pose3)
	cur.Pos = pos
	s.set(cur)
}
func (s *Pose3Source) SetOrientation(quat geometry.Quat) {
	cur := s.snapshot().(geometry.Pose3)
	cur.Quat = quat
	s.set(cur)
}
func (s *Pose3Source) SetPose(pos geometry.Vec3, quat geometry.Quat) {
	s.set(geometry.Pose3{Pos: pos, Quat: quat})
}

// BallSource tracks a mutable 3D ball.
type BallSource struct{ base }

// NewBall creates a BallSource, untracked by any engine.
func NewBall(center geometry.Vec3, radius float32) *BallSource {
	s := &BallSource{}
	s.value = geometry.Ball{Center: center, Radius: radius}
	return s
}

func (s *BallSource) Snapshot() geometry.Value { return s.snapshot() }
func (s *BallSource) Center() geometry.Vec3    { return s.snapshot().(geometry.Ball).Center }
func (s *BallSource) Radius() float32          { return s.snapshot().(geometry.Ball).Radius }
func (s *BallSource) SetCenter(center geometry.Vec3) {
	cur := s.snapshot().(geometry.Ball)
	cur.Center = center
	s.set(cur)
}
func (s *BallSource) SetRadius(radius float32) {
	cur := s.snapshot().(geometry.Ball)
	cur.Radius = radius
	s.set(cur)
}

// Box3Source tracks a mutable oriented 3D box.
type Box3Source struct{ base }

// NewBox3 creates a Box3Source, untracked by any engine.
func NewBox3(center geometry.Pose3D, xLen, yLen, zLen float32) *Box3Source {
	s := &Box3Source{}
	s.value = geometry.Box3{Center: center, XLen: xLen, YLen: yLen, ZLen: zLen}
	return s
}

func (s *Box3Source) Snapshot() geometry.Value { return s.snapshot() }
func (s *Box3Source) SetCenter(center geometry.Pose3D) {
	cur := s.snapshot().(geometry.Box3)
	cur.Center = center
	s.set(cur)
}
func (s *Box3Source) SetLengths(xLen, yLen, zLen float32) {
	cur := s.snapshot().(geometry.Box3)
	cur.XLen, cur.YLen, cur.ZLen = xLen, yLen, zLen
	s.set(cur)
}

// wrapValue wraps a plain geometry.Value in a fresh, engine-owned Source
// of the matching concrete type. Used by Engine.AddValue (§4.5's
// "by-value overload").
func wrapValue(v geometry.Value) Source {
	switch vv := v.(type) {
	case geometry.Point:
		return NewPoint(vv.Pos)
	case geometry.Pose:
		return NewPose(vv.Pos, vv.Theta)
	case geometry.Circle:
		return NewCircle(vv.Center, vv.Radius)
	case geometry.Box2D:
		return NewBox2D(vv.Center, vv.Width, vv.LenFront, vv.LenRear)
	case geometry.Polyline:
		return NewPolyline(vv.Points)
	case geometry.Trajectory:
		return NewTrajectory(vv.Boxes)
	case geometry.Polygon:
		return NewPolygon(vv.Vertices)
	case geometry.Point3:
		return NewPoint3(vv.Pos)
	case geometry.Pose3:
		return NewPose3(vv.Pos, vv.Quat)
	case geometry.Ball:
		return NewBall(vv.Center, vv.Radius)
	case geometry.Box3:
		return NewBox3(vv.Center, vv.XLen, vv.YLen, vv.ZLen)
	default:
		return nil
	}
}
