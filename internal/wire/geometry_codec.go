package wire

import (
	"bytes"
	"fmt"

	"github.com/kdsutter/visstream/pkg/geometry"
)

// Geometry variant tags. 2D and 3D tags are numbered independently since
// a decoder always knows which family it is in from the enclosing
// SceneUpdate.Is3D flag.
const (
	tagPoint byte = iota + 1
	tagPose
	tagCircle
	tagBox2D
	tagPolyline
	tagTrajectory
	tagPolygon
)

const (
	tagPoint3 byte = iota + 1
	tagPose3
	tagBall
	tagBox3
)

func encodeGeometry(buf *bytes.Buffer, is3D bool, v geometry.Value) error {
	if v == nil {
		return fmt.Errorf("wire: nil geometry value")
	}
	if v.Is3D() != is3D {
		return fmt.Errorf("wire: geometry dimensionality mismatch")
	}
	if is3D {
		return encodeGeometry3D(buf, v)
	}
	return encodeGeometry2D(buf, v)
}

func encodeGeometry2D(buf *bytes.Buffer, v geometry.Value) error {
	switch g := v.(type) {
	case geometry.Point:
		writeByte(buf, tagPoint)
		writeVec2(buf, g.Pos)
	case geometry.Pose:
		writeByte(buf, tagPose)
		writeVec2(buf, g.Pos)
		writeFloat32(buf, g.Theta)
	case geometry.Circle:
		writeByte(buf, tagCircle)
		writeVec2(buf, g.Center)
		writeFloat32(buf, g.Radius)
	case geometry.Box2D:
		writeByte(buf, tagBox2D)
		writePose2D(buf, g.Center)
		writeFloat32(buf, g.Width)
		writeFloat32(buf, g.LenFront)
		writeFloat32(buf, g.LenRear)
	case geometry.Polyline:
		writeByte(buf, tagPolyline)
		writeVec2Slice(buf, g.Points)
	case geometry.Trajectory:
		writeByte(buf, tagTrajectory)
		writeUint32(buf, uint32(len(g.Boxes)))
		for _, b := range g.Boxes {
			writePose2D(buf, b.Center)
			writeFloat32(buf, b.Width)
			writeFloat32(buf, b.LenFront)
			writeFloat32(buf, b.LenRear)
		}
	case geometry.Polygon:
		writeByte(buf, tagPolygon)
		writeVec2Slice(buf, g.Vertices)
	default:
		return fmt.Errorf("wire: unknown 2D geometry variant %T", v)
	}
	return nil
}

func encodeGeometry3D(buf *bytes.Buffer, v geometry.Value) error {
	switch g := v.(type) {
	case geometry.Point3:
		writeByte(buf, tagPoint3)
		writeVec3(buf, g.Pos)
	case geometry.Pose3:
		writeByte(buf, tagPose3)
		writeVec3(buf, g.Pos)
		writeQuat(buf, g.Quat)
	case geometry.Ball:
		writeByte(buf, tagBall)
		writeVec3(buf, g.Center)
		writeFloat32(buf, g.Radius)
	case geometry.Box3:
		writeByte(buf, tagBox3)
		writePose3D(buf, g.Center)
		writeFloat32(buf, g.XLen)
		writeFloat32(buf, g.YLen)
		writeFloat32(buf, g.ZLen)
	default:
		return fmt.Errorf("wire: unknown 3D geometry variant %T", v)
	}
	return nil
}

func decodeGeometry(r *bytes.Reader, is3D bool) (geometry.Value, error) {
	if is3D {
		return decodeGeometry3D(r)
	}
	return decodeGeometry2D(r)
}

func decodeGeometry2D(r *bytes.Reader) (geometry.Value, error) {
	tag, err := readByte(r)
	if err != nil {
		return nil, err
	}
	switch tag {
	case tagPoint:
		pos, err := readVec2(r)
		if err != nil {
			return nil, err
		}
		return geometry.Point{Pos: pos}, nil
	case tagPose:
		pos, err := readVec2(r)
		if err != nil {
			return nil, err
		}
		theta, err := readFloat32(r)
		if err != nil {
			return nil, err
		}
		return geometry.Pose{Pos: pos, Theta: theta}, nil
	case tagCircle:
		center, err := readVec2(r)
		if err != nil {
			return nil, err
		}
		radius, err := readFloat32(r)
		if err != nil {
			return nil, err
		}
		return geometry.Circle{Center: center, Radius: radius}, nil
	case tagBox2D:
		center, err := readPose2D(r)
		if err != nil {
			return nil, err
		}
		width, err := readFloat32(r)
		if err != nil {
			return nil, err
		}
		lenFront, err := readFloat32(r)
		if err != nil {
			return nil, err
		}
		lenRear, err := readFloat32(r)
		if err != nil {
			return nil, err
		}
		return geometry.Box2D{Center: center, Width: width, LenFront: lenFront, LenRear: lenRear}, nil
	case tagPolyline:
		pts, err := readVec2Slice(r)
		if err != nil {
			return nil, err
		}
		return geometry.Polyline{Points: pts}, nil
	case tagTrajectory:
		n, err := readUint32(r)
		if err != nil {
			return nil, err
		}
		boxes := make([]geometry.Box2D, 0, n)
		for i := uint32(0); i < n; i++ {
			center, err := readPose2D(r)
			if err != nil {
				return nil, err
			}
			width, err := readFloat32(r)
			if err != nil {
				return nil, err
			}
			lenFront, err := readFloat32(r)
			if err != nil {
				return nil, err
			}
			lenRear, err := readFloat32(r)
			if err != nil {
				return nil, err
			}
			boxes = append(boxes, geometry.Box2D{Center: center, Width: width, LenFront: lenFront, LenRear: lenRear})
		}
		return geometry.Trajectory{Boxes: boxes}, nil
	case tagPolygon:
		verts, err := readVec2Slice(r)
		if err != nil {
			return nil, err
		}
		return geometry.Polygon{Vertices: verts}, nil
	default:
		return nil, fmt.Errorf("wire: unknown 2D geometry tag %d", tag)
	}
}

func decodeGeometry3D(r *bytes.Reader) (geometry.Value, error) {
	tag, err := readByte(r)
	if err != nil {
		return nil, err
	}
	switch tag {
	case tagPoint3:
		pos, err := readVec3(r)
		if err != nil {
			return nil, err
		}
		return geometry.Point3{Pos: pos}, nil
	case tagPose3:
		pos, err := readVec3(r)
		if err != nil {
			return nil, err
		}
		q, err := readQuat(r)
		if err != nil {
			return nil, err
		}
		return geometry.Pose3{Pos: pos, Quat: q}, nil
	case tagBall:
		center, err := readVec3(r)
		if err != nil {
			return nil, err
		}
		radius, err := readFloat32(r)
		if err != nil {
			return nil, err
		}
		return geometry.Ball{Center: center, Radius: radius}, nil
	case tagBox3:
		center, err := readPose3D(r)
		if err != nil {
			return nil, err
		}
		xLen, err := readFloat32(r)
		if err != nil {
			return nil, err
		}
		yLen, err := readFloat32(r)
		if err != nil {
			return nil, err
		}
		zLen, err := readFloat32(r)
		if err != nil {
			return nil, err
		}
		return geometry.Box3{Center: center, XLen: xLen, YLen: yLen, ZLen: zLen}, nil
	default:
		return nil, fmt.Errorf("wire: unknown 3D geometry tag %d", tag)
	}
}

func writeVec2(buf *bytes.Buffer, v geometry.Vec2) {
	writeFloat32(buf, v.X)
	writeFloat32(buf, v.Y)
}

func readVec2(r *bytes.Reader) (geometry.Vec2, error) {
	x, err := readFloat32(r)
	if err != nil {
		return geometry.Vec2{}, err
	}
	y, err := readFloat32(r)
	if err != nil {
		return geometry.Vec2{}, err
	}
	return geometry.Vec2{X: x, Y: y}, nil
}

func writeVec3(buf *bytes.Buffer, v geometry.Vec3) {
	writeFloat32(buf, v.X)
	writeFloat32(buf, v.Y)
	writeFloat32(buf, v.Z)
}

func readVec3(r *bytes.Reader) (geometry.Vec3, error) {
	x, err := readFloat32(r)
	if err != nil {
		return geometry.Vec3{}, err
	}
	y, err := readFloat32(r)
	if err != nil {
		return geometry.Vec3{}, err
	}
	z, err := readFloat32(r)
	if err != nil {
		return geometry.Vec3{}, err
	}
	return geometry.Vec3{X: x, Y: y, Z: z}, nil
}

func writeQuat(buf *bytes.Buffer, q geometry.Quat) {
	writeFloat32(buf, q.W)
	writeFloat32(buf, q.X)
	writeFloat32(buf, q.Y)
	writeFloat32(buf, q.Z)
}

func readQuat(r *bytes.Reader) (geometry.Quat, error) {
	w, err := readFloat32(r)
	if err != nil {
		return geometry.Quat{}, err
	}
	x, err := readFloat32(r)
	if err != nil {
		return geometry.Quat{}, err
	}
	y, err := readFloat32(r)
	if err != nil {
		return geometry.Quat{}, err
	}
	z, err := readFloat32(r)
	if err != nil {
		return geometry.Quat{}, err
	}
	return geometry.Quat{W: w, X: x, Y: y, Z: z}, nil
}

func writePose2D(buf *bytes.Buffer, p geometry.Pose2D) {
	writeVec2(buf, p.Pos)
	writeFloat32(buf, p.Theta)
}

func readPose2D(r *bytes.Reader) (geometry.Pose2D, error) {
	pos, err := readVec2(r)
	if err != nil {
		return geometry.Pose2D{}, err
	}
	theta, err := readFloat32(r)
	if err != nil {
		return geometry.Pose2D{}, err
	}
	return geometry.Pose2D{Pos: pos, Theta: theta}, nil
}

func writePose3D(buf *bytes.Buffer, p geometry.Pose3D) {
	writeVec3(buf, p.Pos)
	writeQuat(buf, p.Quat)
}

func readPose3D(r *bytes.Reader) (geometry.Pose3D, error) {
	pos, err := readVec3(r)
	if err != nil {
		return geometry.Pose3D{}, err
	}
	q, err := readQuat(r)
	if err != nil {
		return geometry.Pose3D{}, err
	}
	return geometry.Pose3D{Pos: pos, Quat: q}, nil
}

func writeVec2Slice(buf *bytes.Buffer, pts []geometry.Vec2) {
	writeUint32(buf, uint32(len(pts)))
	for _, p := range pts {
		writeVec2(buf, p)
	}
}

func readVec2Slice(r *bytes.Reader) ([]geometry.Vec2, error) {
	n, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	out := make([]geometry.Vec2, 0, n)
	for i := uint32(0); i < n; i++ {
		p, err := readVec2(r)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
