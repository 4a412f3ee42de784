package wire

import (
	"bytes"
	"fmt"
)

// Decode is the inverse of Encode. It rejects payloads written by a
// different wireVersion outright rather than attempting best-effort
// forward compatibility, since the schema has no self-describing field
// tags to skip unknown data with.
func Decode(payload []byte) (SceneUpdate, error) {
	r := bytes.NewReader(payload)

	version, err := readByte(r)
	if err != nil {
		return SceneUpdate{}, fmt.Errorf("wire: decode version: %w", err)
	}
	if version != wireVersion {
		return SceneUpdate{}, fmt.Errorf("wire: unsupported version %d", version)
	}

	var u SceneUpdate
	if u.Is3D, err = readBool(r); err != nil {
		return SceneUpdate{}, fmt.Errorf("wire: decode is3D: %w", err)
	}
	if u.WindowID, err = readString(r); err != nil {
		return SceneUpdate{}, fmt.Errorf("wire: decode windowID: %w", err)
	}
	if u.WindowName, err = readString(r); err != nil {
		return SceneUpdate{}, fmt.Errorf("wire: decode windowName: %w", err)
	}
	n, err := readUint32(r)
	if err != nil {
		return SceneUpdate{}, fmt.Errorf("wire: decode command count: %w", err)
	}

	u.Commands = make([]Command, 0, n)
	for i := uint32(0); i < n; i++ {
		kindByte, err := readByte(r)
		if err != nil {
			return SceneUpdate{}, fmt.Errorf("wire: decode command %d kind: %w", i, err)
		}
		c := Command{Kind: CommandKind(kindByte)}
		switch c.Kind {
		case CmdCreateWindow:
			if c.WindowID, err = readString(r); err != nil {
				return SceneUpdate{}, err
			}
			if c.WindowName, err = readString(r); err != nil {
				return SceneUpdate{}, err
			}
		case CmdDeleteWindow:
			if c.WindowID, err = readString(r); err != nil {
				return SceneUpdate{}, err
			}
		case CmdSetTitle:
			if c.Title, err = readString(r); err != nil {
				return SceneUpdate{}, err
			}
		case CmdSetGridVisible, CmdSetAxesVisible, CmdSetLegendVisible:
			if c.Visible, err = readBool(r); err != nil {
				return SceneUpdate{}, err
			}
		case CmdAddObject:
			if c.ObjectID, err = readString(r); err != nil {
				return SceneUpdate{}, err
			}
			if c.Material, err = decodeMaterial(r); err != nil {
				return SceneUpdate{}, fmt.Errorf("wire: decode AddObject %s material: %w", c.ObjectID, err)
			}
			if c.Geometry, err = decodeGeometry(r, u.Is3D); err != nil {
				return SceneUpdate{}, fmt.Errorf("wire: decode AddObject %s geometry: %w", c.ObjectID, err)
			}
		case CmdUpdateObjectGeometry:
			if c.ObjectID, err = readString(r); err != nil {
				return SceneUpdate{}, err
			}
			if c.Geometry, err = decodeGeometry(r, u.Is3D); err != nil {
				return SceneUpdate{}, fmt.Errorf("wire: decode UpdateObjectGeometry %s geometry: %w", c.ObjectID, err)
			}
		case CmdDeleteObject:
			if c.ObjectID, err = readString(r); err != nil {
				return SceneUpdate{}, err
			}
		default:
			return SceneUpdate{}, fmt.Errorf("wire: decode: unknown command kind %d at index %d", kindByte, i)
		}
		u.Commands = append(u.Commands, c)
	}
	return u, nil
}
