package wire

import (
	"bytes"
	"fmt"
)

// Encode serializes a SceneUpdate into the wire format described in
// SPEC_FULL.md §6: a version byte, a dimensionality byte, the window's
// identity, and a length-prefixed list of commands. Only the Command
// fields relevant to each Kind are written; the schema is intentionally
// not self-describing beyond that (no field names on the wire), matching
// the terse struct-of-primitives style of the primitives it replaces.
func Encode(u SceneUpdate) ([]byte, error) {
	var buf bytes.Buffer
	writeByte(&buf, wireVersion)
	writeBool(&buf, u.Is3D)
	writeString(&buf, u.WindowID)
	writeString(&buf, u.WindowName)
	writeUint32(&buf, uint32(len(u.Commands)))

	for _, c := range u.Commands {
		writeByte(&buf, byte(c.Kind))
		switch c.Kind {
		case CmdCreateWindow:
			writeString(&buf, c.WindowID)
			writeString(&buf, c.WindowName)
		case CmdDeleteWindow:
			writeString(&buf, c.WindowID)
		case CmdSetTitle:
			writeString(&buf, c.Title)
		case CmdSetGridVisible, CmdSetAxesVisible, CmdSetLegendVisible:
			writeBool(&buf, c.Visible)
		case CmdAddObject:
			writeString(&buf, c.ObjectID)
			encodeMaterial(&buf, c.Material)
			if err := encodeGeometry(&buf, u.Is3D, c.Geometry); err != nil {
				return nil, fmt.Errorf("wire: encode AddObject %s: %w", c.ObjectID, err)
			}
		case CmdUpdateObjectGeometry:
			writeString(&buf, c.ObjectID)
			if err := encodeGeometry(&buf, u.Is3D, c.Geometry); err != nil {
				return nil, fmt.Errorf("wire: encode UpdateObjectGeometry %s: %w", c.ObjectID, err)
			}
		case CmdDeleteObject:
			writeString(&buf, c.ObjectID)
		default:
			return nil, fmt.Errorf("wire: encode: unknown command kind %d", c.Kind)
		}
	}
	return buf.Bytes(), nil
}
