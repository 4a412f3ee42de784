// Package wire implements the binary encoding described in §6 of
// SPEC_FULL.md: a VisMessage envelope (Scene2DUpdate / Scene3DUpdate)
// carrying an ordered list of commands targeting one window. The
// surrounding frame transport (how one message's bytes reach the peer)
// is out of scope here and lives in internal/transport.
package wire

import (
	"github.com/kdsutter/visstream/pkg/geometry"
	"github.com/kdsutter/visstream/pkg/material"
)

// CommandKind discriminates the CommandKD union (§6).
type CommandKind uint8

const (
	CmdCreateWindow CommandKind = iota + 1
	CmdDeleteWindow
	CmdSetTitle
	CmdSetGridVisible
	CmdSetAxesVisible
	CmdSetLegendVisible
	CmdAddObject
	CmdUpdateObjectGeometry
	CmdDeleteObject
)

func (k CommandKind) String() string {
	switch k {
	case CmdCreateWindow:
		return "CreateWindow"
	case CmdDeleteWindow:
		return "DeleteWindow"
	case CmdSetTitle:
		return "SetTitle"
	case CmdSetGridVisible:
		return "SetGridVisible"
	case CmdSetAxesVisible:
		return "SetAxesVisible"
	case CmdSetLegendVisible:
		return "SetLegendVisible"
	case CmdAddObject:
		return "AddObject"
	case CmdUpdateObjectGeometry:
		return "UpdateObjectGeometry"
	case CmdDeleteObject:
		return "DeleteObject"
	default:
		return "Unknown"
	}
}

// Command is one entry of a SceneUpdate's command list. Only the fields
// relevant to Kind are populated; the rest are zero.
type Command struct {
	Kind CommandKind

	// CreateWindow
	WindowID   string
	WindowName string

	// SetTitle
	Title string

	// SetGridVisible / SetAxesVisible / SetLegendVisible
	Visible bool

	// AddObject / UpdateObjectGeometry / DeleteObject
	ObjectID string
	Material material.Material
	Geometry geometry.Value
}

// SceneUpdate is the wire unit: a window plus an ordered list of
// commands targeting it (Scene2DUpdate / Scene3DUpdate in §6, unified
// here since the two differ only in which geometry variants their
// commands may carry).
type SceneUpdate struct {
	WindowID   string
	WindowName string
	Is3D       bool
	Commands   []Command
}
