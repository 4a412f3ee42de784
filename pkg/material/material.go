// Package material defines the render-hint record attached to tracked
// objects. Materials are immutable after registration (§3 of
// SPEC_FULL.md).
package material

// PointShape selects how point-like geometry is drawn.
type PointShape uint8

const (
	PointSquare PointShape = iota
	PointCircle
	PointCross
	PointDiamond
)

// LineStyle selects how line-like geometry is drawn.
type LineStyle uint8

const (
	LineSolid LineStyle = iota
	LineDashed
	LineDotted
)

// Color is an RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float32
}

// Material is a render-hint record. It is copied by value into every
// AddObject command and never mutated afterwards.
type Material struct {
	Color      Color
	HasFill    bool
	FillColor  Color
	Filled     bool
	PointSize  float32
	LineWidth  float32
	PointShape PointShape
	LineStyle  LineStyle
	Legend     string
}

// Default returns the material used when the host does not specify one.
func Default() Material {
	return Material{
		Color:      Color{R: 1, G: 1, B: 1, A: 1},
		PointSize:  4,
		LineWidth:  1,
		PointShape: PointSquare,
		LineStyle:  LineSolid,
	}
}
