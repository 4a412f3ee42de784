package wire

import (
	"bytes"

	"github.com/kdsutter/visstream/pkg/material"
)

func writeColor(buf *bytes.Buffer, c material.Color) {
	writeFloat32(buf, c.R)
	writeFloat32(buf, c.G)
	writeFloat32(buf, c.B)
	writeFloat32(buf, c.A)
}

func readColor(r *bytes.Reader) (material.Color, error) {
	rr, err := readFloat32(r)
	if err != nil {
		return material.Color{}, err
	}
	g, err := readFloat32(r)
	if err != nil {
		return material.Color{}, err
	}
	b, err := readFloat32(r)
	if err != nil {
		return material.Color{}, err
	}
	a, err := readFloat32(r)
	if err != nil {
		return material.Color{}, err
	}
	return material.Color{R: rr, G: g, B: b, A: a}, nil
}

func encodeMaterial(buf *bytes.Buffer, m material.Material) {
	writeColor(buf, m.Color)
	writeBool(buf, m.HasFill)
	writeColor(buf, m.FillColor)
	writeBool(buf, m.Filled)
	writeFloat32(buf, m.PointSize)
	writeFloat32(buf, m.LineWidth)
	writeByte(buf, byte(m.PointShape))
	writeByte(buf, byte(m.LineStyle))
	writeString(buf, m.Legend)
}

func decodeMaterial(r *bytes.Reader) (material.Material, error) {
	var m material.Material
	var err error

	if m.Color, err = readColor(r); err != nil {
		return m, err
	}
	if m.HasFill, err = readBool(r); err != nil {
		return m, err
	}
	if m.FillColor, err = readColor(r); err != nil {
		return m, err
	}
	if m.Filled, err = readBool(r); err != nil {
		return m, err
	}
	if m.PointSize, err = readFloat32(r); err != nil {
		return m, err
	}
	if m.LineWidth, err = readFloat32(r); err != nil {
		return m, err
	}
	shape, err := readByte(r)
	if err != nil {
		return m, err
	}
	m.PointShape = material.PointShape(shape)
	style, err := readByte(r)
	if err != nil {
		return m, err
	}
	m.LineStyle = material.LineStyle(style)
	if m.Legend, err = readString(r); err != nil {
		return m, err
	}
	return m, nil
}
