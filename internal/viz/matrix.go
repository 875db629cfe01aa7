// Package viz turns parsed sensor rows into anchor colours and keeps the
// anchors in step with the selected attribute.
package viz

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/sensorlab/internal/colormap"
)

// ColorMatrix holds one colour per anchor and attribute. It is written once
// and read-only afterwards.
type ColorMatrix struct {
	cells [][]colorful.Color
	width int
}

// BuildColorMatrix samples every value through g, keeping the shape of values.
// Attributes() is the width of the shortest row.
func BuildColorMatrix(values [][]float64, g *colormap.Gradient) *ColorMatrix {
	m := &ColorMatrix{cells: make([][]colorful.Color, len(values))}
	for i, row := range values {
		cells := make([]colorful.Color, len(row))
		for j, v := range row {
			cells[j] = g.Sample(v)
		}
		m.cells[i] = cells

		if i == 0 || len(row) < m.width {
			m.width = len(row)
		}
	}
	return m
}

// Anchors returns the number of rows.
func (m *ColorMatrix) Anchors() int {
	return len(m.cells)
}

// Attributes returns the number of columns.
func (m *ColorMatrix) Attributes() int {
	return m.width
}

// Row returns a copy of one anchor's colours.
func (m *ColorMatrix) Row(anchor int) ([]colorful.Color, error) {
	if anchor < 0 || anchor >= len(m.cells) {
		return nil, &IndexOutOfRangeError{Index: anchor, Len: len(m.cells), What: "anchor"}
	}
	return append([]colorful.Color(nil), m.cells[anchor][:m.width]...), nil
}

// At returns a single cell.
func (m *ColorMatrix) At(anchor, attr int) (colorful.Color, error) {
	if anchor < 0 || anchor >= len(m.cells) {
		return colorful.Color{}, &IndexOutOfRangeError{Index: anchor, Len: len(m.cells), What: "anchor"}
	}
	if attr < 0 || attr >= m.width {
		return colorful.Color{}, &IndexOutOfRangeError{Index: attr, Len: m.width, What: "attribute"}
	}
	return m.cells[anchor][attr], nil
}

// Column returns the colour of every anchor for one attribute, in anchor
// order.
func (m *ColorMatrix) Column(attr int) ([]colorful.Color, error) {
	if attr < 0 || attr >= m.width {
		return nil, &IndexOutOfRangeError{Index: attr, Len: m.width, What: "attribute"}
	}
	out := make([]colorful.Color, len(m.cells))
	for i, row := range m.cells {
		out[i] = row[attr]
	}
	return out, nil
}
