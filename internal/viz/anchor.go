package viz

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/sensorlab/pkg/math"
)

// DefaultAnchorPositions are the lab's sensor module locations in model
// space, one per enabled module in order.
var DefaultAnchorPositions = []math.Vec3{
	{X: 13, Y: 4, Z: 25},
	{X: -11, Y: 4, Z: 25},
	{X: -25, Y: 4, Z: 13},
	{X: -25, Y: 4, Z: -9},
	{X: 25, Y: 4, Z: 12},
	{X: 25, Y: 4, Z: -12},
	{X: -9, Y: 4, Z: -19},
	{X: 11, Y: 4, Z: -25},
}

// Anchor is a sensor module's place in the scene and the colour its sphere
// is drawn with.
type Anchor struct {
	Module   int // Table row the anchor reads from
	Position math.Vec3
	Color    colorful.Color
}

func (a *Anchor) SetColor(c colorful.Color) {
	a.Color = c
}

// NewAnchors pairs each module row with a position.
func NewAnchors(modules []int, positions []math.Vec3) ([]*Anchor, error) {
	if len(modules) > len(positions) {
		return nil, fmt.Errorf("%d enabled modules but only %d anchor positions", len(modules), len(positions))
	}
	anchors := make([]*Anchor, len(modules))
	for i, row := range modules {
		anchors[i] = &Anchor{Module: row, Position: positions[i]}
	}
	return anchors, nil
}
