package colormap

import (
	"image"

	"golang.org/x/image/draw"
)

// LegendHeight is the height of the on-screen legend bar.
const LegendHeight = 50

// Legend stretches the strip to a w x h bar. Nearest-neighbour scaling keeps
// each legend column equal to the colour Sample returns for it.
func (g *Gradient) Legend(w, h int) *image.RGBA {
	if w < 1 {
		w = Width
	}
	if h < 1 {
		h = LegendHeight
	}
	src := g.Strip()
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}
