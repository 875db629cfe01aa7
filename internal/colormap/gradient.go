// Package colormap maps normalized sensor values to colours through a
// precomputed gradient strip.
package colormap

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Width is the number of pixels in a gradient strip.
const Width = 256

// Stop pins a colour to a position in [0, 1].
type Stop struct {
	Pos   float64
	Color colorful.Color
}

// DefaultStops is the lab ramp: green, yellow at three quarters, red.
var DefaultStops = []Stop{
	{Pos: 0, Color: fromRGBA(colornames.Green)},
	{Pos: 0.75, Color: fromRGBA(colornames.Yellow)},
	{Pos: 1, Color: fromRGBA(colornames.Red)},
}

// Gradient is a Width x 1 strip of 8-bit pixels. It is immutable once built
// and safe to share.
type Gradient struct {
	strip *image.RGBA
}

// Build renders the default ramp.
func Build() *Gradient {
	return BuildStops(DefaultStops)
}

// BuildStops renders an arbitrary ramp. Stops are sorted by position; pixels
// outside the first and last stop take that stop's colour. Each pixel is
// evaluated at its centre and quantized to 8 bits per channel.
func BuildStops(stops []Stop) *Gradient {
	sorted := append([]Stop(nil), stops...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Pos < sorted[j].Pos })

	strip := image.NewRGBA(image.Rect(0, 0, Width, 1))
	for x := 0; x < Width; x++ {
		t := (float64(x) + 0.5) / Width
		r, g, b := interpolate(sorted, t).RGB255()
		strip.SetRGBA(x, 0, color.RGBA{R: r, G: g, B: b, A: 0xff})
	}
	return &Gradient{strip: strip}
}

// interpolate blends linearly in RGB between the stops around t.
func interpolate(stops []Stop, t float64) colorful.Color {
	if len(stops) == 0 {
		return colorful.Color{}
	}
	if t <= stops[0].Pos {
		return stops[0].Color
	}
	for i := 0; i < len(stops)-1; i++ {
		a, b := stops[i], stops[i+1]
		if a.Pos <= t && t <= b.Pos {
			if b.Pos == a.Pos {
				return b.Color
			}
			return a.Color.BlendRgb(b.Color, (t-a.Pos)/(b.Pos-a.Pos))
		}
	}
	return stops[len(stops)-1].Color
}

// Index returns the strip pixel for value. Values are clamped to [0, 1]
// (NaN counts as 0) and 1.0 lands on the last pixel.
func Index(value float64) int {
	if !(value > 0) {
		return 0
	}
	if value >= 1 {
		return Width - 1
	}
	i := int(math.Floor(value * Width))
	if i >= Width {
		i = Width - 1
	}
	return i
}

// Sample returns the strip colour for value with channels in [0, 1].
func (g *Gradient) Sample(value float64) colorful.Color {
	return g.Pixel(Index(value))
}

// Pixel returns strip pixel x, clamped to the strip.
func (g *Gradient) Pixel(x int) colorful.Color {
	x = max(0, min(x, Width-1))
	c := g.strip.RGBAAt(x, 0)
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

// Strip returns a copy of the strip image.
func (g *Gradient) Strip() *image.RGBA {
	out := image.NewRGBA(g.strip.Rect)
	copy(out.Pix, g.strip.Pix)
	return out
}

func fromRGBA(c color.RGBA) colorful.Color {
	col, _ := colorful.MakeColor(c)
	return col
}
