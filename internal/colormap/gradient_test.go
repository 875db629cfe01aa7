package colormap

import (
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

const tolerance = 0.01

func near(a, b colorful.Color) bool {
	return math.Abs(a.R-b.R) <= tolerance &&
		math.Abs(a.G-b.G) <= tolerance &&
		math.Abs(a.B-b.B) <= tolerance
}

var (
	green  = colorful.Color{R: 0, G: 128.0 / 255, B: 0}
	yellow = colorful.Color{R: 1, G: 1, B: 0}
	red    = colorful.Color{R: 1, G: 0, B: 0}
)

func TestSampleStops(t *testing.T) {
	g := Build()

	tests := []struct {
		value float64
		want  colorful.Color
	}{
		{0, green},
		{0.75, yellow},
		{1, red},
	}
	for _, tt := range tests {
		got := g.Sample(tt.value)
		if !near(got, tt.want) {
			t.Errorf("Sample(%v) = %v, want about %v", tt.value, got, tt.want)
		}
	}
}

func TestSampleDeterministic(t *testing.T) {
	a, b := Build(), Build()
	for i := 0; i <= 100; i++ {
		v := float64(i) / 100
		if a.Sample(v) != b.Sample(v) {
			t.Fatalf("Sample(%v) differs between builds", v)
		}
		if a.Sample(v) != a.Sample(v) {
			t.Fatalf("Sample(%v) differs between calls", v)
		}
	}
}

func TestSampleMonotonicGreenToYellow(t *testing.T) {
	g := Build()
	prev := g.Sample(0)
	for i := 1; i <= 75; i++ {
		c := g.Sample(float64(i) / 100)
		if c.R < prev.R || c.G < prev.G {
			t.Fatalf("ramp not monotonic at %v: %v after %v", float64(i)/100, c, prev)
		}
		if c.R > yellow.R || c.G > yellow.G || c.B != 0 {
			t.Fatalf("sample at %v exceeds yellow: %v", float64(i)/100, c)
		}
		prev = c
	}
}

func TestSampleMonotonicYellowToRed(t *testing.T) {
	g := Build()
	prev := g.Sample(0.75)
	for i := 76; i <= 100; i++ {
		c := g.Sample(float64(i) / 100)
		if c.R != 1 {
			t.Fatalf("red channel should stay saturated at %v, got %v", float64(i)/100, c.R)
		}
		if c.G > prev.G {
			t.Fatalf("green channel rose at %v: %v after %v", float64(i)/100, c.G, prev.G)
		}
		prev = c
	}
}

func TestSampleClamps(t *testing.T) {
	g := Build()

	if g.Sample(-3) != g.Sample(0) {
		t.Error("negative values should clamp to 0")
	}
	if g.Sample(7.5) != g.Sample(1) {
		t.Error("values above 1 should clamp to 1")
	}
	if g.Sample(math.NaN()) != g.Sample(0) {
		t.Error("NaN should clamp to 0")
	}
}

func TestIndex(t *testing.T) {
	tests := []struct {
		value float64
		want  int
	}{
		{-1, 0},
		{0, 0},
		{0.5, 128},
		{0.75, 192},
		{0.999, 255},
		{1, 255},
		{2, 255},
	}
	for _, tt := range tests {
		if got := Index(tt.value); got != tt.want {
			t.Errorf("Index(%v) = %d, want %d", tt.value, got, tt.want)
		}
	}
}

func TestPixelMatchesSample(t *testing.T) {
	g := Build()
	for x := 0; x < Width; x++ {
		if g.Pixel(x) != g.Sample(float64(x)/Width) {
			t.Fatalf("Pixel(%d) disagrees with Sample", x)
		}
	}
	if g.Pixel(-4) != g.Pixel(0) || g.Pixel(Width+4) != g.Pixel(Width-1) {
		t.Error("Pixel should clamp out-of-range x")
	}
}

func TestBuildStopsSortsAndClamps(t *testing.T) {
	g := BuildStops([]Stop{
		{Pos: 0.8, Color: colorful.Color{R: 1, G: 1, B: 1}},
		{Pos: 0.2, Color: colorful.Color{}},
	})

	if c := g.Sample(0); c != (colorful.Color{}) {
		t.Errorf("below first stop should be black, got %v", c)
	}
	if c := g.Sample(1); c != (colorful.Color{R: 1, G: 1, B: 1}) {
		t.Errorf("past last stop should be white, got %v", c)
	}
	mid := g.Sample(0.5)
	if math.Abs(mid.R-0.5) > tolerance {
		t.Errorf("midpoint should be mid grey, got %v", mid)
	}
}

func TestStripIsACopy(t *testing.T) {
	g := Build()
	s := g.Strip()
	if s.Bounds().Dx() != Width || s.Bounds().Dy() != 1 {
		t.Fatalf("unexpected strip bounds %v", s.Bounds())
	}
	before := g.Pixel(0)
	s.Pix[0] = 0xff
	s.Pix[1] = 0x00
	if g.Pixel(0) != before {
		t.Error("modifying Strip() must not change the gradient")
	}
}

func TestLegend(t *testing.T) {
	g := Build()
	img := g.Legend(512, 20)

	if img.Bounds().Dx() != 512 || img.Bounds().Dy() != 20 {
		t.Fatalf("unexpected legend bounds %v", img.Bounds())
	}
	for _, x := range []int{0, 100, 384, 511} {
		c := img.RGBAAt(x, 10)
		want := g.Pixel(x / 2)
		got := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
		if got != want {
			t.Errorf("legend column %d = %v, want %v", x, got, want)
		}
	}

	def := g.Legend(0, 0)
	if def.Bounds().Dx() != Width || def.Bounds().Dy() != LegendHeight {
		t.Errorf("expected default legend size, got %v", def.Bounds())
	}
}
