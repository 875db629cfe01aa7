package framebuffer

import "testing"

func TestFlipRows(t *testing.T) {
	// Two rows, bottom row red, top row blue, as GL returns them.
	pixels := []byte{
		255, 0, 0, 255, 255, 0, 0, 255,
		0, 0, 255, 255, 0, 0, 255, 255,
	}
	img := FlipRows(pixels, 2, 2)

	if c := img.RGBAAt(0, 0); c.B != 255 || c.R != 0 {
		t.Errorf("top-left = %v, want blue", c)
	}
	if c := img.RGBAAt(1, 1); c.R != 255 || c.B != 0 {
		t.Errorf("bottom-right = %v, want red", c)
	}
}
