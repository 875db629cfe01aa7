package viz

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Tintable is anything with a mutable fill colour.
type Tintable interface {
	SetColor(colorful.Color)
}

// Recolor sets visuals[i] to the matrix colour of anchor i for attr. The
// index and the visual count are checked before any visual is touched.
func Recolor[T Tintable](m *ColorMatrix, visuals []T, attr int) error {
	col, err := m.Column(attr)
	if err != nil {
		return err
	}
	if len(visuals) != len(col) {
		return fmt.Errorf("recolor: %d visuals for %d anchors", len(visuals), len(col))
	}

	for i, v := range visuals {
		v.SetColor(col[i])
	}
	return nil
}
