package scene

import (
	"testing"

	"github.com/Faultbox/sensorlab/internal/viz"
	"github.com/Faultbox/sensorlab/pkg/math"
)

func TestAmbientColor(t *testing.T) {
	tests := []struct {
		base      [4]float32
		intensity float32
		want      [4]float32
	}{
		{[4]float32{0.1, 0.1, 0.1, 1}, 5, [4]float32{0.5, 0.5, 0.5, 1}},
		{[4]float32{0.5, 0.2, 0, 0.8}, 5, [4]float32{1, 1, 0, 0.8}},
		{[4]float32{1, 1, 1, 1}, 0, [4]float32{0, 0, 0, 1}},
	}
	for _, tt := range tests {
		got := AmbientColor(tt.base, tt.intensity)
		for i := range got {
			if d := got[i] - tt.want[i]; d > 1e-6 || d < -1e-6 {
				t.Errorf("AmbientColor(%v, %v) = %v, want %v", tt.base, tt.intensity, got, tt.want)
				break
			}
		}
	}
}

func TestBackToFront(t *testing.T) {
	anchors, err := viz.NewAnchors([]int{2, 3, 4, 5, 6, 7, 8, 9}, viz.DefaultAnchorPositions)
	if err != nil {
		t.Fatal(err)
	}
	eye := math.Vec3{X: 40, Y: 40, Z: 0}

	sorted := BackToFront(anchors, eye)
	if len(sorted) != len(anchors) {
		t.Fatalf("got %d anchors, want %d", len(sorted), len(anchors))
	}
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Position.Distance(eye) > sorted[i-1].Position.Distance(eye) {
			t.Fatalf("anchor %d is farther than anchor %d", i, i-1)
		}
	}
	if anchors[0].Module != 2 {
		t.Error("input slice was reordered")
	}
	// (-25, 4, 13) and (-25, 4, -9) sit on the far side from +X.
	if sorted[0].Position.X != -25 {
		t.Errorf("farthest anchor = %v", sorted[0].Position)
	}
}
