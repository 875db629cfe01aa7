package camera

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/sensorlab/pkg/math"
)

func near(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < 1e-3
}

func nearVec(a, b math.Vec3) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Z, b.Z)
}

var home = math.Vec3{X: 40, Y: 40, Z: 0}

func TestHomePose(t *testing.T) {
	c := NewOrbitCamera(home, math.Vec3{})

	if !near(c.Distance, 56.5685) {
		t.Errorf("distance = %v, want 40*sqrt(2)", c.Distance)
	}
	if !near(c.Pitch, gomath.Pi/4) {
		t.Errorf("pitch = %v, want pi/4", c.Pitch)
	}
	if !near(c.Yaw, gomath.Pi/2) {
		t.Errorf("yaw = %v, want pi/2", c.Yaw)
	}
	if got := c.Position(); !nearVec(got, home) {
		t.Errorf("position = %v, want %v", got, home)
	}
}

func TestViewMatrixLooksAtTarget(t *testing.T) {
	c := NewOrbitCamera(home, math.Vec3{})
	got := c.ViewMatrix().TransformPoint(c.Target)
	if !near(got.X, 0) || !near(got.Y, 0) || got.Z >= 0 {
		t.Errorf("target in view space = %v, want on -Z", got)
	}
}

func TestZoomClamps(t *testing.T) {
	c := NewOrbitCamera(home, math.Vec3{})

	tests := []struct {
		steps float32
		want  float32
	}{
		{100, 10},
		{-100, 100},
	}
	for _, tt := range tests {
		c.HandleZoom(tt.steps)
		if c.Distance != tt.want {
			t.Errorf("HandleZoom(%v): distance = %v, want %v", tt.steps, c.Distance, tt.want)
		}
	}
}

func TestZoomStep(t *testing.T) {
	c := NewOrbitCamera(home, math.Vec3{})
	before := c.Distance
	c.HandleZoom(1)

	want := before * float32(gomath.Pow(0.95, 1.5))
	if !near(c.Distance, want) {
		t.Errorf("one wheel step: distance = %v, want %v", c.Distance, want)
	}
}

func TestDampedDragConverges(t *testing.T) {
	c := NewOrbitCamera(home, math.Vec3{})
	startYaw := c.Yaw

	c.HandleDrag(100, 0)
	c.Update()
	first := c.Yaw - startYaw
	if !near(first, -100*c.DragSensitivity*c.Damping) {
		t.Errorf("first frame applied %v", first)
	}

	for i := 0; i < 1000 && !c.settled(); i++ {
		c.Update()
	}
	if !c.settled() {
		t.Fatal("damped rotation never settled")
	}
	if !near(c.Yaw-startYaw, -100*c.DragSensitivity) {
		t.Errorf("total yaw change = %v, want %v", c.Yaw-startYaw, -100*c.DragSensitivity)
	}
}

func TestUndampedDragIsImmediate(t *testing.T) {
	c := NewOrbitCamera(home, math.Vec3{})
	c.Damping = 0
	start := c.Pitch

	c.HandleDrag(0, -20)
	if !near(c.Pitch-start, -20*c.DragSensitivity) {
		t.Errorf("pitch change = %v", c.Pitch-start)
	}
	if !c.settled() {
		t.Error("undamped drag should leave nothing pending")
	}
}

func TestPitchClamp(t *testing.T) {
	c := NewOrbitCamera(home, math.Vec3{})
	c.Damping = 0
	c.HandleDrag(0, 1e6)
	if c.Pitch > pitchLimit {
		t.Errorf("pitch %v exceeds limit", c.Pitch)
	}
	c.HandleDrag(0, -1e7)
	if c.Pitch < -pitchLimit {
		t.Errorf("pitch %v below limit", c.Pitch)
	}
}

func TestPan(t *testing.T) {
	c := NewOrbitCamera(home, math.Vec3{})
	c.Damping = 0

	c.HandlePan(0, 100, 720)
	if c.Target.Y <= 0 {
		t.Errorf("dragging down should raise the target, got %v", c.Target)
	}
	// The offset to the camera is unchanged by a pan.
	if !near(c.Position().Sub(c.Target).Length(), c.Distance) {
		t.Error("pan changed the orbit distance")
	}

	c.EnablePan = false
	before := c.Target
	c.HandlePan(50, 50, 720)
	if c.Target != before {
		t.Error("pan should be ignored when disabled")
	}
}

func TestReset(t *testing.T) {
	c := NewOrbitCamera(home, math.Vec3{})
	c.Damping = 0
	c.HandleDrag(300, 200)
	c.HandlePan(40, 40, 720)
	c.HandleZoom(3)

	c.Reset()
	if !nearVec(c.Position(), home) || c.Target != (math.Vec3{}) {
		t.Errorf("reset pose: position %v target %v", c.Position(), c.Target)
	}
	if !c.settled() {
		t.Error("reset should drop pending motion")
	}
}

func TestProjection(t *testing.T) {
	c := NewOrbitCamera(home, math.Vec3{})
	p := c.Projection(16.0 / 9.0)

	f := float32(1 / gomath.Tan(75*gomath.Pi/360))
	if !near(p[5], f) {
		t.Errorf("p[5] = %v, want %v", p[5], f)
	}
	if c.Projection(0)[0] != c.Projection(1)[0] {
		t.Error("zero aspect should fall back to 1")
	}
}
