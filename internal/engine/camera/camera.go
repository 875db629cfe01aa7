// Package camera provides the orbit camera used to inspect the lab model.
package camera

import (
	gomath "math"

	"github.com/Faultbox/sensorlab/pkg/math"
)

// Pitch is kept just short of straight up or down so LookAt never sees a
// view direction parallel to the up axis.
const pitchLimit = gomath.Pi/2 - 0.01

var worldUp = math.Vec3{X: 0, Y: 1, Z: 0}

// OrbitCamera orbits a target point. Rotation and pan are damped: input adds
// to a pending delta that Update applies a fraction of each frame.
type OrbitCamera struct {
	Target math.Vec3

	// Spherical coordinates around Target
	Distance float32
	Pitch    float32 // Elevation above the XZ plane, radians
	Yaw      float32 // Angle from +Z towards +X, radians

	// Projection
	FOV  float32 // Vertical, degrees
	Near float32
	Far  float32

	// Constraints
	MinDistance float32
	MaxDistance float32

	// Sensitivity
	DragSensitivity float32
	ZoomSpeed       float32
	Damping         float32 // Fraction of the pending delta applied per frame; 0 disables damping
	EnablePan       bool

	pendingYaw   float32
	pendingPitch float32
	pendingPan   math.Vec3

	homePosition math.Vec3
	homeTarget   math.Vec3
}

// NewOrbitCamera creates a camera at position looking at target. That pose is
// also what Reset returns to.
func NewOrbitCamera(position, target math.Vec3) *OrbitCamera {
	c := &OrbitCamera{
		FOV:             75,
		Near:            0.1,
		Far:             1000,
		MinDistance:     10,
		MaxDistance:     100,
		DragSensitivity: 0.005,
		ZoomSpeed:       1.5,
		Damping:         0.05,
		EnablePan:       true,
		homePosition:    position,
		homeTarget:      target,
	}
	c.Reset()
	return c
}

// Reset returns to the home pose and drops any pending motion.
func (c *OrbitCamera) Reset() {
	c.Target = c.homeTarget
	c.pendingYaw, c.pendingPitch = 0, 0
	c.pendingPan = math.Vec3{}

	offset := c.homePosition.Sub(c.homeTarget)
	c.Distance = offset.Length()
	if c.Distance == 0 {
		c.Distance = c.MinDistance
		c.Pitch, c.Yaw = 0, 0
		return
	}
	c.Pitch = float32(gomath.Asin(float64(offset.Y / c.Distance)))
	c.Yaw = float32(gomath.Atan2(float64(offset.X), float64(offset.Z)))
	c.clamp()
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	sp, cp := gomath.Sincos(float64(c.Pitch))
	sy, cy := gomath.Sincos(float64(c.Yaw))
	offset := math.Vec3{
		X: float32(cp * sy),
		Y: float32(sp),
		Z: float32(cp * cy),
	}
	return c.Target.Add(offset.Scale(c.Distance))
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Target, worldUp)
}

// Projection returns the perspective matrix for a viewport aspect ratio.
func (c *OrbitCamera) Projection(aspect float32) math.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return math.Perspective(c.FOV*gomath.Pi/180, aspect, c.Near, c.Far)
}

// HandleDrag queues a rotation from a mouse drag in pixels.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.pendingYaw -= deltaX * c.DragSensitivity
	c.pendingPitch += deltaY * c.DragSensitivity
	if c.Damping == 0 {
		c.Update()
	}
}

// HandleZoom dollies by wheel steps. Positive steps move closer.
func (c *OrbitCamera) HandleZoom(steps float32) {
	scale := gomath.Pow(0.95, float64(c.ZoomSpeed*steps))
	c.Distance = float32(float64(c.Distance) * scale)
	c.clamp()
}

// HandlePan queues a target move from a mouse drag in pixels so the point
// under the cursor tracks it. viewportHeight is in the same pixels.
func (c *OrbitCamera) HandlePan(deltaX, deltaY, viewportHeight float32) {
	if !c.EnablePan || viewportHeight <= 0 {
		return
	}
	halfHeight := c.Distance * float32(gomath.Tan(float64(c.FOV)*gomath.Pi/360))
	perPixel := 2 * halfHeight / viewportHeight

	forward := c.Target.Sub(c.Position()).Normalize()
	right := forward.Cross(worldUp).Normalize()
	up := right.Cross(forward)

	move := right.Scale(-deltaX * perPixel).Add(up.Scale(deltaY * perPixel))
	c.pendingPan = c.pendingPan.Add(move)
	if c.Damping == 0 {
		c.Update()
	}
}

// Update applies pending rotation and pan. Call once per frame.
func (c *OrbitCamera) Update() {
	f := c.Damping
	if f <= 0 || f >= 1 {
		f = 1
	}

	c.Yaw += c.pendingYaw * f
	c.Pitch += c.pendingPitch * f
	c.Target = c.Target.Add(c.pendingPan.Scale(f))

	keep := 1 - f
	c.pendingYaw *= keep
	c.pendingPitch *= keep
	c.pendingPan = c.pendingPan.Scale(keep)

	c.clamp()
}

// settled reports whether no damped motion is left.
func (c *OrbitCamera) settled() bool {
	const eps = 1e-5
	return abs(c.pendingYaw) < eps && abs(c.pendingPitch) < eps && c.pendingPan.Length() < eps
}

func (c *OrbitCamera) clamp() {
	c.Pitch = max(-pitchLimit, min(c.Pitch, pitchLimit))
	if c.MaxDistance > 0 {
		c.Distance = max(c.MinDistance, min(c.Distance, c.MaxDistance))
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
