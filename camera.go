package lightvis

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/glgl/math/ms3"
)

// Camera view defaults. Scale is kept strictly inside [minScale, maxScale] so
// the zoom update rule can never collapse the view to a degenerate volume.
const (
	defaultOrbitDistance = 10.0
	defaultFOVFactor     = 1.0
	defaultNear          = 1e-2
	defaultFar           = 1e4
	minScale             = 1e-4
	maxScale             = 1e4
)

// Camera is an orbit camera: it is parameterized by yaw/pitch/roll angles in
// degrees and a fixed distance from a focus point rather than by a raw
// position and orientation. Zoom is a multiplicative scale applied to scene
// geometry around the focus point, not a dolly of the camera itself.
//
// Yaw and pitch are mutated by the window's interaction controller while
// dragging; location and scale are also settable by the embedding application.
type Camera struct {
	location        ms3.Vec
	scale           float32
	yaw, pitch, roll float32
	orbitDistance   float32

	fovFactor float32
	near, far float32

	// Framebuffer dimensions, refreshed every frame before rendering.
	// A zero-height frame leaves the previous values untouched.
	fbWidth, fbHeight int
}

func newCamera() *Camera {
	return &Camera{
		scale:         1,
		orbitDistance: defaultOrbitDistance,
		fovFactor:     defaultFOVFactor,
		near:          defaultNear,
		far:           defaultFar,
		fbWidth:       1,
		fbHeight:      1,
	}
}

// Location returns the world-space focus point.
func (c *Camera) Location() ms3.Vec { return c.location }

// SetLocation moves the world-space focus point.
func (c *Camera) SetLocation(loc ms3.Vec) { c.location = loc }

// Scale returns the current zoom scale.
func (c *Camera) Scale() float32 { return c.scale }

// SetScale sets the zoom scale, clamped to [1e-4, 1e4].
func (c *Camera) SetScale(scale float32) {
	if scale < minScale {
		scale = minScale
	} else if scale > maxScale {
		scale = maxScale
	}
	c.scale = scale
}

// YawPitchRoll returns the orbit angles in degrees. Roll is always zero under
// the built-in interaction controller.
func (c *Camera) YawPitchRoll() (yaw, pitch, roll float32) {
	return c.yaw, c.pitch, c.roll
}

// setViewport records the framebuffer dimensions used for the projection
// aspect ratio. Zero-height frames are skipped so the aspect stays valid.
func (c *Camera) setViewport(width, height int) {
	if height <= 0 {
		return
	}
	c.fbWidth, c.fbHeight = width, height
}

// ProjectionMatrix returns a standard perspective projection parameterized by
// the field-of-view scale factor f and the near/far planes. Points at z=-near
// map to NDC depth -1 and points at z=-far to +1. The aspect ratio comes from
// the framebuffer dimensions of the current frame.
func (c *Camera) ProjectionMatrix(f, near, far float32) mgl32.Mat4 {
	aspect := float32(c.fbWidth) / float32(c.fbHeight)
	var m mgl32.Mat4
	m.SetCol(0, mgl32.Vec4{f / aspect, 0, 0, 0})
	m.SetCol(1, mgl32.Vec4{0, f, 0, 0})
	m.SetCol(2, mgl32.Vec4{0, 0, -(far + near) / (far - near), -1})
	m.SetCol(3, mgl32.Vec4{0, 0, -2 * far * near / (far - near), 0})
	return m
}

// ViewMatrix returns the fixed permutation converting the world's Z-up
// convention into the renderer's Y-up convention:
// render x = world x, render y = world z, render z = -world y.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	var m mgl32.Mat4
	m.SetCol(0, mgl32.Vec4{1, 0, 0, 0})
	m.SetCol(1, mgl32.Vec4{0, 0, -1, 0})
	m.SetCol(2, mgl32.Vec4{0, 1, 0, 0})
	m.SetCol(3, mgl32.Vec4{0, 0, 0, 1})
	return m
}

// ModelMatrix places the camera at orbitDistance from the focus point along
// the direction implied by yaw and pitch and returns the world-to-camera
// transform: rotation block Rᵀ, translation -Rᵀ·cameraPosition, with
// R = Rz(yaw)·Rx(pitch)·Ry(roll).
func (c *Camera) ModelMatrix() mgl32.Mat4 {
	rot := c.orbitRotation()
	pos := ms3.Add(c.location, ms3.Scale(c.orbitDistance, c.direction()))
	rt := rot.Transpose()
	t := rt.Mul4x1(mgl32.Vec4{-pos.X, -pos.Y, -pos.Z, 1})
	m := rt
	m.SetCol(3, mgl32.Vec4{t.X(), t.Y(), t.Z(), 1})
	return m
}

func (c *Camera) orbitRotation() mgl32.Mat4 {
	yaw := mgl32.DegToRad(c.yaw)
	pitch := mgl32.DegToRad(c.pitch)
	roll := mgl32.DegToRad(c.roll)
	return mgl32.HomogRotate3DZ(yaw).
		Mul4(mgl32.HomogRotate3DX(pitch)).
		Mul4(mgl32.HomogRotate3DY(roll))
}

// direction is the unit vector from the focus point towards the camera,
// derived from negated yaw/pitch trigonometry. At yaw=pitch=0 it is the -Y
// base axis, which the Z-up to Y-up view permutation maps to render +Z.
func (c *Camera) direction() ms3.Vec {
	yaw := c.yaw * math32.Pi / 180
	pitch := c.pitch * math32.Pi / 180
	return ms3.Vec{
		X: math32.Sin(yaw) * math32.Cos(pitch),
		Y: -math32.Cos(yaw) * math32.Cos(pitch),
		Z: -math32.Sin(pitch),
	}
}
