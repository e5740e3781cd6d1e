// Package camera implements a yaw/pitch free-look camera which turns held movement
// keys and relative mouse motion into view and projection matrices.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/glgl/math/ms1"
)

const (
	// MaxPitch is the pitch limit in degrees. Looking straight up or down would make
	// the front vector parallel to the world up vector and the basis undefined.
	MaxPitch = 89.0
	// DefaultYaw looks down -z.
	DefaultYaw = -90.0
	minFOV     = 1.0
	maxFOV     = 90.0
)

// worldUp is +y. Yaw turns about it and pitch is measured from the horizontal plane.
var worldUp = ms3.Vec{Y: 1}

// Direction is a camera movement direction.
type Direction uint8

const (
	Forward Direction = iota
	Backward
	Left
	Right
	Up
	Down
	numDirections
)

// Config holds initial camera parameters. Start from [DefaultConfig].
type Config struct {
	Position ms3.Vec
	// Yaw and Pitch in degrees. Yaw 0 looks down +x, [DefaultYaw] down -z.
	Yaw, Pitch float32
	// FOV is the vertical field of view in degrees. Zero selects 45.
	FOV float32
	// Width and Height of the viewport used to calculate the aspect ratio. Zero selects 800x600.
	Width, Height int
	// Near and Far clipping planes. Zero selects 0.1 and 100.
	Near, Far float32
	// Sensitivity scales mouse deltas into degrees. Zero selects 0.1.
	Sensitivity float32
}

// DefaultConfig returns a camera at the origin looking down -z.
func DefaultConfig() Config {
	return Config{
		Yaw:         DefaultYaw,
		FOV:         45,
		Width:       800,
		Height:      600,
		Near:        0.1,
		Far:         100,
		Sensitivity: 0.1,
	}
}

// Camera is a free-look camera. Front, Right and Up always form an orthonormal basis.
type Camera struct {
	Position ms3.Vec

	yaw, pitch float32
	front      ms3.Vec
	right      ms3.Vec
	up         ms3.Vec

	sensitivity float32
	fov         float32
	aspect      float32
	near, far   float32
	projection  mgl32.Mat4
}

// New creates a camera from cfg. Yaw and Pitch are used as given. Other fields
// left zero, for which no valid camera exists, take their [DefaultConfig] value.
func New(cfg Config) *Camera {
	def := DefaultConfig()
	if cfg.FOV == 0 {
		cfg.FOV = def.FOV
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = def.Width, def.Height
	}
	if cfg.Near == 0 {
		cfg.Near = def.Near
	}
	if cfg.Far == 0 {
		cfg.Far = def.Far
	}
	if cfg.Sensitivity == 0 {
		cfg.Sensitivity = def.Sensitivity
	}
	c := &Camera{
		Position:    cfg.Position,
		yaw:         math32.Mod(cfg.Yaw, 360),
		pitch:       ms1.Clamp(cfg.Pitch, -MaxPitch, MaxPitch),
		sensitivity: cfg.Sensitivity,
		fov:         cfg.FOV,
		aspect:      float32(cfg.Width) / float32(cfg.Height),
		near:        cfg.Near,
		far:         cfg.Far,
	}
	c.updateVectors()
	c.updateProjection()
	return c
}

// Yaw returns the camera yaw in degrees.
func (c *Camera) Yaw() float32 { return c.yaw }

// Pitch returns the camera pitch in degrees, always within ±[MaxPitch].
func (c *Camera) Pitch() float32 { return c.pitch }

// Front returns the unit vector the camera looks along.
func (c *Camera) Front() ms3.Vec { return c.front }

// Right returns the camera's unit right vector.
func (c *Camera) Right() ms3.Vec { return c.right }

// Up returns the camera's unit up vector.
func (c *Camera) Up() ms3.Vec { return c.up }

// FOV returns the vertical field of view in degrees.
func (c *Camera) FOV() float32 { return c.fov }

// Move displaces the camera position by step units in the given direction.
// Forward/Backward follow the front vector, Left/Right the right vector and
// Up/Down the world up vector.
func (c *Camera) Move(dir Direction, step float32) {
	var delta ms3.Vec
	switch dir {
	case Forward:
		delta = c.front
	case Backward:
		delta = ms3.Scale(-1, c.front)
	case Right:
		delta = c.right
	case Left:
		delta = ms3.Scale(-1, c.right)
	case Up:
		delta = worldUp
	case Down:
		delta = ms3.Scale(-1, worldUp)
	default:
		return
	}
	c.Position = ms3.Add(c.Position, ms3.Scale(step, delta))
}

// ProcessKeys moves the camera step units for every direction held reports as held.
// The step is applied as-is each call, so movement speed is tied to the frame rate
// unless the caller scales step by the frame duration.
func (c *Camera) ProcessKeys(held func(Direction) bool, step float32) {
	for dir := Forward; dir < numDirections; dir++ {
		if held(dir) {
			c.Move(dir, step)
		}
	}
}

// Look rotates the camera from a relative mouse motion. The y axis is inverted so
// moving the mouse up looks up. Pitch is clamped to ±[MaxPitch].
func (c *Camera) Look(dx, dy float32) {
	c.yaw += dx * c.sensitivity
	c.pitch -= dy * c.sensitivity
	c.pitch = ms1.Clamp(c.pitch, -MaxPitch, MaxPitch)
	// Keep yaw bounded so float32 precision does not degrade after long sessions.
	c.yaw = math32.Mod(c.yaw, 360)
	c.updateVectors()
}

// SetOrientation sets yaw and pitch in degrees. Pitch is clamped.
func (c *Camera) SetOrientation(yaw, pitch float32) {
	c.yaw = math32.Mod(yaw, 360)
	c.pitch = ms1.Clamp(pitch, -MaxPitch, MaxPitch)
	c.updateVectors()
}

// Zoom narrows or widens the field of view by delta degrees, typically from a scroll wheel.
func (c *Camera) Zoom(delta float32) {
	c.SetFOV(c.fov - delta)
}

// View returns the look-at matrix from the camera position towards Position+Front.
func (c *Camera) View() mgl32.Mat4 {
	eye := vec(c.Position)
	return mgl32.LookAtV(eye, eye.Add(vec(c.front)), vec(c.up))
}

// Projection returns the perspective projection matrix. It is cached and only
// recalculated when the viewport, field of view or clipping planes change.
func (c *Camera) Projection() mgl32.Mat4 {
	return c.projection
}

// SetViewport updates the aspect ratio from a new framebuffer size.
// Zero sized viewports (minimized windows) are ignored.
func (c *Camera) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	aspect := float32(width) / float32(height)
	if aspect == c.aspect {
		return
	}
	c.aspect = aspect
	c.updateProjection()
}

// SetFOV sets the vertical field of view in degrees, clamped to [1, 90].
func (c *Camera) SetFOV(deg float32) {
	deg = ms1.Clamp(deg, minFOV, maxFOV)
	if deg == c.fov {
		return
	}
	c.fov = deg
	c.updateProjection()
}

// SetClip sets the near and far clipping planes. Invalid planes are ignored.
func (c *Camera) SetClip(near, far float32) {
	if near <= 0 || far <= near {
		return
	}
	c.near, c.far = near, far
	c.updateProjection()
}

func (c *Camera) updateProjection() {
	c.projection = mgl32.Perspective(mgl32.DegToRad(c.fov), c.aspect, c.near, c.far)
}

// updateVectors recalculates the camera basis from yaw and pitch.
func (c *Camera) updateVectors() {
	sinYaw, cosYaw := math32.Sincos(mgl32.DegToRad(c.yaw))
	sinPitch, cosPitch := math32.Sincos(mgl32.DegToRad(c.pitch))
	c.front = ms3.Unit(ms3.Vec{X: cosYaw * cosPitch, Y: sinPitch, Z: sinYaw * cosPitch})
	c.right = ms3.Unit(ms3.Cross(c.front, worldUp))
	c.up = ms3.Unit(ms3.Cross(c.right, c.front))
}

func vec(v ms3.Vec) mgl32.Vec3 {
	return mgl32.Vec3{v.X, v.Y, v.Z}
}
