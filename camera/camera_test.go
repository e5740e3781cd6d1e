package camera_test

import (
	"math/rand"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/glshapes/camera"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-5

func TestDefaults(t *testing.T) {
	c := newAt(ms3.Vec{Z: 3})
	assert.Equal(t, float32(-90), c.Yaw())
	assert.Equal(t, float32(0), c.Pitch())
	assert.Equal(t, float32(45), c.FOV())
	assertVec(t, ms3.Vec{Z: -1}, c.Front())
	assertVec(t, ms3.Vec{X: 1}, c.Right())
	assertVec(t, ms3.Vec{Y: 1}, c.Up())
}

func TestZeroYaw(t *testing.T) {
	cfg := camera.DefaultConfig()
	cfg.Yaw = 0
	c := camera.New(cfg)
	assert.Equal(t, float32(0), c.Yaw())
	assertVec(t, ms3.Vec{X: 1}, c.Front())
	assertVec(t, ms3.Vec{Z: 1}, c.Right())

	// Zero valued projection fields still fall back to usable values.
	c = camera.New(camera.Config{})
	assert.Equal(t, float32(0), c.Yaw())
	assert.Equal(t, float32(45), c.FOV())
	assertBasis(t, c)
}

func TestRightStaysHorizontal(t *testing.T) {
	// Small mouse motions never roll the camera, whatever the heading.
	for _, yaw := range []float32{0, 90, 180, 270, 360, -90} {
		cfg := camera.DefaultConfig()
		cfg.Yaw = yaw
		c := camera.New(cfg)
		r0 := c.Right()
		c.Look(0, 0.0001)
		assert.InDelta(t, 0, c.Right().Y, tol, "yaw=%v", yaw)
		assert.InDelta(t, 1, ms3.Dot(r0, c.Right()), tol, "yaw=%v", yaw)
		assertBasis(t, c)
	}
	rng := rand.New(rand.NewSource(2))
	c := camera.New(camera.DefaultConfig())
	for i := 0; i < 500; i++ {
		c.Look((rng.Float32()-0.5)*400, (rng.Float32()-0.5)*400)
		require.InDelta(t, 0, c.Right().Y, tol)
	}
}

func TestPitchClamp(t *testing.T) {
	c := camera.New(camera.DefaultConfig())
	c.Look(0, -10000)
	assert.Equal(t, float32(camera.MaxPitch), c.Pitch())
	assertBasis(t, c)
	c.Look(0, 10000)
	assert.Equal(t, float32(-camera.MaxPitch), c.Pitch())
	assertBasis(t, c)

	c.SetOrientation(0, 500)
	assert.Equal(t, float32(camera.MaxPitch), c.Pitch())
}

func TestLookDirection(t *testing.T) {
	c := camera.New(camera.DefaultConfig())
	// Mouse moving up (negative dy in window coordinates) looks up.
	c.Look(0, -100)
	assert.Greater(t, c.Front().Y, float32(0))
	// Moving right turns right: from -z towards +x.
	c = camera.New(camera.DefaultConfig())
	c.Look(100, 0)
	assert.Greater(t, c.Front().X, float32(0))
}

func TestBasisStaysOrthonormal(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	c := camera.New(camera.DefaultConfig())
	for i := 0; i < 1000; i++ {
		dx := (rng.Float32() - 0.5) * 400
		dy := (rng.Float32() - 0.5) * 400
		c.Look(dx, dy)
		assertBasis(t, c)
		require.LessOrEqual(t, math32.Abs(c.Pitch()), float32(camera.MaxPitch))
	}
}

func TestMove(t *testing.T) {
	c := camera.New(camera.DefaultConfig())
	c.Move(camera.Forward, 2)
	assertVec(t, ms3.Vec{Z: -2}, c.Position)
	c.Move(camera.Backward, 2)
	assertVec(t, ms3.Vec{}, c.Position)
	c.Move(camera.Right, 1)
	assertVec(t, ms3.Vec{X: 1}, c.Position)
	c.Move(camera.Left, 1)
	c.Move(camera.Up, 0.5)
	assertVec(t, ms3.Vec{Y: 0.5}, c.Position)
	c.Move(camera.Down, 0.5)
	assertVec(t, ms3.Vec{}, c.Position)

	// Up/Down follow world up even when pitched.
	c.Look(0, -300)
	c.Move(camera.Up, 1)
	assertVec(t, ms3.Vec{Y: 1}, c.Position)
}

func TestProcessKeys(t *testing.T) {
	c := camera.New(camera.DefaultConfig())
	held := map[camera.Direction]bool{camera.Forward: true, camera.Right: true}
	c.ProcessKeys(func(d camera.Direction) bool { return held[d] }, 0.05)
	assertVec(t, ms3.Vec{X: 0.05, Z: -0.05}, c.Position)

	// Opposing keys cancel out.
	c = camera.New(camera.DefaultConfig())
	c.ProcessKeys(func(d camera.Direction) bool { return d == camera.Forward || d == camera.Backward }, 1)
	assertVec(t, ms3.Vec{}, c.Position)
}

func TestView(t *testing.T) {
	c := newAt(ms3.Vec{Z: 3})
	view := c.View()
	// The origin sits 3 units in front of the camera, which is -z in view space.
	p := view.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, 0, p.X(), tol)
	assert.InDelta(t, 0, p.Y(), tol)
	assert.InDelta(t, -3, p.Z(), tol)
}

func TestProjectionCached(t *testing.T) {
	c := camera.New(camera.DefaultConfig())
	p0 := c.Projection()
	assert.Equal(t, mgl32.Perspective(mgl32.DegToRad(45), 800.0/600.0, 0.1, 100), p0)

	c.Look(10, 10)
	c.Move(camera.Forward, 1)
	assert.Equal(t, p0, c.Projection(), "projection must not depend on pose")

	c.SetViewport(0, 0)
	assert.Equal(t, p0, c.Projection(), "zero viewport is ignored")

	c.SetViewport(1024, 512)
	assert.NotEqual(t, p0, c.Projection())
	assert.Equal(t, mgl32.Perspective(mgl32.DegToRad(45), 2, 0.1, 100), c.Projection())
}

func TestZoom(t *testing.T) {
	c := camera.New(camera.DefaultConfig())
	c.Zoom(5)
	assert.Equal(t, float32(40), c.FOV())
	c.Zoom(1000)
	assert.Equal(t, float32(1), c.FOV())
	c.Zoom(-1000)
	assert.Equal(t, float32(90), c.FOV())
}

func TestSetClipInvalid(t *testing.T) {
	c := camera.New(camera.DefaultConfig())
	p0 := c.Projection()
	c.SetClip(0, 10)
	c.SetClip(5, 1)
	assert.Equal(t, p0, c.Projection())
	c.SetClip(1, 10)
	assert.NotEqual(t, p0, c.Projection())
}

func assertBasis(t *testing.T, c *camera.Camera) {
	t.Helper()
	f, r, u := c.Front(), c.Right(), c.Up()
	require.InDelta(t, 1, ms3.Norm(f), tol, "front not unit")
	require.InDelta(t, 1, ms3.Norm(r), tol, "right not unit")
	require.InDelta(t, 1, ms3.Norm(u), tol, "up not unit")
	require.InDelta(t, 0, ms3.Dot(f, r), tol, "front.right")
	require.InDelta(t, 0, ms3.Dot(f, u), tol, "front.up")
	require.InDelta(t, 0, ms3.Dot(r, u), tol, "right.up")
}

func assertVec(t *testing.T, want, got ms3.Vec) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tol, "x")
	assert.InDelta(t, want.Y, got.Y, tol, "y")
	assert.InDelta(t, want.Z, got.Z, tol, "z")
}

func newAt(pos ms3.Vec) *camera.Camera {
	cfg := camera.DefaultConfig()
	cfg.Position = pos
	return camera.New(cfg)
}
