package glapp_test

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/muesli/termenv"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/glshapes/camera"
	"github.com/soypat/glshapes/glapp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder is a Scene that records the order of calls and the input seen each frame.
type recorder struct {
	calls   []string
	inputs  []glapp.Input
	failOn  string
	stopAt  uint64
	stopSet bool
	run     func(*glapp.Context)
}

func (r *recorder) Setup(c *glapp.Context) error {
	r.calls = append(r.calls, "setup")
	return r.fail("setup")
}

func (r *recorder) Update(c *glapp.Context) error {
	r.calls = append(r.calls, "update")
	r.inputs = append(r.inputs, c.Input)
	if r.stopSet && c.Frame == r.stopAt {
		c.Stop()
	}
	if r.run != nil {
		r.run(c)
	}
	return r.fail("update")
}

func (r *recorder) Render(c *glapp.Context) error {
	r.calls = append(r.calls, "render")
	return r.fail("render")
}

func (r *recorder) fail(stage string) error {
	if r.failOn == stage {
		return errors.New(stage + " failed")
	}
	return nil
}

func newApp(p glapp.Platform, opts ...glapp.Option) *glapp.App {
	cfg := glapp.DefaultConfig()
	cfg.StatusLine = false
	opts = append([]glapp.Option{glapp.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)
	return glapp.New(p, cfg, opts...)
}

func TestRunOrder(t *testing.T) {
	p := glapp.NewHeadless(640, 480, nil, nil)
	var r recorder
	err := newApp(p).Run(context.Background(), &r)
	require.NoError(t, err)
	// Two scripted frames followed by the quit frame, which still completes.
	want := []string{"setup", "update", "render", "update", "render", "update", "render"}
	assert.Equal(t, want, r.calls)
	assert.Equal(t, 3, p.Presented())
	assert.True(t, p.Closed())
}

func TestEscapeStops(t *testing.T) {
	p := glapp.NewHeadless(640, 480,
		nil,
		[]glapp.Event{{Kind: glapp.EventKeyDown, Key: glapp.KeyEscape}},
		nil, nil, nil,
	)
	var r recorder
	require.NoError(t, newApp(p).Run(context.Background(), &r))
	assert.Equal(t, 2, p.Presented())
}

func TestContextStop(t *testing.T) {
	p := glapp.NewHeadless(640, 480, nil, nil, nil, nil, nil, nil)
	r := recorder{stopSet: true, stopAt: 1}
	require.NoError(t, newApp(p).Run(context.Background(), &r))
	assert.Equal(t, 2, p.Presented())
}

func TestMouseDeltaResets(t *testing.T) {
	p := glapp.NewHeadless(640, 480,
		[]glapp.Event{
			{Kind: glapp.EventMouseMove, DX: 3, DY: -1},
			{Kind: glapp.EventMouseMove, DX: 2, DY: 4},
			{Kind: glapp.EventKeyDown, Key: glapp.KeyW},
			{Kind: glapp.EventScroll, DY: 1},
		},
		nil,
		[]glapp.Event{{Kind: glapp.EventKeyUp, Key: glapp.KeyW}},
	)
	var r recorder
	require.NoError(t, newApp(p).Run(context.Background(), &r))
	require.Len(t, r.inputs, 4)

	first := r.inputs[0]
	assert.Equal(t, float32(5), first.MouseDX)
	assert.Equal(t, float32(3), first.MouseDY)
	assert.Equal(t, float32(1), first.ScrollY)
	assert.True(t, first.Held(glapp.KeyW))
	assert.True(t, first.Pressed(glapp.KeyW))

	second := r.inputs[1]
	assert.Zero(t, second.MouseDX)
	assert.Zero(t, second.MouseDY)
	assert.Zero(t, second.ScrollY)
	assert.True(t, second.Held(glapp.KeyW), "held keys persist across frames")
	assert.False(t, second.Pressed(glapp.KeyW), "pressed fires once")

	assert.False(t, r.inputs[2].Held(glapp.KeyW))
}

func TestResizeEvent(t *testing.T) {
	p := glapp.NewHeadless(640, 480, []glapp.Event{{Kind: glapp.EventResize, Width: 1000, Height: 500}})
	var aspect float32
	r := recorder{run: func(c *glapp.Context) {
		if c.Input.Resized {
			aspect = c.Aspect()
		}
	}}
	require.NoError(t, newApp(p).Run(context.Background(), &r))
	assert.Equal(t, float32(2), aspect)
}

func TestRunErrors(t *testing.T) {
	for _, stage := range []string{"setup", "update", "render"} {
		p := glapp.NewHeadless(640, 480, nil, nil)
		r := recorder{failOn: stage}
		err := newApp(p).Run(context.Background(), &r)
		require.Error(t, err, stage)
		assert.Contains(t, err.Error(), stage+" failed")
		assert.True(t, p.Closed(), "platform must be closed on error")
	}
}

func TestAlreadyRunning(t *testing.T) {
	p := glapp.NewHeadless(640, 480, nil)
	app := newApp(p)
	var nestedErr error
	r := recorder{run: func(c *glapp.Context) {
		assert.True(t, app.Running())
		nestedErr = app.Run(context.Background(), &recorder{})
	}}
	require.NoError(t, app.Run(context.Background(), &r))
	assert.Error(t, nestedErr)
	assert.False(t, app.Running())
}

func TestRunOnce(t *testing.T) {
	p := glapp.NewHeadless(640, 480, nil)
	app := newApp(p)
	require.NoError(t, app.Run(context.Background(), &recorder{}))
	assert.True(t, p.Closed())

	var second recorder
	err := app.Run(context.Background(), &second)
	assert.Error(t, err)
	assert.Empty(t, second.calls, "scene must not be set up on a closed platform")
	assert.False(t, app.Running())
}

func TestContextCanceled(t *testing.T) {
	p := glapp.NewHeadless(640, 480, nil, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	r := recorder{run: func(c *glapp.Context) { cancel() }}
	err := newApp(p).Run(ctx, &r)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, p.Presented())
}

func TestDeltaTime(t *testing.T) {
	p := glapp.NewHeadless(640, 480, nil, nil)
	now := time.Unix(0, 0)
	clock := func() time.Time {
		now = now.Add(20 * time.Millisecond)
		return now
	}
	var deltas []time.Duration
	var steps []float32
	r := recorder{run: func(c *glapp.Context) {
		deltas = append(deltas, c.DeltaTime)
		steps = append(steps, c.Step())
	}}
	require.NoError(t, newApp(p, glapp.WithClock(clock)).Run(context.Background(), &r))
	require.Len(t, deltas, 3)
	assert.Equal(t, 20*time.Millisecond, deltas[1])
	// Fixed per-frame step by default.
	assert.Equal(t, glapp.DefaultConfig().MoveStep, steps[1])
}

func TestStatusLine(t *testing.T) {
	var buf bytes.Buffer
	s := glapp.NewStatus(&buf, 0, termenv.WithProfile(termenv.Ascii))
	start := time.Unix(0, 0)
	s.Frame(start.Add(10*time.Millisecond), 10*time.Millisecond, "pos (0, 0, 3)")
	require.NoError(t, s.Close())
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "\r"), out)
	assert.Contains(t, out, "100.0 fps")
	assert.Contains(t, out, "pos (0, 0, 3)")
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mesh.ply")
	require.NoError(t, os.WriteFile(path, []byte("ply\n"), 0644))
	w, err := glapp.NewWatcher(path)
	require.NoError(t, err)
	defer w.Close()

	changed, err := w.Changed()
	require.NoError(t, err)
	assert.False(t, changed)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(path, []byte("ply\nformat ascii 1.0\n"), 0644))
	assert.Eventually(t, func() bool {
		changed, err := w.Changed()
		return err == nil && changed
	}, 2*time.Second, 10*time.Millisecond)
}

func TestDriveCamera(t *testing.T) {
	p := glapp.NewHeadless(800, 600,
		[]glapp.Event{{Kind: glapp.EventKeyDown, Key: glapp.KeyW}},
		[]glapp.Event{{Kind: glapp.EventKeyUp, Key: glapp.KeyW}, {Kind: glapp.EventKeyDown, Key: glapp.KeyE}},
		[]glapp.Event{{Kind: glapp.EventMouseMove, DY: -10000}, {Kind: glapp.EventScroll, DY: 5}},
		[]glapp.Event{{Kind: glapp.EventResize, Width: 400, Height: 400}},
	)
	var cam *camera.Camera
	var positions []ms3.Vec
	scene := sceneFuncs{
		setup: func(c *glapp.Context) error {
			cam = glapp.NewCamera(c, camera.DefaultConfig())
			return nil
		},
		update: func(c *glapp.Context) error {
			glapp.DriveCamera(c, cam)
			positions = append(positions, cam.Position)
			return nil
		},
	}
	require.NoError(t, newApp(p).Run(context.Background(), &scene))
	step := glapp.DefaultConfig().MoveStep
	assert.InDelta(t, -step, positions[0].Z, 1e-6, "W moves forward along -z")
	assert.InDelta(t, step, positions[1].Y, 1e-6, "E moves up")
	assert.InDelta(t, 2*step, positions[2].Y, 1e-6, "E still held")
	assert.Equal(t, float32(camera.MaxPitch), cam.Pitch())
	assert.Equal(t, float32(40), cam.FOV())
	assert.Equal(t, mgl32.Perspective(mgl32.DegToRad(40), 1, 0.1, 100), cam.Projection())
}

func TestFlags(t *testing.T) {
	var f glapp.Flags
	fs := flag.NewFlagSet("demo", flag.ContinueOnError)
	f.Register(fs)
	path := filepath.Join(t.TempDir(), "cfg.toml")
	require.NoError(t, os.WriteFile(path, []byte("width = 320\nheight = 200\n"), 0644))
	require.NoError(t, fs.Parse([]string{"-config", path, "-fullscreen", "-nostatus"}))
	cfg, err := f.Config("pyramid")
	require.NoError(t, err)
	assert.Equal(t, "pyramid", cfg.Title)
	assert.Equal(t, 320, cfg.Width)
	assert.True(t, cfg.Fullscreen)
	assert.False(t, cfg.StatusLine)

	f = glapp.Flags{ConfigPath: filepath.Join(t.TempDir(), "missing.toml")}
	_, err = f.Config("x")
	assert.Error(t, err)
}

type sceneFuncs struct {
	setup, update, render func(*glapp.Context) error
}

func (s *sceneFuncs) Setup(c *glapp.Context) error  { return call(s.setup, c) }
func (s *sceneFuncs) Update(c *glapp.Context) error { return call(s.update, c) }
func (s *sceneFuncs) Render(c *glapp.Context) error { return call(s.render, c) }

func call(fn func(*glapp.Context) error, c *glapp.Context) error {
	if fn == nil {
		return nil
	}
	return fn(c)
}

type teardownScene struct {
	sceneFuncs
	tornDown     bool
	closedBefore bool
	p            *glapp.Headless
}

func (s *teardownScene) Teardown(c *glapp.Context) error {
	s.tornDown = true
	s.closedBefore = s.p.Closed()
	return errors.New("release failed")
}

func TestTeardown(t *testing.T) {
	p := glapp.NewHeadless(640, 480, nil)
	s := teardownScene{p: p}
	err := newApp(p).Run(context.Background(), &s)
	assert.True(t, s.tornDown)
	assert.False(t, s.closedBefore, "teardown must run before platform close")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "release failed")

	// Teardown is not called when setup fails.
	p = glapp.NewHeadless(640, 480, nil)
	s = teardownScene{p: p}
	s.setup = func(*glapp.Context) error { return errors.New("no gpu") }
	err = newApp(p).Run(context.Background(), &s)
	assert.Error(t, err)
	assert.False(t, s.tornDown)
}
