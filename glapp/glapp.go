// Package glapp runs the per-frame loop shared by the demos: it drains platform
// events into an [Input] snapshot, then updates, renders and presents a [Scene]
// until the window closes, Escape is pressed or the scene asks to stop.
package glapp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"
)

var (
	errAlreadyRunning = errors.New("app already running")
	errClosed         = errors.New("app platform already closed")
)

// Scene is implemented by each demo. Setup is called once before the first frame.
// Update and Render are called once per frame in that order.
type Scene interface {
	Setup(*Context) error
	Update(*Context) error
	Render(*Context) error
}

// Teardowner is optionally implemented by a [Scene] to release resources
// after the last frame and before the platform is closed.
type Teardowner interface {
	Teardown(*Context) error
}

// Platform abstracts the window and its event source.
type Platform interface {
	// PollEvents appends pending events to dst without blocking and returns the result.
	PollEvents(dst []Event) []Event
	// Present shows the rendered frame, i.e: swaps buffers.
	Present() error
	// Size returns the framebuffer size in pixels.
	Size() (width, height int)
	// Close releases the window and its graphics context.
	Close() error
}

// App drives a [Scene] on a [Platform]. An App transitions from stopped to running
// on [App.Run] and back to stopped when Run returns. Run closes the platform,
// so an App runs a single time.
type App struct {
	platform Platform
	cfg      Config
	running  bool
	closed   bool
	log      *slog.Logger
	status   io.Writer
	now      func() time.Time
}

// Option modifies App construction.
type Option func(*App)

// WithLogger sets the structured logger handed to scenes through [Context.Log].
func WithLogger(l *slog.Logger) Option {
	return func(a *App) { a.log = l }
}

// WithStatusOutput sets where the single-line frame status is written.
// A nil writer disables the status line.
func WithStatusOutput(w io.Writer) Option {
	return func(a *App) { a.status = w }
}

// WithClock replaces time.Now as the source of frame timestamps.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// New returns a stopped App that renders to platform.
func New(platform Platform, cfg Config, opts ...Option) *App {
	a := &App{
		platform: platform,
		cfg:      cfg,
		now:      time.Now,
	}
	if cfg.StatusLine {
		a.status = os.Stdout
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.log == nil {
		lvl, _ := cfg.level()
		a.log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	}
	return a
}

// Running reports whether Run is currently executing.
func (a *App) Running() bool { return a.running }

// Run calls scene's Setup once and then loops over frames until a quit event is received,
// the Escape key is pressed, [Context.Stop] is called or ctx is done. The stop condition is
// checked once per iteration, so the frame in which it is requested still completes.
// The platform is closed when Run returns. Errors returned by the scene or the platform
// terminate the loop and are returned wrapped.
func (a *App) Run(ctx context.Context, scene Scene) (err error) {
	if a.running {
		return errAlreadyRunning
	} else if a.closed {
		return errClosed
	} else if a.platform == nil || scene == nil {
		return errors.New("nil platform or scene")
	}
	a.running = true
	defer func() {
		a.running = false
		a.closed = true
		err = errors.Join(err, a.platform.Close())
	}()
	c := &Context{
		Platform: a.platform,
		Config:   a.cfg,
		Log:      a.log,
	}
	var status *Status
	if a.status != nil {
		status = NewStatus(a.status, time.Duration(a.cfg.StatusRefreshMillis)*time.Millisecond)
		defer status.Close()
	}
	err = scene.Setup(c)
	if err != nil {
		return fmt.Errorf("setup: %w", err)
	}
	if td, ok := scene.(Teardowner); ok {
		defer func() {
			if tderr := td.Teardown(c); tderr != nil {
				err = errors.Join(err, fmt.Errorf("teardown: %w", tderr))
			}
		}()
	}
	start := a.now()
	last := start
	var events []Event
	for !c.stopped {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		c.Input.beginFrame()
		events = a.platform.PollEvents(events[:0])
		for _, ev := range events {
			if ev.Kind == EventQuit || (ev.Kind == EventKeyDown && ev.Key == KeyEscape) {
				c.Stop()
			}
			c.Input.apply(ev)
		}

		now := a.now()
		c.DeltaTime = now.Sub(last)
		c.Time = now.Sub(start)
		last = now

		err = scene.Update(c)
		if err != nil {
			return fmt.Errorf("update frame %d: %w", c.Frame, err)
		}
		err = scene.Render(c)
		if err != nil {
			return fmt.Errorf("render frame %d: %w", c.Frame, err)
		}
		err = a.platform.Present()
		if err != nil {
			return fmt.Errorf("present frame %d: %w", c.Frame, err)
		}
		if status != nil {
			status.Frame(now, c.DeltaTime, c.status)
		}
		c.Frame++
	}
	a.log.Debug("loop stopped", slog.Uint64("frames", c.Frame), slog.Duration("elapsed", c.Time))
	return nil
}

// Context is the state shared between the loop and a running scene.
type Context struct {
	Platform Platform
	Input    Input
	Config   Config
	Log      *slog.Logger
	// Frame is the number of frames presented before the current one.
	Frame uint64
	// Time elapsed since the first frame started.
	Time time.Duration
	// DeltaTime is the duration of the previous frame.
	DeltaTime time.Duration

	status  string
	stopped bool
}

// Stop requests the loop to exit after the current frame.
func (c *Context) Stop() { c.stopped = true }

// Stopped reports whether a stop was requested.
func (c *Context) Stopped() bool { return c.stopped }

// Step returns the camera movement step for the current frame. See [Config.Step].
func (c *Context) Step() float32 { return c.Config.Step(c.DeltaTime) }

// SetStatus sets scene specific text shown after the frame statistics on the status line.
func (c *Context) SetStatus(format string, args ...any) {
	c.status = fmt.Sprintf(format, args...)
}

// Size returns the platform framebuffer size.
func (c *Context) Size() (width, height int) { return c.Platform.Size() }

// Aspect returns the framebuffer width to height ratio, or 1 for a zero sized framebuffer.
func (c *Context) Aspect() float32 {
	w, h := c.Platform.Size()
	if w <= 0 || h <= 0 {
		return 1
	}
	return float32(w) / float32(h)
}
