package glapp

import "errors"

// Headless is a [Platform] without a window which replays a scripted sequence of
// events, one slice per frame. Once the script is exhausted it emits [EventQuit].
// It is used to test scenes and to run demos where no display is available.
type Headless struct {
	width, height int
	script        [][]Event
	polls         int
	presented     int
	closed        bool
}

// NewHeadless returns a headless platform of the given framebuffer size.
// frames[i] is returned by the i'th call to PollEvents.
func NewHeadless(width, height int, frames ...[]Event) *Headless {
	return &Headless{width: width, height: height, script: frames}
}

// PollEvents appends the events scripted for the current frame to dst.
func (h *Headless) PollEvents(dst []Event) []Event {
	defer func() { h.polls++ }()
	if h.polls >= len(h.script) {
		return append(dst, Event{Kind: EventQuit})
	}
	for _, ev := range h.script[h.polls] {
		if ev.Kind == EventResize {
			h.width, h.height = ev.Width, ev.Height
		}
		dst = append(dst, ev)
	}
	return dst
}

// Present counts presented frames.
func (h *Headless) Present() error {
	if h.closed {
		return errors.New("present on closed platform")
	}
	h.presented++
	return nil
}

// Size returns the last size set by construction or a scripted resize event.
func (h *Headless) Size() (width, height int) { return h.width, h.height }

// Close marks the platform closed.
func (h *Headless) Close() error {
	if h.closed {
		return errors.New("platform already closed")
	}
	h.closed = true
	return nil
}

// Presented returns the amount of frames presented.
func (h *Headless) Presented() int { return h.presented }

// Closed reports whether Close was called.
func (h *Headless) Closed() bool { return h.closed }
