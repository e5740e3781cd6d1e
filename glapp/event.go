package glapp

// EventKind enumerates platform events consumed by the frame loop.
type EventKind uint8

const (
	EventNone EventKind = iota
	// EventQuit requests the loop to stop, i.e: window close button.
	EventQuit
	EventKeyDown
	EventKeyUp
	// EventMouseMove carries relative cursor motion in DX, DY.
	EventMouseMove
	// EventMouseButton carries Button and Pressed.
	EventMouseButton
	// EventScroll carries wheel offsets in DX, DY.
	EventScroll
	// EventResize carries the new framebuffer Width and Height.
	EventResize
)

func (k EventKind) String() string {
	switch k {
	case EventNone:
		return "none"
	case EventQuit:
		return "quit"
	case EventKeyDown:
		return "keydown"
	case EventKeyUp:
		return "keyup"
	case EventMouseMove:
		return "mousemove"
	case EventMouseButton:
		return "mousebutton"
	case EventScroll:
		return "scroll"
	case EventResize:
		return "resize"
	}
	return "unknown"
}

// Key is a platform independent keyboard key.
type Key uint8

const (
	KeyUnknown Key = iota
	KeyEscape
	KeySpace
	KeyEnter
	KeyTab
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyPlus
	KeyMinus
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	numKeys
)

// MouseButton is a platform independent mouse button.
type MouseButton uint8

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
	numButtons
)

// Event is a single input or window event. Only the fields relevant to Kind are set.
type Event struct {
	Kind    EventKind
	Key     Key
	Button  MouseButton
	Pressed bool
	DX, DY  float32
	Width   int
	Height  int
}

// Input is the input state seen by a scene during one frame.
// Held keys and buttons persist across frames until released. Mouse motion and
// scroll are accumulated over one event drain and zeroed at the start of the next.
type Input struct {
	keys    [numKeys]bool
	pressed [numKeys]bool
	buttons [numButtons]bool
	// MouseDX and MouseDY is the relative cursor motion during the last frame.
	MouseDX, MouseDY float32
	// ScrollX and ScrollY accumulate wheel motion during the last frame.
	ScrollX, ScrollY float32
	// Resized is true when the framebuffer changed size during the last frame.
	Resized bool
}

// Held reports whether key is currently held down.
func (in *Input) Held(key Key) bool {
	return key < numKeys && in.keys[key]
}

// Pressed reports whether key went down during the last frame. Useful for
// toggles that should fire once per key press.
func (in *Input) Pressed(key Key) bool {
	return key < numKeys && in.pressed[key]
}

// ButtonHeld reports whether the mouse button is currently held down.
func (in *Input) ButtonHeld(b MouseButton) bool {
	return b < numButtons && in.buttons[b]
}

// beginFrame zeroes per-frame state. Held state is kept.
func (in *Input) beginFrame() {
	in.MouseDX, in.MouseDY = 0, 0
	in.ScrollX, in.ScrollY = 0, 0
	in.Resized = false
	in.pressed = [numKeys]bool{}
}

// apply folds ev into the input state.
func (in *Input) apply(ev Event) {
	switch ev.Kind {
	case EventKeyDown:
		if ev.Key < numKeys {
			if !in.keys[ev.Key] {
				in.pressed[ev.Key] = true
			}
			in.keys[ev.Key] = true
		}
	case EventKeyUp:
		if ev.Key < numKeys {
			in.keys[ev.Key] = false
		}
	case EventMouseMove:
		in.MouseDX += ev.DX
		in.MouseDY += ev.DY
	case EventMouseButton:
		if ev.Button < numButtons {
			in.buttons[ev.Button] = ev.Pressed
		}
	case EventScroll:
		in.ScrollX += ev.DX
		in.ScrollY += ev.DY
	case EventResize:
		in.Resized = true
	}
}
