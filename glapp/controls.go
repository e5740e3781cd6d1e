package glapp

import (
	"flag"

	"github.com/soypat/glshapes/camera"
)

var cameraKeys = [...]struct {
	key Key
	dir camera.Direction
}{
	{KeyW, camera.Forward},
	{KeyS, camera.Backward},
	{KeyA, camera.Left},
	{KeyD, camera.Right},
	{KeyE, camera.Up},
	{KeyQ, camera.Down},
}

// CameraHeld reports whether a key bound to dir is held. W, A, S and D move
// on the horizontal plane, E and Q move up and down.
func (in *Input) CameraHeld(dir camera.Direction) bool {
	for _, ck := range cameraKeys {
		if ck.dir == dir && in.Held(ck.key) {
			return true
		}
	}
	return false
}

// DriveCamera applies the free-look controls shared by the demos to cam: held
// movement keys, relative mouse motion, scroll wheel zoom and framebuffer resizes.
func DriveCamera(c *Context, cam *camera.Camera) {
	cam.ProcessKeys(c.Input.CameraHeld, c.Step())
	if c.Input.MouseDX != 0 || c.Input.MouseDY != 0 {
		cam.Look(c.Input.MouseDX, c.Input.MouseDY)
	}
	if c.Input.ScrollY != 0 {
		cam.Zoom(c.Input.ScrollY)
	}
	if c.Input.Resized {
		cam.SetViewport(c.Size())
	}
}

// NewCamera returns a camera from cfg whose viewport size, field of view and
// mouse sensitivity are taken from the Context. Start cfg from [camera.DefaultConfig].
func NewCamera(c *Context, cfg camera.Config) *camera.Camera {
	cfg.Width, cfg.Height = c.Size()
	cfg.FOV = c.Config.FOV
	cfg.Sensitivity = c.Config.MouseSensitivity
	return camera.New(cfg)
}

// Flags holds the command line flags shared by the demos.
type Flags struct {
	ConfigPath string
	Fullscreen bool
	NoStatus   bool
}

// Register defines the shared flags on fs.
func (f *Flags) Register(fs *flag.FlagSet) {
	fs.StringVar(&f.ConfigPath, "config", "", "TOML configuration file")
	fs.BoolVar(&f.Fullscreen, "fullscreen", false, "run on the primary monitor in fullscreen")
	fs.BoolVar(&f.NoStatus, "nostatus", false, "disable the terminal status line")
}

// Config loads the configuration file if one was given and applies flag overrides.
// title is used when the configuration does not set a window title.
func (f *Flags) Config(title string) (Config, error) {
	cfg := DefaultConfig()
	cfg.Title = ""
	if f.ConfigPath != "" {
		var err error
		cfg, err = LoadConfigFile(f.ConfigPath)
		if err != nil {
			return Config{}, err
		}
		if cfg.Title == DefaultConfig().Title {
			cfg.Title = ""
		}
	}
	if cfg.Title == "" {
		cfg.Title = title
	}
	cfg.Fullscreen = cfg.Fullscreen || f.Fullscreen
	cfg.StatusLine = cfg.StatusLine && !f.NoStatus
	return cfg, nil
}
