package glapp

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config configures the window, frame loop and controls shared by all demos.
// It can be loaded from a TOML file with [LoadConfig].
type Config struct {
	Title      string `toml:"title"`
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Fullscreen bool   `toml:"fullscreen"`
	Resizable  bool   `toml:"resizable"`
	// VSync blocks Present until the next display refresh.
	VSync bool `toml:"vsync"`
	// CaptureCursor hides and locks the cursor to the window so mouse motion
	// is unbounded, as required for free-look cameras.
	CaptureCursor bool       `toml:"capture_cursor"`
	ClearColor    [4]float32 `toml:"clear_color"`

	// MoveStep is the distance moved per frame per held movement key.
	MoveStep float32 `toml:"move_step"`
	// DeltaTimeMovement scales movement by elapsed frame time instead of
	// applying a fixed MoveStep each frame, making speed independent of frame rate.
	DeltaTimeMovement bool `toml:"delta_time_movement"`
	// MoveSpeed is in units per second, used when DeltaTimeMovement is set.
	MoveSpeed float32 `toml:"move_speed"`
	// MouseSensitivity converts mouse motion to degrees of camera rotation.
	MouseSensitivity float32 `toml:"mouse_sensitivity"`
	// FOV is the initial camera vertical field of view in degrees.
	FOV float32 `toml:"fov"`

	// StatusLine prints frame statistics on a single terminal line.
	StatusLine bool `toml:"status_line"`
	// StatusRefreshMillis limits how often the status line is rewritten.
	StatusRefreshMillis int `toml:"status_refresh_ms"`
	// LogLevel is one of debug, info, warn or error.
	LogLevel string `toml:"log_level"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Title:               "glshapes",
		Width:               800,
		Height:              600,
		Resizable:           true,
		VSync:               true,
		CaptureCursor:       true,
		ClearColor:          [4]float32{0.1, 0.1, 0.12, 1},
		MoveStep:            0.05,
		MoveSpeed:           2.5,
		MouseSensitivity:    0.1,
		FOV:                 45,
		StatusLine:          true,
		StatusRefreshMillis: 100,
		LogLevel:            "info",
	}
}

// LoadConfig decodes TOML from r on top of [DefaultConfig]. Fields absent from
// the document keep their default value. Unknown fields are an error.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&cfg)
	if err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigFile is a convenience wrapper around [LoadConfig] that reads from a file.
func LoadConfigFile(path string) (Config, error) {
	fp, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer fp.Close()
	cfg, err := LoadConfig(fp)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate returns all problems found in the configuration joined in one error.
func (cfg Config) Validate() error {
	var errs []error
	if cfg.Width <= 0 || cfg.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", cfg.Width, cfg.Height))
	}
	if cfg.MoveStep < 0 || cfg.MoveSpeed < 0 {
		errs = append(errs, errors.New("movement step and speed must be non-negative"))
	}
	if cfg.StatusRefreshMillis < 0 {
		errs = append(errs, errors.New("negative status refresh interval"))
	}
	if cfg.MouseSensitivity < 0 {
		errs = append(errs, errors.New("negative mouse sensitivity"))
	}
	if cfg.FOV < 1 || cfg.FOV > 90 {
		errs = append(errs, fmt.Errorf("fov must be within [1, 90] degrees, got %v", cfg.FOV))
	}
	if _, err := cfg.level(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Step returns the camera movement step for a frame that lasted dt.
func (cfg Config) Step(dt time.Duration) float32 {
	if cfg.DeltaTimeMovement {
		return cfg.MoveSpeed * float32(dt.Seconds())
	}
	return cfg.MoveStep
}

func (cfg Config) level() (slog.Level, error) {
	var lvl slog.Level
	if cfg.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	err := lvl.UnmarshalText([]byte(cfg.LogLevel))
	if err != nil {
		return lvl, fmt.Errorf("log level: %w", err)
	}
	return lvl, nil
}
