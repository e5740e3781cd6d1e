package glapp

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/muesli/termenv"
)

// Status writes frame statistics to a terminal on a single line that is
// rewritten in place using a carriage return.
type Status struct {
	out      *termenv.Output
	interval time.Duration
	last     time.Time
	frames   int
	busy     time.Duration
	lineLen  int
	printed  bool
}

// NewStatus returns a Status writing to w at most once every interval.
// Colors are used only if w is a terminal that supports them.
func NewStatus(w io.Writer, interval time.Duration, opts ...termenv.OutputOption) *Status {
	return &Status{
		out:      termenv.NewOutput(w, opts...),
		interval: interval,
	}
}

// Frame records a frame that ended at now and lasted dt. The line is rewritten
// if the refresh interval elapsed since the last write.
func (s *Status) Frame(now time.Time, dt time.Duration, extra string) {
	s.frames++
	s.busy += dt
	if s.last.IsZero() {
		s.last = now
	}
	if now.Sub(s.last) < s.interval || s.busy <= 0 {
		return
	}
	fps := float64(s.frames) / s.busy.Seconds()
	frameTime := s.busy / time.Duration(s.frames)
	s.frames, s.busy, s.last = 0, 0, now
	s.print(fps, frameTime, extra)
}

func (s *Status) print(fps float64, frameTime time.Duration, extra string) {
	o := s.out
	fpsColor := "#50fa7b"
	switch {
	case fps < 30:
		fpsColor = "#ff5555"
	case fps < 55:
		fpsColor = "#f1fa8c"
	}
	var line strings.Builder
	line.WriteString(o.String(fmt.Sprintf("%6.1f fps", fps)).Foreground(o.Color(fpsColor)).Bold().String())
	line.WriteString(o.String(fmt.Sprintf("  %6.2fms", float64(frameTime.Microseconds())/1000)).Faint().String())
	plainLen := 10 + 10
	if extra != "" {
		line.WriteString("  ")
		line.WriteString(o.String(extra).Foreground(o.Color("#8be9fd")).String())
		plainLen += 2 + len(extra)
	}
	// Pad with spaces to erase leftovers from a longer previous line.
	if pad := s.lineLen - plainLen; pad > 0 {
		line.WriteString(strings.Repeat(" ", pad))
	}
	s.lineLen = plainLen
	fmt.Fprint(o, "\r"+line.String())
	s.printed = true
}

// Close terminates the status line with a newline so following output starts on a fresh line.
func (s *Status) Close() error {
	if !s.printed {
		return nil
	}
	s.printed = false
	_, err := fmt.Fprintln(s.out)
	return err
}
