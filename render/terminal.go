package render

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Terminal is a Sink writing styled text to a terminal. Consecutive text
// runs on a line are separated by a space and wrapped at Width columns.
type Terminal struct {
	w      io.Writer
	styles [4]lipgloss.Style // indexed by styleIndex
	width  int
	col    int
}

// TerminalOption configures a Terminal.
type TerminalOption func(*terminalConfig)

type terminalConfig struct {
	renderer    *lipgloss.Renderer
	boldColor   string
	italicColor string
	width       int
}

// WithWidth wraps lines at n columns. Zero disables wrapping.
func WithWidth(n int) TerminalOption {
	return func(c *terminalConfig) { c.width = n }
}

// WithRenderer selects the lipgloss renderer, and with it the color profile.
func WithRenderer(r *lipgloss.Renderer) TerminalOption {
	return func(c *terminalConfig) { c.renderer = r }
}

// WithColors sets foreground colors for bold and italic runs. Empty
// strings leave the terminal default.
func WithColors(bold, italic string) TerminalOption {
	return func(c *terminalConfig) {
		c.boldColor = bold
		c.italicColor = italic
	}
}

// NewTerminal returns a Terminal writing to w.
func NewTerminal(w io.Writer, opts ...TerminalOption) *Terminal {
	cfg := terminalConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.renderer == nil {
		cfg.renderer = lipgloss.NewRenderer(w)
	}

	t := &Terminal{w: w, width: cfg.width}
	for i := range t.styles {
		st := cfg.renderer.NewStyle()
		bold, italic := i&1 != 0, i&2 != 0
		if bold {
			st = st.Bold(true)
			if cfg.boldColor != "" {
				st = st.Foreground(lipgloss.Color(cfg.boldColor))
			}
		}
		if italic {
			st = st.Italic(true)
			if cfg.italicColor != "" && !bold {
				st = st.Foreground(lipgloss.Color(cfg.italicColor))
			}
		}
		t.styles[i] = st
	}
	return t
}

func styleIndex(s Style) int {
	i := 0
	if s.Bold {
		i |= 1
	}
	if s.Italic {
		i |= 2
	}
	return i
}

// Text implements Sink.
func (t *Terminal) Text(text []byte, style Style) error {
	if t.col > 0 {
		if t.width > 0 && t.col+1+len(text) > t.width {
			if _, err := io.WriteString(t.w, "\n"); err != nil {
				return err
			}
			t.col = 0
		} else {
			if _, err := io.WriteString(t.w, " "); err != nil {
				return err
			}
			t.col++
		}
	}
	if _, err := io.WriteString(t.w, t.styles[styleIndex(style)].Render(printable(text))); err != nil {
		return err
	}
	t.col += len(text)
	return nil
}

// Endl implements Sink.
func (t *Terminal) Endl() error {
	t.col = 0
	_, err := io.WriteString(t.w, "\n")
	return err
}

// printable replaces control and non-ASCII bytes with '?' so pool contents
// cannot emit terminal escape sequences.
func printable(text []byte) string {
	clean := true
	for _, c := range text {
		if c < 0x20 || c >= 0x7f {
			clean = false
			break
		}
	}
	if clean {
		return string(text)
	}

	out := make([]byte, len(text))
	for i, c := range text {
		if c < 0x20 || c >= 0x7f {
			c = '?'
		}
		out[i] = c
	}
	return string(out)
}
