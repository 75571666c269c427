package connections

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Theme provides optional colorized rendering for console messages and the
// picker. All hooks are safe to call on a disabled (or zero-value) Theme;
// they fall back to plain strings.
//
// Resolution sources, in priority order:
// 1) Env var PVE_CONNECT_THEME = off | dark | light
// 2) NO_COLOR (disables styling when set)
// 3) Auto-detect (color only when stdout is a terminal)
type Theme struct {
	Enabled bool

	header   lipgloss.Style
	accent   lipgloss.Style
	selected lipgloss.Style
	dim      lipgloss.Style
	warn     lipgloss.Style
	errStyle lipgloss.Style
	success  lipgloss.Style
}

// Header styles section titles.
func (t Theme) Header(s string) string { return t.render(t.header, s) }

// Accent styles row numbers and names.
func (t Theme) Accent(s string) string { return t.render(t.accent, s) }

// Selected styles the highlighted row in the picker.
func (t Theme) Selected(s string) string { return t.render(t.selected, s) }

// Dim styles secondary detail like host:port.
func (t Theme) Dim(s string) string { return t.render(t.dim, s) }

// Warn styles notices such as "no connections configured".
func (t Theme) Warn(s string) string { return t.render(t.warn, s) }

// Error styles failure messages.
func (t Theme) Error(s string) string { return t.render(t.errStyle, s) }

// Success styles confirmation messages.
func (t Theme) Success(s string) string { return t.render(t.success, s) }

func (t Theme) render(st lipgloss.Style, s string) string {
	if !t.Enabled {
		return s
	}
	return st.Render(s)
}

// LoadTheme resolves theming from the environment, falling back to
// auto-detection. It never fails; worst case is plain output.
func LoadTheme() Theme {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("PVE_CONNECT_THEME"))) {
	case "none", "off", "disabled":
		return NoTheme()
	case "dark":
		return DarkTheme()
	case "light":
		return LightTheme()
	}
	return AutoTheme()
}

// NoTheme disables all styling.
func NoTheme() Theme {
	return Theme{Enabled: false}
}

// AutoTheme enables theming whenever the terminal likely supports color.
func AutoTheme() Theme {
	if os.Getenv("NO_COLOR") != "" {
		return NoTheme()
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return NoTheme()
	}
	return DarkTheme()
}

// DarkTheme provides a sane default palette for dark terminals.
func DarkTheme() Theme {
	return Theme{
		Enabled:  true,
		header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		accent:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
		dim:      lipgloss.NewStyle().Faint(true),
		warn:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		errStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		success:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	}
}

// LightTheme uses the darker ANSI variants so text stays readable on light
// backgrounds.
func LightTheme() Theme {
	return Theme{
		Enabled:  true,
		header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4")),
		accent:   lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5")),
		dim:      lipgloss.NewStyle().Faint(true),
		warn:     lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		errStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		success:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	}
}
