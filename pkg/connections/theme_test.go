package connections

import (
	"strings"
	"testing"
)

func TestNoThemeRendersPlainText(t *testing.T) {
	th := NoTheme()
	for name, fn := range map[string]func(string) string{
		"header":   th.Header,
		"accent":   th.Accent,
		"selected": th.Selected,
		"dim":      th.Dim,
		"warn":     th.Warn,
		"error":    th.Error,
		"success":  th.Success,
	} {
		if got := fn("plain"); got != "plain" {
			t.Fatalf("%s: expected passthrough, got %q", name, got)
		}
	}
}

func TestZeroValueThemeIsSafe(t *testing.T) {
	var th Theme
	if got := th.Error("boom"); got != "boom" {
		t.Fatalf("expected zero-value theme to pass text through, got %q", got)
	}
}

func TestLoadThemeEnvOverrides(t *testing.T) {
	t.Setenv("PVE_CONNECT_THEME", "off")
	if th := LoadTheme(); th.Enabled {
		t.Fatalf("expected PVE_CONNECT_THEME=off to disable styling")
	}

	t.Setenv("PVE_CONNECT_THEME", "dark")
	if th := LoadTheme(); !th.Enabled {
		t.Fatalf("expected PVE_CONNECT_THEME=dark to enable styling")
	}

	t.Setenv("PVE_CONNECT_THEME", "light")
	if th := LoadTheme(); !th.Enabled {
		t.Fatalf("expected PVE_CONNECT_THEME=light to enable styling")
	}
}

func TestAutoThemeHonorsNoColor(t *testing.T) {
	t.Setenv("PVE_CONNECT_THEME", "")
	t.Setenv("NO_COLOR", "1")
	if th := LoadTheme(); th.Enabled {
		t.Fatalf("expected NO_COLOR to disable styling")
	}
}

func TestStyledRenderKeepsText(t *testing.T) {
	th := DarkTheme()
	for _, fn := range []func(string) string{th.Header, th.Warn, th.Error, th.Success} {
		if got := fn("message"); !strings.Contains(got, "message") {
			t.Fatalf("expected styled output to contain the text, got %q", got)
		}
	}
}
