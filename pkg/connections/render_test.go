package connections

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteTableAuthColumn(t *testing.T) {
	path := writeConfig(t, strings.Join([]string{
		"prod:",
		"  host: 10.0.0.1",
		"  token: ops@pve!automation",
		"legacy:",
		"  login: root@pam",
		"  password: secret",
		"dev: {}",
	}, "\n") + "\n")
	f, _, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	var out bytes.Buffer
	WriteTable(&out, NoTheme(), f)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d:\n%s", len(lines), out.String())
	}
	for row, want := range map[int]string{1: "token", 2: "password", 3: "-"} {
		if !strings.HasSuffix(lines[row], want) {
			t.Fatalf("expected row %d to end with auth %q, got %q", row, want, lines[row])
		}
	}
}

func TestWriteTableNeverPrintsCredentials(t *testing.T) {
	path := writeConfig(t, "prod:\n  token: ops@pve!automation\n  password: hunter2\n")
	f, _, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	var out bytes.Buffer
	WriteTable(&out, NoTheme(), f)

	for _, secret := range []string{"ops@pve!automation", "hunter2"} {
		if strings.Contains(out.String(), secret) {
			t.Fatalf("credential %q leaked into table:\n%s", secret, out.String())
		}
	}
}

func TestMenuRowFormatting(t *testing.T) {
	p := Profile{Host: "pve1.lab.local", Port: "8006"}
	if got := MenuRow(NoTheme(), 3, "prod", p); got != "3. prod (pve1.lab.local:8006)" {
		t.Fatalf("unexpected row: %q", got)
	}
}
