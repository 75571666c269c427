package connections

import (
	"fmt"
	"io"
	"strconv"
)

// MenuRow renders one numbered selector row, e.g. "1. prod (10.0.0.1:8006)".
// Host and port each default to "unknown" independently.
func MenuRow(t Theme, index int, name string, p Profile) string {
	return fmt.Sprintf("%s %s %s",
		t.Accent(strconv.Itoa(index)+"."),
		name,
		t.Dim("("+p.HostPort()+")"))
}

// WriteMenu writes the full 1-based numbered list in document order.
func WriteMenu(w io.Writer, t Theme, f *File) {
	for i, name := range f.Names() {
		p, _ := f.Get(name)
		fmt.Fprintln(w, MenuRow(t, i+1, name, p))
	}
}

// WriteTable writes a read-only table of every connection with name, host,
// port and auth columns. Credential values are never printed; the auth
// column only says how a profile authenticates.
func WriteTable(w io.Writer, t Theme, f *File) {
	nameW, hostW, portW := len("NAME"), len("HOST"), len("PORT")
	for _, name := range f.Names() {
		p, _ := f.Get(name)
		nameW = max(nameW, len(name))
		hostW = max(hostW, len(p.HostString()))
		portW = max(portW, len(p.PortString()))
	}

	fmt.Fprintf(w, "%s  %s  %s  %s\n",
		t.Header(pad("NAME", nameW)),
		t.Header(pad("HOST", hostW)),
		t.Header(pad("PORT", portW)),
		t.Header("AUTH"))

	for _, name := range f.Names() {
		p, _ := f.Get(name)
		auth := p.AuthKind()
		if auth == "" {
			auth = "-"
		}
		fmt.Fprintf(w, "%s  %s  %s  %s\n",
			t.Accent(pad(name, nameW)),
			pad(p.HostString(), hostW),
			pad(p.PortString(), portW),
			t.Dim(auth))
	}
}

// pad left-aligns s in a field of width w. Styling is applied after padding
// so ANSI escapes never skew the column math.
func pad(s string, w int) string {
	return fmt.Sprintf("%-*s", w, s)
}
