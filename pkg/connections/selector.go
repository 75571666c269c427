package connections

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Selector bundles everything the interactive operations need: where the
// config lives, where prompts read from and print to, how output is styled,
// and where outcomes are logged. The zero value works: it reads stdin,
// writes stdout, uses no styling and discards logs. There is deliberately no
// package-level console or logger state.
//
// The configuration is re-read on every call. Nothing is cached between
// operations, so the selector can be kept around and reused while the file
// changes underneath it.
type Selector struct {
	// ConfigPath optionally pins the connections file. When empty, the
	// standard candidate paths are searched (see Load).
	ConfigPath string

	In     io.Reader
	Out    io.Writer
	Theme  Theme
	Logger *slog.Logger
}

func (s *Selector) in() io.Reader {
	if s.In != nil {
		return s.In
	}
	return os.Stdin
}

func (s *Selector) out() io.Writer {
	if s.Out != nil {
		return s.Out
	}
	return os.Stdout
}

func (s *Selector) log() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return DiscardLogger()
}

// Select prompts the operator to pick one connection by number and returns
// its name. ok is false whenever no valid pick was made: missing, empty or
// unparsable config, blank input, non-numeric input, or an out-of-range
// index. Every branch except the blank-input cancel prints a message; all
// terminal outcomes are logged. Errors never escape to the caller.
func (s *Selector) Select() (name string, ok bool) {
	f, path, err := s.load("select")
	if err != nil || f.Len() == 0 {
		return "", false
	}

	names := f.Names()
	out := s.out()
	fmt.Fprintln(out, s.Theme.Header("Available connections:"))
	WriteMenu(out, s.Theme, f)
	fmt.Fprint(out, "Select connection number: ")

	line := strings.TrimSpace(readLine(s.in()))
	if line == "" {
		// Pressing enter (or closing input) aborts silently by design.
		s.log().Debug("select cancelled", "config", path, "connections", len(names))
		return "", false
	}

	idx, err := strconv.Atoi(line)
	if err != nil {
		fmt.Fprintln(out, s.Theme.Error("Enter a number."))
		s.log().Warn("select rejected non-numeric input", "config", path, "input", line)
		return "", false
	}
	if idx < 1 || idx > len(names) {
		fmt.Fprintln(out, s.Theme.Error(fmt.Sprintf("Number out of range 1-%d.", len(names))))
		s.log().Warn("select rejected out-of-range index", "config", path, "index", idx, "connections", len(names))
		return "", false
	}

	name = names[idx-1]
	fmt.Fprintln(out, s.Theme.Success("Selected connection: "+name))
	s.log().Info("connection selected", "config", path, "connection", name, "index", idx)
	return name, true
}

// List returns the full name->Profile mapping. An absent, empty or
// unparsable file yields an empty map; failures are swallowed and logged.
func (s *Selector) List() map[string]Profile {
	f, _, err := Load(s.ConfigPath)
	if err != nil {
		if errors.Is(err, ErrConfigNotFound) {
			s.log().Debug("list: no connections file")
		} else {
			s.log().Warn("list: connections file unreadable", "error", err)
		}
		return map[string]Profile{}
	}
	return f.Map()
}

// Names returns the connection names in document order, or nil when the
// file is absent, empty or unparsable.
func (s *Selector) Names() []string {
	f, _, err := Load(s.ConfigPath)
	if err != nil {
		return nil
	}
	return f.Names()
}

// Exists reports whether name is a configured connection. A false result is
// logged together with the currently valid names for diagnostics.
func (s *Selector) Exists(name string) bool {
	f, path, err := Load(s.ConfigPath)
	if err != nil {
		s.log().Warn("unknown connection name", "name", name, "valid", []string{}, "error", err)
		return false
	}
	if _, ok := f.Get(name); ok {
		return true
	}
	s.log().Warn("unknown connection name", "name", name, "valid", f.Names(), "config", path)
	return false
}

// Get returns the profile for name. Read-only; nothing is reported to the
// console on a miss.
func (s *Selector) Get(name string) (Profile, bool) {
	f, _, err := Load(s.ConfigPath)
	if err != nil {
		return Profile{}, false
	}
	p, ok := f.Get(name)
	if !ok {
		s.log().Debug("get: connection not found", "name", name)
	}
	return p, ok
}

// RenderTable writes the read-only connections table to w, reporting the
// missing/empty/unparsable states with the same notices Select uses.
func (s *Selector) RenderTable(w io.Writer) {
	f, path, err := s.loadTo(w, "table")
	if err != nil || f.Len() == 0 {
		return
	}
	WriteTable(w, s.Theme, f)
	s.log().Info("table rendered", "config", path, "connections", f.Len())
}

// load reads the config and reports the three degenerate states (missing,
// unparsable, empty) on the selector's own output writer.
func (s *Selector) load(op string) (*File, string, error) {
	return s.loadTo(s.out(), op)
}

func (s *Selector) loadTo(w io.Writer, op string) (*File, string, error) {
	f, path, err := Load(s.ConfigPath)
	switch {
	case errors.Is(err, ErrConfigNotFound):
		fmt.Fprintln(w, s.Theme.Warn("No connections configured."))
		s.log().Info(op+": no connections file")
		return nil, "", err
	case err != nil:
		fmt.Fprintln(w, s.Theme.Error("Cannot read connections: "+err.Error()))
		s.log().Error(op+": connections file unreadable", "config", path, "error", err)
		return nil, path, err
	case f.Len() == 0:
		fmt.Fprintln(w, s.Theme.Warn("No connections configured."))
		s.log().Info(op+": empty connections file", "config", path)
		return f, path, nil
	}
	return f, path, nil
}

// readLine reads one line from r. A read failure or immediate EOF comes
// back as "", which the caller treats as a cancel.
func readLine(r io.Reader) string {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return line
}
