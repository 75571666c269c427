package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/term"

	"pve-connect/pkg/connections"
)

var (
	flagConfig      string
	flagList        bool
	flagCheck       string
	flagPrintConfig bool
	flagTUI         string
	flagLog         string
)

func init() {
	flag.StringVar(&flagConfig, "config", "", "Path to YAML connections file (defaults to XDG paths if empty)")
	flag.BoolVar(&flagList, "list", false, "Print the connections table and exit")
	flag.StringVar(&flagCheck, "check", "", "Check that a connection name exists and exit")
	flag.BoolVar(&flagPrintConfig, "print-config-path", false, "Print resolved config path candidates and exit")
	flag.StringVar(&flagTUI, "tui", "auto", "Full-screen picker: auto|on|off")
	flag.StringVar(&flagLog, "log", "", "Append structured logs to this file (empty disables logging)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "pve-connect\n\n")
		fmt.Fprintf(os.Stderr, "Pick a named connection profile from the connections YAML file.\n")
		fmt.Fprintf(os.Stderr, "The chosen name is printed to stdout; everything else goes to stderr.\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  pve-connect [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  pve-connect
  pve-connect -tui off
  pve-connect -list
  pve-connect -check prod
  PVE_CONNECT_CONFIG=./connections.yaml pve-connect
`)
	}
}

func main() {
	os.Exit(run())
}

func run() int {
	flag.Parse()

	theme := connections.LoadTheme()
	logger := connections.DiscardLogger()
	if flagLog != "" {
		var closeLog func() error
		logger, closeLog = connections.NewFileLogger(flagLog)
		defer closeLog()
	}

	sel := &connections.Selector{
		ConfigPath: flagConfig,
		Out:        os.Stderr,
		Theme:      theme,
		Logger:     logger,
	}

	switch {
	case flagPrintConfig:
		for _, p := range connections.ConfigPathCandidates(flagConfig) {
			fmt.Println(p)
		}
		return 0

	case flagList:
		sel.RenderTable(os.Stdout)
		return 0

	case flagCheck != "":
		if sel.Exists(flagCheck) {
			fmt.Fprintln(os.Stderr, theme.Success("Connection exists: "+flagCheck))
			return 0
		}
		fmt.Fprintln(os.Stderr, theme.Error("Unknown connection: "+flagCheck))
		return 1
	}

	name, ok := pick(sel, theme, logger)
	if !ok {
		return 1
	}
	fmt.Println(name)
	return 0
}

// pick dispatches between the full-screen picker and the numbered prompt.
func pick(sel *connections.Selector, theme connections.Theme, logger *slog.Logger) (string, bool) {
	if useTUI() {
		f, path, err := connections.Load(flagConfig)
		switch {
		case errors.Is(err, connections.ErrConfigNotFound):
			fmt.Fprintln(os.Stderr, theme.Warn("No connections configured."))
			logger.Info("tui: no connections file")
			return "", false
		case err != nil:
			fmt.Fprintln(os.Stderr, theme.Error("Cannot read connections: "+err.Error()))
			logger.Error("tui: connections file unreadable", "error", err)
			return "", false
		case f.Len() == 0:
			fmt.Fprintln(os.Stderr, theme.Warn("No connections configured."))
			logger.Info("tui: empty connections file", "config", path)
			return "", false
		}

		name, ok, err := connections.RunTUI(f, theme, connections.TUIOptions{})
		if err == nil {
			if ok {
				logger.Info("tui: connection selected", "config", path, "connection", name)
			} else {
				logger.Debug("tui: cancelled", "config", path)
			}
			return name, ok
		}
		fmt.Fprintln(os.Stderr, theme.Warn("Picker unavailable, falling back to numbered prompt."))
		logger.Warn("tui failed, falling back to prompt", "error", err)
	}
	return sel.Select()
}

func useTUI() bool {
	switch flagTUI {
	case "on", "yes", "1", "true":
		return true
	case "off", "no", "0", "false":
		return false
	}
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
