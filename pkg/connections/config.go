// Package connections reads named Proxmox connection profiles from a YAML
// file and lets an operator pick one interactively.
package connections

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	defaultConfigDirName  = "pve-connect"
	defaultConfigFilename = "connections.yaml"

	// envConfig overrides the connections file location.
	envConfig = "PVE_CONNECT_CONFIG"
)

// unknownField is displayed when a descriptor omits host or port, or when
// the descriptor itself is not a mapping.
const unknownField = "unknown"

// ErrConfigNotFound is returned when no connections file can be located.
// A missing file is a valid state ("no connections configured"), so callers
// usually treat this as an empty configuration rather than a failure.
var ErrConfigNotFound = errors.New("connections file not found")

// Profile describes one named connection target.
//
// Example YAML:
//
// prod:
//   host: pve1.lab.local
//   port: 8006
//   token: ops@pve!automation
//
// dev:
//   host: 10.0.0.5
//   login: root@pam
//   password: secret
//
// Only host and port are interpreted for display. token/login/password feed
// the auth column of the table view and are never printed themselves. Any
// other field is carried in Extra untouched.
type Profile struct {
	Host     string
	Port     string // verbatim YAML scalar; not coerced or range-checked
	Token    string
	Login    string
	Password string
	Extra    map[string]any
}

// HostString returns the host for display, defaulting to "unknown".
func (p Profile) HostString() string {
	if strings.TrimSpace(p.Host) == "" {
		return unknownField
	}
	return p.Host
}

// PortString returns the port for display, defaulting to "unknown".
func (p Profile) PortString() string {
	if strings.TrimSpace(p.Port) == "" {
		return unknownField
	}
	return p.Port
}

// HostPort renders "host:port" with each side defaulting independently.
func (p Profile) HostPort() string {
	return p.HostString() + ":" + p.PortString()
}

// AuthKind reports how the profile authenticates: "token", "password",
// or "" when no credential fields are present.
func (p Profile) AuthKind() string {
	switch {
	case strings.TrimSpace(p.Token) != "":
		return "token"
	case p.Login != "" || p.Password != "":
		return "password"
	}
	return ""
}

// File is the parsed connections document. The top-level keys are connection
// names; iteration via Names follows the order they appear on disk, which a
// plain Go map cannot provide.
type File struct {
	names    []string
	profiles map[string]Profile
}

// UnmarshalYAML decodes the top-level mapping while recording key order.
func (f *File) UnmarshalYAML(value *yaml.Node) error {
	f.names = nil
	f.profiles = make(map[string]Profile)

	n := value
	if n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	if n.Kind == yaml.ScalarNode && n.Tag == "!!null" {
		return nil
	}
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("top-level must be a mapping of connection names, got %s", nodeKindName(n.Kind))
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		name := n.Content[i].Value
		if _, dup := f.profiles[name]; !dup {
			f.names = append(f.names, name)
		}
		f.profiles[name] = decodeProfile(n.Content[i+1])
	}
	return nil
}

// decodeProfile reads a descriptor node. Anything that is not a mapping
// (null, scalar, sequence) yields an empty Profile so the entry still lists
// with unknown host/port.
func decodeProfile(n *yaml.Node) Profile {
	if n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	var p Profile
	if n == nil || n.Kind != yaml.MappingNode {
		return p
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if v.Kind == yaml.AliasNode {
			v = v.Alias
		}
		switch k.Value {
		case "host":
			p.Host = scalarValue(v)
		case "port":
			p.Port = scalarValue(v)
		case "token":
			p.Token = scalarValue(v)
		case "login":
			p.Login = scalarValue(v)
		case "password":
			p.Password = scalarValue(v)
		default:
			var anyv any
			if err := v.Decode(&anyv); err == nil {
				if p.Extra == nil {
					p.Extra = make(map[string]any)
				}
				p.Extra[k.Value] = anyv
			}
		}
	}
	return p
}

// scalarValue returns the node's literal text, or "" for null/non-scalar nodes.
func scalarValue(v *yaml.Node) string {
	if v == nil || v.Kind != yaml.ScalarNode || v.Tag == "!!null" {
		return ""
	}
	return v.Value
}

func nodeKindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	}
	return "unknown"
}

// Len returns the number of configured connections.
func (f *File) Len() int {
	if f == nil {
		return 0
	}
	return len(f.names)
}

// Names returns the connection names in document order.
func (f *File) Names() []string {
	if f == nil {
		return nil
	}
	return append([]string(nil), f.names...)
}

// Get returns the profile for name, if present.
func (f *File) Get(name string) (Profile, bool) {
	if f == nil {
		return Profile{}, false
	}
	p, ok := f.profiles[name]
	return p, ok
}

// Map returns a fresh name->Profile copy. Order is not carried; use Names
// when display order matters.
func (f *File) Map() map[string]Profile {
	out := make(map[string]Profile, f.Len())
	if f == nil {
		return out
	}
	for name, p := range f.profiles {
		out[name] = p
	}
	return out
}

// Load discovers and parses the connections file. If explicitPath is empty,
// it searches common locations in order:
// 1. $PVE_CONNECT_CONFIG
// 2. $XDG_CONFIG_HOME/pve-connect/connections.yaml
// 3. ~/.config/pve-connect/connections.yaml
//
// Returns the parsed File and the path that was used. A missing file yields
// ErrConfigNotFound; an unparsable file yields a wrapped parse error naming
// the path; a file with zero entries parses fine and reports Len() == 0, so
// callers can tell the three states apart.
func Load(explicitPath string) (*File, string, error) {
	var lastErr error
	for _, p := range ConfigPathCandidates(explicitPath) {
		p = expandPath(p)
		if p == "" {
			continue
		}
		data, err := os.ReadFile(p)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				lastErr = err
			}
			continue
		}
		var f File
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, p, fmt.Errorf("parse yaml %s: %w", p, err)
		}
		if f.profiles == nil {
			f.profiles = make(map[string]Profile)
		}
		return &f, p, nil
	}
	if lastErr == nil {
		lastErr = ErrConfigNotFound
	}
	return nil, "", lastErr
}

// ConfigPathCandidates returns possible connections file paths, in priority
// order. If explicitPath is provided, it is returned first.
func ConfigPathCandidates(explicitPath string) []string {
	var out []string
	if explicitPath != "" {
		out = append(out, explicitPath)
	}
	if env := os.Getenv(envConfig); env != "" {
		out = append(out, env)
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		out = append(out, filepath.Join(xdg, defaultConfigDirName, defaultConfigFilename))
	}
	home, _ := os.UserHomeDir()
	if home != "" {
		out = append(out, filepath.Join(home, ".config", defaultConfigDirName, defaultConfigFilename))
	}
	return out
}

// DefaultConfigDir returns the directory path for this application's config.
// Precedence:
//  1. $XDG_CONFIG_HOME/pve-connect
//  2. ~/.config/pve-connect
func DefaultConfigDir() (string, error) {
	if xdg := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); xdg != "" {
		return filepath.Join(xdg, defaultConfigDirName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".config", defaultConfigDirName), nil
}

// expandPath expands leading "~" and environment variables in a path.
// If the input is empty, returns "".
func expandPath(p string) string {
	if p == "" {
		return ""
	}
	p = os.ExpandEnv(p)
	if strings.HasPrefix(p, "~") {
		home, _ := os.UserHomeDir()
		if home != "" {
			if p == "~" {
				p = home
			} else if strings.HasPrefix(p, "~/") {
				p = filepath.Join(home, p[2:])
			}
			// Note: "~user" not handled to avoid userdb lookups; rare for local config paths.
		}
	}
	return p
}
