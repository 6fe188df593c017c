// Package hostconfig reads, merges, and atomically rewrites the host
// application's JSON configuration file. Only the mcpServers map is
// ever modified; every other key round-trips untouched.
package hostconfig

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tailscale/hujson"

	"github.com/desktopcommander/setupctl/pkg/platform"
)

const (
	// ServerName is the mcpServers key this tool owns.
	ServerName = "desktop-commander"

	serversKey = "mcpServers"
)

// legacyServerNames are earlier spellings of our entry. They are
// deleted outright on merge.
var legacyServerNames = []string{"desktopCommander"}

// Config is the host config as a generic JSON object.
type Config map[string]any

// ServerSpec is one server-launch entry under mcpServers: exactly how
// the host should invoke the managed tool server.
type ServerSpec struct {
	Command string            `json:"command"`
	Args    []string          `json:"args"`
	Env     map[string]string `json:"env,omitempty"`
}

// LoadState tells the caller whether LoadOrDefault found a file on disk
// or default-constructed one in memory.
type LoadState string

const (
	LoadCreated LoadState = "created"
	LoadExists  LoadState = "exists"
)

// LoadOrDefault reads the config at path, or returns a platform-default
// config without writing anything when the file is absent. An existing
// but unparseable file yields a *ReadError; the caller must abort
// rather than overwrite it.
func LoadOrDefault(path string, osFamily platform.OS) (Config, LoadState, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return defaultConfig(osFamily), LoadCreated, nil
	}
	if err != nil {
		return nil, "", &ReadError{Path: path, Err: err}
	}

	cfg, err := parse(raw)
	if err != nil {
		return nil, "", &ReadError{Path: path, Err: err}
	}
	return cfg, LoadExists, nil
}

// parse decodes JSON, tolerating comments and trailing commas in
// hand-edited configs.
func parse(raw []byte) (Config, error) {
	ast, err := hujson.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	ast.Standardize()

	var cfg Config
	if err := json.Unmarshal(ast.Pack(), &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling JSON: %w", err)
	}
	return cfg, nil
}

// defaultConfig is the config written on first run: an empty mcpServers
// map plus a serverConfig block naming the OS default shell.
func defaultConfig(osFamily platform.OS) Config {
	command, args := defaultShell(osFamily)
	return Config{
		serversKey: map[string]any{},
		"serverConfig": map[string]any{
			"command": command,
			"args":    args,
		},
	}
}

// Merge returns a config identical to cfg except that legacy-named
// entries are removed and mcpServers[name] is replaced wholesale by
// spec. cfg itself is not modified.
func Merge(cfg Config, name string, spec ServerSpec) Config {
	out := make(Config, len(cfg)+1)
	for k, v := range cfg {
		out[k] = v
	}

	servers := make(map[string]any)
	if existing, ok := out[serversKey].(map[string]any); ok {
		for k, v := range existing {
			servers[k] = v
		}
	}
	for _, legacy := range legacyServerNames {
		delete(servers, legacy)
	}
	servers[name] = spec

	out[serversKey] = servers
	return out
}

// Servers returns the mcpServers map of cfg, or nil if absent or of an
// unexpected shape.
func Servers(cfg Config) map[string]any {
	servers, _ := cfg[serversKey].(map[string]any)
	return servers
}
