package hostconfig

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desktopcommander/setupctl/pkg/platform"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "claude_desktop_config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadOrDefault_AbsentFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "claude_desktop_config.json")

	cfg, state, err := LoadOrDefault(path, platform.OSLinux)
	require.NoError(t, err)
	assert.Equal(t, LoadCreated, state)

	// Nothing is written yet; the default exists only in memory.
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))

	sc, ok := cfg["serverConfig"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "/bin/sh", sc["command"])
	assert.Equal(t, []string{"-c"}, sc["args"])
}

func TestLoadOrDefault_WindowsDefaultShell(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.json")

	cfg, state, err := LoadOrDefault(path, platform.OSWindows)
	require.NoError(t, err)
	assert.Equal(t, LoadCreated, state)

	sc := cfg["serverConfig"].(map[string]any)
	assert.Equal(t, "cmd.exe", sc["command"])
	assert.Equal(t, []string{"/c"}, sc["args"])
}

func TestLoadOrDefault_ExistingFile(t *testing.T) {
	path := writeConfigFile(t, `{"other":1,"mcpServers":{"unrelated":{"command":"foo"}}}`)

	cfg, state, err := LoadOrDefault(path, platform.OSMacOS)
	require.NoError(t, err)
	assert.Equal(t, LoadExists, state)
	assert.Equal(t, float64(1), cfg["other"])
	assert.Contains(t, Servers(cfg), "unrelated")
}

func TestLoadOrDefault_ToleratesComments(t *testing.T) {
	path := writeConfigFile(t, `{
  // hand-edited by the user
  "mcpServers": {},
}`)

	cfg, state, err := LoadOrDefault(path, platform.OSMacOS)
	require.NoError(t, err)
	assert.Equal(t, LoadExists, state)
	assert.NotNil(t, Servers(cfg))
}

func TestLoadOrDefault_MalformedFile(t *testing.T) {
	path := writeConfigFile(t, `{"mcpServers": not json`)

	_, _, err := LoadOrDefault(path, platform.OSMacOS)
	var readErr *ReadError
	require.ErrorAs(t, err, &readErr)
	assert.Equal(t, path, readErr.Path)
}

func TestMerge_ReplacesEntryAndPreservesRest(t *testing.T) {
	cfg := Config{
		"other": float64(1),
		"mcpServers": map[string]any{
			"desktopCommander": map[string]any{"command": "old"},
			"unrelated":        map[string]any{"command": "foo", "args": []any{"bar"}},
		},
	}
	spec := ServerSpec{Command: "npx", Args: []string{"-y", "@desktop-commander/mcp-server@latest"}}

	merged := Merge(cfg, ServerName, spec)

	assert.Equal(t, float64(1), merged["other"])
	servers := Servers(merged)
	assert.NotContains(t, servers, "desktopCommander")
	assert.Equal(t, spec, servers[ServerName])
	assert.Equal(t, map[string]any{"command": "foo", "args": []any{"bar"}}, servers["unrelated"])

	// The input config is untouched.
	assert.Contains(t, Servers(cfg), "desktopCommander")
	assert.NotContains(t, Servers(cfg), ServerName)
}

func TestMerge_Idempotent(t *testing.T) {
	cfg := Config{"mcpServers": map[string]any{}}
	spec := ServerSpec{Command: "node", Args: []string{"/opt/dc/server/index.js"}}

	once := Merge(cfg, ServerName, spec)
	twice := Merge(once, ServerName, spec)
	assert.Equal(t, Servers(once)[ServerName], Servers(twice)[ServerName])
	assert.Equal(t, once, twice)
}

func TestMerge_MissingServersMap(t *testing.T) {
	merged := Merge(Config{"other": "x"}, ServerName, ServerSpec{Command: "npx"})
	require.NotNil(t, Servers(merged))
	assert.Contains(t, Servers(merged), ServerName)
	assert.Equal(t, "x", merged["other"])
}

func TestPersist_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "claude_desktop_config.json")
	require.NoError(t, EnsureDir(path))

	cfg := Merge(defaultConfig(platform.OSLinux), ServerName, ServerSpec{
		Command: "npx",
		Args:    []string{"-y", "@desktop-commander/mcp-server@latest"},
	})
	require.NoError(t, Persist(path, cfg))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	servers := got["mcpServers"].(map[string]any)
	require.Len(t, servers, 1)
	entry := servers[ServerName].(map[string]any)
	assert.Equal(t, "npx", entry["command"])
	// Empty env is omitted entirely.
	assert.NotContains(t, entry, "env")
}

func TestEnsureDir_Failure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	// Parent "directory" is a regular file.
	err := EnsureDir(filepath.Join(blocker, "Claude", "config.json"))
	var dirErr *DirError
	require.ErrorAs(t, err, &dirErr)
}

func TestDefaultPath_PerPlatform(t *testing.T) {
	getenv := func(key string) string {
		if key == "APPDATA" {
			return `C:\Users\u\AppData\Roaming`
		}
		return ""
	}

	win := defaultPath("windows", getenv, `C:\Users\u`)
	assert.Equal(t, filepath.Join(`C:\Users\u\AppData\Roaming`, "Claude", "claude_desktop_config.json"), win)

	noAppData := defaultPath("windows", func(string) string { return "" }, `C:\Users\u`)
	assert.Equal(t, filepath.Join(`C:\Users\u`, "AppData", "Roaming", "Claude", "claude_desktop_config.json"), noAppData)

	mac := defaultPath("darwin", func(string) string { return "" }, "/Users/u")
	assert.Equal(t, filepath.Join("/Users/u", "Library", "Application Support", "Claude", "claude_desktop_config.json"), mac)

	linux := defaultPath("linux", func(string) string { return "" }, "/home/u")
	assert.Equal(t, filepath.Join("/home/u", ".config", "Claude", "claude_desktop_config.json"), linux)
}
