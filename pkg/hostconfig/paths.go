package hostconfig

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/desktopcommander/setupctl/pkg/platform"
)

// DefaultPath returns the Claude Desktop config file location for the
// current platform. Windows derives it from %APPDATA%; macOS and Linux
// use fixed subpaths under the user's home directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return defaultPath(runtime.GOOS, os.Getenv, home), nil
}

func defaultPath(goos string, getenv func(string) string, home string) string {
	const file = "claude_desktop_config.json"
	switch goos {
	case "windows":
		appData := getenv("APPDATA")
		if appData == "" {
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		return filepath.Join(appData, "Claude", file)
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Claude", file)
	default:
		return filepath.Join(home, ".config", "Claude", file)
	}
}

// defaultShell is the OS default shell invocation recorded in a freshly
// created config's serverConfig block.
func defaultShell(osFamily platform.OS) (command string, args []string) {
	if osFamily == platform.OSWindows {
		return "cmd.exe", []string{"/c"}
	}
	return "/bin/sh", []string{"-c"}
}
