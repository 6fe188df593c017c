// Package settings loads optional operator overrides for the setup run
// from ~/.desktop-commander/setup.yaml. An absent file means defaults.
package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/desktopcommander/setupctl/pkg/logging"
)

// Settings are the recognized override keys. Zero values mean "use the
// built-in behavior".
type Settings struct {
	// ConfigPath overrides the host config file location.
	ConfigPath string `yaml:"config_path"`
	// SettleSeconds overrides the pause between kill and relaunch.
	SettleSeconds int `yaml:"settle_seconds"`
	// SkipRestart disables the restart phase entirely.
	SkipRestart bool `yaml:"skip_restart"`
}

// DefaultPath returns ~/.desktop-commander/setup.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, logging.ToolDir, "setup.yaml"), nil
}

// Load reads settings from path. A missing file yields zero Settings;
// a malformed file is an error so typos do not silently fall back to
// defaults.
func Load(path string) (Settings, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Settings{}, nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("reading settings: %w", err)
	}

	var s Settings
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return Settings{}, fmt.Errorf("parsing settings %s: %w", filepath.Base(path), err)
	}
	return s, nil
}
