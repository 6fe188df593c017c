package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_AbsentFile(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "setup.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Settings{}, s)
}

func TestLoad_Overrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "setup.yaml")
	content := `config_path: /tmp/claude_test_config.json
settle_seconds: 1
skip_restart: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/claude_test_config.json", s.ConfigPath)
	assert.Equal(t, 1, s.SettleSeconds)
	assert.True(t, s.SkipRestart)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "setup.yaml")
	require.NoError(t, os.WriteFile(path, []byte("config_path: [oops"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
