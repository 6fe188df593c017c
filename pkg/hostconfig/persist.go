package hostconfig

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Swappable in tests to simulate filesystem failures.
var (
	writeFile  = os.WriteFile
	renameFile = os.Rename
)

// EnsureDir creates the parent directory tree of path.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &DirError{Path: dir, Err: err}
	}
	return nil
}

// Persist serializes cfg with stable two-space indentation and writes
// it to path in one all-or-nothing operation: the bytes go to a
// temporary sibling file which is then renamed over the target. A
// crash or write failure at any point leaves the original file intact.
// An existing file is backed up first, best-effort.
func Persist(path string, cfg Config) error {
	out, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	out = append(out, '\n')

	backupExisting(path)

	tmp := path + ".tmp"
	if err := writeFile(tmp, out, 0o644); err != nil {
		os.Remove(tmp)
		return &WriteError{Path: path, Err: err}
	}
	if err := renameFile(tmp, path); err != nil {
		os.Remove(tmp)
		return &WriteError{Path: path, Err: err}
	}
	return nil
}
