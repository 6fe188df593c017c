package hostconfig

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	backupSuffix = ".setupctl-backup-"
	backupStamp  = "20060102-150405"
	maxBackups   = 3
)

// backupExisting copies the file at path to a timestamped sibling
// before it is rewritten, then prunes old copies. Best-effort: backup
// failure never blocks the rewrite, since the rewrite itself is atomic.
func backupExisting(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	stamp := time.Now().Format(backupStamp)
	if err := os.WriteFile(path+backupSuffix+stamp, data, 0o644); err != nil {
		return
	}
	pruneBackups(path)
}

// pruneBackups keeps the most recent maxBackups copies. The timestamp
// suffix makes lexicographic order chronological.
func pruneBackups(path string) {
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		return
	}

	prefix := filepath.Base(path) + backupSuffix
	var backups []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), prefix) {
			backups = append(backups, filepath.Join(filepath.Dir(path), e.Name()))
		}
	}
	if len(backups) <= maxBackups {
		return
	}

	sort.Strings(backups)
	for _, old := range backups[:len(backups)-maxBackups] {
		os.Remove(old)
	}
}
