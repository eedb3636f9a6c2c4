package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// backupBeforeWrite copies the current contents of path into the backup
// directory as <base>_pre_sweep_<stamp>.json, creating the directory as
// needed. A store that does not exist yet has nothing to snapshot and is
// not an error. Returns the backup path, or "" when nothing was copied.
func backupBeforeWrite(path, backupDir, stamp string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read %s for backup: %w", path, err)
	}

	if err := os.MkdirAll(backupDir, 0755); err != nil {
		return "", fmt.Errorf("create backup dir %s: %w", backupDir, err)
	}

	base := strings.TrimSuffix(filepath.Base(path), ".json")
	backupPath := filepath.Join(backupDir, fmt.Sprintf("%s_pre_sweep_%s.json", base, stamp))
	if err := os.WriteFile(backupPath, data, 0644); err != nil {
		return "", fmt.Errorf("write backup %s: %w", backupPath, err)
	}
	return backupPath, nil
}
