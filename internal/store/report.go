package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/michaelmakaab/africa-youth-transfer-tracker/internal/model"
)

// WriteReport writes the per-run report under dir as sweep_<stamp>.json
// and returns the path.
func WriteReport(dir string, report *model.SweepReport) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create report dir %s: %w", dir, err)
	}
	path := filepath.Join(dir, fmt.Sprintf("sweep_%s.json", Stamp(report.StartedAt)))
	if err := writeJSON(path, report); err != nil {
		return "", err
	}
	return path, nil
}
