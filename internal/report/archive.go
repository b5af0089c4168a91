package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Archive persists rendered reports to a directory, one file per run.
type Archive struct {
	Dir string
}

// Write stores text as this run's artifact and returns its path.
// The directory is created on first use.
func (a *Archive) Write(runID string, generatedAt time.Time, text string) (string, error) {
	if err := os.MkdirAll(a.Dir, 0o755); err != nil {
		return "", fmt.Errorf("archive: create dir: %w", err)
	}

	id := runID
	if len(id) > 8 {
		id = id[:8]
	}
	name := fmt.Sprintf("pace-%s-%s.txt", generatedAt.UTC().Format("20060102-150405"), id)
	path := filepath.Join(a.Dir, name)

	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("archive: write report: %w", err)
	}
	return path, nil
}
