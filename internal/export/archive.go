package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"quiz-admin-service/internal/domain"
)

// DirArchiver writes exports into a directory, one timestamped file per export.
type DirArchiver struct {
	dir string
	now func() time.Time
}

func NewDirArchiver(dir string) *DirArchiver {
	return &DirArchiver{dir: dir, now: time.Now}
}

// Archive writes file to the archive directory and fsyncs it before returning its path.
func (a *DirArchiver) Archive(_ context.Context, file domain.ExportFile) (string, error) {
	if err := os.MkdirAll(a.dir, 0o755); err != nil {
		return "", fmt.Errorf("create archive dir: %w", err)
	}

	ext := filepath.Ext(file.Name)
	base := strings.TrimSuffix(file.Name, ext)
	name := fmt.Sprintf("%s_%s%s", base, a.now().UTC().Format("20060102T150405.000"), ext)
	path := filepath.Join(a.dir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create archive file: %w", err)
	}
	if _, err := f.Write(file.Data); err != nil {
		f.Close()
		return "", fmt.Errorf("write archive file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return "", fmt.Errorf("sync archive file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, nil
}
