package export

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"Admin-Console/internal/app/ds"

	"github.com/natefinch/atomic"
)

// Sink доставляет скачанный файл пользователю и возвращает, куда он попал
type Sink interface {
	Save(ctx context.Context, d *ds.Download) (string, error)
}

// LocalSink сохраняет файлы в каталог загрузок
type LocalSink struct {
	Dir string
}

func (s LocalSink) Save(_ context.Context, d *ds.Download) (string, error) {
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create download dir: %w", err)
	}

	path := filepath.Join(dir, filepath.Base(d.FileName))
	if err := atomic.WriteFile(path, bytes.NewReader(d.Body)); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
