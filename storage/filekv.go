package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/appetiteclub/apt"
)

// FileKV stores each key as a JSON file under a base directory.
// Writes go to a temp file first and are moved into place, so a
// crash mid-write never leaves a half-written blob behind.
type FileKV struct {
	dir    string
	logger apt.Logger
}

func NewFileKV(dir string, logger apt.Logger) *FileKV {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &FileKV{
		dir:    dir,
		logger: logger,
	}
}

func (f *FileKV) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	return data, nil
}

func (f *FileKV) Save(ctx context.Context, key string, data []byte) error {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("create storage dir: %w", err)
	}

	tmp, err := os.CreateTemp(f.dir, key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("save %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("save %s: %w", key, err)
	}

	if err := os.Rename(tmp.Name(), f.path(key)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("save %s: %w", key, err)
	}

	f.logger.Debug("saved storage key", "key", key, "bytes", len(data))
	return nil
}

func (f *FileKV) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}
