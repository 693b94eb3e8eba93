package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Saver persists a finished document under the given file name. It is the
// only side effect of document generation.
type Saver interface {
	Save(ctx context.Context, fileName string, data []byte) error
}

// SaverFunc adapts a function to the Saver interface.
type SaverFunc func(ctx context.Context, fileName string, data []byte) error

func (f SaverFunc) Save(ctx context.Context, fileName string, data []byte) error {
	return f(ctx, fileName, data)
}

// DirSaver writes documents into a directory, creating it when missing.
type DirSaver struct {
	Dir string
}

func (s DirSaver) Save(_ context.Context, fileName string, data []byte) error {
	if fileName != filepath.Base(fileName) {
		return fmt.Errorf("invalid file name %q", fileName)
	}
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, fileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Path returns where Save writes fileName.
func (s DirSaver) Path(fileName string) string {
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, fileName)
}
