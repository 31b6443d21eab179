package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileKV stores each namespace as <dir>/<namespace>.json.
type FileKV struct {
	dir string
}

// NewFileKV creates a FileKV rooted at dir. The directory is created on
// first save.
func NewFileKV(dir string) *FileKV {
	return &FileKV{dir: dir}
}

// Dir returns the directory holding the namespace files.
func (f *FileKV) Dir() string {
	return f.dir
}

func (f *FileKV) path(namespace string) string {
	return filepath.Join(f.dir, namespace+".json")
}

// Load implements KV.
func (f *FileKV) Load(_ context.Context, namespace string) ([]byte, bool, error) {
	if err := checkNamespace(namespace); err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(f.path(namespace))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading %s: %w", namespace, err)
	}
	return data, true, nil
}

// Save implements KV. The namespace file is replaced in full.
func (f *FileKV) Save(_ context.Context, namespace string, data []byte) error {
	if err := checkNamespace(namespace); err != nil {
		return err
	}
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	// Write then rename so a failed save leaves the previous snapshot intact.
	tmp, err := os.CreateTemp(f.dir, namespace+".*.tmp")
	if err != nil {
		return fmt.Errorf("writing %s: %w", namespace, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", namespace, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", namespace, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", namespace, err)
	}
	if err := os.Rename(tmp.Name(), f.path(namespace)); err != nil {
		return fmt.Errorf("replacing %s: %w", namespace, err)
	}
	return nil
}

// Close implements KV.
func (f *FileKV) Close() error { return nil }
