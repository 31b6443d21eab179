package store

import (
	"fmt"
	"path/filepath"

	"github.com/yabsrayab14-beep/Rental-Manager/internal/config"
)

// Open returns the KV backend selected by cfg. Relative paths are resolved
// against dir.
func Open(cfg config.StoreConfig, dir string) (KV, error) {
	path := cfg.Path
	if path != "" && !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}

	switch cfg.Backend {
	case config.BackendFile, "":
		if path == "" {
			path = filepath.Join(dir, "data")
		}
		return NewFileKV(path), nil
	case config.BackendSQLite:
		if path == "" {
			path = filepath.Join(dir, "data", "rentflow.db")
		}
		kv, err := NewSQLiteKV(path)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		return kv, nil
	case config.BackendMemory:
		return NewMemoryKV(), nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
}
