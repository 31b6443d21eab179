// Package store persists rentflow state as JSON blobs in a key-value store.
package store

import (
	"context"
	"fmt"
	"sync"
)

// Namespaces used by the application.
const (
	NamespaceTenants    = "rentflow_tenants"
	NamespaceProperties = "rentflow_properties"
	NamespaceTheme      = "rentflow_theme"
)

// KV is a namespace-keyed blob store. Load reports ok=false when the
// namespace has never been written.
type KV interface {
	Load(ctx context.Context, namespace string) (data []byte, ok bool, err error)
	Save(ctx context.Context, namespace string, data []byte) error
	Close() error
}

func checkNamespace(ns string) error {
	if ns == "" {
		return fmt.Errorf("empty namespace")
	}
	for _, r := range ns {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '_' {
			return fmt.Errorf("invalid namespace %q", ns)
		}
	}
	return nil
}

// MemoryKV keeps blobs in process memory.
type MemoryKV struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemoryKV creates an empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

// Load implements KV.
func (m *MemoryKV) Load(_ context.Context, namespace string) ([]byte, bool, error) {
	if err := checkNamespace(namespace); err != nil {
		return nil, false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[namespace]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Save implements KV.
func (m *MemoryKV) Save(_ context.Context, namespace string, data []byte) error {
	if err := checkNamespace(namespace); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[namespace] = append([]byte(nil), data...)
	return nil
}

// Close implements KV.
func (m *MemoryKV) Close() error { return nil }
