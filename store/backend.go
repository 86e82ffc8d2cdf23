// Package store persists client-side state the way a browser keeps
// localStorage: string values under fixed keys, scoped to one visitor.
package store

import (
	"context"
	"fmt"
)

// Backend is a namespaced string key-value store.
type Backend interface {
	Get(ctx context.Context, namespace, key string) (string, bool, error)
	Set(ctx context.Context, namespace, key, value string) error
	Delete(ctx context.Context, namespace, key string) error
	Clear(ctx context.Context, namespace string) error
	Close() error
}

// Local is a Backend view bound to one namespace, mirroring the
// getItem/setItem/removeItem/clear surface of localStorage.
type Local struct {
	backend   Backend
	namespace string
}

func NewLocal(backend Backend, namespace string) *Local {
	return &Local{backend: backend, namespace: namespace}
}

func (l *Local) Namespace() string { return l.namespace }

func (l *Local) GetItem(ctx context.Context, key string) (string, bool, error) {
	v, ok, err := l.backend.Get(ctx, l.namespace, key)
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return v, ok, nil
}

func (l *Local) SetItem(ctx context.Context, key, value string) error {
	if err := l.backend.Set(ctx, l.namespace, key, value); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (l *Local) RemoveItem(ctx context.Context, key string) error {
	if err := l.backend.Delete(ctx, l.namespace, key); err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

func (l *Local) Clear(ctx context.Context) error {
	if err := l.backend.Clear(ctx, l.namespace); err != nil {
		return fmt.Errorf("clear: %w", err)
	}
	return nil
}
