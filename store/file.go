package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
)

var unsafeNamespace = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// FileBackend keeps one JSON object per namespace under dir.
type FileBackend struct {
	dir string
	mu  sync.Mutex
}

func NewFileBackend(dir string) (*FileBackend, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	return &FileBackend{dir: dir}, nil
}

func (f *FileBackend) path(namespace string) string {
	return filepath.Join(f.dir, unsafeNamespace.ReplaceAllString(namespace, "_")+".json")
}

func (f *FileBackend) read(namespace string) (map[string]string, error) {
	raw, err := os.ReadFile(f.path(namespace))
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}
	items := map[string]string{}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("corrupt state file %s: %w", f.path(namespace), err)
	}
	return items, nil
}

func (f *FileBackend) write(namespace string, items map[string]string) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	tmp := f.path(namespace) + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, f.path(namespace))
}

func (f *FileBackend) Get(_ context.Context, namespace, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	items, err := f.read(namespace)
	if err != nil {
		return "", false, err
	}
	v, ok := items[key]
	return v, ok, nil
}

func (f *FileBackend) Set(_ context.Context, namespace, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	items, err := f.read(namespace)
	if err != nil {
		return err
	}
	items[key] = value
	return f.write(namespace, items)
}

func (f *FileBackend) Delete(_ context.Context, namespace, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	items, err := f.read(namespace)
	if err != nil {
		return err
	}
	delete(items, key)
	return f.write(namespace, items)
}

func (f *FileBackend) Clear(_ context.Context, namespace string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	err := os.Remove(f.path(namespace))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (f *FileBackend) Close() error { return nil }
