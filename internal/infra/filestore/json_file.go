// Package filestore keeps small collections as whole JSON documents on disk.
package filestore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// JSONFile is a JSON document read and written wholesale. A single mutex guards
// read-modify-write cycles within the process; writes go through a temp file
// and a rename so readers never observe a partial document.
type JSONFile[T any] struct {
	path string
	mu   sync.Mutex
}

func NewJSONFile[T any](path string) *JSONFile[T] {
	return &JSONFile[T]{path: path}
}

// EnsureDefault writes def when the file does not exist yet.
func (f *JSONFile[T]) EnsureDefault(def T) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := os.Stat(f.path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return f.writeLocked(def)
}

func (f *JSONFile[T]) Load() (T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.readLocked()
}

func (f *JSONFile[T]) Store(v T) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writeLocked(v)
}

// Update loads the document, applies fn and writes the result back. Nothing is
// written when fn fails.
func (f *JSONFile[T]) Update(fn func(T) (T, error)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	current, err := f.readLocked()
	if err != nil {
		return err
	}
	next, err := fn(current)
	if err != nil {
		return err
	}
	return f.writeLocked(next)
}

func (f *JSONFile[T]) readLocked() (T, error) {
	var v T
	data, err := os.ReadFile(f.path)
	if err != nil {
		return v, fmt.Errorf("read %s: %w", filepath.Base(f.path), err)
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("decode %s: %w", filepath.Base(f.path), err)
	}
	return v, nil
}

func (f *JSONFile[T]) writeLocked(v T) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(f.path), err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.path)
}
