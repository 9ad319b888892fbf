package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileBackend stores every key as its own file inside a directory
type FileBackend struct {
	directory string
}

func NewFileBackend(directory string) (*FileBackend, error) {
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}

	return &FileBackend{directory: directory}, nil
}

func (f *FileBackend) path(key string) (string, error) {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}

	return filepath.Join(f.directory, key), nil
}

func (f *FileBackend) Put(ctx context.Context, key string, data string) error {
	path, err := f.path(key)
	if err != nil {
		return err
	}

	// Write next to the destination then rename so readers never see half a file
	tmpFile, err := os.CreateTemp(f.directory, ".tmp-"+key+"-")
	if err != nil {
		return err
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.WriteString(data); err != nil {
		tmpFile.Close()
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}

	return os.Rename(tmpFile.Name(), path)
}

func (f *FileBackend) Get(ctx context.Context, key string) (string, error) {
	path, err := f.path(key)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", &NotFoundError{Key: key}
	} else if err != nil {
		return "", err
	}

	return string(data), nil
}

func (f *FileBackend) Delete(ctx context.Context, key string) error {
	path, err := f.path(key)
	if err != nil {
		return err
	}

	err = os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return err
}

func (f *FileBackend) Close() error {
	return nil
}
