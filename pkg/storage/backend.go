// Package storage persists string payloads under string keys.
//
// Backends are plain key/value capabilities, some of which cap the size of a
// single value. ChunkedStore sits on top of any of them and splits large
// payloads over several keys.
package storage

import (
	"context"
	"fmt"
)

type Backend interface {
	Put(ctx context.Context, key string, data string) error
	// Get returns a *NotFoundError when nothing is stored under key
	Get(ctx context.Context, key string) (string, error)
	// Delete removes key, deleting a key that does not exist is not an error
	Delete(ctx context.Context, key string) error
	Close() error
}

type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("data not found for key %s", e.Key)
}

type UnsupportedPlatformError struct {
	Platform string
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("unsupported storage platform %q", e.Platform)
}
