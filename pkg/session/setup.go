package session

import (
	"context"

	"github.com/findmybus/findmybus/pkg/config"
	"github.com/findmybus/findmybus/pkg/dataimporter/manager"
	"github.com/findmybus/findmybus/pkg/storage"
)

// Open builds a session on the configured storage platform and restores the
// last persisted static snapshot.
func Open(ctx context.Context, cfg *config.Config) (*Session, error) {
	backend, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}

	session := New(
		cfg,
		manager.NewHTTPFetcher(cfg.HTTP),
		storage.NewChunkedStore(backend, cfg.Storage.ChunkSize),
	)

	if err := session.LoadStatic(ctx); err != nil {
		backend.Close()
		return nil, err
	}

	return session, nil
}

func (s *Session) Close() error {
	return s.store.Backend.Close()
}
