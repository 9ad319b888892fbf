package storage

import (
	"context"

	"github.com/findmybus/findmybus/pkg/config"
	"github.com/findmybus/findmybus/pkg/redis_client"
	"github.com/rs/zerolog/log"
)

const (
	PlatformFile   = "file"
	PlatformSQLite = "sqlite"
	PlatformRedis  = "redis"
	PlatformMemory = "memory"
)

// Open returns the backend for the configured platform
func Open(ctx context.Context, storageConfig config.StorageConfig) (Backend, error) {
	log.Debug().Str("platform", storageConfig.Platform).Msg("Opening storage")

	switch storageConfig.Platform {
	case PlatformFile:
		return NewFileBackend(storageConfig.Directory)
	case PlatformSQLite:
		return NewSQLiteBackend(ctx, storageConfig.SQLitePath)
	case PlatformRedis:
		client, err := redis_client.Connect(ctx, storageConfig.Redis)
		if err != nil {
			return nil, err
		}

		return NewRedisBackend(client), nil
	case PlatformMemory:
		return NewMemoryBackend(), nil
	default:
		return nil, &UnsupportedPlatformError{Platform: storageConfig.Platform}
	}
}
