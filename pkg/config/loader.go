package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/findmybus/findmybus/pkg/util"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

const (
	DefaultTimeout          = 4000 * time.Millisecond
	DefaultUserAgent        = "findmybus-app"
	DefaultPlatform         = "file"
	DefaultDirectory        = "./data"
	DefaultSQLitePath       = "./data/findmybus.db"
	DefaultChunkSize        = 4194304
	DefaultWriteConcurrency = 4
	DefaultRedisAddress     = "localhost:6379"
	DefaultListen           = ":8080"
)

func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:   DefaultTimeout,
			UserAgent: DefaultUserAgent,
		},
		Storage: StorageConfig{
			Platform:         DefaultPlatform,
			Directory:        DefaultDirectory,
			SQLitePath:       DefaultSQLitePath,
			ChunkSize:        DefaultChunkSize,
			WriteConcurrency: DefaultWriteConcurrency,
			Redis: RedisConfig{
				Address: DefaultRedisAddress,
			},
		},
		API: APIConfig{
			Listen: DefaultListen,
		},
	}
}

// Load reads the YAML file at path on top of the defaults, applies FINDMYBUS_
// environment overrides and validates the result. A missing file is fine.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			log.Debug().Str("path", path).Msg("No config file, using defaults")
		case err != nil:
			return nil, err
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := applyEnvironment(cfg, util.GetEnvironmentVariables()); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func Validate(cfg *Config) error {
	return validator.New().Struct(cfg)
}

func applyEnvironment(cfg *Config, env map[string]string) error {
	overrides := map[string]*string{
		"FINDMYBUS_STATIC_URL":        &cfg.Static.URL,
		"FINDMYBUS_REALTIME_URL":      &cfg.Realtime.URL,
		"FINDMYBUS_STORAGE_PLATFORM":  &cfg.Storage.Platform,
		"FINDMYBUS_STORAGE_DIRECTORY": &cfg.Storage.Directory,
		"FINDMYBUS_SQLITE_PATH":       &cfg.Storage.SQLitePath,
		"FINDMYBUS_REDIS_ADDRESS":     &cfg.Storage.Redis.Address,
		"FINDMYBUS_REDIS_PASSWORD":    &cfg.Storage.Redis.Password,
	}

	for name, target := range overrides {
		if env[name] != "" {
			*target = env[name]
		}
	}

	if env["FINDMYBUS_REDIS_DATABASE"] != "" {
		n, err := strconv.Atoi(env["FINDMYBUS_REDIS_DATABASE"])
		if err != nil {
			return fmt.Errorf("FINDMYBUS_REDIS_DATABASE: %w", err)
		}
		cfg.Storage.Redis.Database = n
	}

	return nil
}
