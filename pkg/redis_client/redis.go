package redis_client

import (
	"context"

	"github.com/findmybus/findmybus/pkg/config"
	"github.com/redis/go-redis/v9"
)

const defaultConnectionAddress = "localhost:6379"

// Connect opens a client for the configured Redis instance and checks it answers
func Connect(ctx context.Context, redisConfig config.RedisConfig) (*redis.Client, error) {
	address := defaultConnectionAddress
	if redisConfig.Address != "" {
		address = redisConfig.Address
	}

	var client *redis.Client
	if redisConfig.Password == "" {
		client = redis.NewClient(&redis.Options{
			Addr: address,
			DB:   redisConfig.Database,
		})
	} else {
		client = redis.NewClient(&redis.Options{
			Addr:     address,
			Password: redisConfig.Password,
			DB:       redisConfig.Database,
		})
	}

	statusCmd := client.Ping(ctx)
	if err := statusCmd.Err(); err != nil {
		client.Close()
		return nil, err
	}

	return client, nil
}
