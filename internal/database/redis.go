package database

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ConnectRedis dials Redis and verifies the connection with a ping.
func ConnectRedis(addr, password string, db int, timeout time.Duration, logger *zap.SugaredLogger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    password,
		DB:          db,
		DialTimeout: timeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Errorf("Redis ping failed: %v", err)
		return nil, err
	}

	logger.Info("Redis connected successfully")
	return client, nil
}
