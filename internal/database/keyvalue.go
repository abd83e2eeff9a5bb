package database

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/thenoetrevino/coffeehub/internal/config"
)

// Key layout of the key-value backend.
const (
	avatarKeySuffix = "-avatar_path"
	globalIDKey     = "global.id"
	seededKeySuffix = ":seeded"
)

func avatarKey(memberID string) string { return memberID + avatarKeySuffix }

func seededKey(databaseName string) string { return databaseName + seededKeySuffix }

// openKeyValue creates the Redis client and pings it.
func openKeyValue(ctx context.Context, creds *config.RedisCredentials) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     creds.Addr(),
		Password: creds.Password,
		DB:       creds.DB,
		PoolSize: 1,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return client, fmt.Errorf("key-value ping failed: %w", err)
	}
	return client, nil
}
