package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const authTTL = 15 * time.Minute

var client *redis.Client

// Init connects to Redis. On failure the client stays nil and every cache
// call below becomes a no-op.
func Init(host string, port int, password string) error {
	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		// Close the failed client and set to nil for graceful degradation
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetClient returns the Redis client
func GetClient() *redis.Client {
	return client
}

// Close releases the connection pool
func Close() error {
	if client == nil {
		return nil
	}
	err := client.Close()
	client = nil
	return err
}

// hashCredentials creates a hash of username+password for cache key
func hashCredentials(username, password string) string {
	h := sha256.New()
	h.Write([]byte(username + ":" + password))
	return "auth:" + hex.EncodeToString(h.Sum(nil))[:32]
}

// GetCachedAuth checks if credentials were recently verified
func GetCachedAuth(ctx context.Context, username, password string) (string, bool) {
	if client == nil {
		return "", false
	}
	cached, err := client.Get(ctx, hashCredentials(username, password)).Result()
	if err != nil || cached != username {
		return "", false
	}
	return cached, true
}

// CacheAuth remembers verified credentials for 15 minutes
func CacheAuth(ctx context.Context, username, password string) {
	if client == nil {
		return
	}
	client.Set(ctx, hashCredentials(username, password), username, authTTL)
}

// InvalidateAuth removes cached credentials
func InvalidateAuth(ctx context.Context, username, password string) {
	if client == nil {
		return
	}
	client.Del(ctx, hashCredentials(username, password))
}

// IsEnabled reports whether a Redis connection was established
func IsEnabled() bool {
	return client != nil
}

// IsHealthy returns true if Redis connection is working
func IsHealthy(ctx context.Context) bool {
	if client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}
