package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"strconv"       // Key formatting
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// Cache key helpers, kept here so every handler builds keys the same way
func WalletCacheKey(userID string) string {
	return "wallet:user:" + userID // Wallet balance cache key
}

// TxHistoryCacheKey builds the cache key for one page of transaction history
func TxHistoryCacheKey(userID string, page, pageSize int) string {
	return "txhistory:user:" + userID + ":page:" + strconv.Itoa(page) + ":size:" + strconv.Itoa(pageSize)
}

// GetCache retrieves a value from Redis and unmarshals it into dest
func GetCache(ctx context.Context, rdb *redis.Client, key string, dest any) (bool, error) {
	val, err := rdb.Get(ctx, key).Result() // Get value from Redis
	if err == redis.Nil {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	return true, json.Unmarshal([]byte(val), dest) // Unmarshal JSON into dest
}

// SetCache sets a value in Redis with a specified TTL
func SetCache(ctx context.Context, rdb *redis.Client, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err // Return error if marshaling fails
	}
	return rdb.Set(ctx, key, b, ttl).Err() // Set value in Redis with TTL
}

// DeleteCache deletes a key from Redis
func DeleteCache(ctx context.Context, rdb *redis.Client, key string) error {
	return rdb.Del(ctx, key).Err() // Delete key from Redis
}

// InvalidateWallet drops a user's wallet balance cache and the first few
// pages of their transaction history after money moves
func InvalidateWallet(ctx context.Context, rdb *redis.Client, userID string) {
	if rdb == nil {
		return
	}
	_ = DeleteCache(ctx, rdb, WalletCacheKey(userID)) // Invalidate balance cache
	// Simple version: delete the first 5 pages at the default page size
	for page := 1; page <= 5; page++ {
		_ = DeleteCache(ctx, rdb, TxHistoryCacheKey(userID, page, 20))
	}
}
