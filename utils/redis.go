package utils

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"net/url"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

func InitRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	RedisClient = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})
}

func GetCached(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := RedisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal([]byte(data), dest)
}

func SetCached(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return RedisClient.Set(ctx, key, data, ttl).Err()
}

// BumpCacheVersion invalidates every cached result under prefix by rotating
// the version segment baked into their keys.
func BumpCacheVersion(ctx context.Context, prefix string) {
	RedisClient.Incr(ctx, prefix+":version")
}

func cacheVersion(ctx context.Context, prefix string) string {
	v, err := RedisClient.Get(ctx, prefix+":version").Result()
	if err != nil {
		return "0"
	}
	return v
}

// QueryCacheKey derives a stable cache key for a query-parameter set,
// namespaced by the prefix's current cache version.
func QueryCacheKey(ctx context.Context, prefix string, q url.Values) string {
	keys := make([]string, 0, len(q))
	for k := range q {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var builder strings.Builder
	for i, k := range keys {
		if i > 0 {
			builder.WriteString(":")
		}
		builder.WriteString(k)
		builder.WriteString("=")
		builder.WriteString(q.Get(k))
	}

	hash := md5.Sum([]byte(builder.String()))
	return prefix + ":v" + cacheVersion(ctx, prefix) + ":" + hex.EncodeToString(hash[:])
}
