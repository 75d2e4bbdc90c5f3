// Package cache keeps YouTube metadata in Redis so repeated uploads of the
// same video skip the Data API.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/harentsoaR/mamacare-api/internal/youtube"
)

const keyPrefix = "youtube:metadata:"

// Connect parses a redis:// URL and pings the server.
func Connect(ctx context.Context, rawURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return client, nil
}

// MetadataCache implements youtube.Cache on top of Redis string keys.
type MetadataCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewMetadataCache(client *redis.Client, ttl time.Duration) *MetadataCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &MetadataCache{client: client, ttl: ttl}
}

func key(videoID string) string {
	return keyPrefix + videoID
}

func (c *MetadataCache) Get(ctx context.Context, videoID string) (youtube.Metadata, bool, error) {
	raw, err := c.client.Get(ctx, key(videoID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return youtube.Metadata{}, false, nil
	}
	if err != nil {
		return youtube.Metadata{}, false, err
	}

	var md youtube.Metadata
	if err := json.Unmarshal(raw, &md); err != nil {
		return youtube.Metadata{}, false, fmt.Errorf("decoding cached metadata for %s: %w", videoID, err)
	}
	return md, true, nil
}

func (c *MetadataCache) Set(ctx context.Context, videoID string, md youtube.Metadata) error {
	raw, err := json.Marshal(md)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key(videoID), raw, c.ttl).Err()
}
