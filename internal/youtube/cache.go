package youtube

import (
	"context"
	"log/slog"
)

type Fetcher interface {
	FetchMetadata(ctx context.Context, rawURL string) (Metadata, error)
}

// Cache stores metadata by video ID. A miss is (Metadata{}, false, nil).
type Cache interface {
	Get(ctx context.Context, videoID string) (Metadata, bool, error)
	Set(ctx context.Context, videoID string, md Metadata) error
}

// CachedFetcher serves metadata from a cache and falls back to the wrapped
// fetcher on a miss. Cache failures are logged and never fail the lookup.
type CachedFetcher struct {
	next   Fetcher
	cache  Cache
	logger *slog.Logger
}

func NewCachedFetcher(next Fetcher, cache Cache, logger *slog.Logger) *CachedFetcher {
	return &CachedFetcher{next: next, cache: cache, logger: logger}
}

func (f *CachedFetcher) FetchMetadata(ctx context.Context, rawURL string) (Metadata, error) {
	videoID, err := ExtractVideoID(rawURL)
	if err != nil {
		return Metadata{}, err
	}

	md, ok, err := f.cache.Get(ctx, videoID)
	if err != nil {
		f.logger.Warn("metadata cache read failed", slog.String("videoID", videoID), slog.String("error", err.Error()))
	} else if ok {
		return md, nil
	}

	md, err = f.next.FetchMetadata(ctx, rawURL)
	if err != nil {
		return Metadata{}, err
	}
	if err := f.cache.Set(ctx, videoID, md); err != nil {
		f.logger.Warn("metadata cache write failed", slog.String("videoID", videoID), slog.String("error", err.Error()))
	}
	return md, nil
}
