package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/context-engine/internal/db"
)

// CachedFetcher fetches URLs through a database-backed page cache so
// repeated ingestion runs over the same documentation site skip the network
// for pages fetched recently.
type CachedFetcher struct {
	db        *db.DB
	options   *Options
	cacheTTL  time.Duration
	skipCache bool
}

// CachedFetcherConfig holds configuration for the cached fetcher.
type CachedFetcherConfig struct {
	CacheTTL  time.Duration
	SkipCache bool
	Options   *Options
}

// DefaultCachedFetcherConfig returns sensible defaults.
func DefaultCachedFetcherConfig() *CachedFetcherConfig {
	return &CachedFetcherConfig{
		CacheTTL: db.DefaultPageCacheTTL,
		Options:  DefaultOptions(),
	}
}

// NewCachedFetcher creates a cached fetcher. A nil database is allowed and
// degrades to plain uncached fetching.
func NewCachedFetcher(database *db.DB, config *CachedFetcherConfig) *CachedFetcher {
	if config == nil {
		config = DefaultCachedFetcherConfig()
	}
	f := &CachedFetcher{
		db:        database,
		options:   config.Options,
		cacheTTL:  config.CacheTTL,
		skipCache: config.SkipCache,
	}
	if f.options == nil {
		f.options = DefaultOptions()
	}
	if f.cacheTTL == 0 {
		f.cacheTTL = db.DefaultPageCacheTTL
	}
	return f
}

func (f *CachedFetcher) cacheEnabled() bool {
	return f.db != nil && !f.skipCache
}

// Fetch retrieves a URL, consulting the cache first. The bool result reports
// whether the page came from cache.
func (f *CachedFetcher) Fetch(ctx context.Context, urlStr string) (*Result, bool, error) {
	if f.cacheEnabled() {
		page, err := f.db.GetCachedPage(ctx, urlStr, f.cacheTTL)
		if err != nil {
			return nil, false, fmt.Errorf("failed to read page cache: %w", err)
		}
		if page != nil {
			cached := &Result{
				URL:        urlStr,
				HTML:       page.HTML,
				Text:       page.Text,
				StatusCode: page.StatusCode,
			}
			return cached, true, nil
		}
	}

	result, err := URL(ctx, urlStr, f.options)
	if err != nil {
		return nil, false, err
	}

	if f.cacheEnabled() {
		if err := f.db.SaveCachedPage(ctx, urlStr, result.HTML, result.Text, result.StatusCode); err != nil {
			return nil, false, fmt.Errorf("failed to write page cache: %w", err)
		}
	}
	return result, false, nil
}
