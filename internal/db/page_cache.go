package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// -----------------------------------------------------------------------------
// Page Cache Methods
// -----------------------------------------------------------------------------

// GetCachedPage retrieves a cached page by URL if it is younger than ttl,
// nil on a cache miss or stale entry.
func (db *DB) GetCachedPage(ctx context.Context, url string, ttl time.Duration) (*CachedPage, error) {
	var page CachedPage
	err := db.pool.QueryRow(ctx,
		`SELECT id, url, html, extracted_text, status_code, fetched_at
		 FROM page_cache
		 WHERE url = $1 AND fetched_at > NOW() - $2::interval`,
		url, ttl.String(),
	).Scan(&page.ID, &page.URL, &page.HTML, &page.Text, &page.StatusCode, &page.FetchedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cached page: %w", err)
	}
	return &page, nil
}

// SaveCachedPage stores or refreshes a fetched page
func (db *DB) SaveCachedPage(ctx context.Context, url, html, text string, statusCode int) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO page_cache (url, html, extracted_text, status_code, fetched_at)
		 VALUES ($1, $2, $3, $4, NOW())
		 ON CONFLICT (url) DO UPDATE
		 SET html = $2, extracted_text = $3, status_code = $4, fetched_at = NOW()`,
		url, html, text, statusCode,
	)
	if err != nil {
		return fmt.Errorf("failed to save cached page: %w", err)
	}
	return nil
}

// PurgeStalePages deletes cache entries older than ttl, returning the count
func (db *DB) PurgeStalePages(ctx context.Context, ttl time.Duration) (int64, error) {
	tag, err := db.pool.Exec(ctx,
		`DELETE FROM page_cache WHERE fetched_at <= NOW() - $1::interval`,
		ttl.String(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to purge stale pages: %w", err)
	}
	return tag.RowsAffected(), nil
}
