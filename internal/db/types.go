package db

import (
	"time"

	"github.com/google/uuid"
)

// CatalogRecord represents one ingested catalog
type CatalogRecord struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Source    string    `json:"source"` // file path or docs URL the catalog came from
	Artifacts int       `json:"artifacts"`
	CreatedAt time.Time `json:"created_at"`
}

// SelectionRun represents one selection run record
type SelectionRun struct {
	ID             uuid.UUID  `json:"id"`
	CatalogID      uuid.UUID  `json:"catalog_id"`
	BoundedContext string     `json:"bounded_context"`
	UserStoryID    string     `json:"user_story_id"`
	Budget         int        `json:"budget"`
	UsedBudget     int        `json:"used_budget"`
	DroppedCount   int        `json:"dropped_count"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
}

// Selection run status constants
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// CachedPage represents a cached documentation page fetch
type CachedPage struct {
	ID         uuid.UUID `json:"id"`
	URL        string    `json:"url"`
	HTML       string    `json:"html"`
	Text       string    `json:"text"`
	StatusCode int       `json:"status_code"`
	FetchedAt  time.Time `json:"fetched_at"`
}

// DefaultPageCacheTTL is how long a cached documentation page stays fresh.
const DefaultPageCacheTTL = 7 * 24 * time.Hour

// User represents a user account row
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
