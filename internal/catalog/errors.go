// Package catalog provides the in-memory artifact catalog.
package catalog

import "fmt"

// NotFoundError indicates a requested bounded context or artifact is absent
// from the catalog. Never retried automatically: retrying without fixing the
// input cannot succeed.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// DuplicateError indicates two artifacts with the same id were ingested.
type DuplicateError struct {
	ID string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate artifact id: %s", e.ID)
}
