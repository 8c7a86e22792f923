// Package selection implements the context selector: the deterministic
// greedy algorithm that fills a token budget with bounded-context artifacts.
package selection

import "fmt"

// BudgetExceededError indicates the mandatory user story alone exceeds the
// budget. Fatal for the run: the user story is non-negotiable and must never
// be silently dropped or truncated, so no partial result is returned.
type BudgetExceededError struct {
	UserStoryID string
	Required    int
	Budget      int
}

func (e *BudgetExceededError) Error() string {
	return fmt.Sprintf("user story %s requires %d budget units but only %d available", e.UserStoryID, e.Required, e.Budget)
}

// Error represents a selection failure with an underlying cause.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}
