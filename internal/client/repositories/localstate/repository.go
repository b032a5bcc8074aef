// Package localstate keeps named string values in the local SQLite database.
// It backs the durable session slot that survives process restarts.
package localstate

import "context"

type Repository interface {
	// Get returns the value and true, or "" and false when the name is unset.
	Get(ctx context.Context, name string) (string, bool, error)
	Set(ctx context.Context, name, value string) error
	// Delete is a no-op for unset names.
	Delete(ctx context.Context, name string) error
}
