package core

import "context"

// Storage persists a whole task list.
// Implementations can be file-based, cloud-storage based, SQL based, etc.
type Storage interface {
	// Load returns the stored list in insertion order.
	// A location without history yields an empty list and no error.
	Load(ctx context.Context) ([]Task, error)

	// Save replaces the stored list with tasks.
	Save(ctx context.Context, tasks []Task) error
}
