package store

import "context"

// Store is the record CRUD interface implemented by every backend.
//
// Name lookup is case-insensitive and returns the first match in insertion
// order; names are not required to be unique. All mutating operations are
// atomic with respect to validation: either the whole new state is valid
// and applied, or nothing changes.
type Store interface {
	// Create validates the fields and appends a new record.
	Create(ctx context.Context, name string, age int, scores []float64) (*Record, error)

	// Find returns the first record whose name matches case-insensitively,
	// or ErrNotFound.
	Find(ctx context.Context, name string) (*Record, error)

	// Update replaces age and scores of the first matching record in place,
	// re-running create's validation. The record keeps its name, ID and
	// position. Returns ErrNotFound or a *ValidationError.
	Update(ctx context.Context, name string, age int, scores []float64) (*Record, error)

	// Delete removes the first matching record, or returns ErrNotFound.
	Delete(ctx context.Context, name string) error

	// List returns all records in insertion order. An empty store yields
	// an empty slice, not an error.
	List(ctx context.Context) ([]*Record, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)
}
