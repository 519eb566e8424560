package store

import (
	"context"
)

type Store interface {
	RecordStore
	ValidationStore
	Transaction(ctx context.Context, f func(tx Store) error) error
	Migrate() error
}

type RecordStore interface {
	// Create inserts a record and fills in its generated identifier. Any
	// failure is returned as an error.
	Create(ctx context.Context, value any) error
	// TryCreate inserts a record in its own savepoint. A foreign-key or
	// uniqueness violation rolls back only this insert and is returned as a
	// ConstraintViolation; other failures are returned as errors.
	TryCreate(ctx context.Context, value any) (*ConstraintViolation, error)
	// CountAuthorities returns the number of authorities in the store.
	CountAuthorities(ctx context.Context) (int64, error)
}

// IDCount pairs an entity ID with a count.
type IDCount struct {
	ID    uint
	Count int64
}

type ValidationStore interface {
	// AuthorityPrimaryDocumentCounts returns authorities whose primary document count is not one.
	AuthorityPrimaryDocumentCounts(ctx context.Context) ([]IDCount, error)
	// InquestsWithoutDocuments returns inquests with no document.
	InquestsWithoutDocuments(ctx context.Context) ([]uint, error)
	// AuthoritiesWithoutKeywords returns authorities with no keyword.
	AuthoritiesWithoutKeywords(ctx context.Context) ([]uint, error)
	// InquestsWithoutKeywords returns inquests with no keyword.
	InquestsWithoutKeywords(ctx context.Context) ([]uint, error)
	// InquestsWithoutCategory returns inquests with no keyword in the given category.
	InquestsWithoutCategory(ctx context.Context, categoryID string) ([]uint, error)
}
