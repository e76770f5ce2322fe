package domain

import "context"

// Catalog is the persistence contract for Book records. It is implemented
// by the sqlite-backed catalog.Store and by in-memory doubles in tests.
//
// Every operation is its own atomic unit of work: there is no transaction
// spanning multiple calls, so a failure partway through a composed sequence
// (e.g. a bulk import doing N independent Creates) leaves all prior
// successes intact.
type Catalog interface {
	// Create inserts a new record and returns the assigned id.
	Create(ctx context.Context, title, author string, year int, price float64) (int64, error)

	// Get returns the record with the given id, or ErrNotFound.
	Get(ctx context.Context, id int64) (*Book, error)

	// List returns the full catalog sorted by title ascending.
	List(ctx context.Context) ([]Book, error)

	// FindByAuthor returns records whose author contains sub, sorted by
	// title ascending.
	FindByAuthor(ctx context.Context, sub string) ([]Book, error)

	// UpdatePrice sets a new price on the record with the given id.
	// Returns false when no row was affected.
	UpdatePrice(ctx context.Context, id int64, price float64) (bool, error)

	// Delete removes the record with the given id. Returns false when no
	// row was affected.
	Delete(ctx context.Context, id int64) (bool, error)

	// Count returns the total number of records.
	Count(ctx context.Context) (int, error)

	// Path returns the location of the backing file, so the backup
	// manager can snapshot it.
	Path() string
}
