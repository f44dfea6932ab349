package mirror

import "context"

// Row is a single mirrored entry as stored on disk.
// Data carries the entry value as JSON text; the store core owns
// encoding and decoding, drivers treat it as opaque.
type Row struct {
	ID   int64
	Name string
	Data string
}

// Mirror is the minimal write-through interface the store core requires
// from a persistence driver. One Mirror instance shadows exactly one store.
//
// Implementations are not required to be safe for concurrent use; the
// store core calls them from a single goroutine.
type Mirror interface {
	// EnsureSchema creates the backing table or bucket if it does not exist.
	// Idempotent.
	EnsureSchema(ctx context.Context) error

	// LoadAll returns every mirrored row ordered by id ascending.
	// Returns an empty slice (not nil) when the mirror holds no rows.
	LoadAll(ctx context.Context) ([]Row, error)

	// Insert writes a new row.
	Insert(ctx context.Context, id int64, name, data string) error

	// Replace upserts a row keyed by id.
	Replace(ctx context.Context, id int64, name, data string) error

	// DeleteID removes the row with the given id. Missing ids are ignored.
	DeleteID(ctx context.Context, id int64) error

	// DeleteName removes the row with the given name. Missing names are ignored.
	DeleteName(ctx context.Context, name string) error

	// DeleteRange removes all rows with lo <= id <= hi.
	DeleteRange(ctx context.Context, lo, hi int64) error

	// Clear removes every row.
	Clear(ctx context.Context) error

	// Close releases the underlying file handle.
	Close() error
}
