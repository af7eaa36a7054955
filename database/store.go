package database

import "context"

// Collection names the three record sets the storefront persists.
type Collection string

const (
	Users    Collection = "users"
	Products Collection = "products"
	Orders   Collection = "orders"
)

// UpdateFunc receives the raw JSON array of a collection's records and
// returns the replacement array. It runs atomically with respect to
// every other call on the same Store.
type UpdateFunc func(records []byte) ([]byte, error)

// Store is the collection store behind the storefront: an ordered
// sequence of JSON records per collection, replaced whole on write.
// Update exists so callers can do a check-then-append (e.g. the email
// uniqueness check on registration) without a window for a second
// writer to slip in between.
type Store interface {
	// Get decodes the collection's records into out (a pointer to a
	// slice). A collection that was never written decodes as empty.
	Get(ctx context.Context, col Collection, out interface{}) error

	// Put replaces the collection's records.
	Put(ctx context.Context, col Collection, records interface{}) error

	// Update applies fn to the collection's raw records atomically.
	Update(ctx context.Context, col Collection, fn UpdateFunc) error
}
