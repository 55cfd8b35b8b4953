// Package kv is the persistence collaborator: an async key-value blob store
// holding full-snapshot JSON values. Reads and writes are whole-value only,
// there are no partial updates.
package kv

import "context"

// Keys used by the application. The "@" prefix is kept from the original
// client's storage layout so existing blobs stay readable.
const (
	KeyTransactions = "@transacoes"
	KeySession      = "@usuario"
	KeyUsers        = "@usuarios"
)

// Store is the outbound port for blob persistence.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set overwrites the full value for key.
	Set(ctx context.Context, key, value string) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
