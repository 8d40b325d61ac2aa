package store

import (
	"context"

	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/fintools", "store")

// Cache is a key/value store for resolved identifiers.
// Entries never expire.
type Cache interface {
	// Get returns the value and true if the key is present
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores the value, the last writer wins
	Set(ctx context.Context, key, value string) error
}
