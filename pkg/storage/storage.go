package storage

import (
	"context"
	"errors"
)

// Keys used by the storefront. The cart key is deleted outright on clear so
// "cleared" and "never used" both read back as absent.
const (
	KeyCart         = "cart"
	KeyCustomerInfo = "customerInfo"
)

// ErrNotFound reports an absent key. Callers treat absent and malformed
// values identically: no data.
var ErrNotFound = errors.New("storage: key not found")

// KV is the durable client storage boundary: string keys to string values.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// IsNotFound reports whether err means the key was absent.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
