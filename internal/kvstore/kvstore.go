// Package kvstore provides the durable key-value snapshot storage backing
// every persistent collection: sessions, suppliers, catalog, messages and
// orders are JSON snapshots under well-known keys. Readers must tolerate
// absent keys and treat them as empty defaults.
package kvstore

import (
	"context"
)

type Store interface {
	// Get unmarshals the snapshot under key into value. The boolean is
	// false when the key is absent, which is never an error.
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
	Close() error
}

func Key(prefix string, id string) string {
	return prefix + ":" + id
}

const (
	KeySuppliers  = "suppliers"
	KeyProducts   = "products"
	KeyCategories = "categories"
	KeyMessages   = "messages"
	KeyOrders     = "orders"

	SessionKeyPrefix = "user"
	CartKeyPrefix    = "cart"
)
