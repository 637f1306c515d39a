package repository

import (
	"errors"

	"github.com/gourmetgo/storefront/internal/kvstore"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEntry = errors.New("duplicate entry")
)

type Repositories struct {
	Suppliers *SupplierRepository
	Sessions  *SessionRepository
	Catalog   *CatalogRepository
	Carts     *CartRepository
	Messages  *MessageRepository
	Orders    *OrderRepository

	store kvstore.Store
}

func New(store kvstore.Store) *Repositories {
	return &Repositories{
		Suppliers: NewSupplierRepository(store),
		Sessions:  NewSessionRepository(store),
		Catalog:   NewCatalogRepository(store),
		Carts:     NewCartRepository(store),
		Messages:  NewMessageRepository(store),
		Orders:    NewOrderRepository(store),
		store:     store,
	}
}

func (r *Repositories) Close() error {
	return r.store.Close()
}
