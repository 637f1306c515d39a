package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/gourmetgo/storefront/internal/kvstore"
	"github.com/gourmetgo/storefront/internal/models"
)

// SupplierRepository owns the registered-supplier collection, stored as a
// single snapshot keyed by username.
type SupplierRepository struct {
	mu    sync.Mutex
	store kvstore.Store
}

func NewSupplierRepository(store kvstore.Store) *SupplierRepository {
	return &SupplierRepository{store: store}
}

func (r *SupplierRepository) load(ctx context.Context) (map[string]models.Supplier, error) {

	suppliers := make(map[string]models.Supplier)

	if _, err := r.store.Get(ctx, kvstore.KeySuppliers, &suppliers); err != nil {
		return nil, fmt.Errorf("load suppliers: %w", err)
	}

	return suppliers, nil
}

func (r *SupplierRepository) GetByUsername(ctx context.Context, username string) (*models.Supplier, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	suppliers, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	supplier, ok := suppliers[username]
	if !ok {
		return nil, ErrNotFound
	}

	return &supplier, nil
}

// Create appends a supplier record if and only if the username is not
// already present.
func (r *SupplierRepository) Create(ctx context.Context, supplier *models.Supplier) error {

	r.mu.Lock()
	defer r.mu.Unlock()

	suppliers, err := r.load(ctx)
	if err != nil {
		return err
	}

	if _, exists := suppliers[supplier.Username]; exists {
		return ErrDuplicateEntry
	}

	suppliers[supplier.Username] = *supplier

	if err := r.store.Set(ctx, kvstore.KeySuppliers, suppliers); err != nil {
		return fmt.Errorf("save suppliers: %w", err)
	}

	return nil
}

func (r *SupplierRepository) List(ctx context.Context) ([]models.Supplier, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	suppliers, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	list := make([]models.Supplier, 0, len(suppliers))
	for _, s := range suppliers {
		list = append(list, s)
	}

	return list, nil
}
