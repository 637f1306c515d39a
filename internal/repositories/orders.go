package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/gourmetgo/storefront/internal/kvstore"
	"github.com/gourmetgo/storefront/internal/models"
)

type OrderRepository struct {
	mu    sync.Mutex
	store kvstore.Store
}

func NewOrderRepository(store kvstore.Store) *OrderRepository {
	return &OrderRepository{store: store}
}

func (r *OrderRepository) load(ctx context.Context) ([]models.Order, error) {

	orders := []models.Order{}

	if _, err := r.store.Get(ctx, kvstore.KeyOrders, &orders); err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}

	return orders, nil
}

func (r *OrderRepository) Append(ctx context.Context, order *models.Order) error {

	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := r.load(ctx)
	if err != nil {
		return err
	}

	orders = append(orders, *order)

	if err := r.store.Set(ctx, kvstore.KeyOrders, orders); err != nil {
		return fmt.Errorf("save orders: %w", err)
	}

	return nil
}

func (r *OrderRepository) List(ctx context.Context) ([]models.Order, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.load(ctx)
}

func (r *OrderRepository) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		if orders[i].ID == id {
			return &orders[i], nil
		}
	}

	return nil, ErrNotFound
}
