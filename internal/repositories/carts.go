package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/gourmetgo/storefront/internal/kvstore"
	"github.com/gourmetgo/storefront/internal/models"
)

// CartRepository mirrors the in-memory cart of each session to durable
// storage, the way the original mirrored provider state to local storage.
type CartRepository struct {
	store kvstore.Store
}

func NewCartRepository(store kvstore.Store) *CartRepository {
	return &CartRepository{store: store}
}

func (r *CartRepository) key(sessionID uuid.UUID) string {
	return kvstore.Key(kvstore.CartKeyPrefix, sessionID.String())
}

// Get returns the persisted cart for the session, or a fresh empty cart
// when none was stored yet.
func (r *CartRepository) Get(ctx context.Context, sessionID uuid.UUID) (*models.Cart, error) {

	var cart models.Cart

	found, err := r.store.Get(ctx, r.key(sessionID), &cart)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	if !found {
		return models.NewCart(sessionID), nil
	}

	return &cart, nil
}

func (r *CartRepository) Save(ctx context.Context, cart *models.Cart) error {

	if err := r.store.Set(ctx, r.key(cart.SessionID), cart); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}

	return nil
}

func (r *CartRepository) Delete(ctx context.Context, sessionID uuid.UUID) error {

	if err := r.store.Delete(ctx, r.key(sessionID)); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}

	return nil
}
