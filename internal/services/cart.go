package service

import (
	"context"

	"github.com/google/uuid"

	apperrors "github.com/gourmetgo/storefront/internal/errors"
	"github.com/gourmetgo/storefront/internal/models"
	repository "github.com/gourmetgo/storefront/internal/repositories"
)

// CartService maintains the cart ledger of each session. Every mutation is
// applied to the in-memory ledger and mirrored to durable storage.
type CartService struct {
	carts   *repository.CartRepository
	catalog *CatalogService
}

func NewCartService(carts *repository.CartRepository, catalog *CatalogService) *CartService {
	return &CartService{carts: carts, catalog: catalog}
}

func (s *CartService) GetCart(ctx context.Context, sessionID uuid.UUID) (*models.Cart, error) {

	cart, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, apperrors.StorageError("Failed to load cart").WithError(err)
	}

	return cart, nil
}

// AddItem adds one unit of the product to the session's cart. The line
// item snapshots the product's current effective price.
func (s *CartService) AddItem(ctx context.Context, sessionID uuid.UUID, req *models.AddItemRequest) (*models.Cart, error) {

	product, err := s.catalog.GetProduct(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	unitPrice := product.EffectivePrice(s.catalog.CategoryReduction(ctx, product.Category))

	cart.AddItem(product.ID, product.Name, unitPrice)

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, apperrors.StorageError("Failed to save cart").WithError(err)
	}

	return cart, nil
}

// UpdateQuantity sets a line item's quantity. Zero or negative quantities
// remove the line item; updating an absent product is rejected.
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID uuid.UUID, req *models.UpdateQuantityRequest) (*models.Cart, error) {

	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !cart.UpdateQuantity(req.ProductID, req.Quantity) {
		return nil, apperrors.BadRequestError("Item not found in the cart")
	}

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, apperrors.StorageError("Failed to save cart").WithError(err)
	}

	return cart, nil
}

// RemoveItem deletes a line item. Removing an absent product succeeds
// without changing the ledger.
func (s *CartService) RemoveItem(ctx context.Context, sessionID uuid.UUID, productID int64) (*models.Cart, error) {

	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cart.RemoveItem(productID)

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, apperrors.StorageError("Failed to save cart").WithError(err)
	}

	return cart, nil
}

func (s *CartService) Clear(ctx context.Context, sessionID uuid.UUID) (*models.Cart, error) {

	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cart.Clear()

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, apperrors.StorageError("Failed to save cart").WithError(err)
	}

	return cart, nil
}
