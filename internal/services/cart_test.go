package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/gourmetgo/storefront/internal/errors"
	"github.com/gourmetgo/storefront/internal/kvstore"
	"github.com/gourmetgo/storefront/internal/models"
	repository "github.com/gourmetgo/storefront/internal/repositories"
	service "github.com/gourmetgo/storefront/internal/services"
)

func newCartFixture(t *testing.T) (*service.CartService, *repository.Repositories) {
	return newCartFixtureOver(t, kvstore.NewMemoryStore())
}

func newCartFixtureOver(t *testing.T, store kvstore.Store) (*service.CartService, *repository.Repositories) {
	t.Helper()

	repos := repository.New(store)
	catalog := service.NewCatalogService(repos.Catalog)
	ctx := context.Background()

	now := time.Now()
	err := repos.Catalog.SaveProducts(ctx, []models.Product{
		{ID: 1, Name: "Margherita", Price: decimal.RequireFromString("14.99"), Category: "Pizza", CreatedAt: now, UpdatedAt: now},
		{ID: 2, Name: "Quattro Formaggi", Price: decimal.RequireFromString("20.00"), Category: "Pizza", Reduction: 15, CreatedAt: now, UpdatedAt: now},
		{ID: 3, Name: "Salmon Nigiri Set", Price: decimal.RequireFromString("30.00"), Category: "Sushi", CreatedAt: now, UpdatedAt: now},
	})
	require.NoError(t, err)

	err = repos.Catalog.SaveCategories(ctx, []models.Category{
		{Name: "Pizza"},
		{Name: "Sushi", Reduction: 10},
	})
	require.NoError(t, err)

	return service.NewCartService(repos.Carts, catalog), repos
}

func TestCartServiceAddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - snapshots the list price", func(t *testing.T) {
		// Arrange
		cartService, _ := newCartFixture(t)
		sessionID := uuid.New()

		// Act
		cart, err := cartService.AddItem(ctx, sessionID, &models.AddItemRequest{ProductID: 1})

		// Assert
		assert.NoError(t, err)
		assert.Len(t, cart.Items, 1)
		assert.True(t, cart.Items[0].UnitPrice.Equal(decimal.RequireFromString("14.99")))
	})

	t.Run("Success - snapshots the reduced price", func(t *testing.T) {
		// Arrange
		cartService, _ := newCartFixture(t)
		sessionID := uuid.New()

		// Act
		cart, err := cartService.AddItem(ctx, sessionID, &models.AddItemRequest{ProductID: 2})

		// Assert
		assert.NoError(t, err)
		assert.True(t, cart.Items[0].UnitPrice.Equal(decimal.RequireFromString("17.00")))
	})

	t.Run("Success - category reduction applies when product has none", func(t *testing.T) {
		// Arrange
		cartService, _ := newCartFixture(t)
		sessionID := uuid.New()

		// Act
		cart, err := cartService.AddItem(ctx, sessionID, &models.AddItemRequest{ProductID: 3})

		// Assert
		assert.NoError(t, err)
		assert.True(t, cart.Items[0].UnitPrice.Equal(decimal.RequireFromString("27.00")))
	})

	t.Run("Failure - unknown product", func(t *testing.T) {
		// Arrange
		cartService, _ := newCartFixture(t)
		sessionID := uuid.New()

		// Act
		cart, err := cartService.AddItem(ctx, sessionID, &models.AddItemRequest{ProductID: 99})

		// Assert
		assert.Error(t, err)
		assert.Nil(t, cart)

		appErr, ok := apperrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
	})

	t.Run("Success - cart is mirrored to storage", func(t *testing.T) {
		// Arrange
		cartService, _ := newCartFixture(t)
		sessionID := uuid.New()

		_, err := cartService.AddItem(ctx, sessionID, &models.AddItemRequest{ProductID: 1})
		require.NoError(t, err)

		// Act
		reloaded, err := cartService.GetCart(ctx, sessionID)

		// Assert
		assert.NoError(t, err)
		assert.Len(t, reloaded.Items, 1)
		assert.Equal(t, int64(1), reloaded.Items[0].ProductID)
	})
}

func TestCartServiceUpdateQuantity(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - quantity updated and total recomputed", func(t *testing.T) {
		// Arrange
		cartService, _ := newCartFixture(t)
		sessionID := uuid.New()

		_, err := cartService.AddItem(ctx, sessionID, &models.AddItemRequest{ProductID: 1})
		require.NoError(t, err)

		// Act
		cart, err := cartService.UpdateQuantity(ctx, sessionID, &models.UpdateQuantityRequest{ProductID: 1, Quantity: 3})

		// Assert
		assert.NoError(t, err)
		assert.True(t, cart.Total().Equal(decimal.RequireFromString("44.97")))
	})

	t.Run("Success - zero quantity removes the line item", func(t *testing.T) {
		// Arrange
		cartService, _ := newCartFixture(t)
		sessionID := uuid.New()

		_, err := cartService.AddItem(ctx, sessionID, &models.AddItemRequest{ProductID: 1})
		require.NoError(t, err)

		// Act
		cart, err := cartService.UpdateQuantity(ctx, sessionID, &models.UpdateQuantityRequest{ProductID: 1, Quantity: 0})

		// Assert
		assert.NoError(t, err)
		assert.True(t, cart.IsEmpty())
	})

	t.Run("Failure - item not in the cart", func(t *testing.T) {
		// Arrange
		cartService, _ := newCartFixture(t)
		sessionID := uuid.New()

		// Act
		cart, err := cartService.UpdateQuantity(ctx, sessionID, &models.UpdateQuantityRequest{ProductID: 1, Quantity: 2})

		// Assert
		assert.Error(t, err)
		assert.Nil(t, cart)

		appErr, ok := apperrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeBadRequest, appErr.Code)
	})
}

func TestCartServiceRemoveItem(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - removing an absent product is a no-op", func(t *testing.T) {
		// Arrange
		cartService, _ := newCartFixture(t)
		sessionID := uuid.New()

		_, err := cartService.AddItem(ctx, sessionID, &models.AddItemRequest{ProductID: 1})
		require.NoError(t, err)

		// Act
		cart, err := cartService.RemoveItem(ctx, sessionID, 42)

		// Assert
		assert.NoError(t, err)
		assert.Len(t, cart.Items, 1)
	})
}

func TestCartServiceClear(t *testing.T) {
	ctx := context.Background()

	// Arrange
	cartService, _ := newCartFixture(t)
	sessionID := uuid.New()

	_, err := cartService.AddItem(ctx, sessionID, &models.AddItemRequest{ProductID: 1})
	require.NoError(t, err)
	_, err = cartService.AddItem(ctx, sessionID, &models.AddItemRequest{ProductID: 2})
	require.NoError(t, err)

	// Act
	cart, err := cartService.Clear(ctx, sessionID)

	// Assert
	assert.NoError(t, err)
	assert.True(t, cart.IsEmpty())
	assert.True(t, cart.Total().Equal(decimal.Zero))
}
