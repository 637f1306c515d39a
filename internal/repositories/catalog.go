package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/gourmetgo/storefront/internal/kvstore"
	"github.com/gourmetgo/storefront/internal/models"
)

// CatalogRepository owns the product and category snapshots.
type CatalogRepository struct {
	mu    sync.Mutex
	store kvstore.Store
}

func NewCatalogRepository(store kvstore.Store) *CatalogRepository {
	return &CatalogRepository{store: store}
}

func (r *CatalogRepository) Products(ctx context.Context) ([]models.Product, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.loadProducts(ctx)
}

func (r *CatalogRepository) loadProducts(ctx context.Context) ([]models.Product, error) {

	products := []models.Product{}

	if _, err := r.store.Get(ctx, kvstore.KeyProducts, &products); err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}

	return products, nil
}

func (r *CatalogRepository) GetProduct(ctx context.Context, id int64) (*models.Product, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	products, err := r.loadProducts(ctx)
	if err != nil {
		return nil, err
	}

	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}

	return nil, ErrNotFound
}

func (r *CatalogRepository) SaveProducts(ctx context.Context, products []models.Product) error {

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.saveProducts(ctx, products)
}

func (r *CatalogRepository) saveProducts(ctx context.Context, products []models.Product) error {

	if err := r.store.Set(ctx, kvstore.KeyProducts, products); err != nil {
		return fmt.Errorf("save products: %w", err)
	}

	return nil
}

// Upsert inserts the product, assigning the next free identifier when the
// product has none, or replaces the stored product with the same id.
func (r *CatalogRepository) Upsert(ctx context.Context, product *models.Product) error {

	r.mu.Lock()
	defer r.mu.Unlock()

	products, err := r.loadProducts(ctx)
	if err != nil {
		return err
	}

	if product.ID == 0 {

		var maxID int64
		for _, p := range products {
			if p.ID > maxID {
				maxID = p.ID
			}
		}

		product.ID = maxID + 1
		products = append(products, *product)

		return r.saveProducts(ctx, products)
	}

	for i := range products {
		if products[i].ID == product.ID {
			products[i] = *product

			return r.saveProducts(ctx, products)
		}
	}

	products = append(products, *product)

	return r.saveProducts(ctx, products)
}

func (r *CatalogRepository) DeleteProduct(ctx context.Context, id int64) error {

	r.mu.Lock()
	defer r.mu.Unlock()

	products, err := r.loadProducts(ctx)
	if err != nil {
		return err
	}

	for i := range products {
		if products[i].ID == id {
			products = append(products[:i], products[i+1:]...)

			return r.saveProducts(ctx, products)
		}
	}

	return ErrNotFound
}

func (r *CatalogRepository) Categories(ctx context.Context) ([]models.Category, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	categories := []models.Category{}

	if _, err := r.store.Get(ctx, kvstore.KeyCategories, &categories); err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}

	return categories, nil
}

func (r *CatalogRepository) SaveCategories(ctx context.Context, categories []models.Category) error {

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.store.Set(ctx, kvstore.KeyCategories, categories); err != nil {
		return fmt.Errorf("save categories: %w", err)
	}

	return nil
}
