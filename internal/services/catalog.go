package service

import (
	"context"
	"errors"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/shopspring/decimal"

	apperrors "github.com/gourmetgo/storefront/internal/errors"
	"github.com/gourmetgo/storefront/internal/models"
	repository "github.com/gourmetgo/storefront/internal/repositories"
)

type CatalogService struct {
	repo      *repository.CatalogRepository
	sanitizer *bluemonday.Policy
}

func NewCatalogService(repo *repository.CatalogRepository) *CatalogService {
	return &CatalogService{
		repo:      repo,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {

	products, err := s.repo.Products(ctx)
	if err != nil {
		return nil, apperrors.StorageError("Failed to load products").WithError(err)
	}

	return products, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {

	product, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFoundError("Product not found").WithError(err)
		}

		return nil, apperrors.StorageError("Failed to load product").WithError(err)
	}

	return product, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {

	price, err := decimal.NewFromString(req.Price)
	if err != nil || price.IsNegative() {
		return nil, apperrors.ValidationError("Price must be a non-negative decimal")
	}

	product := &models.Product{
		Name:        s.sanitizer.Sanitize(req.Name),
		Description: s.sanitizer.Sanitize(req.Description),
		Price:       price,
		Image:       req.Image,
		Category:    req.Category,
		Reduction:   req.Reduction,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.repo.Upsert(ctx, product); err != nil {
		return nil, apperrors.StorageError("Failed to create product").WithError(err)
	}

	return product, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id int64, req *models.UpdateProductRequest) (*models.Product, error) {

	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = s.sanitizer.Sanitize(*req.Name)
	}

	if req.Description != nil {
		product.Description = s.sanitizer.Sanitize(*req.Description)
	}

	if req.Price != nil {
		price, err := decimal.NewFromString(*req.Price)
		if err != nil || price.IsNegative() {
			return nil, apperrors.ValidationError("Price must be a non-negative decimal")
		}

		product.Price = price
	}

	if req.Image != nil {
		product.Image = *req.Image
	}

	if req.Category != nil {
		product.Category = *req.Category
	}

	if req.Reduction != nil {
		product.Reduction = *req.Reduction
	}

	product.UpdatedAt = time.Now()

	if err := s.repo.Upsert(ctx, product); err != nil {
		return nil, apperrors.StorageError("Failed to update product").WithError(err)
	}

	return product, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id int64) error {

	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFoundError("Product not found").WithError(err)
		}

		return apperrors.StorageError("Failed to delete product").WithError(err)
	}

	return nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {

	categories, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, apperrors.StorageError("Failed to load categories").WithError(err)
	}

	return categories, nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error) {

	categories, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, apperrors.StorageError("Failed to load categories").WithError(err)
	}

	for _, c := range categories {
		if c.Name == req.Name {
			return nil, apperrors.DuplicateEntryError("Category already exists")
		}
	}

	category := models.Category{
		Name:        s.sanitizer.Sanitize(req.Name),
		Description: s.sanitizer.Sanitize(req.Description),
		Reduction:   req.Reduction,
	}

	categories = append(categories, category)

	if err := s.repo.SaveCategories(ctx, categories); err != nil {
		return nil, apperrors.StorageError("Failed to save categories").WithError(err)
	}

	return &category, nil
}

// CategoryReduction resolves the discount of a product's category; zero
// when the category is unknown or carries none.
func (s *CatalogService) CategoryReduction(ctx context.Context, categoryName string) int {

	categories, err := s.repo.Categories(ctx)
	if err != nil {
		return 0
	}

	for _, c := range categories {
		if c.Name == categoryName {
			return c.Reduction
		}
	}

	return 0
}

// Seed writes the default catalog when storage holds no products yet,
// matching the mock data the storefront ships with.
func (s *CatalogService) Seed(ctx context.Context) error {

	products, err := s.repo.Products(ctx)
	if err != nil {
		return err
	}

	if len(products) > 0 {
		return nil
	}

	now := time.Now()

	categories := []models.Category{
		{Name: "Pizza", Description: "Stone-baked pizzas"},
		{Name: "Burgers", Description: "House-ground smash burgers"},
		{Name: "Sushi", Description: "Fresh nigiri and rolls", Reduction: 10},
		{Name: "Desserts", Description: "Sweet finishers"},
	}

	seed := []models.Product{
		{ID: 1, Name: "Margherita", Description: "Tomato, mozzarella, basil", Price: decimal.RequireFromString("14.99"), Image: "margherita.jpg", Category: "Pizza", CreatedAt: now, UpdatedAt: now},
		{ID: 2, Name: "Quattro Formaggi", Description: "Four cheese blend", Price: decimal.RequireFromString("17.50"), Image: "quattro.jpg", Category: "Pizza", Reduction: 15, CreatedAt: now, UpdatedAt: now},
		{ID: 3, Name: "Classic Smash", Description: "Double patty, cheddar, pickles", Price: decimal.RequireFromString("12.90"), Image: "smash.jpg", Category: "Burgers", CreatedAt: now, UpdatedAt: now},
		{ID: 4, Name: "Salmon Nigiri Set", Description: "Eight pieces, wasabi, ginger", Price: decimal.RequireFromString("21.00"), Image: "nigiri.jpg", Category: "Sushi", CreatedAt: now, UpdatedAt: now},
		{ID: 5, Name: "Tiramisu", Description: "Mascarpone, espresso, cocoa", Price: decimal.RequireFromString("7.50"), Image: "tiramisu.jpg", Category: "Desserts", CreatedAt: now, UpdatedAt: now},
	}

	if err := s.repo.SaveCategories(ctx, categories); err != nil {
		return err
	}

	return s.repo.SaveProducts(ctx, seed)
}
