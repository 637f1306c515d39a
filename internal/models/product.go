package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	// Reduction is a discount percentage applied to every product of the
	// category that carries no reduction of its own.
	Reduction int `json:"reduction,omitempty"`
}

type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
	Reduction   int             `json:"reduction,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// EffectivePrice applies the product reduction, falling back to the
// category reduction when the product has none. The result is rounded
// to cents.
func (p *Product) EffectivePrice(categoryReduction int) decimal.Decimal {

	reduction := p.Reduction
	if reduction == 0 {
		reduction = categoryReduction
	}

	if reduction <= 0 {
		return p.Price
	}

	factor := decimal.NewFromInt(int64(100 - reduction)).Div(decimal.NewFromInt(100))

	return p.Price.Mul(factor).Round(2)
}

type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=200"`
	Description string  `json:"description,omitempty"`
	Price       string  `json:"price" validate:"required"`
	Image       string  `json:"image,omitempty"`
	Category    string  `json:"category" validate:"required"`
	Reduction   int     `json:"reduction,omitempty" validate:"omitempty,gte=0,lte=100"`
}

type UpdateProductRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Description *string `json:"description,omitempty"`
	Price       *string `json:"price,omitempty"`
	Image       *string `json:"image,omitempty"`
	Category    *string `json:"category,omitempty"`
	Reduction   *int    `json:"reduction,omitempty" validate:"omitempty,gte=0,lte=100"`
}

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description,omitempty"`
	Reduction   int    `json:"reduction,omitempty" validate:"omitempty,gte=0,lte=100"`
}
