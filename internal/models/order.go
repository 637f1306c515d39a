package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Order struct {
	ID            uuid.UUID       `json:"id"`
	Number        string          `json:"number"`
	SessionID     uuid.UUID       `json:"session_id"`
	CustomerName  string          `json:"customer_name"`
	Address       string          `json:"address"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	Items         []CartItem      `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	DeliveryFee   decimal.Decimal `json:"delivery_fee"`
	Total         decimal.Decimal `json:"total"`
	CreatedAt     time.Time       `json:"created_at"`
}
