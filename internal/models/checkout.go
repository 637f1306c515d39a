package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type CheckoutState string

const (
	StateBrowsing        CheckoutState = "browsing"
	StateCheckout        CheckoutState = "checkout"
	StatePaymentSelected CheckoutState = "payment_selected"
	StateProcessing      CheckoutState = "processing"
	StateCompleted       CheckoutState = "completed"
)

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
)

type CardDetails struct {
	Number     string `json:"number"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
	HolderName string `json:"holder_name"`
}

// CheckoutDraft is the transient form state of one checkout interaction.
// It is never persisted and is discarded on completion or cancellation.
type CheckoutDraft struct {
	State         CheckoutState `json:"state"`
	Name          string        `json:"name"`
	Address       string        `json:"address"`
	PaymentMethod PaymentMethod `json:"payment_method,omitempty"`
	Card          CardDetails   `json:"-"`
	StartedAt     time.Time     `json:"started_at"`
}

type CheckoutSummary struct {
	Items       []CartItem      `json:"items"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	Total       decimal.Decimal `json:"total"`
}

type CheckoutDetailsRequest struct {
	Name          string `json:"name" validate:"required"`
	Address       string `json:"address" validate:"required"`
	PaymentMethod string `json:"payment_method" validate:"required,oneof=cash card"`
	CardNumber    string `json:"card_number" validate:"required_if=PaymentMethod card"`
	CardExpiry    string `json:"card_expiry" validate:"required_if=PaymentMethod card"`
	CardCVV       string `json:"card_cvv" validate:"required_if=PaymentMethod card"`
	CardHolder    string `json:"card_holder" validate:"required_if=PaymentMethod card"`
}

type CheckoutStatusResponse struct {
	State   CheckoutState `json:"state"`
	OrderID string        `json:"order_id,omitempty"`
}
