package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gourmetgo/storefront/internal/config"
	apperrors "github.com/gourmetgo/storefront/internal/errors"
	"github.com/gourmetgo/storefront/internal/models"
	repository "github.com/gourmetgo/storefront/internal/repositories"
)

// CheckoutService drives the per-session checkout state machine:
//
//	browsing -> checkout -> payment_selected -> processing -> completed
//
// Cancel returns to browsing from any state before processing. Processing
// is a fixed simulated delay with no failure path.
type CheckoutService struct {
	carts       *CartService
	orders      *repository.OrderRepository
	notifier    *NotifyService
	deliveryFee decimal.Decimal
	cfg         *config.Checkout

	mu     sync.Mutex
	drafts map[uuid.UUID]*draftEntry
}

type draftEntry struct {
	draft models.CheckoutDraft

	// Ledger snapshot taken when the order is confirmed. The recorded
	// order is built from this, so cart edits during the simulated
	// processing delay cannot change what the customer agreed to.
	items    []models.CartItem
	subtotal decimal.Decimal

	orderID uuid.UUID
}

func NewCheckoutService(carts *CartService, orders *repository.OrderRepository, notifier *NotifyService, cfg *config.Checkout) *CheckoutService {
	return &CheckoutService{
		carts:       carts,
		orders:      orders,
		notifier:    notifier,
		deliveryFee: decimal.RequireFromString(cfg.DeliveryFee),
		cfg:         cfg,
		drafts:      make(map[uuid.UUID]*draftEntry),
	}
}

// Begin opens a checkout for the session's cart and returns the summary.
// The delivery fee appears here and only here.
func (s *CheckoutService) Begin(ctx context.Context, sessionID uuid.UUID) (*models.CheckoutSummary, error) {

	cart, err := s.carts.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if cart.IsEmpty() {
		return nil, apperrors.ConflictError("Cart is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.drafts[sessionID]; ok && entry.draft.State == models.StateProcessing {
		return nil, apperrors.ConflictError("An order is already processing")
	}

	s.drafts[sessionID] = &draftEntry{
		draft: models.CheckoutDraft{
			State:     models.StateCheckout,
			StartedAt: time.Now(),
		},
	}

	subtotal := cart.Total()

	return &models.CheckoutSummary{
		Items:       cart.Items,
		Subtotal:    subtotal,
		DeliveryFee: s.deliveryFee,
		Total:       subtotal.Add(s.deliveryFee),
	}, nil
}

// SubmitDetails records the delivery and payment details. The transition
// to payment_selected requires name and address, and all four card fields
// when paying by card.
func (s *CheckoutService) SubmitDetails(ctx context.Context, sessionID uuid.UUID, req *models.CheckoutDetailsRequest) (*models.CheckoutStatusResponse, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.drafts[sessionID]
	if !ok {
		return nil, apperrors.ConflictError("No checkout in progress")
	}

	if entry.draft.State != models.StateCheckout && entry.draft.State != models.StatePaymentSelected {
		return nil, apperrors.ConflictError(fmt.Sprintf("Cannot submit details in state %q", entry.draft.State))
	}

	if req.Name == "" || req.Address == "" {
		return nil, apperrors.ValidationError("Name and address are required")
	}

	method := models.PaymentMethod(req.PaymentMethod)
	if method != models.PaymentCash && method != models.PaymentCard {
		return nil, apperrors.ValidationError("Payment method must be cash or card")
	}

	if method == models.PaymentCard {
		if req.CardNumber == "" || req.CardExpiry == "" || req.CardCVV == "" || req.CardHolder == "" {
			return nil, apperrors.ValidationError("All card fields are required for card payment")
		}
	}

	entry.draft.Name = req.Name
	entry.draft.Address = req.Address
	entry.draft.PaymentMethod = method
	entry.draft.Card = models.CardDetails{
		Number:     req.CardNumber,
		Expiry:     req.CardExpiry,
		CVV:        req.CardCVV,
		HolderName: req.CardHolder,
	}
	entry.draft.State = models.StatePaymentSelected

	return &models.CheckoutStatusResponse{State: entry.draft.State}, nil
}

// Confirm snapshots the cart and enters processing. The simulated delay
// always resolves to completed: the order is recorded, the cart cleared,
// and after a display delay the state machine resets to browsing.
func (s *CheckoutService) Confirm(ctx context.Context, sessionID uuid.UUID) (*models.CheckoutStatusResponse, error) {

	cart, err := s.carts.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if cart.IsEmpty() {
		return nil, apperrors.ConflictError("Cart is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.drafts[sessionID]
	if !ok {
		return nil, apperrors.ConflictError("No checkout in progress")
	}

	if entry.draft.State != models.StatePaymentSelected {
		return nil, apperrors.ValidationError("Delivery and payment details must be submitted first")
	}

	entry.items = cart.Items
	entry.subtotal = cart.Total()
	entry.draft.State = models.StateProcessing

	time.AfterFunc(s.cfg.ProcessingDelay, func() {
		s.complete(sessionID)
	})

	return &models.CheckoutStatusResponse{State: models.StateProcessing}, nil
}

func (s *CheckoutService) complete(sessionID uuid.UUID) {

	// Handler contexts are gone by the time the simulated delay fires.
	ctx := context.Background()

	s.mu.Lock()
	entry, ok := s.drafts[sessionID]
	if !ok || entry.draft.State != models.StateProcessing {
		s.mu.Unlock()
		return
	}
	draft := entry.draft
	items := entry.items
	subtotal := entry.subtotal
	s.mu.Unlock()

	order := &models.Order{
		ID:            uuid.New(),
		Number:        fmt.Sprintf("ORD-%d", time.Now().UnixNano()),
		SessionID:     sessionID,
		CustomerName:  draft.Name,
		Address:       draft.Address,
		PaymentMethod: draft.PaymentMethod,
		Items:         items,
		Subtotal:      subtotal,
		DeliveryFee:   s.deliveryFee,
		Total:         subtotal.Add(s.deliveryFee),
		CreatedAt:     time.Now(),
	}

	if err := s.orders.Append(ctx, order); err != nil {
		slog.Error("Failed to record order", slog.String("order", order.Number), slog.String("error", err.Error()))

		// Roll back to payment_selected so the session is not stuck in
		// processing; the customer can confirm again once storage is back.
		s.mu.Lock()
		if e, ok := s.drafts[sessionID]; ok && e.draft.State == models.StateProcessing {
			e.draft.State = models.StatePaymentSelected
		}
		s.mu.Unlock()

		return
	}

	if _, err := s.carts.Clear(ctx, sessionID); err != nil {
		slog.Error("Failed to clear cart after order", slog.String("order", order.Number), slog.String("error", err.Error()))
	}

	s.mu.Lock()
	entry.draft.State = models.StateCompleted
	entry.orderID = order.ID
	s.mu.Unlock()

	if s.notifier != nil {
		s.notifier.OrderPlaced(ctx, order)
	}

	// Hold the completed state for the display delay, then reset.
	time.AfterFunc(s.cfg.ResetDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if e, ok := s.drafts[sessionID]; ok && e.draft.State == models.StateCompleted {
			delete(s.drafts, sessionID)
		}
	})
}

// Status reports the current state; a session without a draft is browsing.
func (s *CheckoutService) Status(_ context.Context, sessionID uuid.UUID) *models.CheckoutStatusResponse {

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.drafts[sessionID]
	if !ok {
		return &models.CheckoutStatusResponse{State: models.StateBrowsing}
	}

	resp := &models.CheckoutStatusResponse{State: entry.draft.State}
	if entry.draft.State == models.StateCompleted {
		resp.OrderID = entry.orderID.String()
	}

	return resp
}

// Cancel discards the transient draft. Allowed from any state before
// processing.
func (s *CheckoutService) Cancel(_ context.Context, sessionID uuid.UUID) (*models.CheckoutStatusResponse, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.drafts[sessionID]
	if !ok {
		return &models.CheckoutStatusResponse{State: models.StateBrowsing}, nil
	}

	if entry.draft.State == models.StateProcessing {
		return nil, apperrors.ConflictError("Order is already processing")
	}

	delete(s.drafts, sessionID)

	return &models.CheckoutStatusResponse{State: models.StateBrowsing}, nil
}

// ListOrders exposes recorded orders for the dashboards.
func (s *CheckoutService) ListOrders(ctx context.Context) ([]models.Order, error) {

	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, apperrors.StorageError("Failed to load orders").WithError(err)
	}

	return orders, nil
}
