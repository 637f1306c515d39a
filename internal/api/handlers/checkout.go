package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/gourmetgo/storefront/internal/api/middleware"
	"github.com/gourmetgo/storefront/internal/models"
	service "github.com/gourmetgo/storefront/internal/services"
	"github.com/gourmetgo/storefront/internal/utils"
	"github.com/gourmetgo/storefront/internal/utils/response"
)

type CheckoutHandler struct {
	checkoutService *service.CheckoutService
	validator       *validator.Validate
}

func NewCheckoutHandler(checkoutService *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		validator:       validator.New(),
	}
}

func (h *CheckoutHandler) Begin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		summary, err := h.checkoutService.Begin(r.Context(), claims.SessionID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, summary)
	}
}

func (h *CheckoutHandler) SubmitDetails() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		var req models.CheckoutDetailsRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		status, err := h.checkoutService.SubmitDetails(r.Context(), claims.SessionID, &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, status)
	}
}

func (h *CheckoutHandler) Confirm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		logger := middleware.LoggerFromContext(r.Context())

		status, err := h.checkoutService.Confirm(r.Context(), claims.SessionID)
		if err != nil {
			response.Error(w, err)
			return
		}

		logger.Info("Order confirmed, processing started")
		response.Success(w, http.StatusAccepted, status)
	}
}

func (h *CheckoutHandler) Status() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		response.Success(w, http.StatusOK, h.checkoutService.Status(r.Context(), claims.SessionID))
	}
}

func (h *CheckoutHandler) Cancel() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		logger := middleware.LoggerFromContext(r.Context())

		status, err := h.checkoutService.Cancel(r.Context(), claims.SessionID)
		if err != nil {
			response.Error(w, err)
			return
		}

		logger.Info("Checkout cancelled")
		response.Success(w, http.StatusOK, status)
	}
}

func (h *CheckoutHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		if _, ok := requireClaims(w, r); !ok {
			return
		}

		orders, err := h.checkoutService.ListOrders(r.Context())
		if err != nil {
			slog.Default().Error("Failed to list orders", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, orders)
	}
}
