package service_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gourmetgo/storefront/internal/config"
	"github.com/gourmetgo/storefront/internal/models"
	service "github.com/gourmetgo/storefront/internal/services"
	sendGrid "github.com/gourmetgo/storefront/pkg/sendgrid"
)

type mockEmailService struct {
	mock.Mock
}

func (m *mockEmailService) Send(ctx context.Context, req *sendGrid.EmailRequest) error {
	args := m.Called(ctx, req)

	return args.Error(0)
}

func testOrder() *models.Order {
	return &models.Order{
		ID:           uuid.New(),
		Number:       "ORD-1756700000000000000",
		CustomerName: "Alice",
		Subtotal:     decimal.RequireFromString("29.98"),
		DeliveryFee:  decimal.RequireFromString("4.99"),
		Total:        decimal.RequireFromString("34.97"),
		CreatedAt:    time.Now(),
	}
}

func TestNotifyOrderPlaced(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - posts the order event to the supplier endpoint", func(t *testing.T) {
		// Arrange
		var payload map[string]any

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			require.NoError(t, json.Unmarshal(body, &payload))
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		notifier := service.NewNotifyService(&config.Notify{
			SupplierEndpoint: server.URL,
			Timeout:          time.Second,
		}, nil, "")

		// Act
		notifier.OrderPlaced(ctx, testOrder())

		// Assert
		assert.Equal(t, "order_placed", payload["event"])
		assert.Equal(t, "ORD-1756700000000000000", payload["order"])
		assert.Equal(t, "Alice", payload["customer"])
	})

	t.Run("Success - endpoint failure never surfaces", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		notifier := service.NewNotifyService(&config.Notify{
			SupplierEndpoint: server.URL,
			Timeout:          time.Second,
		}, nil, "")

		// Act & Assert: no panic, no error to propagate.
		notifier.OrderPlaced(ctx, testOrder())
	})

	t.Run("Success - no endpoint configured means no call", func(t *testing.T) {
		// Arrange
		var calls atomic.Int64

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
		}))
		defer server.Close()

		notifier := service.NewNotifyService(&config.Notify{Timeout: time.Second}, nil, "")

		// Act
		notifier.OrderPlaced(ctx, testOrder())

		// Assert
		assert.Equal(t, int64(0), calls.Load())
	})

	t.Run("Success - supplier email is sent alongside the event", func(t *testing.T) {
		// Arrange
		email := new(mockEmailService)
		email.On("Send", mock.Anything, mock.MatchedBy(func(req *sendGrid.EmailRequest) bool {
			return req.To == "orders@pizzamarco.example" && req.Subject == "New order ORD-1756700000000000000"
		})).Return(nil)

		notifier := service.NewNotifyService(&config.Notify{Timeout: time.Second}, email, "orders@pizzamarco.example")

		// Act
		notifier.OrderPlaced(ctx, testOrder())

		// Assert
		email.AssertExpectations(t)
	})
}

func TestNotifyMessagePosted(t *testing.T) {
	ctx := context.Background()

	// Arrange
	var payload map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &payload))
	}))
	defer server.Close()

	notifier := service.NewNotifyService(&config.Notify{
		SupplierEndpoint: server.URL,
		Timeout:          time.Second,
	}, nil, "")

	// Act
	notifier.MessagePosted(ctx, &models.Message{
		ID:     uuid.New(),
		Store:  "Pizza Marco",
		Author: models.AuthorCustomer,
		Body:   "hello",
	})

	// Assert
	assert.Equal(t, "message_posted", payload["event"])
	assert.Equal(t, "Pizza Marco", payload["store"])
}
