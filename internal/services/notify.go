package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gourmetgo/storefront/internal/config"
	"github.com/gourmetgo/storefront/internal/models"
	sendGrid "github.com/gourmetgo/storefront/pkg/sendgrid"
)

// NotifyService delivers best-effort notifications to the supplier side:
// a POST to the configured notify endpoint and an email. Failures are
// logged and never surface to the caller.
type NotifyService struct {
	cfg        *config.Notify
	httpClient *http.Client
	email      sendGrid.EmailService
	emailTo    string
}

func NewNotifyService(cfg *config.Notify, email sendGrid.EmailService, emailTo string) *NotifyService {
	return &NotifyService{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		email:      email,
		emailTo:    emailTo,
	}
}

func (n *NotifyService) OrderPlaced(ctx context.Context, order *models.Order) {

	n.post(ctx, map[string]any{
		"event":    "order_placed",
		"order":    order.Number,
		"customer": order.CustomerName,
		"total":    order.Total,
	})

	if n.email != nil {
		err := n.email.Send(ctx, &sendGrid.EmailRequest{
			To:      n.emailTo,
			Subject: fmt.Sprintf("New order %s", order.Number),
			Content: fmt.Sprintf("Order %s from %s, total %s", order.Number, order.CustomerName, order.Total.StringFixed(2)),
		})
		if err != nil {
			slog.Warn("Supplier notification email failed", slog.String("order", order.Number), slog.String("error", err.Error()))
		}
	}
}

func (n *NotifyService) MessagePosted(ctx context.Context, msg *models.Message) {

	n.post(ctx, map[string]any{
		"event": "message_posted",
		"store": msg.Store,
	})
}

func (n *NotifyService) post(ctx context.Context, payload map[string]any) {

	if n.cfg.SupplierEndpoint == "" {
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		slog.Warn("Failed to marshal supplier notification", slog.String("error", err.Error()))
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.cfg.SupplierEndpoint, bytes.NewReader(body))
	if err != nil {
		slog.Warn("Failed to build supplier notification request", slog.String("error", err.Error()))
		return
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		slog.Warn("Supplier notification call failed", slog.String("error", err.Error()))
		return
	}

	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		slog.Warn("Supplier notification rejected", slog.Int("status", resp.StatusCode))
	}
}
