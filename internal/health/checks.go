package health

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/hellofresh/health-go/v5"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"

	"github.com/gourmetgo/storefront/internal/config"
)

func NewHealthHandler(cfg *config.Config) (*health.Health, error) {

	checks := []health.Config{
		{
			Name:      "redis",
			Timeout:   2 * time.Second,
			SkipOnErr: false,
			Check: healthRedis.New(
				healthRedis.Config{
					DSN: cfg.RedisConnect.GetDSN(),
				},
			),
		},
	}

	// The notify endpoint is an external collaborator; a failure here is
	// informational, never unhealthy.
	if cfg.Notify.SupplierEndpoint != "" {
		checks = append(checks, health.Config{
			Name:      "notify-supplier",
			Timeout:   cfg.Notify.Timeout,
			SkipOnErr: true,
			Check: func(ctx context.Context) error {
				req, err := http.NewRequestWithContext(ctx, http.MethodHead, cfg.Notify.SupplierEndpoint, nil)
				if err != nil {
					return err
				}

				resp, err := http.DefaultClient.Do(req)
				if err != nil {
					return fmt.Errorf("notify endpoint unreachable: %w", err)
				}
				resp.Body.Close()

				return nil
			},
		})
	}

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    "gourmetgo-storefront",
			Version: "1.0.0",
		}),
		health.WithSystemInfo(),
		health.WithChecks(checks...),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}
