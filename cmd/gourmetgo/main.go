package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gourmetgo/storefront/internal/api/handlers"
	"github.com/gourmetgo/storefront/internal/api/middleware"
	"github.com/gourmetgo/storefront/internal/config"
	"github.com/gourmetgo/storefront/internal/health"
	"github.com/gourmetgo/storefront/internal/kvstore"
	"github.com/gourmetgo/storefront/internal/metrics"
	repository "github.com/gourmetgo/storefront/internal/repositories"
	service "github.com/gourmetgo/storefront/internal/services"
	"github.com/gourmetgo/storefront/internal/telemetry"
	sendGrid "github.com/gourmetgo/storefront/pkg/sendgrid"
)

const serviceName = "gourmetgo-storefront"

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Storage setup
	redisClient, err := kvstore.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", "error", err.Error())
		os.Exit(1)
	}

	store := kvstore.NewRedisStore(redisClient)
	repos := repository.New(store)

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing storage connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Storage connection closed")
		}
	}()

	// Tracing
	if cfg.Telemetry.Enabled {
		provider, err := telemetry.NewProvider(context.Background(), serviceName, cfg.Telemetry.OTLPEndpoint)
		if err != nil {
			slog.Error("❌ Error setting up tracing", "error", err.Error())
			os.Exit(1)
		}

		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := provider.Shutdown(shutdownCtx); err != nil {
				slog.Warn("⚠️ Tracer shutdown encountered an issue", slog.String("error", err.Error()))
			}
		}()
	}

	jwtKey := []byte(cfg.Security.JWTKey)
	rateLimiter := repository.NewRateLimitRepo(redisClient, &cfg.RateConfig)

	var emailService sendGrid.EmailService
	if cfg.SendGrid.APIKey != "" {
		emailService = sendGrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	}

	notifyService := service.NewNotifyService(&cfg.Notify, emailService, cfg.Notify.SupplierEmail)
	catalogService := service.NewCatalogService(repos.Catalog)
	cartService := service.NewCartService(repos.Carts, catalogService)
	checkoutService := service.NewCheckoutService(cartService, repos.Orders, notifyService, &cfg.Checkout)
	authService := service.NewAuthService(repos.Suppliers, repos.Sessions, rateLimiter, jwtKey)
	messageService := service.NewMessageService(repos.Messages, notifyService, &cfg.Chat)
	geoService := service.NewGeoService(&cfg.Geo)

	if err := catalogService.Seed(context.Background()); err != nil {
		slog.Error("❌ Error seeding the catalog", "error", err.Error())
		os.Exit(1)
	}

	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(catalogService)
	cartHandler := handlers.NewCartHandler(cartService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	messageHandler := handlers.NewMessageHandler(messageService)
	geoHandler := handlers.NewGeoHandler(geoService)
	authMiddleware := middleware.NewAuthMiddleware(jwtKey, repos.Sessions)

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("❌ Error setting up health checks", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("POST /api/v1/auth/login", authHandler.Login())
	routerMux.HandleFunc("POST /api/v1/auth/signup", authHandler.Signup())
	routerMux.HandleFunc("POST /api/v1/auth/guest", authHandler.Guest())
	routerMux.HandleFunc("POST /api/v1/auth/logout", authMiddleware.Authenticate(authHandler.Logout()))
	routerMux.HandleFunc("GET /api/v1/auth/profile", authMiddleware.Authenticate(authHandler.Profile()))
	routerMux.HandleFunc("GET /api/v1/products", productHandler.ListProducts())
	routerMux.HandleFunc("GET /api/v1/products/{id}", productHandler.GetProduct())
	routerMux.HandleFunc("POST /api/v1/products", authMiddleware.RequireAdmin(productHandler.CreateProduct()))
	routerMux.HandleFunc("PUT /api/v1/products/{id}", authMiddleware.RequireAdmin(productHandler.UpdateProduct()))
	routerMux.HandleFunc("DELETE /api/v1/products/{id}", authMiddleware.RequireAdmin(productHandler.DeleteProduct()))
	routerMux.HandleFunc("GET /api/v1/categories", productHandler.ListCategories())
	routerMux.HandleFunc("POST /api/v1/categories", authMiddleware.RequireAdmin(productHandler.CreateCategory()))
	routerMux.HandleFunc("GET /api/v1/carts", authMiddleware.Authenticate(cartHandler.GetCart()))
	routerMux.HandleFunc("POST /api/v1/carts/items", authMiddleware.Authenticate(cartHandler.AddItem()))
	routerMux.HandleFunc("PUT /api/v1/carts/items", authMiddleware.Authenticate(cartHandler.UpdateQuantity()))
	routerMux.HandleFunc("DELETE /api/v1/carts/items/{productId}", authMiddleware.Authenticate(cartHandler.RemoveItem()))
	routerMux.HandleFunc("DELETE /api/v1/carts", authMiddleware.Authenticate(cartHandler.Clear()))
	routerMux.HandleFunc("POST /api/v1/checkout", authMiddleware.Authenticate(checkoutHandler.Begin()))
	routerMux.HandleFunc("PUT /api/v1/checkout/details", authMiddleware.Authenticate(checkoutHandler.SubmitDetails()))
	routerMux.HandleFunc("POST /api/v1/checkout/confirm", authMiddleware.Authenticate(checkoutHandler.Confirm()))
	routerMux.HandleFunc("GET /api/v1/checkout", authMiddleware.Authenticate(checkoutHandler.Status()))
	routerMux.HandleFunc("POST /api/v1/checkout/cancel", authMiddleware.Authenticate(checkoutHandler.Cancel()))
	routerMux.HandleFunc("GET /api/v1/orders", authMiddleware.Authenticate(checkoutHandler.ListOrders()))
	routerMux.HandleFunc("POST /api/v1/messages", authMiddleware.Authenticate(messageHandler.PostMessage()))
	routerMux.HandleFunc("GET /api/v1/messages", authMiddleware.Authenticate(messageHandler.Thread()))
	routerMux.HandleFunc("GET /api/v1/restaurants/nearby", geoHandler.Nearby())
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /health", healthHandler.Handler())

	// Middleware chaining. Metrics sits directly around the mux so the
	// matched route pattern is visible to it.
	var handler http.Handler = metrics.Middleware(routerMux)
	handler = middleware.Logging(handler)

	if cfg.Telemetry.Enabled {
		handler = telemetry.WrapHandler(handler, serviceName)
	}

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

}
