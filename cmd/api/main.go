package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/devmarket-mx/tienda-backend/api/controllers"
	"github.com/devmarket-mx/tienda-backend/api/routes"
	addresssvc "github.com/devmarket-mx/tienda-backend/internal/address"
	authsvc "github.com/devmarket-mx/tienda-backend/internal/auth"
	cartsvc "github.com/devmarket-mx/tienda-backend/internal/cart"
	checkoutsvc "github.com/devmarket-mx/tienda-backend/internal/checkout"
	dashboardsvc "github.com/devmarket-mx/tienda-backend/internal/dashboard"
	"github.com/devmarket-mx/tienda-backend/internal/events"
	leasesvc "github.com/devmarket-mx/tienda-backend/internal/lease"
	ordersvc "github.com/devmarket-mx/tienda-backend/internal/orders"
	productsvc "github.com/devmarket-mx/tienda-backend/internal/products"
	providersvc "github.com/devmarket-mx/tienda-backend/internal/providers"
	shippingsvc "github.com/devmarket-mx/tienda-backend/internal/shipping"
	"github.com/devmarket-mx/tienda-backend/internal/users"
	"github.com/devmarket-mx/tienda-backend/pkg/auth/session"
	"github.com/devmarket-mx/tienda-backend/pkg/carrier"
	"github.com/devmarket-mx/tienda-backend/pkg/config"
	"github.com/devmarket-mx/tienda-backend/pkg/db"
	"github.com/devmarket-mx/tienda-backend/pkg/logger"
	"github.com/devmarket-mx/tienda-backend/pkg/metrics"
	"github.com/devmarket-mx/tienda-backend/pkg/migrate"
	"github.com/devmarket-mx/tienda-backend/pkg/payments"
	"github.com/devmarket-mx/tienda-backend/pkg/redis"
	"github.com/devmarket-mx/tienda-backend/pkg/types"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(ctx, "failed to create session manager", err)
		os.Exit(1)
	}

	checkoutTaxRate, err := types.ParseRate(cfg.Tax.CheckoutRate)
	if err != nil {
		logg.Error(ctx, "invalid checkout tax rate", err)
		os.Exit(1)
	}
	leaseTaxRate, err := types.ParseRate(cfg.Tax.LeaseRate)
	if err != nil {
		logg.Error(ctx, "invalid lease tax rate", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)
	checkoutMetrics := metrics.NewCheckoutMetrics(registry)
	jobMetrics := metrics.NewJobMetrics(registry)

	carrierClient, err := carrier.NewClient(cfg.Carrier.BaseURL, cfg.Carrier.APIKey,
		carrier.WithHTTPClient(&http.Client{Timeout: cfg.Carrier.Timeout}))
	if err != nil {
		logg.Error(ctx, "failed to create carrier client", err)
		os.Exit(1)
	}

	paymentsClient, err := payments.NewClient(cfg.Payments.BaseURL, cfg.Payments.AccessToken, cfg.Payments.Sandbox,
		payments.WithHTTPClient(&http.Client{Timeout: cfg.Payments.Timeout}))
	if err != nil {
		logg.Error(ctx, "failed to create payments client", err)
		os.Exit(1)
	}

	bus := events.NewBus(logg)
	bus.Subscribe(func(ctx context.Context, event events.CartCountChanged) {
		key := redisClient.CartCountKey(event.UserID.String())
		if err := redisClient.Set(ctx, key, event.Count, 24*time.Hour); err != nil {
			logg.Error(ctx, "failed to cache cart count", err)
		}
	})

	userRepo := users.NewRepository(dbClient.DB())
	addressRepo := addresssvc.NewRepository(dbClient.DB())
	cartRepo := cartsvc.NewRepository(dbClient.DB())
	productRepo := productsvc.NewRepository(dbClient.DB())
	providerRepo := providersvc.NewRepository(dbClient.DB())
	orderRepo := ordersvc.NewRepository(dbClient.DB())
	leaseRepo := leasesvc.NewRepository(dbClient.DB())

	authService, err := authsvc.NewService(authsvc.ServiceParams{
		UserRepo:       userRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(ctx, "failed to create auth service", err)
		os.Exit(1)
	}

	addressService, err := addresssvc.NewService(addressRepo)
	if err != nil {
		logg.Error(ctx, "failed to create address service", err)
		os.Exit(1)
	}

	cartService, err := cartsvc.NewService(cartsvc.ServiceParams{
		CartRepo:    cartRepo,
		ProductRepo: productRepo,
		Bus:         bus,
	})
	if err != nil {
		logg.Error(ctx, "failed to create cart service", err)
		os.Exit(1)
	}

	shippingService, err := shippingsvc.NewService(shippingsvc.ServiceParams{
		Carrier:   carrierClient,
		Addresses: addressRepo,
		Metrics:   checkoutMetrics,
	})
	if err != nil {
		logg.Error(ctx, "failed to create shipping service", err)
		os.Exit(1)
	}

	checkoutService, err := checkoutsvc.NewService(checkoutsvc.ServiceParams{
		Cart:     cartRepo,
		Address:  addressRepo,
		Shipping: shippingService,
		Orders:   orderRepo,
		Payments: paymentsClient,
		Users:    userRepo,
		Bus:      bus,
		Metrics:  checkoutMetrics,
		Logger:   logg,
		TaxRate:  checkoutTaxRate,
	})
	if err != nil {
		logg.Error(ctx, "failed to create checkout service", err)
		os.Exit(1)
	}

	productService, err := productsvc.NewService(productRepo)
	if err != nil {
		logg.Error(ctx, "failed to create product service", err)
		os.Exit(1)
	}

	providerService, err := providersvc.NewService(providerRepo)
	if err != nil {
		logg.Error(ctx, "failed to create provider service", err)
		os.Exit(1)
	}

	orderService, err := ordersvc.NewService(orderRepo, time.Now)
	if err != nil {
		logg.Error(ctx, "failed to create order service", err)
		os.Exit(1)
	}

	leaseService, err := leasesvc.NewService(leasesvc.ServiceParams{
		LeaseRepo:   leaseRepo,
		ProductRepo: productRepo,
		TaxRate:     leaseTaxRate,
	})
	if err != nil {
		logg.Error(ctx, "failed to create lease service", err)
		os.Exit(1)
	}

	dashboardService, err := dashboardsvc.NewService(dashboardsvc.ServiceParams{
		Orders:   orderRepo,
		Products: productRepo,
		Leases:   leaseRepo,
	})
	if err != nil {
		logg.Error(ctx, "failed to create dashboard service", err)
		os.Exit(1)
	}

	expirer := leasesvc.NewExpirer(leaseRepo, logg, jobMetrics, time.Hour)
	go expirer.Run(ctx)

	router := routes.NewRouter(
		cfg,
		logg,
		map[string]controllers.Pinger{
			"database": dbClient,
			"redis":    redisClient,
		},
		sessionManager,
		routes.Services{
			Auth:      authService,
			Addresses: addressService,
			Cart:      cartService,
			Checkout:  checkoutService,
			Products:  productService,
			Leases:    leaseService,
			Orders:    orderService,
			Providers: providerService,
			Dashboard: dashboardService,
		},
		httpMetrics,
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	startCtx := logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(startCtx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(shutdownCtx, "graceful shutdown failed", err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(startCtx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
	logg.Info(context.Background(), "api server stopped")
}
