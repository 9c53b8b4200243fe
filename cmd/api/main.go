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
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/neokart/neokart-backend/api/routes"
	"github.com/neokart/neokart-backend/internal/address"
	"github.com/neokart/neokart-backend/internal/auth"
	"github.com/neokart/neokart-backend/internal/cart"
	"github.com/neokart/neokart-backend/internal/catalog"
	"github.com/neokart/neokart-backend/internal/checkout"
	"github.com/neokart/neokart-backend/internal/orders"
	"github.com/neokart/neokart-backend/internal/reviews"
	internalsession "github.com/neokart/neokart-backend/internal/session"
	"github.com/neokart/neokart-backend/internal/users"
	"github.com/neokart/neokart-backend/internal/wishlist"
	"github.com/neokart/neokart-backend/pkg/auth/session"
	"github.com/neokart/neokart-backend/pkg/config"
	"github.com/neokart/neokart-backend/pkg/db"
	"github.com/neokart/neokart-backend/pkg/logger"
	"github.com/neokart/neokart-backend/pkg/metrics"
	"github.com/neokart/neokart-backend/pkg/migrate"
	"github.com/neokart/neokart-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

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

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	visitorManager, err := internalsession.NewManager(redisClient, cfg.Session)
	if err != nil {
		logg.Error(context.Background(), "failed to create visitor session manager", err)
		os.Exit(1)
	}

	deps, err := buildServices(cfg, dbClient, sessionManager, visitorManager)
	if err != nil {
		logg.Error(context.Background(), "failed to build services", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	deps.Config = cfg
	deps.Logger = logg
	deps.Metrics = metrics.NewHTTPMetrics(registry)
	deps.DBPinger = dbClient
	deps.RedisClient = redisClient
	deps.SessionChecker = sessionManager
	deps.MetricsHandler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}

func buildServices(cfg *config.Config, dbClient *db.Client, sessions *session.Manager, visitors *internalsession.Manager) (routes.Deps, error) {
	gdb := dbClient.DB()

	catalogRepo := catalog.NewRepository(gdb)
	cartRepo := cart.NewRepository(gdb)
	addressRepo := address.NewRepository(gdb)
	orderRepo := orders.NewRepository(gdb)

	catalogService, err := catalog.NewService(catalog.ServiceParams{Repo: catalogRepo})
	if err != nil {
		return routes.Deps{}, err
	}
	cartService, err := cart.NewService(cart.ServiceParams{CartRepo: cartRepo, CatalogRepo: catalogRepo})
	if err != nil {
		return routes.Deps{}, err
	}
	checkoutService, err := checkout.NewService(checkout.ServiceParams{
		DB:          dbClient,
		CartRepo:    cartRepo,
		CatalogRepo: catalogRepo,
		AddressRepo: addressRepo,
		OrderRepo:   orderRepo,
	})
	if err != nil {
		return routes.Deps{}, err
	}
	ordersService, err := orders.NewService(orders.ServiceParams{Repo: orderRepo})
	if err != nil {
		return routes.Deps{}, err
	}
	wishlistService, err := wishlist.NewService(wishlist.ServiceParams{
		Repo:        wishlist.NewRepository(gdb),
		CatalogRepo: catalogRepo,
	})
	if err != nil {
		return routes.Deps{}, err
	}
	reviewsService, err := reviews.NewService(reviews.ServiceParams{
		Repo:        reviews.NewRepository(gdb),
		CatalogRepo: catalogRepo,
	})
	if err != nil {
		return routes.Deps{}, err
	}
	addressService, err := address.NewService(address.ServiceParams{Repo: addressRepo})
	if err != nil {
		return routes.Deps{}, err
	}
	sessionService, err := internalsession.NewService(internalsession.ServiceParams{Manager: visitors})
	if err != nil {
		return routes.Deps{}, err
	}
	authService, err := auth.NewService(auth.ServiceParams{
		Users:    users.NewRepository(gdb),
		Sessions: sessions,
		JWT:      cfg.JWT,
		Password: cfg.Password,
	})
	if err != nil {
		return routes.Deps{}, err
	}

	return routes.Deps{
		AuthService:     authService,
		CatalogService:  catalogService,
		CartService:     cartService,
		CheckoutService: checkoutService,
		OrdersService:   ordersService,
		WishlistService: wishlistService,
		ReviewsService:  reviewsService,
		AddressService:  addressService,
		SessionService:  sessionService,
	}, nil
}
