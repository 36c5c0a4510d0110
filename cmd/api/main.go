package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/bodegadosparcas/bodega-backend/api/routes"
	"github.com/bodegadosparcas/bodega-backend/internal/auth"
	"github.com/bodegadosparcas/bodega-backend/internal/banners"
	"github.com/bodegadosparcas/bodega-backend/internal/cart"
	"github.com/bodegadosparcas/bodega-backend/internal/catalog"
	"github.com/bodegadosparcas/bodega-backend/internal/checkout"
	"github.com/bodegadosparcas/bodega-backend/internal/coupons"
	"github.com/bodegadosparcas/bodega-backend/internal/users"
	"github.com/bodegadosparcas/bodega-backend/pkg/auth/session"
	"github.com/bodegadosparcas/bodega-backend/pkg/config"
	"github.com/bodegadosparcas/bodega-backend/pkg/db"
	"github.com/bodegadosparcas/bodega-backend/pkg/logger"
	"github.com/bodegadosparcas/bodega-backend/pkg/metrics"
	"github.com/bodegadosparcas/bodega-backend/pkg/migrate"
	"github.com/bodegadosparcas/bodega-backend/pkg/redis"
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

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
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

	deliveryFee, err := cfg.Checkout.Fee()
	if err != nil {
		logg.Error(context.Background(), "invalid delivery fee", err)
		os.Exit(1)
	}

	userRepo := users.NewRepository(dbClient.DB())
	catalogRepo := catalog.NewRepository(dbClient.DB())
	couponRepo := coupons.NewRepository(dbClient.DB())
	bannerRepo := banners.NewRepository(dbClient.DB())

	authService, err := auth.NewService(userRepo, dbClient, sessionManager, cfg.JWT, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalogRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	couponService, err := coupons.NewService(couponRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create coupon service", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(redisClient, catalogRepo, couponService, deliveryFee)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	checkoutService, err := checkout.NewService(cartService, userRepo, deliveryFee, cfg.Checkout.WhatsAppNumber)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	bannerService, err := banners.NewService(bannerRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create banner service", err)
		os.Exit(1)
	}

	userService, err := users.NewService(userRepo, sessionManager)
	if err != nil {
		logg.Error(context.Background(), "failed to create user service", err)
		os.Exit(1)
	}

	router := routes.NewRouter(routes.Deps{
		Config:      cfg,
		Logger:      logg,
		DB:          dbClient,
		Redis:       redisClient,
		Sessions:    sessionManager,
		HTTPMetrics: metrics.NewHTTPMetrics(),

		Auth:     authService,
		Catalog:  catalogService,
		Cart:     cartService,
		Checkout: checkoutService,
		Coupons:  couponService,
		Banners:  bannerService,
		Users:    userService,
	})

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
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	}()

	<-done
	logg.Info(ctx, "shutting down api server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error(ctx, "graceful shutdown failed", err)
	}
}
