package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"

	cartapp "github.com/minishop/backend/internal/application/cart"
	catalogapp "github.com/minishop/backend/internal/application/catalog"
	identityapp "github.com/minishop/backend/internal/application/identity"
	orderapp "github.com/minishop/backend/internal/application/order"
	"github.com/minishop/backend/internal/infrastructure/auth"
	"github.com/minishop/backend/internal/infrastructure/config"
	"github.com/minishop/backend/internal/infrastructure/logger"
	"github.com/minishop/backend/internal/infrastructure/persistence"
	"github.com/minishop/backend/internal/interfaces/http/handler"
	"github.com/minishop/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting minishop backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	log.Info("Database connected", zap.String("driver", cfg.Database.Driver))

	blacklist := newTokenBlacklist(cfg, log)

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	cartRepo := persistence.NewGormCartRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	productService := catalogapp.NewProductService(productRepo, log)
	cartService := cartapp.NewCartService(cartRepo, productRepo, log)
	checkoutService := orderapp.NewCheckoutService(orderRepo, productRepo, log)
	cancellationService := orderapp.NewCancellationService(orderRepo, productRepo, userRepo, log)
	orderService := orderapp.NewOrderService(orderRepo)

	engine := router.New(router.Dependencies{
		Config:         cfg,
		Logger:         log,
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		Users:          userRepo,

		Auth:     handler.NewAuthHandler(authService),
		Products: handler.NewProductHandler(productService),
		Carts:    handler.NewCartHandler(cartService),
		Orders:   handler.NewOrderHandler(checkoutService, cancellationService, orderService),
		System:   handler.NewSystemHandler(db.Ping),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// newTokenBlacklist connects to Redis for token revocation. Outside
// production a connection failure falls back to the in-process store so
// the server still runs without a Redis instance.
func newTokenBlacklist(cfg *config.Config, log *zap.Logger) auth.TokenBlacklist {
	blacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
	if err == nil {
		log.Info("Token blacklist backed by Redis", zap.String("addr", cfg.Redis.Addr()))
		return blacklist
	}
	if cfg.App.Env == "production" {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
	return auth.NewInMemoryTokenBlacklist()
}
