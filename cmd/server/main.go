package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/brewline/coffee-api/internal/config"
	"github.com/brewline/coffee-api/internal/handlers"
	"github.com/brewline/coffee-api/internal/middleware"
	"github.com/brewline/coffee-api/internal/pricing"
	"github.com/brewline/coffee-api/internal/repository"
	"github.com/brewline/coffee-api/internal/seed"
	"github.com/brewline/coffee-api/internal/service"
	"github.com/brewline/coffee-api/internal/validation"
	"github.com/brewline/coffee-api/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/shopspring/decimal"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	// prices go over the wire as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	log.Info("starting coffee ordering api server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"storage", cfg.Storage.Driver,
		"log_level", cfg.LogLevel,
	)

	ctx := context.Background()

	store, pinger, cleanup, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	if len(cfg.Menu.SeedSources) > 0 {
		if err := seedMenu(ctx, cfg, store, log); err != nil {
			log.Error("failed to seed menu", "error", err)
			os.Exit(1)
		}
	}

	// Initialize services
	validate := validation.New()
	engine := pricing.NewEngine(store.Menu, store.Offers, cfg.Pricing.Concurrency)
	accountService := service.NewAccountService(store.Accounts, log)
	orderService := service.NewOrderService(accountService, engine, store.Orders, cfg.Storage.Timeout, log)
	menuService := service.NewMenuService(store.Menu, log)
	offerService := service.NewOfferService(store.Offers, store.Menu, log)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(log, cfg.Storage.Driver, pinger)
	menuHandler := handlers.NewMenuHandler(menuService, validate, log)
	offerHandler := handlers.NewOfferHandler(offerService, validate, log)
	accountHandler := handlers.NewAccountHandler(accountService, validate, log)
	orderHandler := handlers.NewOrderHandler(orderService, log)

	// Create router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(compressor().Handler)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", middleware.AdminKeyHeader},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Register health check endpoint
	r.Get("/health", healthHandler.ServeHTTP)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Menu
		r.Get("/coffee", menuHandler.ListMenu)
		r.Get("/coffee/{id}", menuHandler.GetItem)

		// Offers
		r.Get("/offers", offerHandler.ListOffers)

		// Accounts and orders
		r.Post("/account", accountHandler.Register)
		r.Post("/order", orderHandler.PlaceOrder)
		r.Get("/order/{username}", orderHandler.ListOrders)

		// Catalog management
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin(cfg.Auth))

			r.Post("/menu", menuHandler.CreateItem)
			r.Put("/menu/{id}", menuHandler.UpdateItem)
			r.Delete("/menu/{id}", menuHandler.DeleteItem)
			r.Post("/offers", offerHandler.CreateOffer)
		})
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

// openStore builds the repositories for the configured storage driver.
// The returned pinger is nil for the in-memory store.
func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (*repository.Store, handlers.Pinger, func(), error) {
	if cfg.Storage.Driver != config.StoragePostgres {
		return repository.NewInMemoryStore(), nil, func() {}, nil
	}

	pool, err := repository.Connect(ctx, cfg.Storage.DatabaseURL, cfg.Storage.MaxConns, log)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := repository.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, nil, err
	}

	log.Info("connected to postgres", "max_conns", cfg.Storage.MaxConns)
	return repository.NewPostgresStore(pool), pool, pool.Close, nil
}

// seedMenu loads the configured menu documents. The in-memory menu is always
// replaced; a Postgres menu is only seeded when it is empty, cmd/seedmenu resets it.
func seedMenu(ctx context.Context, cfg *config.Config, store *repository.Store, log *slog.Logger) error {
	if cfg.Storage.Driver == config.StoragePostgres {
		existing, err := store.Menu.GetAll(ctx)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			log.Info("menu already present, skipping seed", "items", len(existing))
			return nil
		}
	}

	items, err := seed.LoadMenu(ctx, cfg.Menu.SeedSources...)
	if err != nil {
		return err
	}

	removed, err := store.Menu.ReplaceAll(ctx, items)
	if err != nil {
		return err
	}

	log.Info("menu seeded", "sources", cfg.Menu.SeedSources, "removed", removed, "inserted", len(items))
	return nil
}

// compressor gzips and deflates responses like chi's default and adds brotli
func compressor() *chimiddleware.Compressor {
	c := chimiddleware.NewCompressor(5, "application/json", "text/plain")
	c.SetEncoder("br", func(w io.Writer, level int) io.Writer {
		return brotli.NewWriterLevel(w, level)
	})
	return c
}
