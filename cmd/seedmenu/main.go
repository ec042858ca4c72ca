// Command seedmenu replaces the menu catalog with the items of one or more menu documents.
//
// Usage:
//
//	seedmenu [source ...]
//
// Sources are file paths or http(s) URLs, optionally gzip-compressed. Without
// arguments MENU_SEED_SOURCE is used. The target store follows STORAGE_DRIVER
// and DATABASE_URL; against the in-memory store the run only validates the documents.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/brewline/coffee-api/internal/config"
	"github.com/brewline/coffee-api/internal/repository"
	"github.com/brewline/coffee-api/internal/seed"
	"github.com/brewline/coffee-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel).With("command", "seedmenu")
	slog.SetDefault(log)

	sources := os.Args[1:]
	if len(sources) == 0 {
		sources = cfg.Menu.SeedSources
	}
	if len(sources) == 0 {
		log.Error("no menu sources given: pass them as arguments or set MENU_SEED_SOURCE")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, sources, log); err != nil {
		log.Error("menu seeding failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, sources []string, log *slog.Logger) error {
	items, err := seed.LoadMenu(ctx, sources...)
	if err != nil {
		return err
	}
	log.Info("menu documents loaded", "sources", sources, "items", len(items))

	var menu repository.MenuRepository
	if cfg.Storage.Driver == config.StoragePostgres {
		pool, err := repository.Connect(ctx, cfg.Storage.DatabaseURL, cfg.Storage.MaxConns, log)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := repository.Migrate(ctx, pool); err != nil {
			return err
		}
		menu = repository.NewPostgresMenuRepository(pool)
	} else {
		log.Warn("storage driver is memory, nothing will be persisted")
		menu = repository.NewInMemoryMenuRepository()
	}

	removed, err := menu.ReplaceAll(ctx, items)
	if err != nil {
		return fmt.Errorf("failed to replace menu: %w", err)
	}

	log.Info("menu replaced", "removed", removed, "inserted", len(items))
	return nil
}
