package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Lixing-Zhang/restaurant-api/internal/config"
	"github.com/Lixing-Zhang/restaurant-api/internal/database"
	"github.com/Lixing-Zhang/restaurant-api/internal/handlers"
	"github.com/Lixing-Zhang/restaurant-api/internal/repository"
	"github.com/Lixing-Zhang/restaurant-api/internal/seed"
	"github.com/Lixing-Zhang/restaurant-api/internal/service"
	"github.com/Lixing-Zhang/restaurant-api/internal/validation"
	"github.com/Lixing-Zhang/restaurant-api/pkg/logger"
)

// stores bundles the repositories selected by STORE_DRIVER
type stores struct {
	menu   repository.MenuRepository
	orders repository.OrderRepository
	pinger handlers.Pinger
	close  func()
}

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

	log.Info("starting restaurant api server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"store", cfg.Store.Driver,
		"log_level", cfg.LogLevel,
	)

	ctx := context.Background()

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Error("failed to open store", "error", err)
		os.Exit(1)
	}

	loc, err := prepareStores(ctx, cfg, st, log)
	if err != nil {
		log.Error("failed to prepare store", "error", err)
		os.Exit(1)
	}
	defer st.close()

	// Initialize services
	v := validation.New()
	menuService := service.NewMenuService(st.menu, v)
	orderService := service.NewOrderService(st.menu, st.orders, v)
	reportService := service.NewReportService(st.orders, loc)

	r := newRouter(routerDeps{
		log:            log,
		health:         handlers.NewHealthHandler(log, st.pinger),
		menu:           handlers.NewMenuHandler(menuService, log),
		orders:         handlers.NewOrderHandler(orderService, log),
		reports:        handlers.NewReportHandler(reportService, log),
		requestTimeout: cfg.Server.RequestTimeout,
		allowedOrigins: cfg.CORS.AllowedOrigins,
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serverErr:
		log.Error("server failed to start", "error", err)
		st.close()
		os.Exit(1)
	}

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}

	log.Info("server stopped gracefully")
}

// prepareStores seeds st and resolves the report zone. On failure st is
// closed before returning.
func prepareStores(ctx context.Context, cfg *config.Config, st *stores, log *slog.Logger) (*time.Location, error) {
	if cfg.Store.SeedOnStartup {
		n, err := seed.Menu(ctx, st.menu)
		if err != nil {
			st.close()
			return nil, fmt.Errorf("seed menu: %w", err)
		}
		if n > 0 {
			log.Info("seeded default menu", "items", n)
		}
	}

	loc, err := cfg.Location()
	if err != nil {
		st.close()
		return nil, err
	}

	return loc, nil
}

func openStores(ctx context.Context, cfg *config.Config, log *slog.Logger) (*stores, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		menu := repository.NewInMemoryMenuRepository()
		return &stores{
			menu:   menu,
			orders: repository.NewInMemoryOrderRepository(menu),
			close:  func() {},
		}, nil

	case config.StoreDriverPostgres:
		pool, err := database.Connect(ctx, cfg.DatabaseURL(), database.Options{
			MaxConns: cfg.Database.MaxConns,
			MinConns: cfg.Database.MinConns,
			Retries:  cfg.Database.ConnectRetries,
		}, log)
		if err != nil {
			return nil, err
		}

		if cfg.Store.AutoMigrate {
			if err := database.Migrate(ctx, pool, log); err != nil {
				pool.Close()
				return nil, err
			}
		}

		return &stores{
			menu:   repository.NewPostgresMenuRepository(pool),
			orders: repository.NewPostgresOrderRepository(pool),
			pinger: pool,
			close:  pool.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
