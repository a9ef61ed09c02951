package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Lixing-Zhang/order-desk/internal/cache"
	"github.com/Lixing-Zhang/order-desk/internal/config"
	"github.com/Lixing-Zhang/order-desk/internal/handlers"
	"github.com/Lixing-Zhang/order-desk/internal/repository"
	"github.com/Lixing-Zhang/order-desk/internal/service"
	"github.com/Lixing-Zhang/order-desk/pkg/database"
	"github.com/Lixing-Zhang/order-desk/pkg/logger"
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

	log.Info("starting order desk api server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"log_level", cfg.LogLevel,
	)

	ctx := context.Background()
	healthHandler := handlers.NewHealthHandler(log)

	// Initialize repositories
	var customerRepo repository.CustomerRepository
	var orderRepo repository.OrderRepository

	if cfg.Database.URL != "" {
		pool, err := database.NewPool(ctx, cfg.Database.URL)
		if err != nil {
			log.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		if err := database.Migrate(ctx, pool); err != nil {
			log.Error("failed to apply schema", "error", err)
			os.Exit(1)
		}

		customerRepo = repository.NewPostgresCustomerRepository(pool)
		orderRepo = repository.NewPostgresOrderRepository(pool)
		healthHandler.Register("postgres", pool.Ping)
		log.Info("using postgres store")
	} else {
		customerRepo = repository.NewInMemoryCustomerRepository()
		orderRepo = repository.NewInMemoryOrderRepository()
		log.Info("using in-memory store")
	}

	if cfg.Cache.Addr != "" {
		redisCache := cache.NewRedisCache(cfg.Cache.Addr, "order-desk")
		if err := cache.Ping(ctx, redisCache); err != nil {
			log.Warn("redis unavailable, customer cache disabled", "addr", cfg.Cache.Addr, "error", err)
		} else {
			customerRepo = repository.NewCachedCustomerRepository(customerRepo, redisCache, cfg.Cache.TTL, log)
			healthHandler.Register("redis", func(ctx context.Context) error { return cache.Ping(ctx, redisCache) })
			log.Info("customer cache enabled", "addr", cfg.Cache.Addr, "ttl", cfg.Cache.TTL)
		}
	}

	// Initialize services
	customerService := service.NewCustomerService(customerRepo)
	orderService := service.NewOrderService(customerRepo, orderRepo)

	// Initialize handlers
	customerHandler := handlers.NewCustomerHandler(customerService, log)
	orderHandler := handlers.NewOrderHandler(orderService, log)

	r := handlers.NewRouter(handlers.RouterConfig{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RequestTimeout: time.Duration(cfg.Server.RequestTimeout) * time.Second,
	}, log, healthHandler, customerHandler, orderHandler)

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
