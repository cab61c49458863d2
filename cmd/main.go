package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/shopveda/storefront/internal/backend"
	"github.com/shopveda/storefront/internal/cart"
	h "github.com/shopveda/storefront/internal/http"
	"github.com/shopveda/storefront/internal/provider"
	"github.com/shopveda/storefront/internal/service"
)

type Config struct {
	HTTPPort          string
	APIBaseURL        string
	ProviderBaseURL   string
	ProviderSecretKey string
	RedisAddr         string
	RedisPassword     string
	JWTSecret         string
	RequestTimeout    time.Duration
	ShutdownTimeout   time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:          getEnv("HTTP_PORT", "8080"),
		APIBaseURL:        getEnv("API_BASE_URL", "http://localhost:5000"),
		ProviderBaseURL:   getEnv("PROVIDER_BASE_URL", "https://api.stripe.com"),
		ProviderSecretKey: getEnv("PROVIDER_SECRET_KEY", ""),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		RequestTimeout:    30 * time.Second,
		ShutdownTimeout:   10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	log.Println("storefront starting...")

	cfg := loadConfig()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	if cfg.ProviderSecretKey == "" {
		log.Fatal("PROVIDER_SECRET_KEY is required")
	}

	ctx := context.Background()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("Redis connection failed:", err)
	}
	log.Printf("Connected to Redis at %s", cfg.RedisAddr)

	cartStore := cart.NewRedisStore(redisClient)
	backendClient := backend.NewClient(cfg.APIBaseURL, cfg.RequestTimeout)
	confirmer := provider.NewStripeClient(cfg.ProviderBaseURL, cfg.ProviderSecretKey, cfg.RequestTimeout)
	checkoutService := service.NewCheckoutService(cartStore, backendClient, confirmer)

	cartHandler := h.NewCartHandler(cartStore, cfg.RequestTimeout)
	checkoutHandler := h.NewCheckoutHandler(checkoutService, cartStore, cfg.RequestTimeout)
	ordersHandler := h.NewOrdersHandler(backendClient, cfg.RequestTimeout)

	// Setup router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(h.RequestIDMiddleware)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(h.AuthMiddleware([]byte(cfg.JWTSecret)))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.Clear)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{product_id}", cartHandler.UpdateQuantity)
			r.Delete("/items/{product_id}", cartHandler.RemoveItem)
		})

		r.Post("/checkout", checkoutHandler.PlaceOrder)
		r.Get("/orders", ordersHandler.ListOrders)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(r, "storefront"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Storefront listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
