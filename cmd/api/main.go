package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"upasana-backend/config"
	"upasana-backend/internal/delivery/http/middleware"
	v1 "upasana-backend/internal/delivery/http/v1"
	"upasana-backend/internal/domain"
	"upasana-backend/internal/infrastructure/auth"
	"upasana-backend/internal/infrastructure/cache"
	"upasana-backend/internal/infrastructure/catalog"
	"upasana-backend/internal/infrastructure/orderapi"
	"upasana-backend/internal/repository/memstore"
	"upasana-backend/internal/repository/pgstore"
	"upasana-backend/internal/usecase"
	"upasana-backend/pkg/logger"
	"upasana-backend/pkg/utils"

	"github.com/NYTimes/gziphandler"
)

func main() {
	cfg := config.LoadConfig()
	utils.SetSecret(cfg.JWTSecret)

	// Initialize Logger
	logger.Init(cfg.Env, cfg.LogLevel)
	log := logger.Get()

	// Collection store: Postgres when a DSN is configured, otherwise an
	// in-memory store that lives and dies with the process.
	var store domain.CollectionStore
	if cfg.DBUrl != "" {
		pgxPool, err := pgstore.NewPgxPool(context.Background(), cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer pgxPool.Close()
		if err := pgstore.Migrate(context.Background(), pgxPool); err != nil {
			log.Fatal().Err(err).Msg("Failed to run migrations")
		}
		log.Info().Msg("Successfully connected to PostgreSQL via pgx")
		store = pgstore.NewCollectionStore(pgxPool)
	} else {
		log.Warn().Msg("DB_DSN not set; carts will not survive restarts")
		store = memstore.New()
	}

	// Initialize Cache (In-Memory)
	// Default expiration 30m, cleanup every 60m
	memCache := cache.NewMemoryCache(30*time.Minute, 60*time.Minute)

	// Remote commerce API clients
	catalogClient := catalog.NewClient(cfg.CommerceAPIURL, cfg.CommerceAPITimeout)
	orderClient := orderapi.NewClient(cfg.CommerceAPIURL, cfg.CommerceAPITimeout)

	// --- Modules Initialization ---

	catalogUC := usecase.NewCatalogUsecase(catalogClient, memCache, cfg.CacheProductTTL)
	pricing := usecase.NewPricing(cfg)

	cartUC := usecase.NewCartUsecase(store, catalogUC, pricing, cfg.MaxCartQuantity)
	cartHandler := v1.NewCartHandler(cartUC)
	wishlistHandler := v1.NewWishlistHandler(cartUC)

	checkoutUC := usecase.NewCheckoutUsecase(cartUC, auth.ContextChecker{}, orderClient, pricing)
	checkoutHandler := v1.NewCheckoutHandler(checkoutUC)

	// Set up Router
	mux := http.NewServeMux()

	// Cart
	mux.HandleFunc("GET /api/v1/cart", cartHandler.GetCart)
	mux.HandleFunc("POST /api/v1/cart", cartHandler.AddToCart)
	mux.HandleFunc("PUT /api/v1/cart/{entryId}", cartHandler.UpdateQuantity)
	mux.HandleFunc("DELETE /api/v1/cart/{entryId}", cartHandler.RemoveItem)
	mux.HandleFunc("POST /api/v1/cart/{entryId}/save", wishlistHandler.SaveForLater)

	// Wishlist
	mux.HandleFunc("GET /api/v1/wishlist", wishlistHandler.GetWishlist)
	mux.HandleFunc("POST /api/v1/wishlist/{entryId}/move", wishlistHandler.MoveToCart)

	// Checkout
	mux.HandleFunc("POST /api/v1/checkout", checkoutHandler.Checkout)

	// Health Check
	healthHandler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok"}`))
	}
	mux.HandleFunc("GET /api/v1/health", healthHandler)
	mux.HandleFunc("GET /health", healthHandler) // Support root health check for Load Balancers

	addr := fmt.Sprintf(":%s", cfg.Port)

	// Initialize Rate Limiter with lifecycle management
	// 50 req/s, burst 100, cleanup every minute, TTL 3 minutes
	rateLimiter := middleware.NewRateLimiter(
		context.Background(),
		50,            // requests per second
		100,           // burst
		time.Minute,   // cleanup period
		3*time.Minute, // client TTL
	)

	// Request Logger sits innermost so it sees the session and user the
	// earlier middleware put in the context.
	handler := middleware.RequestLogger(mux)
	handler = middleware.OptionalAuth(handler)
	handler = middleware.Session(handler)
	handler = middleware.NewCORSMiddleware(cfg)(handler)
	handler = rateLimiter.Middleware()(handler)
	handler = gziphandler.GzipHandler(handler)

	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Graceful Shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	logger.ServiceStart("upasana-backend", cfg.Port)

	// Wait for interrupt signal via channel
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")

	rateLimiter.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}
