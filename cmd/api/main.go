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

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/harentsoaR/mamacare-api/internal/cache"
	"github.com/harentsoaR/mamacare-api/internal/config"
	"github.com/harentsoaR/mamacare-api/internal/handlers"
	"github.com/harentsoaR/mamacare-api/internal/middleware"
	"github.com/harentsoaR/mamacare-api/internal/services"
	"github.com/harentsoaR/mamacare-api/internal/store"
	"github.com/harentsoaR/mamacare-api/internal/utils"
	"github.com/harentsoaR/mamacare-api/internal/youtube"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("Server stopped with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// run serves the API until SIGINT/SIGTERM and releases what it opened.
func run(cfg config.Config, logger *slog.Logger) error {
	logger.Info("Configuration loaded",
		slog.String("mongo_database", cfg.MongoDatabase),
		slog.String("api_port", cfg.Port),
		slog.Bool("youtube_api_key_set", cfg.YouTubeAPIKey != ""),
	)

	// --- Database Connection ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return fmt.Errorf("connecting to MongoDB: %w", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Warn("MongoDB disconnect failed", slog.String("error", err.Error()))
		}
	}()
	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("pinging MongoDB: %w", err)
	}
	db := client.Database(cfg.MongoDatabase)
	if err := store.EnsureIndexes(ctx, db); err != nil {
		return fmt.Errorf("creating indexes: %w", err)
	}
	logger.Info("Successfully connected to MongoDB!")

	// --- Initialize Services ---
	tokens, err := utils.NewTokenService(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	if err != nil {
		return fmt.Errorf("token settings: %w", err)
	}
	passwords := utils.NewPasswordHasher(cfg.BcryptCost)
	accounts := store.NewAccountStore(db)
	videos := store.NewVideoStore(db)
	var metadata youtube.Fetcher = youtube.NewClient(cfg.YouTubeAPIURL, cfg.YouTubeAPIKey, cfg.YouTubeTimeout)
	if cfg.RedisURL != "" {
		rdb, err := cache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connecting to Redis: %w", err)
		}
		defer func() {
			if err := rdb.Close(); err != nil {
				logger.Warn("Redis close failed", slog.String("error", err.Error()))
			}
		}()
		metadata = youtube.NewCachedFetcher(metadata, cache.NewMetadataCache(rdb, cfg.MetadataCacheTTL), logger)
		logger.Info("YouTube metadata cache enabled", slog.Duration("ttl", cfg.MetadataCacheTTL))
	}

	authSvc := services.NewAuthService(accounts, tokens, passwords, logger)
	historySvc := services.NewHistoryService(accounts, logger)
	catalogSvc := services.NewCatalogService(videos, accounts, metadata, logger)

	// --- Initialize Handlers ---
	h := handlers.NewHandler(authSvc, historySvc, catalogSvc, store.Pinger{DB: db}, logger)
	h.RefreshTTL = cfg.RefreshTokenTTL
	h.CookieSecure = cfg.CookieSecure

	// --- Gin Router ---
	gin.SetMode(gin.ReleaseMode)
	r := handlers.NewRouter(h, handlers.RouterConfig{
		Tokens:         tokens,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AuthLimiter:    middleware.NewRateLimiter(cfg.AuthRateLimit, time.Minute, cfg.AuthRateBurst),
		Logger:         logger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Starting server", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		return fmt.Errorf("serving: %w", err)
	case <-quit:
	}
	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	logger.Info("Server exited")
	return nil
}
