package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/spendio/spendio-api/internal/config"
	"github.com/spendio/spendio-api/internal/domain/auth"
	"github.com/spendio/spendio-api/internal/domain/realtime"
	"github.com/spendio/spendio-api/internal/domain/stats"
	"github.com/spendio/spendio-api/internal/domain/transaction"
	"github.com/spendio/spendio-api/internal/domain/user"
	"github.com/spendio/spendio-api/internal/domain/wallet"
	"github.com/spendio/spendio-api/internal/middleware"
	"github.com/spendio/spendio-api/internal/pkg/database"
	"github.com/spendio/spendio-api/internal/pkg/imaging"
	"github.com/spendio/spendio-api/internal/pkg/jwt"
	"github.com/spendio/spendio-api/internal/pkg/logger"
	pkgresponse "github.com/spendio/spendio-api/internal/pkg/response"
	"github.com/spendio/spendio-api/internal/pkg/storage"
	"github.com/spendio/spendio-api/internal/pkg/upload"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env})

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting Spendio API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redisClient, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redisClient)

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)

	store, err := newStorage(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StorageDriver).Msg("Failed to create object storage")
	}
	uploader := upload.NewService(store, imaging.NewProcessor(imaging.DefaultConfig()))

	// ---------- WebSocket hub ----------
	hub := realtime.NewHub(redisClient)
	go hub.Run()
	defer hub.Shutdown()

	// ---------- Repositories ----------
	userRepo := user.NewRepository(db)
	walletRepo := wallet.NewRepository(db)
	transactionRepo := transaction.NewRepository(db)

	// ---------- Services ----------
	authService := auth.NewService(userRepo, jwtService, redisClient)
	userService := user.NewService(userRepo, uploader)
	statsService := stats.NewService(transactionRepo, redisClient, cfg.StatsCacheTTL)
	walletService := wallet.NewService(walletRepo, uploader, hub)
	transactionService := transaction.NewService(transactionRepo, walletRepo, uploader, hub, statsService)

	// ---------- Handlers ----------
	authHandler := auth.NewHandler(authService)
	userHandler := user.NewHandler(userService)
	walletHandler := wallet.NewHandler(walletService)
	transactionHandler := transaction.NewHandler(transactionService)
	statsHandler := stats.NewHandler(statsService)
	realtimeHandler := realtime.NewHandler(hub, cfg.AllowedOrigins)

	authMiddleware := middleware.Auth(jwtService)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.Metrics)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	// WebSocket endpoint (before Compress)
	r.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if token != "" {
			r.Header.Set("Authorization", "Bearer "+token)
		}
		authMiddleware(http.HandlerFunc(realtimeHandler.WebSocket)).ServeHTTP(w, r)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})
	r.Handle("/metrics", promhttp.Handler())

	if local, ok := store.(*storage.LocalStorage); ok {
		r.Mount("/files", local.FileServer())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(chimw.Compress(5))

		r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
			pkgresponse.OK(w, map[string]string{"message": "pong"})
		})

		r.Mount("/auth", authHandler.Routes(authMiddleware))
		r.Mount("/users", userHandler.Routes(authMiddleware))
		r.Mount("/wallets", walletHandler.Routes(authMiddleware))
		r.Mount("/transactions", transactionHandler.Routes(authMiddleware))
		r.Mount("/stats", statsHandler.Routes(authMiddleware))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

func newStorage(cfg *config.Config) (storage.Storage, error) {
	if cfg.StorageDriver == "local" {
		return storage.NewLocalStorage(cfg.LocalStorePath, "/files")
	}
	return storage.NewS3Storage(storage.Config{
		S3Endpoint:  cfg.S3Endpoint,
		S3Region:    cfg.S3Region,
		S3AccessKey: cfg.S3AccessKey,
		S3SecretKey: cfg.S3SecretKey,
		S3Bucket:    cfg.S3Bucket,
		S3PublicURL: cfg.S3PublicURL,
	})
}
