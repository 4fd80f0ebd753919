package main

import (
	"flag"
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	"github.com/Rishiwant1729/capstone-2-Backend/internal/config"
	"github.com/Rishiwant1729/capstone-2-Backend/internal/extract"
	"github.com/Rishiwant1729/capstone-2-Backend/internal/ratelimit"
	"github.com/Rishiwant1729/capstone-2-Backend/internal/server"
	"github.com/Rishiwant1729/capstone-2-Backend/internal/summarize"
	"github.com/Rishiwant1729/capstone-2-Backend/internal/util"
	"github.com/Rishiwant1729/capstone-2-Backend/internal/workflow"
	"github.com/Rishiwant1729/capstone-2-Backend/pkg/ai"
	"github.com/Rishiwant1729/capstone-2-Backend/pkg/auth"
	"github.com/Rishiwant1729/capstone-2-Backend/pkg/storage"
	"github.com/Rishiwant1729/capstone-2-Backend/pkg/store"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := util.InitLogger(cfg.LogLevel)

	dataStore, err := store.NewGormStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to init store: %v", err)
	}

	var documents storage.ObjectStore
	if cfg.UseMinio() {
		documents, err = storage.NewMinioStore(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
		if err != nil {
			log.Fatalf("failed to init minio storage: %v", err)
		}
	} else {
		documents, err = storage.NewFileStore(cfg.UploadDir)
		if err != nil {
			log.Fatalf("failed to init file storage: %v", err)
		}
	}

	generator, err := ai.NewGenerator(cfg.AIProvider, cfg.AIAPIKey, cfg.AIBaseURL, cfg.AIModel)
	if err != nil {
		log.Fatalf("failed to init ai provider: %v", err)
	}
	if generator == nil {
		slog.Warn("no AI provider configured, summaries will use the local fallback")
	}

	extractor := extract.NewService(documents, "")
	summarizer := summarize.NewService(generator, time.Duration(cfg.AITimeoutSeconds)*time.Second)

	tokens, err := auth.NewTokenManager(cfg.JWTSecret, time.Duration(cfg.TokenTTLMinutes)*time.Minute)
	if err != nil {
		log.Fatalf("failed to init token manager: %v", err)
	}

	var authLimiter server.Limiter
	if cfg.RedisAddr != "" {
		limiter, err := ratelimit.NewRedisFixedWindowLimiter(
			cfg.RedisAddr, cfg.RedisPassword, "booksum:auth",
			cfg.RateLimit, time.Duration(cfg.RateWindowSeconds)*time.Second,
		)
		if err != nil {
			log.Fatalf("failed to init rate limiter: %v", err)
		}
		authLimiter = limiter
	}

	httpServer := server.New(server.Config{
		Store:          dataStore,
		Documents:      documents,
		Tokens:         tokens,
		Ingestor:       workflow.NewIngestor(dataStore, extractor, summarizer),
		Lifecycle:      workflow.NewLifecycle(dataStore, extractor, summarizer, cfg.HonorHighlights()),
		AuthLimiter:    authLimiter,
		MaxUploadBytes: cfg.MaxUploadBytes,
	})

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      httpServer.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	slog.Info("book summarizer listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "err", err)
	}
}
