package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/yourhome-ai/yourhome/internal/api"
	"github.com/yourhome-ai/yourhome/internal/auth"
	"github.com/yourhome-ai/yourhome/internal/chat"
	"github.com/yourhome-ai/yourhome/internal/comparison"
	"github.com/yourhome-ai/yourhome/internal/config"
	"github.com/yourhome-ai/yourhome/internal/repository"
	"github.com/yourhome-ai/yourhome/internal/screening"
	"github.com/yourhome-ai/yourhome/internal/service"
	"github.com/yourhome-ai/yourhome/internal/storage"
)

var (
	configPath = flag.String("config", "", "Path to config file")
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	// Object store holds listings and tenant documents
	store, err := storage.NewGCS(ctx, cfg.Storage.Bucket, cfg.Storage.CredentialsFile, cfg.Storage.URLTTL, logger)
	if err != nil {
		logger.Fatal("Failed to initialize object storage", zap.Error(err))
	}
	defer store.Close()

	// Accounts database
	db, err := repository.NewDB(cfg.Database.Path)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	accountRepo := repository.NewAccountRepository(db)

	// Initialize services
	authService := auth.NewService(accountRepo, cfg.Auth.PaymentURL, cfg.Auth.SessionTTL, logger)
	portalService := service.NewPortalService(store, logger)
	evaluator := screening.NewEvaluator(screening.NewOpenAIClient(cfg.LLM), store, logger)
	chatManager := chat.NewManager(store, cfg.RAG, cfg.LLM, logger)
	compareService := comparison.NewService(store, cfg.Comparison.MonthlyRent, logger)

	// Setup router
	router := api.SetupRouter(portalService, evaluator, chatManager, compareService, authService, api.RouterConfig{
		AllowOrigins: []string{"*"},
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Address(),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute, // report synthesis chains several model calls
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Starting YourHome server",
			zap.String("address", cfg.Address()),
			zap.String("base_url", cfg.Server.BaseURL),
			zap.String("bucket", cfg.Storage.Bucket),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
