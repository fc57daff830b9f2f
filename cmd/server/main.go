package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/medo-health/assistant-api/internal/config"
	"github.com/medo-health/assistant-api/internal/db"
	"github.com/medo-health/assistant-api/internal/extractor"
	"github.com/medo-health/assistant-api/internal/groq"
	"github.com/medo-health/assistant-api/internal/handlers"
	"github.com/medo-health/assistant-api/internal/ollama"
	"github.com/medo-health/assistant-api/internal/repository"
	"github.com/medo-health/assistant-api/internal/router"
	"github.com/medo-health/assistant-api/internal/services"
	"github.com/medo-health/assistant-api/internal/storage"
	"github.com/medo-health/assistant-api/internal/tts"
	"github.com/medo-health/assistant-api/internal/uploads"
	"github.com/medo-health/assistant-api/internal/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger := utils.NewLogger(cfg.LogLevel)

	if cfg.GroqAPIKey == "" {
		logger.Warn("GROQ_API_KEY not set; doctor analyze/transcribe endpoints will fail upstream")
	}
	if cfg.ElevenLabsAPIKey == "" {
		logger.Warn("ELEVENLABS_API_KEY not set; doctor speak endpoint will fail upstream")
	}

	// Initialize database for the health library
	database, err := db.Open(cfg.DatabasePath)
	if err != nil {
		logger.Fatal("Failed to open database", "error", err)
	}
	defer database.Close()

	if err := db.RunMigrations(database, "internal/db/migrations"); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	// Transient upload store
	uploadStore, err := uploads.NewStore(cfg.UploadDir, cfg.MaxFileSize, logger)
	if err != nil {
		logger.Fatal("Failed to initialize upload store", "error", err)
	}

	// Audio artifact store
	audioStore, err := storage.NewS3AudioStore(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize audio store", "error", err)
	}

	// Upstream clients
	backend := ollama.NewClient(cfg.OllamaBaseURL, cfg.OllamaModel)
	visionClient := groq.NewClient(cfg.GroqAPIKey, cfg.GroqBaseURL, cfg.GroqVisionModel, cfg.GroqWhisperModel, logger)
	speechClient := tts.NewClient(cfg.ElevenLabsAPIKey, cfg.ElevenLabsBaseURL, cfg.ElevenLabsVoice, logger)

	// Services
	chatService := services.NewChatService(backend, extractor.New(logger), uploadStore, logger)
	doctorService := services.NewDoctorService(visionClient, speechClient, audioStore, uploadStore, logger)
	libraryService := services.NewLibraryService(repository.NewArticleRepository(database), logger)

	// Handlers and router
	chatHandler := handlers.NewChatHandler(chatService, uploadStore, cfg.MaxFileSize, logger)
	doctorHandler := handlers.NewDoctorHandler(doctorService, uploadStore, cfg.MaxFileSize, logger)
	libraryHandler := handlers.NewLibraryHandler(libraryService, logger)

	handler := router.New(chatHandler, doctorHandler, libraryHandler, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	go func() {
		logger.Info("Starting server", "port", cfg.Port, "model", cfg.OllamaModel)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}
