package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rvasek/gemspeak/internal/api"
	"github.com/rvasek/gemspeak/internal/config"
	"github.com/rvasek/gemspeak/internal/services"
)

func main() {
	log.Println("Starting GemSpeak...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize Gemini TTS service
	ttsSvc := services.NewGeminiServiceWithOptions(
		cfg.GeminiAPIKey,
		cfg.GeminiTTSModel,
		cfg.GeminiAPIBaseURL,
		time.Duration(cfg.RequestTimeoutSeconds)*time.Second,
	)
	log.Printf("TTS provider: Gemini (model: %s)", cfg.GeminiTTSModel)

	if cfg.GeminiAPIKey != "" {
		log.Println("Server-level Gemini API key configured — requests may omit their own key")
	} else {
		log.Println("No GEMINI_API_KEY set — every request must supply a key")
	}

	// Create API handler
	handler := api.NewHandler(ttsSvc, cfg.GeminiAPIKey != "")
	router := api.NewRouter(handler, api.RouterConfig{
		BackendAPIKey:      cfg.BackendAPIKey,
		CorsAllowedOrigins: cfg.CorsAllowedOrigins,
	})

	if cfg.BackendAPIKey != "" {
		log.Println("API key authentication enabled")
	} else {
		log.Println("WARNING: No BACKEND_API_KEY set — API is unprotected (dev mode)")
	}

	// Start HTTP server
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server listening on :%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
