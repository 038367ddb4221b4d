// Package main provides the local/long-running HTTP server for the lead
// intake service.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/rs/cors"

	"lead-intake-service/internal/config"
	"lead-intake-service/internal/handlers"
	"lead-intake-service/internal/utils"
)

func main() {
	// Load config first so the logger picks up LOG_LEVEL
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := utils.InitLogger(cfg.LogLevel); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer utils.Sync()

	logger := utils.GetLogger()

	ctx := context.Background()
	leadHandler := handlers.NewLeadIntakeHandlerFromConfig(ctx, cfg)

	// Setup routes
	mux := http.NewServeMux()
	mux.Handle("/lead", leadHandler)
	mux.Handle("/health", handlers.NewHealthHandler())

	// Setup CORS: the form posting to /lead is served from another origin
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})

	handler := c.Handler(mux)

	port := getEnvOrDefault("PORT", "8080")
	addr := fmt.Sprintf("0.0.0.0:%s", port)

	logger.Info("Lead intake service starting",
		utils.String("addr", addr),
		utils.String("stage", cfg.Stage))

	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
