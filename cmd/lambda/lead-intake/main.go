// Lead Intake Lambda entry point
package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"

	"lead-intake-service/internal/config"
	"lead-intake-service/internal/handlers"
	"lead-intake-service/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	_ = utils.InitLogger(cfg.LogLevel)
	defer utils.Sync()

	// Create handler
	handler := handlers.NewLeadIntakeHandlerFromConfig(context.Background(), cfg)

	// Start Lambda
	lambda.Start(handler.Handle)
}
