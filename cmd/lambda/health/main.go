// Health Check Lambda entry point
package main

import (
	"github.com/aws/aws-lambda-go/lambda"

	"lead-intake-service/internal/handlers"
	"lead-intake-service/internal/utils"
)

func main() {
	// Initialize logger
	_ = utils.InitLogger("info")
	defer utils.Sync()

	// Create handler
	handler := handlers.NewHealthHandler()

	// Start Lambda
	lambda.Start(handler.Handle)
}
