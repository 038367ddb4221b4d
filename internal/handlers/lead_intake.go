// Package handlers provides HTTP and Lambda handlers for the lead intake service.
package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	appConfig "lead-intake-service/internal/config"
	"lead-intake-service/internal/models"
	"lead-intake-service/internal/services/intake"
	s3service "lead-intake-service/internal/services/s3"
	"lead-intake-service/internal/services/ses"
	"lead-intake-service/internal/services/sheets"
	"lead-intake-service/internal/services/webhook"
	"lead-intake-service/internal/utils"
)

// internalErrorMessage is the body sent on unexpected faults.
const internalErrorMessage = "Internal server error"

// LeadIntakeHandler handles lead-capture submissions on both the HTTP server
// and the Lambda deployment surface.
type LeadIntakeHandler struct {
	intake *intake.Service
}

// NewLeadIntakeHandler creates a handler around an intake service.
func NewLeadIntakeHandler(svc *intake.Service) *LeadIntakeHandler {
	return &LeadIntakeHandler{intake: svc}
}

// NewLeadIntakeHandlerFromConfig wires the full side-effect stack from
// configuration. The archive and notification effects are enabled only when
// their configuration is present.
func NewLeadIntakeHandlerFromConfig(ctx context.Context, cfg *appConfig.Config) *LeadIntakeHandler {
	logger := utils.GetLogger()

	var archiver intake.Archiver
	if cfg.S3Bucket != "" {
		s3Svc, err := s3service.NewService(ctx, cfg)
		if err != nil {
			logger.Warn("Submission archiving disabled", utils.Error(err))
		} else {
			archiver = s3Svc
		}
	} else {
		logger.Info("Submission archiving disabled: no S3 bucket configured")
	}

	var notifier intake.Notifier
	if cfg.SESSenderEmail != "" && cfg.LeadNotifyEmail != "" {
		sesSvc, err := ses.NewService(ctx, cfg)
		if err != nil {
			logger.Warn("Lead notifications disabled", utils.Error(err))
		} else {
			notifier = sesSvc
		}
	} else {
		logger.Info("Lead notifications disabled: sender or recipient not configured")
	}

	svc := intake.NewService(
		sheets.NewService(cfg),
		webhook.NewDispatcher(cfg.WebhookURL),
		archiver,
		notifier,
	)

	return NewLeadIntakeHandler(svc)
}

type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// process parses and runs one submission, returning the status code and
// response body shared by both deployment surfaces.
func (h *LeadIntakeHandler) process(ctx context.Context, body []byte) (int, interface{}) {
	var sub models.LeadSubmission
	if err := json.Unmarshal(body, &sub); err != nil {
		utils.GetLogger().Error("Failed to parse request body", utils.Error(err))
		return http.StatusInternalServerError, errorResponse{Error: internalErrorMessage}
	}

	result, err := h.intake.Process(ctx, sub, body)
	if err != nil {
		// Only validation errors reach here; side-effect failures are
		// contained inside the intake service.
		return http.StatusBadRequest, errorResponse{Error: err.Error()}
	}

	return http.StatusOK, successResponse{Success: true, Message: result.Message}
}

// ServeHTTP handles POST /lead on the HTTP server.
func (h *LeadIntakeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: internalErrorMessage})
		return
	}

	status, resp := h.process(r.Context(), body)
	writeJSON(w, status, resp)
}

// Handle processes API Gateway requests on the Lambda deployment surface.
func (h *LeadIntakeHandler) Handle(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	// CORS headers
	headers := map[string]string{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Headers": "Content-Type",
		"Access-Control-Allow-Methods": "POST,OPTIONS",
		"Content-Type":                 "application/json",
	}

	// Handle CORS preflight
	if request.HTTPMethod == http.MethodOptions {
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusOK,
			Headers:    headers,
		}, nil
	}

	status, resp := h.process(ctx, []byte(request.Body))
	body, _ := json.Marshal(resp)

	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    headers,
		Body:       string(body),
	}, nil
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
