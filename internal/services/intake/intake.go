// Package intake implements the lead intake workflow: validate the
// submission, then run each configured side effect once. Side-effect
// failures are logged and never surfaced to the caller.
package intake

import (
	"context"

	"github.com/google/uuid"

	"lead-intake-service/internal/models"
	"lead-intake-service/internal/utils"
)

// Success messages returned to the caller.
const (
	MsgLeadReceived          = "Lead received"
	MsgLeadReceivedNoWebhook = "Lead received (webhook not configured)"
)

// PhoneAppender appends a phone number to the spreadsheet store.
type PhoneAppender interface {
	AppendPhone(ctx context.Context, phone string) error
}

// WebhookDispatcher forwards a submission to the downstream webhook.
type WebhookDispatcher interface {
	Configured() bool
	Dispatch(ctx context.Context, sub models.LeadSubmission) error
}

// Archiver stores the raw request body of a submission.
type Archiver interface {
	Archive(ctx context.Context, leadID string, body []byte) error
}

// Notifier sends a new-lead notification.
type Notifier interface {
	NotifyNewLead(ctx context.Context, lead models.LeadSubmission) error
}

// Service runs the intake workflow. The archiver and notifier are optional;
// nil disables the corresponding side effect.
type Service struct {
	sheets   PhoneAppender
	webhook  WebhookDispatcher
	archiver Archiver
	notifier Notifier
}

// NewService creates a new intake service.
func NewService(sheets PhoneAppender, webhook WebhookDispatcher, archiver Archiver, notifier Notifier) *Service {
	return &Service{
		sheets:   sheets,
		webhook:  webhook,
		archiver: archiver,
		notifier: notifier,
	}
}

// Result describes an accepted submission.
type Result struct {
	LeadID  string
	Message string
}

// Process validates the submission and runs the side effects in order:
// archive, spreadsheet append (phone present only), webhook dispatch,
// notification. A validation failure returns before any side effect runs;
// after that point every outcome is a 200 for the caller.
func (s *Service) Process(ctx context.Context, sub models.LeadSubmission, rawBody []byte) (*Result, error) {
	if err := sub.Validate(); err != nil {
		return nil, err
	}

	logger := utils.GetLogger()
	leadID := uuid.NewString()

	logger.Info("Processing lead submission",
		utils.String("leadId", leadID),
		utils.Bool("hasEmail", sub.Email != ""),
		utils.Bool("hasPhone", sub.HasPhone()),
		utils.String("source", sub.Source))

	if s.archiver != nil && len(rawBody) > 0 {
		if err := s.archiver.Archive(ctx, leadID, rawBody); err != nil {
			logger.Warn("Submission archive failed",
				utils.String("leadId", leadID),
				utils.Error(err))
		}
	}

	if sub.HasPhone() {
		if err := s.sheets.AppendPhone(ctx, sub.Phone); err != nil {
			logger.Warn("Spreadsheet append failed",
				utils.String("leadId", leadID),
				utils.Error(err))
		}
	}

	message := MsgLeadReceived
	if s.webhook != nil && s.webhook.Configured() {
		if err := s.webhook.Dispatch(ctx, sub); err != nil {
			logger.Warn("Webhook dispatch failed",
				utils.String("leadId", leadID),
				utils.Error(err))
		}
	} else {
		logger.Warn("Webhook dispatch skipped: no destination URL configured",
			utils.String("leadId", leadID))
		message = MsgLeadReceivedNoWebhook
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyNewLead(ctx, sub); err != nil {
			logger.Warn("Lead notification failed",
				utils.String("leadId", leadID),
				utils.Error(err))
		}
	}

	return &Result{LeadID: leadID, Message: message}, nil
}
