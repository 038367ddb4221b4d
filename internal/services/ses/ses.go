// Package ses provides email notification services via AWS SES
package ses

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"go.uber.org/zap"

	appConfig "lead-intake-service/internal/config"
	"lead-intake-service/internal/models"
	"lead-intake-service/internal/utils"
)

// Service handles SES email operations
type Service struct {
	client      *ses.Client
	fromEmail   string
	notifyEmail string
}

// EmailParams represents parameters for sending an email
type EmailParams struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string
}

// SendEmailResult contains the result of sending an email
type SendEmailResult struct {
	MessageID string
	SentAt    time.Time
}

// NewService creates a new SES service
func NewService(ctx context.Context, appCfg *appConfig.Config) (*Service, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &Service{
		client:      ses.NewFromConfig(cfg),
		fromEmail:   appCfg.SESSenderEmail,
		notifyEmail: appCfg.LeadNotifyEmail,
	}, nil
}

// SendEmail sends a basic email
func (s *Service) SendEmail(ctx context.Context, params EmailParams) (*SendEmailResult, error) {
	input := &ses.SendEmailInput{
		Source: aws.String(s.fromEmail),
		Destination: &types.Destination{
			ToAddresses: []string{params.To},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(params.Subject),
				Charset: aws.String("UTF-8"),
			},
			Body: &types.Body{},
		},
	}

	if params.HTMLBody != "" {
		input.Message.Body.Html = &types.Content{
			Data:    aws.String(params.HTMLBody),
			Charset: aws.String("UTF-8"),
		}
	}

	if params.TextBody != "" {
		input.Message.Body.Text = &types.Content{
			Data:    aws.String(params.TextBody),
			Charset: aws.String("UTF-8"),
		}
	}

	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		utils.Logger.Error("Failed to send email",
			zap.String("to", params.To),
			zap.String("subject", params.Subject),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to send email: %w", err)
	}

	utils.Logger.Info("Email sent successfully",
		zap.String("to", params.To),
		zap.String("subject", params.Subject),
		zap.String("messageId", *result.MessageId),
	)

	return &SendEmailResult{
		MessageID: *result.MessageId,
		SentAt:    time.Now(),
	}, nil
}

// NotifyNewLead sends a new-lead summary email to the notification address.
func (s *Service) NotifyNewLead(ctx context.Context, lead models.LeadSubmission) error {
	htmlBody, err := renderLeadNotificationHTML(lead)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := "New lead received"
	if lead.Source != "" {
		subject = fmt.Sprintf("New lead received via %s", lead.Source)
	}

	_, err = s.SendEmail(ctx, EmailParams{
		To:       s.notifyEmail,
		Subject:  subject,
		HTMLBody: htmlBody,
		TextBody: renderLeadNotificationText(lead),
	})
	return err
}

var leadNotificationTmpl = template.Must(template.New("lead_notification").Parse(`
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; color: #333;">
    <h2>New lead received</h2>
    <table cellpadding="6" style="border-collapse: collapse;">
        <tr><td><b>Name</b></td><td>{{or .Name "-"}}</td></tr>
        <tr><td><b>Email</b></td><td>{{or .Email "-"}}</td></tr>
        <tr><td><b>Phone</b></td><td>{{or .Phone "-"}}</td></tr>
        <tr><td><b>Zip</b></td><td>{{or .Zip "-"}}</td></tr>
        <tr><td><b>Source</b></td><td>{{or .Source "-"}}</td></tr>
    </table>
</body>
</html>`))

// renderLeadNotificationHTML renders the HTML email body
func renderLeadNotificationHTML(lead models.LeadSubmission) (string, error) {
	var buf bytes.Buffer
	if err := leadNotificationTmpl.Execute(&buf, lead); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// renderLeadNotificationText renders the plain text version
func renderLeadNotificationText(lead models.LeadSubmission) string {
	var buf bytes.Buffer

	buf.WriteString("New lead received\n\n")
	buf.WriteString(fmt.Sprintf("Name:   %s\n", orDash(lead.Name)))
	buf.WriteString(fmt.Sprintf("Email:  %s\n", orDash(lead.Email)))
	buf.WriteString(fmt.Sprintf("Phone:  %s\n", orDash(lead.Phone)))
	buf.WriteString(fmt.Sprintf("Zip:    %s\n", orDash(lead.Zip)))
	buf.WriteString(fmt.Sprintf("Source: %s\n", orDash(lead.Source)))

	return buf.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
