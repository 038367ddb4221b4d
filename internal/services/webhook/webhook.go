// Package webhook forwards accepted lead submissions to the downstream webhook.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"lead-intake-service/internal/models"
	"lead-intake-service/internal/utils"
)

// Dispatcher sends one POST per accepted submission to the configured URL.
type Dispatcher struct {
	url    string
	client *http.Client
	now    func() time.Time
}

// NewDispatcher creates a dispatcher for the given destination URL. An empty
// URL produces an unconfigured dispatcher; callers check Configured first.
func NewDispatcher(url string) *Dispatcher {
	return &Dispatcher{
		url:    url,
		client: &http.Client{Timeout: 30 * time.Second},
		now:    time.Now,
	}
}

// Configured reports whether a destination URL is set.
func (d *Dispatcher) Configured() bool {
	return d.url != ""
}

// Dispatch builds the webhook payload for the submission, stamps it with the
// dispatch time, and POSTs it once. A non-2xx response is an error.
func (d *Dispatcher) Dispatch(ctx context.Context, sub models.LeadSubmission) error {
	payload := models.NewWebhookPayload(sub, d.now())

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("webhook returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	utils.GetLogger().Info("Dispatched lead to webhook",
		utils.String("url", d.url),
		utils.Int("status", resp.StatusCode))

	return nil
}
