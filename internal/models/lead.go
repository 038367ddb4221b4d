// Package models defines the data structures for the lead intake service.
package models

import (
	"regexp"
	"strings"
	"time"
)

// emailPattern accepts local@domain.tld: no whitespace anywhere, at least one
// dot in the domain.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// LeadSubmission represents an incoming lead-capture form submission.
// All fields are optional at the transport level.
type LeadSubmission struct {
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Name   string `json:"name"`
	Zip    string `json:"zip"`
	Source string `json:"source"`
}

// HasPhone reports whether a phone number is present after trimming.
func (l *LeadSubmission) HasPhone() bool {
	return strings.TrimSpace(l.Phone) != ""
}

// HasValidEmail reports whether the email matches the basic pattern.
func (l *LeadSubmission) HasValidEmail() bool {
	return emailPattern.MatchString(l.Email)
}

// Validate enforces the identity requirement: at least one of a valid email
// or a non-empty phone. A phone number alone is enough — an invalid email
// alongside a valid phone is accepted and forwarded downstream as submitted.
func (l *LeadSubmission) Validate() error {
	if l.HasPhone() {
		return nil
	}
	if l.Email == "" {
		return ErrContactRequired
	}
	if !l.HasValidEmail() {
		return ErrInvalidEmail
	}
	return nil
}

// WebhookPayload is the JSON body forwarded to the downstream webhook.
// Absent fields are sent as explicit nulls.
type WebhookPayload struct {
	Email     *string `json:"email"`
	Zip       *string `json:"zip"`
	Name      *string `json:"name"`
	Phone     *string `json:"phone"`
	Source    *string `json:"source"`
	Timestamp string  `json:"timestamp"`
}

// NewWebhookPayload builds the payload for a submission, stamping it with the
// dispatch time in RFC 3339 (ISO-8601) format.
func NewWebhookPayload(sub LeadSubmission, dispatchedAt time.Time) WebhookPayload {
	return WebhookPayload{
		Email:     nullable(sub.Email),
		Zip:       nullable(sub.Zip),
		Name:      nullable(sub.Name),
		Phone:     nullable(sub.Phone),
		Source:    nullable(sub.Source),
		Timestamp: dispatchedAt.UTC().Format(time.RFC3339),
	}
}

// nullable maps an empty string to nil so it marshals as JSON null.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
