// Package models defines the data structures for the lead intake service.
package models

import "errors"

// Validation errors returned to the client. The messages are part of the API
// contract and are sent verbatim in the response body.
var (
	ErrContactRequired = errors.New("Email or phone number is required")
	ErrInvalidEmail    = errors.New("Invalid email address")
)
