// Package sheets provides the spreadsheet-backed store for lead phone numbers.
package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"

	appConfig "lead-intake-service/internal/config"
	"lead-intake-service/internal/utils"
)

// ErrNoCredentials signals that neither credential form is fully configured.
var ErrNoCredentials = errors.New("no spreadsheet credentials configured")

// CredentialSource identifies which configuration form the credentials came from.
type CredentialSource string

const (
	CredentialSourceJSON  CredentialSource = "json_blob"
	CredentialSourceSplit CredentialSource = "split_fields"
)

// Credentials is the resolved service-account identity used for sheet access.
type Credentials struct {
	ClientEmail string
	PrivateKey  string
	Source      CredentialSource
}

// ResolveCredentials picks between the two supported credential forms. The
// JSON blob takes precedence when both are present. The split-field private
// key carries literal \n escapes that are unescaped to real newlines.
func ResolveCredentials(cfg *appConfig.Config) (*Credentials, error) {
	if cfg.GoogleCredentialsJSON != "" {
		var blob struct {
			ClientEmail string `json:"client_email"`
			PrivateKey  string `json:"private_key"`
		}
		if err := json.Unmarshal([]byte(cfg.GoogleCredentialsJSON), &blob); err != nil {
			return nil, fmt.Errorf("failed to parse credentials JSON: %w", err)
		}
		if blob.ClientEmail == "" || blob.PrivateKey == "" {
			return nil, errors.New("credentials JSON is missing client_email or private_key")
		}
		return &Credentials{
			ClientEmail: blob.ClientEmail,
			PrivateKey:  blob.PrivateKey,
			Source:      CredentialSourceJSON,
		}, nil
	}

	if cfg.GoogleClientEmail != "" && cfg.GooglePrivateKey != "" {
		return &Credentials{
			ClientEmail: cfg.GoogleClientEmail,
			PrivateKey:  strings.ReplaceAll(cfg.GooglePrivateKey, `\n`, "\n"),
			Source:      CredentialSourceSplit,
		}, nil
	}

	return nil, ErrNoCredentials
}

// Service appends lead phone numbers to the shared spreadsheet.
type Service struct {
	cfg *appConfig.Config
}

// NewService creates a new sheets service.
func NewService(cfg *appConfig.Config) *Service {
	return &Service{cfg: cfg}
}

// AppendPhone appends one row containing the phone number to the first
// column of the configured sheet. Credentials are resolved per attempt.
func (s *Service) AppendPhone(ctx context.Context, phone string) error {
	logger := utils.GetLogger()

	creds, err := ResolveCredentials(s.cfg)
	if err != nil {
		return err
	}

	logger.Debug("Resolved spreadsheet credentials",
		utils.String("source", string(creds.Source)),
		utils.String("clientEmail", creds.ClientEmail))

	svc, err := s.sheetsClient(ctx, creds)
	if err != nil {
		return fmt.Errorf("failed to build sheets client: %w", err)
	}

	// Sanity check: read one cell before appending. A failure here is logged
	// but does not abort the append attempt.
	checkRange := fmt.Sprintf("%s!A1", s.cfg.SheetName)
	if _, err := svc.Spreadsheets.Values.Get(s.cfg.SpreadsheetID, checkRange).Context(ctx).Do(); err != nil {
		logger.Warn("Sheet access check failed",
			utils.String("range", checkRange),
			utils.Error(err))
	}

	appendRange := fmt.Sprintf("%s!A:A", s.cfg.SheetName)
	values := &sheetsv4.ValueRange{
		Values: [][]interface{}{{phone}},
	}

	_, err = svc.Spreadsheets.Values.Append(s.cfg.SpreadsheetID, appendRange, values).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) {
			return fmt.Errorf("sheets append returned status %d: %s", gerr.Code, gerr.Message)
		}
		return fmt.Errorf("sheets append failed: %w", err)
	}

	logger.Info("Appended phone number to sheet",
		utils.String("spreadsheetId", s.cfg.SpreadsheetID),
		utils.String("range", appendRange))

	return nil
}

// sheetsClient builds an authorized Sheets API client from the credentials.
func (s *Service) sheetsClient(ctx context.Context, creds *Credentials) (*sheetsv4.Service, error) {
	conf := &jwt.Config{
		Email:      creds.ClientEmail,
		PrivateKey: []byte(creds.PrivateKey),
		Scopes:     []string{sheetsv4.SpreadsheetsScope},
		TokenURL:   google.JWTTokenURL,
	}

	return sheetsv4.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
}
