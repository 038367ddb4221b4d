package intake_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lead-intake-service/internal/models"
	"lead-intake-service/internal/services/intake"
)

type fakeAppender struct {
	phones []string
	err    error
}

func (f *fakeAppender) AppendPhone(_ context.Context, phone string) error {
	f.phones = append(f.phones, phone)
	return f.err
}

type fakeDispatcher struct {
	configured bool
	dispatched []models.LeadSubmission
	err        error
}

func (f *fakeDispatcher) Configured() bool { return f.configured }

func (f *fakeDispatcher) Dispatch(_ context.Context, sub models.LeadSubmission) error {
	f.dispatched = append(f.dispatched, sub)
	return f.err
}

type fakeArchiver struct {
	bodies [][]byte
	err    error
}

func (f *fakeArchiver) Archive(_ context.Context, leadID string, body []byte) error {
	f.bodies = append(f.bodies, body)
	return f.err
}

type fakeNotifier struct {
	notified []models.LeadSubmission
	err      error
}

func (f *fakeNotifier) NotifyNewLead(_ context.Context, lead models.LeadSubmission) error {
	f.notified = append(f.notified, lead)
	return f.err
}

func TestProcess_ValidEmailNoPhone(t *testing.T) {
	appender := &fakeAppender{}
	dispatcher := &fakeDispatcher{configured: true}

	svc := intake.NewService(appender, dispatcher, nil, nil)
	result, err := svc.Process(context.Background(), models.LeadSubmission{Email: "a@b.com"}, nil)
	require.NoError(t, err)

	assert.Equal(t, intake.MsgLeadReceived, result.Message)
	assert.NotEmpty(t, result.LeadID)
	assert.Empty(t, appender.phones, "spreadsheet append must not run without a phone")
	assert.Len(t, dispatcher.dispatched, 1)
}

func TestProcess_PhoneAppendsExactString(t *testing.T) {
	appender := &fakeAppender{}
	dispatcher := &fakeDispatcher{configured: true}

	svc := intake.NewService(appender, dispatcher, nil, nil)
	_, err := svc.Process(context.Background(), models.LeadSubmission{Phone: "555-1234"}, nil)
	require.NoError(t, err)

	require.Len(t, appender.phones, 1)
	assert.Equal(t, "555-1234", appender.phones[0])
}

func TestProcess_InvalidEmailWithPhoneIsAccepted(t *testing.T) {
	appender := &fakeAppender{}
	dispatcher := &fakeDispatcher{configured: true}

	svc := intake.NewService(appender, dispatcher, nil, nil)
	result, err := svc.Process(context.Background(), models.LeadSubmission{
		Email: "not-an-email",
		Phone: "555-1234",
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, intake.MsgLeadReceived, result.Message)
	assert.Equal(t, []string{"555-1234"}, appender.phones)

	// The raw malformed email is forwarded downstream unchanged.
	require.Len(t, dispatcher.dispatched, 1)
	assert.Equal(t, "not-an-email", dispatcher.dispatched[0].Email)
}

func TestProcess_ValidationFailureRunsNoSideEffects(t *testing.T) {
	tests := []struct {
		name    string
		sub     models.LeadSubmission
		wantErr error
	}{
		{"empty submission", models.LeadSubmission{}, models.ErrContactRequired},
		{"name and zip only", models.LeadSubmission{Name: "Ann", Zip: "94110"}, models.ErrContactRequired},
		{"whitespace phone", models.LeadSubmission{Phone: "  "}, models.ErrContactRequired},
		{"invalid email no phone", models.LeadSubmission{Email: "not-an-email"}, models.ErrInvalidEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appender := &fakeAppender{}
			dispatcher := &fakeDispatcher{configured: true}
			archiver := &fakeArchiver{}
			notifier := &fakeNotifier{}

			svc := intake.NewService(appender, dispatcher, archiver, notifier)
			_, err := svc.Process(context.Background(), tt.sub, []byte(`{}`))

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, appender.phones)
			assert.Empty(t, dispatcher.dispatched)
			assert.Empty(t, archiver.bodies)
			assert.Empty(t, notifier.notified)
		})
	}
}

func TestProcess_WebhookNotConfigured(t *testing.T) {
	dispatcher := &fakeDispatcher{configured: false}

	svc := intake.NewService(&fakeAppender{}, dispatcher, nil, nil)
	result, err := svc.Process(context.Background(), models.LeadSubmission{Email: "a@b.com"}, nil)
	require.NoError(t, err)

	assert.Equal(t, intake.MsgLeadReceivedNoWebhook, result.Message)
	assert.Empty(t, dispatcher.dispatched)
}

func TestProcess_SideEffectFailuresDoNotFailRequest(t *testing.T) {
	appender := &fakeAppender{err: errors.New("permission denied")}
	dispatcher := &fakeDispatcher{configured: true, err: errors.New("webhook returned status 502")}
	archiver := &fakeArchiver{err: errors.New("bucket missing")}
	notifier := &fakeNotifier{err: errors.New("ses throttled")}

	svc := intake.NewService(appender, dispatcher, archiver, notifier)
	result, err := svc.Process(context.Background(), models.LeadSubmission{
		Email: "a@b.com",
		Phone: "555-1234",
	}, []byte(`{"email":"a@b.com","phone":"555-1234"}`))
	require.NoError(t, err)

	// Every side effect was still attempted exactly once.
	assert.Equal(t, intake.MsgLeadReceived, result.Message)
	assert.Len(t, appender.phones, 1)
	assert.Len(t, dispatcher.dispatched, 1)
	assert.Len(t, archiver.bodies, 1)
	assert.Len(t, notifier.notified, 1)
}

func TestProcess_ArchiverReceivesRawBody(t *testing.T) {
	archiver := &fakeArchiver{}
	raw := []byte(`{"email":"a@b.com","junk":true}`)

	svc := intake.NewService(&fakeAppender{}, &fakeDispatcher{configured: true}, archiver, nil)
	_, err := svc.Process(context.Background(), models.LeadSubmission{Email: "a@b.com"}, raw)
	require.NoError(t, err)

	require.Len(t, archiver.bodies, 1)
	assert.Equal(t, raw, archiver.bodies[0])
}

func TestProcess_DuplicateSubmissionsAppendTwice(t *testing.T) {
	appender := &fakeAppender{}
	dispatcher := &fakeDispatcher{configured: true}

	svc := intake.NewService(appender, dispatcher, nil, nil)
	sub := models.LeadSubmission{Phone: "555-1234"}

	_, err := svc.Process(context.Background(), sub, nil)
	require.NoError(t, err)
	_, err = svc.Process(context.Background(), sub, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"555-1234", "555-1234"}, appender.phones)
	assert.Len(t, dispatcher.dispatched, 2)
}
