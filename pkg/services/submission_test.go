package services

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/primalspirits/signup-page/pkg/clients/brevo"
	"github.com/primalspirits/signup-page/pkg/models"
	"github.com/primalspirits/signup-page/pkg/observability"
)

type fakeBrevo struct {
	calls  int
	record models.ContactRecord
	listID int64
	result *brevo.ContactResult
	err    error
}

func (f *fakeBrevo) CreateOrUpdateContact(ctx context.Context, record models.ContactRecord, listID int64) (*brevo.ContactResult, error) {
	f.calls++
	f.record = record
	f.listID = listID
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	return &brevo.ContactResult{ID: 1, StatusCode: 201}, nil
}

var validRequest = models.SignupRequest{
	FullName: "Jane Doe",
	Email:    "jane@example.com",
	Phone:    "+27821234567",
}

func TestRegister_Success(t *testing.T) {
	client := &fakeBrevo{}
	metrics := observability.NewTestMetrics()
	svc := NewSignupService(client, SignupConfig{APIKey: "k", ListID: 3}, metrics)

	resp, err := svc.Register(context.Background(), validRequest)
	require.NoError(t, err)

	assert.Equal(t, SuccessMessage, resp.Message)
	assert.Equal(t, 1, client.calls)
	assert.Equal(t, int64(3), client.listID)
	assert.Equal(t, models.ContactRecord{
		Email:     "jane@example.com",
		FirstName: "Jane",
		LastName:  "Doe",
		Phone:     "+27821234567",
	}, client.record)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.SubmissionsTotal.WithLabelValues(observability.OutcomeSuccess)))
}

func TestRegister_SplitsMultiPartNames(t *testing.T) {
	client := &fakeBrevo{}
	svc := NewSignupService(client, SignupConfig{APIKey: "k", ListID: 3}, nil)

	req := validRequest
	req.FullName = "  Jane   Q Public "
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "Jane", client.record.FirstName)
	assert.Equal(t, "Q Public", client.record.LastName)
}

func TestRegister_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		req  models.SignupRequest
	}{
		{name: "empty", req: models.SignupRequest{}},
		{name: "blank name", req: models.SignupRequest{FullName: "   ", Email: "jane@example.com", Phone: "+27821234567"}},
		{name: "no email", req: models.SignupRequest{FullName: "Jane Doe", Phone: "+27821234567"}},
		{name: "no phone", req: models.SignupRequest{FullName: "Jane Doe", Email: "jane@example.com"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeBrevo{}
			svc := NewSignupService(client, SignupConfig{APIKey: "k", ListID: 3}, nil)

			_, err := svc.Register(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Equal(t, 0, client.calls, "no provider call on invalid input")
		})
	}
}

func TestRegister_MissingAPIKey(t *testing.T) {
	client := &fakeBrevo{}
	metrics := observability.NewTestMetrics()
	svc := NewSignupService(client, SignupConfig{ListID: 3}, metrics)

	_, err := svc.Register(context.Background(), validRequest)
	assert.ErrorIs(t, err, ErrConfiguration)
	assert.Equal(t, 0, client.calls)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.SubmissionsTotal.WithLabelValues(observability.OutcomeConfiguration)))
}

func TestRegister_ProviderErrorPassesThrough(t *testing.T) {
	perr := &brevo.ProviderError{StatusCode: 400, Code: "duplicate_parameter", Message: "SMS is already associated with another Contact"}
	client := &fakeBrevo{err: perr}
	svc := NewSignupService(client, SignupConfig{APIKey: "k", ListID: 3}, observability.NewTestMetrics())

	_, err := svc.Register(context.Background(), validRequest)

	var got *brevo.ProviderError
	require.True(t, errors.As(err, &got))
	assert.Same(t, perr, got)
	assert.Equal(t, 1, client.calls)
}

func TestRegister_TransportError(t *testing.T) {
	client := &fakeBrevo{err: errors.New("dial tcp: connection refused")}
	metrics := observability.NewTestMetrics()
	svc := NewSignupService(client, SignupConfig{APIKey: "k", ListID: 3}, metrics)

	_, err := svc.Register(context.Background(), validRequest)
	require.Error(t, err)

	var perr *brevo.ProviderError
	assert.False(t, errors.As(err, &perr))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.SubmissionsTotal.WithLabelValues(observability.OutcomeTransport)))
}
