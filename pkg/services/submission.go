package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/primalspirits/signup-page/pkg/clients/brevo"
	"github.com/primalspirits/signup-page/pkg/models"
	"github.com/primalspirits/signup-page/pkg/observability"
	"github.com/primalspirits/signup-page/pkg/utils"
)

// SuccessMessage is returned to the visitor after a successful signup
const SuccessMessage = "Thanks for signing up!"

var (
	// ErrValidation means a required field was missing or blank
	ErrValidation = errors.New("all fields are required")
	// ErrConfiguration means the provider API key is not configured
	ErrConfiguration = errors.New("missing provider API key")
)

// SignupService defines the interface for handling signup submissions
type SignupService interface {
	Register(ctx context.Context, req models.SignupRequest) (*models.SignupResponse, error)
}

// SignupConfig carries the provider settings the service needs
type SignupConfig struct {
	APIKey string
	ListID int64
}

type signupServiceImpl struct {
	brevoClient brevo.Client
	config      SignupConfig
	metrics     *observability.Metrics
	validate    *validator.Validate
}

// NewSignupService creates a new signup service
func NewSignupService(
	brevoClient brevo.Client,
	config SignupConfig,
	metrics *observability.Metrics,
) SignupService {
	return &signupServiceImpl{
		brevoClient: brevoClient,
		config:      config,
		metrics:     metrics,
		validate:    validator.New(),
	}
}

// Register validates the request and registers the contact with one
// provider call. Provider failures come back as *brevo.ProviderError.
func (s *signupServiceImpl) Register(ctx context.Context, req models.SignupRequest) (*models.SignupResponse, error) {
	req = req.Trim()

	if err := s.validate.Struct(req); err != nil {
		s.record(observability.OutcomeValidation)
		missing := missingFields(err)
		slog.WarnContext(ctx, "signup rejected", "missing_fields", missing)
		return nil, fmt.Errorf("%w: %s", ErrValidation, strings.Join(missing, ", "))
	}

	if s.config.APIKey == "" {
		s.record(observability.OutcomeConfiguration)
		slog.ErrorContext(ctx, "BREVO_API_KEY is missing, signups cannot be registered")
		return nil, ErrConfiguration
	}

	record := models.NewContactRecord(req)
	logger := slog.With(
		"email_hash", utils.Fingerprint(record.Email),
		"phone_hash", utils.Fingerprint(record.Phone),
		"list_id", s.config.ListID,
	)
	logger.InfoContext(ctx, "registering contact")

	start := time.Now()
	result, err := s.brevoClient.CreateOrUpdateContact(ctx, record, s.config.ListID)
	if err != nil {
		var perr *brevo.ProviderError
		if errors.As(err, &perr) {
			s.observeProvider(strconv.Itoa(perr.StatusCode), start)
			s.record(observability.OutcomeProvider)
			logger.WarnContext(ctx, "provider rejected contact", "status", perr.StatusCode, "code", perr.Code, "message", perr.Message)
			return nil, err
		}
		s.observeProvider("transport", start)
		s.record(observability.OutcomeTransport)
		logger.ErrorContext(ctx, "provider call failed", "error", err)
		return nil, err
	}

	s.observeProvider(strconv.Itoa(result.StatusCode), start)
	s.record(observability.OutcomeSuccess)
	logger.InfoContext(ctx, "contact registered", "contact_id", result.ID)

	return &models.SignupResponse{Message: SuccessMessage}, nil
}

func (s *signupServiceImpl) record(outcome string) {
	if s.metrics == nil {
		return
	}
	s.metrics.SubmissionsTotal.WithLabelValues(outcome).Inc()
}

func (s *signupServiceImpl) observeProvider(status string, start time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.ProviderDuration.WithLabelValues(status).Observe(time.Since(start).Seconds())
}

func missingFields(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return fields
}
