package signupform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/primalspirits/signup-page/pkg/models"
	"github.com/primalspirits/signup-page/pkg/services"
)

// HTTPSubmitter posts signups to the JSON endpoint of a running server
type HTTPSubmitter struct {
	Endpoint   string
	HTTPClient *http.Client
}

// NewHTTPSubmitter creates a submitter for endpoint, e.g.
// http://localhost:8080/api/signup
func NewHTTPSubmitter(endpoint string, httpClient *http.Client) *HTTPSubmitter {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPSubmitter{Endpoint: endpoint, HTTPClient: httpClient}
}

func (s *HTTPSubmitter) Submit(ctx context.Context, req models.SignupRequest) error {
	jsonPayload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("error creating payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Endpoint, bytes.NewReader(jsonPayload))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.HTTPClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("error submitting signup: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errorResponse models.ErrorResponse
		message := MessageSubmitFailed
		if err := json.Unmarshal(body, &errorResponse); err == nil && errorResponse.Error != "" {
			message = errorResponse.Error
		}
		return &SubmitError{Status: resp.StatusCode, Message: message}
	}
	return nil
}

// ServiceSubmitter hands signups straight to the signup service, for forms
// rendered by the same process.
type ServiceSubmitter struct {
	Service services.SignupService
}

func (s ServiceSubmitter) Submit(ctx context.Context, req models.SignupRequest) error {
	if _, err := s.Service.Register(ctx, req); err != nil {
		status, message := services.ErrorStatus(err)
		return &SubmitError{Status: status, Message: message}
	}
	return nil
}
