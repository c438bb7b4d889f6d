package brevo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/primalspirits/signup-page/pkg/models"
)

// DefaultBaseURL is the Brevo v3 REST API root
const DefaultBaseURL = "https://api.brevo.com/v3"

// Client defines the interface for registering contacts with Brevo
type Client interface {
	CreateOrUpdateContact(ctx context.Context, record models.ContactRecord, listID int64) (*ContactResult, error)
}

// ContactResult is the parsed success body. ID is zero when Brevo updated an
// existing contact and answered 204.
type ContactResult struct {
	ID         int64 `json:"id"`
	StatusCode int   `json:"-"`
}

// ProviderError is a non-2xx answer from Brevo. Message is passed through
// verbatim so callers can match on provider wording.
type ProviderError struct {
	StatusCode int
	Code       string
	Message    string
	Body       []byte
}

func (e *ProviderError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("brevo: %d %s: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("brevo: %d: %s", e.StatusCode, e.Message)
}

type createContactPayload struct {
	Email         string            `json:"email"`
	ListIDs       []int64           `json:"listIds"`
	UpdateEnabled bool              `json:"updateEnabled"`
	Attributes    map[string]string `json:"attributes"`
}

type clientImpl struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Brevo client. A nil httpClient uses http.DefaultClient.
func NewClient(apiKey, baseURL string, httpClient *http.Client) Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &clientImpl{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *clientImpl) CreateOrUpdateContact(ctx context.Context, record models.ContactRecord, listID int64) (*ContactResult, error) {
	payload := createContactPayload{
		Email:         record.Email,
		ListIDs:       []int64{listID},
		UpdateEnabled: true,
		Attributes: map[string]string{
			"FIRSTNAME": record.FirstName,
			"LASTNAME":  record.LastName,
			"SMS":       record.Phone,
			"EMAIL":     record.Email,
		},
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("error creating payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/contacts", bytes.NewReader(jsonPayload))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("api-key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error creating contact: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, parseProviderError(resp.StatusCode, body)
	}

	result := &ContactResult{StatusCode: resp.StatusCode}
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, result); err != nil {
			return nil, fmt.Errorf("error parsing response: %w", err)
		}
	}

	slog.Debug("brevo contact registered", "status", resp.StatusCode, "contact_id", result.ID, "list_id", listID)
	return result, nil
}

func parseProviderError(status int, body []byte) *ProviderError {
	perr := &ProviderError{StatusCode: status, Body: body}

	var errorResponse struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &errorResponse); err == nil {
		perr.Code = errorResponse.Code
		perr.Message = errorResponse.Message
	}
	if perr.Message == "" {
		perr.Message = strings.TrimSpace(string(body))
	}
	if perr.Message == "" {
		perr.Message = http.StatusText(status)
	}
	return perr
}
