package sanity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/primalspirits/signup-page/pkg/models"
)

// DocumentType is the singleton document holding the signup page copy
const DocumentType = "emailSignupPage"

// SignupPageQuery selects the signup page copy with gallery assets resolved
const SignupPageQuery = `*[_type == "emailSignupPage"][0]{
  heading,
  subheading,
  buttonText,
  gallery[]{
    _key,
    asset->{_id, url, metadata{dimensions, lqip}}
  }
}`

// ErrNotFound is returned when no signup page document is published
var ErrNotFound = errors.New("signup page document not found")

// Client defines the read interface for page content
type Client interface {
	FetchSignupPage(ctx context.Context) (*models.PageContent, error)
}

// Config identifies the Sanity project to read from
type Config struct {
	ProjectID  string
	Dataset    string
	APIVersion string
	UseCDN     bool
	// Token is only needed for private datasets
	Token string
	// BaseURL replaces the project host, mostly for tests
	BaseURL string
}

type clientImpl struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a new Sanity query client
func NewClient(config Config, httpClient *http.Client) (Client, error) {
	if config.ProjectID == "" && config.BaseURL == "" {
		return nil, errors.New("sanity project ID is required")
	}
	if config.Dataset == "" {
		return nil, errors.New("sanity dataset is required")
	}
	if config.APIVersion == "" {
		return nil, errors.New("sanity API version is required")
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &clientImpl{config: config, httpClient: httpClient}, nil
}

func (c *clientImpl) queryURL(query string) string {
	base := c.config.BaseURL
	if base == "" {
		host := "api.sanity.io"
		if c.config.UseCDN {
			host = "apicdn.sanity.io"
		}
		base = fmt.Sprintf("https://%s.%s", c.config.ProjectID, host)
	}
	version := strings.TrimPrefix(c.config.APIVersion, "v")
	return fmt.Sprintf("%s/v%s/data/query/%s?query=%s",
		strings.TrimRight(base, "/"), version, url.PathEscape(c.config.Dataset), url.QueryEscape(query))
}

func (c *clientImpl) FetchSignupPage(ctx context.Context) (*models.PageContent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.queryURL(SignupPageQuery), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.config.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error querying Sanity: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error from Sanity API: %d %s", resp.StatusCode, string(body))
	}

	var response struct {
		Result *models.PageContentDocument `json:"result"`
		MS     int                         `json:"ms"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("error parsing response: %w", err)
	}
	if response.Result == nil {
		return nil, ErrNotFound
	}

	content := response.Result.Content()
	slog.Debug("fetched signup page", "gallery_size", len(content.Gallery), "query_ms", response.MS)
	return content, nil
}
