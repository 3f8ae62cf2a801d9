package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alfredjeanlab/badges/internal/model"
)

// defaultTimeout bounds each request made by HTTPClient.
const defaultTimeout = 30 * time.Second

// HTTPClient implements BadgesClient using the badges HTTP/JSON API.
type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

var _ BadgesClient = (*HTTPClient)(nil)

// NewHTTPClient creates a client targeting the given base URL (e.g.
// "http://localhost:8080"). When token is non-empty, an Authorization header
// is set on every request.
func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// Close is a no-op for the HTTP client.
func (c *HTTPClient) Close() error { return nil }

func (c *HTTPClient) ListBadges(ctx context.Context, filter model.BadgeFilter) (*ListBadgesResponse, error) {
	q := url.Values{}
	if filter.Search != "" {
		q.Set("search", filter.Search)
	}
	if filter.Category != "" {
		q.Set("category", filter.Category)
	}
	if filter.Cost != "" {
		q.Set("cost", filter.Cost)
	}
	if filter.Level != "" {
		q.Set("level", filter.Level)
	}

	path := "/v1/badges"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp ListBadgesResponse
	if err := c.doJSON(ctx, http.MethodGet, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) GetBadge(ctx context.Context, id string) (*model.Badge, error) {
	var badge model.Badge
	if err := c.doJSON(ctx, http.MethodGet, "/v1/badges/"+url.PathEscape(id), &badge); err != nil {
		return nil, err
	}
	return &badge, nil
}

func (c *HTTPClient) Options(ctx context.Context) (*model.Options, error) {
	var opts model.Options
	if err := c.doJSON(ctx, http.MethodGet, "/v1/options", &opts); err != nil {
		return nil, err
	}
	return &opts, nil
}

func (c *HTTPClient) Status(ctx context.Context) (*model.CatalogState, error) {
	var st model.CatalogState
	if err := c.doJSON(ctx, http.MethodGet, "/v1/status", &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (c *HTTPClient) Health(ctx context.Context) (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/v1/health", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// APIError is returned when the server answers with a 4xx or 5xx status.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// doJSON performs a request and decodes the JSON response into result.
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, result any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}
