package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/hubstack/inventory-service/internal/inventory/domain"
)

// ErrHubNotFound is returned when the directory has no hub for the id.
var ErrHubNotFound = errors.New("hub not found")

// HubDirectoryClient talks to the external hub directory service over
// HTTP. The inventory service only reads from the directory; hub
// lifecycle is owned elsewhere.
type HubDirectoryClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHubDirectoryClient creates a new hub directory client
func NewHubDirectoryClient(baseURL string) *HubDirectoryClient {
	return &HubDirectoryClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   5 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

type hubResponse struct {
	Success bool        `json:"success"`
	Data    *domain.Hub `json:"data"`
	Error   string      `json:"error"`
}

// Get fetches hub metadata by id
func (c *HubDirectoryClient) Get(ctx context.Context, hubID string) (*domain.Hub, error) {
	endpoint := fmt.Sprintf("%s/api/hubs/%s", c.baseURL, url.PathEscape(hubID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build hub request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("hub directory request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrHubNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("hub directory returned status %d", resp.StatusCode)
	}

	var body hubResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode hub response: %w", err)
	}
	if body.Data == nil {
		return nil, fmt.Errorf("hub directory returned empty body")
	}

	return body.Data, nil
}

// Exists reports whether the directory knows the hub id
func (c *HubDirectoryClient) Exists(ctx context.Context, hubID string) (bool, error) {
	_, err := c.Get(ctx, hubID)
	if errors.Is(err, ErrHubNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

var _ domain.HubDirectory = (*HubDirectoryClient)(nil)
