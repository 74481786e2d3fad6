// Package collector is a client for the assisted-logs-collector service.
package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const defaultTimeout = 30 * time.Second

// Failure is one failure bundle as listed by the collector. The name
// carries a YYYY-MM-DD prefix followed by "_" and the cluster id.
type Failure struct {
	Name string `json:"name"`
}

// Cluster is the cluster document inside a bundle's metadata.json.
type Cluster struct {
	ID               string `json:"id"`
	UserName         string `json:"user_name"`
	EmailDomain      string `json:"email_domain"`
	OpenshiftVersion string `json:"openshift_version"`
	Status           string `json:"status"`
}

type Client struct {
	baseURL    string
	httpClient *resty.Client
	logger     *zap.Logger
}

type Option func(*Client)

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.SetTimeout(d)
	}
}

// NewClient creates a log-collector client for the given base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: resty.New().SetTimeout(defaultTimeout),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListFailures fetches the directory listing of all failure bundles.
func (c *Client) ListFailures(ctx context.Context) ([]Failure, error) {
	url := fmt.Sprintf("%s/files/", c.baseURL)
	resp, err := c.httpClient.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to list failed clusters: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("collector returned %s for %s", resp.Status(), url)
	}

	var failures []Failure
	if err := json.Unmarshal(resp.Body(), &failures); err != nil {
		return nil, fmt.Errorf("failed to parse failure listing: %w", err)
	}
	c.logger.Debug("listed failure bundles", zap.Int("count", len(failures)))
	return failures, nil
}

// ClusterMetadata fetches the cluster document for one failure bundle.
func (c *Client) ClusterMetadata(ctx context.Context, name string) (*Cluster, error) {
	url := fmt.Sprintf("%s/files/%s/metadata.json", c.baseURL, name)
	resp, err := c.httpClient.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata for %s: %w", name, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("collector returned %s for %s", resp.Status(), url)
	}

	var md struct {
		Cluster Cluster `json:"cluster"`
	}
	if err := json.Unmarshal(resp.Body(), &md); err != nil {
		return nil, fmt.Errorf("failed to parse metadata for %s: %w", name, err)
	}
	return &md.Cluster, nil
}

// LogsURL returns the browsable URL of a failure bundle.
func (c *Client) LogsURL(name string) string {
	return fmt.Sprintf("%s/files/%s", c.baseURL, name)
}
