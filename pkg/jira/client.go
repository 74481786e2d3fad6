// Package jira is a minimal client for the Jira REST API v2, covering
// only the operations the triage flow needs: issue search, issue
// creation, watchers, comments and transitions.
package jira

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

const (
	apiPrefix      = "/rest/api/2"
	defaultTimeout = 30 * time.Second
)

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

// NewClient creates a Jira client authenticating with basic auth.
func NewClient(baseURL, username, password string, opts ...Option) *Client {
	httpClient := resty.New().
		SetTimeout(defaultTimeout).
		SetBasicAuth(username, password).
		SetHeader("Content-Type", "application/json")

	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) url(format string, args ...interface{}) string {
	return c.baseURL + apiPrefix + fmt.Sprintf(format, args...)
}

// SearchIssues runs a JQL query and returns one page of results.
func (c *Client) SearchIssues(ctx context.Context, jql string, startAt, maxResults int, fields []string) ([]Issue, error) {
	req := searchRequest{
		JQL:        jql,
		StartAt:    startAt,
		MaxResults: maxResults,
		Fields:     fields,
	}
	resp, err := c.httpClient.R().SetContext(ctx).SetBody(req).Post(c.url("/search"))
	if err != nil {
		return nil, fmt.Errorf("jira search failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("jira search returned %s: %s", resp.Status(), resp.Body())
	}

	var result searchResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to parse jira search response: %w", err)
	}
	c.logger.Debug("jira search page",
		zap.String("jql", jql),
		zap.Int("startAt", startAt),
		zap.Int("returned", len(result.Issues)),
		zap.Int("total", result.Total),
	)
	return result.Issues, nil
}

// CreateIssue creates a new issue and returns it with the key set.
func (c *Client) CreateIssue(ctx context.Context, fields CreateFields) (*Issue, error) {
	resp, err := c.httpClient.R().SetContext(ctx).SetBody(createRequest{Fields: fields}).Post(c.url("/issue"))
	if err != nil {
		return nil, fmt.Errorf("jira issue creation failed: %w", err)
	}
	if resp.StatusCode() != http.StatusCreated {
		return nil, fmt.Errorf("jira issue creation returned %s: %s", resp.Status(), resp.Body())
	}

	var created createResponse
	if err := json.Unmarshal(resp.Body(), &created); err != nil {
		return nil, fmt.Errorf("failed to parse jira creation response: %w", err)
	}
	return &Issue{Key: created.Key, Fields: IssueFields{Summary: fields.Summary, Labels: fields.Labels}}, nil
}

// AddWatcher registers a watcher on an issue.
func (c *Client) AddWatcher(ctx context.Context, issueKey, watcher string) error {
	// The watchers endpoint takes the bare username as a JSON string.
	body, err := json.Marshal(watcher)
	if err != nil {
		return fmt.Errorf("failed to encode watcher %s: %w", watcher, err)
	}
	resp, err := c.httpClient.R().SetContext(ctx).SetBody(body).Post(c.url("/issue/%s/watchers", issueKey))
	if err != nil {
		return fmt.Errorf("failed to add watcher %s to %s: %w", watcher, issueKey, err)
	}
	if resp.StatusCode() != http.StatusNoContent {
		return fmt.Errorf("adding watcher %s to %s returned %s: %s", watcher, issueKey, resp.Status(), resp.Body())
	}
	return nil
}

// AddComment posts a comment on an issue.
func (c *Client) AddComment(ctx context.Context, issueKey, comment string) error {
	body := map[string]string{"body": comment}
	resp, err := c.httpClient.R().SetContext(ctx).SetBody(body).Post(c.url("/issue/%s/comment", issueKey))
	if err != nil {
		return fmt.Errorf("failed to comment on %s: %w", issueKey, err)
	}
	if resp.StatusCode() != http.StatusCreated {
		return fmt.Errorf("commenting on %s returned %s: %s", issueKey, resp.Status(), resp.Body())
	}
	return nil
}

// Comments returns all comments on an issue.
func (c *Client) Comments(ctx context.Context, issueKey string) ([]Comment, error) {
	resp, err := c.httpClient.R().SetContext(ctx).Get(c.url("/issue/%s/comment", issueKey))
	if err != nil {
		return nil, fmt.Errorf("failed to list comments on %s: %w", issueKey, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("listing comments on %s returned %s: %s", issueKey, resp.Status(), resp.Body())
	}

	var result commentsResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to parse comments on %s: %w", issueKey, err)
	}
	return result.Comments, nil
}

// TransitionIssue moves an issue through the workflow transition with
// the given name, optionally adding a comment in the same request.
func (c *Client) TransitionIssue(ctx context.Context, issueKey, transitionName, comment string) error {
	resp, err := c.httpClient.R().SetContext(ctx).Get(c.url("/issue/%s/transitions", issueKey))
	if err != nil {
		return fmt.Errorf("failed to list transitions for %s: %w", issueKey, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("listing transitions for %s returned %s: %s", issueKey, resp.Status(), resp.Body())
	}

	var available transitionsResponse
	if err := json.Unmarshal(resp.Body(), &available); err != nil {
		return fmt.Errorf("failed to parse transitions for %s: %w", issueKey, err)
	}

	var transitionID string
	for _, t := range available.Transitions {
		if strings.EqualFold(t.Name, transitionName) {
			transitionID = t.ID
			break
		}
	}
	if transitionID == "" {
		return fmt.Errorf("no transition %q available on %s", transitionName, issueKey)
	}

	req := map[string]interface{}{
		"transition": map[string]string{"id": transitionID},
	}
	if comment != "" {
		req["update"] = map[string]interface{}{
			"comment": []map[string]interface{}{
				{"add": map[string]string{"body": comment}},
			},
		}
	}
	resp, err = c.httpClient.R().SetContext(ctx).SetBody(req).Post(c.url("/issue/%s/transitions", issueKey))
	if err != nil {
		return fmt.Errorf("failed to transition %s: %w", issueKey, err)
	}
	if resp.StatusCode() != http.StatusNoContent {
		return fmt.Errorf("transitioning %s returned %s: %s", issueKey, resp.Status(), resp.Body())
	}
	c.logger.Info("issue transitioned", zap.String("key", issueKey), zap.String("transition", transitionName))
	return nil
}
