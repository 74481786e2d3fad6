package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

const (
	DefaultCollectorURL = "http://assisted-logs-collector.usersys.redhat.com"
	DefaultJiraURL      = "https://issues.redhat.com/"
	DefaultNetrcFile    = "~/.netrc"
	DefaultFiltersJSON  = "./triage_resolving_filters.json"
	DefaultDaysToHandle = 30

	JiraProject     = "MGMT"
	TriageComponent = "Assisted-installer Triage"
	// The component name used in the search query differs in case from
	// the one set on created tickets; both spellings exist on the server.
	TriageSearchComponent = "Assisted-Installer Triage"
)

// DefaultWatchers are added to every created triage ticket.
var DefaultWatchers = []string{"ronniela", "odepaz"}

// Config holds all settings for a single triage run.
type Config struct {
	// Credentials: exactly one of NetrcFile / UserPassword is used.
	NetrcFile    string
	UserPassword string

	All         bool
	Verbose     bool
	DryRun      bool
	FiltersJSON string

	CollectorURL string
	JiraURL      string
	JiraProject  string
	DaysToHandle int
	Watchers     []string

	SlackBotToken string
	SlackChannel  string
	TmpDir        string
}

// New returns a Config populated with defaults and environment overrides.
// CLI flags are bound onto the returned struct by the caller.
func New() *Config {
	c := &Config{
		NetrcFile:     DefaultNetrcFile,
		FiltersJSON:   DefaultFiltersJSON,
		CollectorURL:  DefaultCollectorURL,
		JiraURL:       DefaultJiraURL,
		JiraProject:   JiraProject,
		DaysToHandle:  DefaultDaysToHandle,
		Watchers:      DefaultWatchers,
		SlackBotToken: os.Getenv("SLACK_BOT_TOKEN"),
		SlackChannel:  os.Getenv("SLACK_CHANNEL"),
		TmpDir:        os.Getenv("TMP_DIR"),
	}
	if v := os.Getenv("LOGS_COLLECTOR_URL"); v != "" {
		c.CollectorURL = v
	}
	if v := os.Getenv("JIRA_URL"); v != "" {
		c.JiraURL = v
	}
	if v := os.Getenv("JIRA_PROJECT"); v != "" {
		c.JiraProject = v
	}
	if c.TmpDir == "" {
		c.TmpDir = os.TempDir()
	}
	return c
}

// Validate rejects configurations that would otherwise fail only after
// authenticated calls have already been made.
func (c *Config) Validate() error {
	if c.UserPassword != "" && !strings.Contains(c.UserPassword, ":") {
		return fmt.Errorf("user-password must be in user:pass format")
	}
	if c.CollectorURL == "" {
		return fmt.Errorf("collector URL is required")
	}
	if _, err := url.Parse(c.JiraURL); err != nil {
		return fmt.Errorf("invalid jira URL %q: %w", c.JiraURL, err)
	}
	if c.DaysToHandle <= 0 {
		return fmt.Errorf("days to handle must be positive, got %d", c.DaysToHandle)
	}
	return nil
}

// JiraHost returns the hostname used to look up netrc credentials.
func (c *Config) JiraHost() (string, error) {
	u, err := url.Parse(c.JiraURL)
	if err != nil {
		return "", fmt.Errorf("invalid jira URL %q: %w", c.JiraURL, err)
	}
	if u.Hostname() == "" {
		return "", fmt.Errorf("jira URL %q has no hostname", c.JiraURL)
	}
	return u.Hostname(), nil
}

// SlackEnabled reports whether created tickets should be announced.
func (c *Config) SlackEnabled() bool {
	return c.SlackBotToken != "" && c.SlackChannel != ""
}
