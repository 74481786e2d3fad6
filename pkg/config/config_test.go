package config

import (
	"os"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{
			name:    "defaults are valid",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "user password with separator",
			mutate:  func(c *Config) { c.UserPassword = "alice:s3cret" },
			wantErr: false,
		},
		{
			name:    "user password without separator",
			mutate:  func(c *Config) { c.UserPassword = "alice" },
			wantErr: true,
		},
		{
			name:    "empty collector URL",
			mutate:  func(c *Config) { c.CollectorURL = "" },
			wantErr: true,
		},
		{
			name:    "non-positive days to handle",
			mutate:  func(c *Config) { c.DaysToHandle = 0 },
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			tt.mutate(c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestJiraHost(t *testing.T) {
	c := New()
	host, err := c.JiraHost()
	if err != nil {
		t.Fatalf("JiraHost() error = %v", err)
	}
	if host != "issues.redhat.com" {
		t.Errorf("JiraHost() = %s, want issues.redhat.com", host)
	}

	c.JiraURL = "not a url at all"
	if _, err := c.JiraHost(); err == nil {
		t.Error("JiraHost() expected error for URL without hostname")
	}
}

func TestEnvOverrides(t *testing.T) {
	os.Setenv("LOGS_COLLECTOR_URL", "http://collector.example.com")
	os.Setenv("JIRA_URL", "https://jira.example.com/")
	os.Setenv("JIRA_PROJECT", "TEST")
	defer func() {
		os.Unsetenv("LOGS_COLLECTOR_URL")
		os.Unsetenv("JIRA_URL")
		os.Unsetenv("JIRA_PROJECT")
	}()

	c := New()
	if c.CollectorURL != "http://collector.example.com" {
		t.Errorf("CollectorURL = %s", c.CollectorURL)
	}
	if c.JiraURL != "https://jira.example.com/" {
		t.Errorf("JiraURL = %s", c.JiraURL)
	}
	if c.JiraProject != "TEST" {
		t.Errorf("JiraProject = %s", c.JiraProject)
	}
}

func TestSlackEnabled(t *testing.T) {
	c := New()
	c.SlackBotToken = ""
	c.SlackChannel = ""
	if c.SlackEnabled() {
		t.Error("SlackEnabled() = true without token and channel")
	}
	c.SlackBotToken = "xoxb-test"
	c.SlackChannel = "triage"
	if !c.SlackEnabled() {
		t.Error("SlackEnabled() = false with token and channel")
	}
}
