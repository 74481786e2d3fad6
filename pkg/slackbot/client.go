// Package slackbot announces created triage tickets on Slack.
package slackbot

import (
	"context"

	"github.com/slack-go/slack"
)

// Client is the subset of the slack-go client the notifier uses.
type Client interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
	UploadFileV2Context(ctx context.Context, params slack.UploadFileV2Parameters) (*slack.FileSummary, error)
}

// DummyClient is a no-op Client for tests and unconfigured runs.
type DummyClient struct{}

func (DummyClient) PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error) {
	return "", "", nil
}

func (DummyClient) UploadFileV2Context(ctx context.Context, params slack.UploadFileV2Parameters) (*slack.FileSummary, error) {
	return &slack.FileSummary{}, nil
}
