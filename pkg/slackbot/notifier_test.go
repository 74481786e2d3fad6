package slackbot

import (
	"context"
	"testing"

	"github.com/slack-go/slack"
	"go.uber.org/zap"
)

type recordingClient struct {
	messages []string
	uploads  []slack.UploadFileV2Parameters
}

func (c *recordingClient) PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error) {
	c.messages = append(c.messages, channelID)
	return channelID, "", nil
}

func (c *recordingClient) UploadFileV2Context(ctx context.Context, params slack.UploadFileV2Parameters) (*slack.FileSummary, error) {
	c.uploads = append(c.uploads, params)
	return &slack.FileSummary{}, nil
}

func TestTicketCreated(t *testing.T) {
	client := &recordingClient{}
	n := NewNotifierWithClient(client, "triage-channel", zap.NewNop())

	if err := n.TicketCreated(context.Background(), "MGMT-42", "cloud.redhat.com failure: f-1", "http://collector.example.com/files/f-1"); err != nil {
		t.Fatalf("TicketCreated() error = %v", err)
	}
	if len(client.messages) != 1 || client.messages[0] != "triage-channel" {
		t.Errorf("messages = %v", client.messages)
	}
}

func TestTicketCreatedWithoutChannel(t *testing.T) {
	client := &recordingClient{}
	n := NewNotifierWithClient(client, "", zap.NewNop())

	if err := n.TicketCreated(context.Background(), "MGMT-42", "s", "u"); err != nil {
		t.Fatalf("TicketCreated() error = %v", err)
	}
	if len(client.messages) != 0 {
		t.Errorf("unconfigured notifier posted %v", client.messages)
	}
}

func TestRunSummaryWithoutChart(t *testing.T) {
	client := &recordingClient{}
	n := NewNotifierWithClient(client, "triage-channel", zap.NewNop())

	if err := n.RunSummary(context.Background(), 3, 2, ""); err != nil {
		t.Fatalf("RunSummary() error = %v", err)
	}
	if len(client.messages) != 1 {
		t.Errorf("messages = %v", client.messages)
	}
	if len(client.uploads) != 0 {
		t.Errorf("uploads = %v without a chart", client.uploads)
	}
}
