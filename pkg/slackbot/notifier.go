package slackbot

import (
	"context"
	"fmt"
	"os"

	"github.com/slack-go/slack"
	"go.uber.org/zap"
)

// Notifier posts triage-run updates to a Slack channel. A Notifier with
// an empty channel is a no-op, so callers never need to branch on
// whether Slack is configured.
type Notifier struct {
	client  Client
	channel string
	logger  *zap.Logger
}

func NewNotifier(token, channel string, logger *zap.Logger) *Notifier {
	return &Notifier{
		client:  slack.New(token),
		channel: channel,
		logger:  logger,
	}
}

// NewNoopNotifier returns a Notifier that drops everything.
func NewNoopNotifier() *Notifier {
	return &Notifier{client: DummyClient{}, logger: zap.NewNop()}
}

// NewNotifierWithClient is used by tests to inject a fake client.
func NewNotifierWithClient(client Client, channel string, logger *zap.Logger) *Notifier {
	return &Notifier{client: client, channel: channel, logger: logger}
}

// TicketCreated announces one new triage ticket.
func (n *Notifier) TicketCreated(ctx context.Context, issueKey, summary, logsURL string) error {
	if n.channel == "" {
		return nil
	}
	msg := fmt.Sprintf("Created triage ticket *%s*: %s\nLogs: %s", issueKey, summary, logsURL)
	_, _, err := n.client.PostMessageContext(ctx, n.channel, slack.MsgOptionText(msg, false))
	if err != nil {
		return fmt.Errorf("failed to post ticket notification for %s: %w", issueKey, err)
	}
	return nil
}

// RunSummary posts the end-of-run totals and, when available, uploads
// the failures-per-day chart.
func (n *Notifier) RunSummary(ctx context.Context, created, skippedExisting int, chartPath string) error {
	if n.channel == "" {
		return nil
	}
	msg := fmt.Sprintf("Triage run finished: %d tickets created, %d failures already ticketed.", created, skippedExisting)
	_, _, err := n.client.PostMessageContext(ctx, n.channel, slack.MsgOptionText(msg, false))
	if err != nil {
		return fmt.Errorf("failed to post run summary: %w", err)
	}
	if chartPath == "" {
		return nil
	}
	info, err := os.Stat(chartPath)
	if err != nil {
		return fmt.Errorf("failed to stat run chart: %w", err)
	}
	_, err = n.client.UploadFileV2Context(ctx, slack.UploadFileV2Parameters{
		File:     chartPath,
		FileSize: int(info.Size()),
		Filename: "triage-failures.png",
		Title:    "Failures per day",
		Channel:  n.channel,
	})
	if err != nil {
		return fmt.Errorf("failed to upload run chart: %w", err)
	}
	n.logger.Debug("run summary posted", zap.String("channel", n.channel))
	return nil
}
