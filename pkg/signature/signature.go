// Package signature handles the failure-signature annotations on triage
// tickets: attaching the signature anchor to new tickets and closing
// tickets that match known signature rules.
package signature

import (
	"context"
	"fmt"
)

const anchorHeader = "Automatic triage signatures"

// Commenter is the subset of the Jira client needed to attach signatures.
type Commenter interface {
	AddComment(ctx context.Context, issueKey, comment string) error
}

// Attach posts the signature anchor comment on a newly created ticket.
// Signature analysis tooling keys off this comment to find the logs.
func Attach(ctx context.Context, c Commenter, logsURL, issueKey string) error {
	body := fmt.Sprintf("h2. %s\n\nLogs for analysis: [%s]", anchorHeader, logsURL)
	if err := c.AddComment(ctx, issueKey, body); err != nil {
		return fmt.Errorf("failed to attach signatures to %s: %w", issueKey, err)
	}
	return nil
}
