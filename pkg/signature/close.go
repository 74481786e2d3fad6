package signature

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/djzager/assisted-installer-deployment/pkg/jira"
	"go.uber.org/zap"
)

// Rules maps signature type -> root issue key -> close message.
// This is the on-disk format of the --filters-json file.
type Rules map[string]map[string]string

// LoadRules reads and parses a rules file.
func LoadRules(path string) (Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read filters file %s: %w", path, err)
	}
	var rules Rules
	if err := json.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse filters file %s: %w", path, err)
	}
	return rules, nil
}

// Closer is the subset of the Jira client needed to close tickets.
type Closer interface {
	Comments(ctx context.Context, issueKey string) ([]jira.Comment, error)
	TransitionIssue(ctx context.Context, issueKey, transitionName, comment string) error
}

// CloseByRules closes every open issue whose signature comment matches a
// rule: the comment must name both the signature type and the rule's
// root issue. The rule message is posted with the closing transition.
func CloseByRules(ctx context.Context, c Closer, username string, issues []jira.Issue, rules Rules, logger *zap.Logger) error {
	for _, issue := range issues {
		if issue.Fields.Status != nil && issue.Fields.Status.Name == "Closed" {
			continue
		}
		comments, err := c.Comments(ctx, issue.Key)
		if err != nil {
			return err
		}
		for sigType, byRoot := range rules {
			for rootIssue, message := range byRoot {
				if !matches(comments, sigType, rootIssue) {
					continue
				}
				closing := fmt.Sprintf("%s\n\nClosed automatically on behalf of %s (root issue %s).", message, username, rootIssue)
				if err := c.TransitionIssue(ctx, issue.Key, "Closed", closing); err != nil {
					return err
				}
				logger.Info("issue closed by signature rule",
					zap.String("key", issue.Key),
					zap.String("signature", sigType),
					zap.String("rootIssue", rootIssue),
				)
			}
		}
	}
	return nil
}

func matches(comments []jira.Comment, sigType, rootIssue string) bool {
	for _, comment := range comments {
		if strings.Contains(comment.Body, sigType) && strings.Contains(comment.Body, rootIssue) {
			return true
		}
	}
	return false
}
