// Package triage creates Jira triage tickets for failed cluster
// installations reported by the log collector.
package triage

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/djzager/assisted-installer-deployment/pkg/collector"
	"github.com/djzager/assisted-installer-deployment/pkg/config"
	"github.com/djzager/assisted-installer-deployment/pkg/jira"
	"github.com/djzager/assisted-installer-deployment/pkg/logger"
	"github.com/djzager/assisted-installer-deployment/pkg/signature"
	"github.com/djzager/assisted-installer-deployment/pkg/trace"
)

// searchBlockSize is the page size for the existing-ticket fetch.
const searchBlockSize = 100

// JiraClient is the subset of the Jira client the run loop uses.
type JiraClient interface {
	SearchIssues(ctx context.Context, jql string, startAt, maxResults int, fields []string) ([]jira.Issue, error)
	CreateIssue(ctx context.Context, fields jira.CreateFields) (*jira.Issue, error)
	AddWatcher(ctx context.Context, issueKey, watcher string) error
	AddComment(ctx context.Context, issueKey, comment string) error
	Comments(ctx context.Context, issueKey string) ([]jira.Comment, error)
	TransitionIssue(ctx context.Context, issueKey, transitionName, comment string) error
}

// Collector is the subset of the log-collector client the run loop uses.
type Collector interface {
	ListFailures(ctx context.Context) ([]collector.Failure, error)
	ClusterMetadata(ctx context.Context, name string) (*collector.Cluster, error)
	LogsURL(name string) string
}

// Notifier announces run progress; failures here never abort the run.
type Notifier interface {
	TicketCreated(ctx context.Context, issueKey, summary, logsURL string) error
	RunSummary(ctx context.Context, created, skippedExisting int, chartPath string) error
}

// Runner drives one triage run.
type Runner struct {
	cfg      *config.Config
	jc       JiraClient
	coll     Collector
	notifier Notifier
	username string
	logger   *logger.Logger
	now      func() time.Time
}

func NewRunner(cfg *config.Config, jc JiraClient, coll Collector, notifier Notifier, username string, log *logger.Logger) *Runner {
	return &Runner{
		cfg:      cfg,
		jc:       jc,
		coll:     coll,
		notifier: notifier,
		username: username,
		logger:   log,
		now:      time.Now,
	}
}

// Result summarizes one run.
type Result struct {
	Created         []string
	SkippedExisting int
	// FailureDates holds the bundle dates of every failure inside the
	// handling window, feeding the per-run report.
	FailureDates []time.Time
}

// ExistingTickets fetches every issue in the triage component, paging in
// fixed-size blocks until an empty page is returned. An empty overall
// result is treated as a tracker error, not as "no tickets exist".
func (r *Runner) ExistingTickets(ctx context.Context) ([]jira.Issue, map[string]struct{}, error) {
	query := fmt.Sprintf("component = %q", config.TriageSearchComponent)
	fields := []string{"summary", "key", "status"}

	var issues []jira.Issue
	summaries := map[string]struct{}{}
	for startAt := 0; ; startAt += searchBlockSize {
		page, err := r.jc.SearchIssues(ctx, query, startAt, searchBlockSize, fields)
		if err != nil {
			return nil, nil, err
		}
		if len(page) == 0 {
			break
		}
		issues = append(issues, page...)
		for _, issue := range page {
			summaries[issue.Fields.Summary] = struct{}{}
		}
	}
	if len(issues) == 0 {
		return nil, nil, fmt.Errorf("no issues returned from jira")
	}
	return issues, summaries, nil
}

// Run executes the full triage flow: list failures, dedup against the
// existing tickets, create tickets for unhandled error clusters, then
// optionally close tickets matching the signature rules. The per-failure
// loop aborts on the first error, matching the non-resilient batch
// contract.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	ctx, span := trace.GetTracer().Start(ctx, "triage.run")
	defer span.End()
	log := r.logger.WithContext(ctx)

	failures, err := r.coll.ListFailures(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting list of failed clusters: %w", err)
	}

	issues, summaries, err := r.ExistingTickets(ctx)
	if err != nil {
		return nil, err
	}
	log.Info("fetched existing triage tickets", zap.Int("count", len(issues)))

	result := &Result{}
	for _, failure := range failures {
		if err := r.handleFailure(ctx, failure, summaries, result); err != nil {
			return nil, err
		}
	}

	if r.cfg.FiltersJSON != "" {
		rules, err := signature.LoadRules(r.cfg.FiltersJSON)
		if err != nil {
			return result, err
		}
		if r.cfg.DryRun {
			log.Info("dry run, skipping signature close rules", zap.Int("rules", len(rules)))
		} else if err := signature.CloseByRules(ctx, r.jc, r.username, issues, rules, log); err != nil {
			return result, err
		}
	}
	return result, nil
}

func (r *Runner) handleFailure(ctx context.Context, failure collector.Failure, summaries map[string]struct{}, result *Result) error {
	date, err := FailureDate(failure.Name)
	if err != nil {
		return err
	}
	if !r.cfg.All && DaysAgo(date, r.now()) > r.cfg.DaysToHandle {
		return nil
	}

	ctx, span := trace.GetTracer().Start(ctx, "triage.failure",
		oteltrace.WithAttributes(attribute.String("failure.name", failure.Name)))
	defer span.End()
	log := r.logger.WithContext(ctx)

	cluster, err := r.coll.ClusterMetadata(ctx, failure.Name)
	if err != nil {
		return err
	}
	result.FailureDates = append(result.FailureDates, date)

	if cluster.Status != "error" {
		log.Debug("skipping cluster not in error status",
			zap.String("failure", failure.Name),
			zap.String("status", cluster.Status),
		)
		return nil
	}

	summary := Summary(failure.Name)
	if _, ok := summaries[summary]; ok {
		log.Debug("issue found", zap.String("summary", summary))
		result.SkippedExisting++
		return nil
	}

	logsURL := r.coll.LogsURL(failure.Name)
	if r.cfg.DryRun {
		log.Info("dry run, would create issue", zap.String("summary", summary))
		return nil
	}

	issueKey, err := r.createTicket(ctx, summary, logsURL, cluster)
	if err != nil {
		return err
	}
	result.Created = append(result.Created, issueKey)

	if err := signature.Attach(ctx, r.jc, logsURL, issueKey); err != nil {
		return err
	}
	if err := r.notifier.TicketCreated(ctx, issueKey, summary, logsURL); err != nil {
		log.Warn("slack notification failed", zap.String("key", issueKey), zap.Error(err))
	}
	return nil
}

func (r *Runner) createTicket(ctx context.Context, summary, logsURL string, cluster *collector.Cluster) (string, error) {
	affectedVersion, err := AffectedVersion(cluster.OpenshiftVersion)
	if err != nil {
		return "", err
	}

	fields := jira.CreateFields{
		Project:     jira.ProjectField{Key: r.cfg.JiraProject},
		Summary:     summary,
		Versions:    []jira.NamedField{{Name: affectedVersion}},
		Components:  []jira.NamedField{{Name: config.TriageComponent}},
		Priority:    &jira.NamedField{Name: "Blocker"},
		IssueType:   jira.NamedField{Name: "Bug"},
		Labels:      Labels(cluster),
		Description: BuildDescription(logsURL, cluster),
	}
	issue, err := r.jc.CreateIssue(ctx, fields)
	if err != nil {
		return "", err
	}
	r.logger.WithContext(ctx).Info("issue created",
		zap.String("key", issue.Key),
		zap.String("summary", summary),
	)

	for _, watcher := range r.cfg.Watchers {
		if err := r.jc.AddWatcher(ctx, issue.Key, watcher); err != nil {
			return "", err
		}
	}
	return issue.Key, nil
}
