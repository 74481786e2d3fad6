package triage

import (
	"fmt"
	"strings"
	"time"

	"github.com/djzager/assisted-installer-deployment/pkg/collector"
)

const (
	summaryFormat = "cloud.redhat.com failure: %s"
	dateLayout    = "2006-01-02"
)

// Summary returns the ticket summary for a failure id. The summary is
// the dedup key: one ticket per failure id.
func Summary(failureID string) string {
	return fmt.Sprintf(summaryFormat, failureID)
}

// Labels returns the label set encoding the cluster identity.
func Labels(cluster *collector.Cluster) []string {
	return []string{
		"no-qe",
		"AI_CLOUD_TRIAGE",
		fmt.Sprintf("AI_CLUSTER_%s", cluster.ID),
		fmt.Sprintf("AI_USER_%s", cluster.UserName),
		fmt.Sprintf("AI_DOMAIN_%s", cluster.EmailDomain),
	}
}

// AffectedVersion maps an openshift version to the Jira affected-version
// field value, keeping only the major.minor components.
func AffectedVersion(openshiftVersion string) (string, error) {
	parts := strings.Split(openshiftVersion, ".")
	if len(parts) < 2 {
		return "", fmt.Errorf("unparsable openshift version %q", openshiftVersion)
	}
	return fmt.Sprintf("OpenShift %s.%s", parts[0], parts[1]), nil
}

// FailureDate parses the YYYY-MM-DD prefix of a failure bundle name.
func FailureDate(name string) (time.Time, error) {
	prefix, _, _ := strings.Cut(name, "_")
	date, err := time.Parse(dateLayout, prefix)
	if err != nil {
		return time.Time{}, fmt.Errorf("failure name %q has no parsable date prefix: %w", name, err)
	}
	return date, nil
}

// DaysAgo returns the whole days elapsed between the failure date and now.
func DaysAgo(date, now time.Time) int {
	return int(now.Sub(date).Hours() / 24)
}
