package triage

import (
	"fmt"
	"strings"

	"github.com/djzager/assisted-installer-deployment/pkg/collector"
)

// BuildDescription renders the ticket description in Jira wiki markup,
// pointing the assignee at the logs bundle and the cluster identity.
func BuildDescription(logsURL string, cluster *collector.Cluster) string {
	var b strings.Builder
	b.WriteString("h1. Cluster installation failure\n\n")
	fmt.Fprintf(&b, "*Logs:* [%s]\n", logsURL)
	b.WriteString("\n")
	fmt.Fprintf(&b, "*Cluster id:* %s\n", cluster.ID)
	fmt.Fprintf(&b, "*Username:* %s\n", cluster.UserName)
	fmt.Fprintf(&b, "*Email domain:* %s\n", cluster.EmailDomain)
	fmt.Fprintf(&b, "*OpenShift version:* %s\n", cluster.OpenshiftVersion)
	fmt.Fprintf(&b, "*Cluster status:* %s\n", cluster.Status)
	return b.String()
}
