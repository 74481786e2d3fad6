package jira

// Issue is a Jira issue as returned by the search endpoint, restricted
// to the fields this tool requests.
type Issue struct {
	Key    string      `json:"key"`
	Fields IssueFields `json:"fields"`
}

type IssueFields struct {
	Summary string   `json:"summary"`
	Status  *Status  `json:"status,omitempty"`
	Labels  []string `json:"labels,omitempty"`
}

type Status struct {
	Name string `json:"name"`
}

// NamedField is the {"name": ...} object Jira uses for versions,
// components, priorities and issue types.
type NamedField struct {
	Name string `json:"name"`
}

// CreateFields is the fields object of an issue-creation request.
type CreateFields struct {
	Project     ProjectField `json:"project"`
	Summary     string       `json:"summary"`
	Versions    []NamedField `json:"versions,omitempty"`
	Components  []NamedField `json:"components,omitempty"`
	Priority    *NamedField  `json:"priority,omitempty"`
	IssueType   NamedField   `json:"issuetype"`
	Labels      []string     `json:"labels,omitempty"`
	Description string       `json:"description,omitempty"`
}

type ProjectField struct {
	Key string `json:"key"`
}

type searchRequest struct {
	JQL        string   `json:"jql"`
	StartAt    int      `json:"startAt"`
	MaxResults int      `json:"maxResults"`
	Fields     []string `json:"fields,omitempty"`
}

type searchResponse struct {
	StartAt    int     `json:"startAt"`
	MaxResults int     `json:"maxResults"`
	Total      int     `json:"total"`
	Issues     []Issue `json:"issues"`
}

type createRequest struct {
	Fields CreateFields `json:"fields"`
}

type createResponse struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Self string `json:"self"`
}

// Comment is one comment on an issue.
type Comment struct {
	Body string `json:"body"`
}

type commentsResponse struct {
	Comments []Comment `json:"comments"`
}

type transition struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type transitionsResponse struct {
	Transitions []transition `json:"transitions"`
}
