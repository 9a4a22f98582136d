package fogbugz

import "context"

// Credentials identify a FogBugz installation and account. BaseURL may
// point at the site root or directly at the api.asp endpoint.
type Credentials struct {
	BaseURL  string
	Email    string
	Password string
}

// Issue is a read projection of a FogBugz case. It is never written
// back; mutations go through the editor operations keyed by ID.
type Issue struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Release     string `json:"release"`
	Resolved    bool   `json:"resolved"`
	Submitted   string `json:"submitted"`
	Submitter   string `json:"submitter"`
	URL         string `json:"url"`
}

// Category is a read projection of a FogBugz project.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Status is one entry of the remote workflow status table.
type Status struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Resolved bool   `json:"resolved"`
}

// Capabilities are fixed per connector; FogBugz cannot retrieve text
// appended to a case description, so AppendDescriptions stays false.
type Capabilities struct {
	CloseIssues        bool `json:"close_issues"`
	ChangeStatus       bool `json:"change_status"`
	AppendDescriptions bool `json:"append_descriptions"`
}

type IssueReader interface {
	Issues(ctx context.Context, release string, categories []string) ([]Issue, error)
	Categories(ctx context.Context) ([]Category, error)
}

type IssueEditor interface {
	CloseIssue(ctx context.Context, issueID string) error
	AppendComment(ctx context.Context, issueID, body string) error
}

type StatusUpdater interface {
	Statuses(ctx context.Context) ([]Status, error)
	ChangeStatus(ctx context.Context, issueID, status string) error
	ChangeStatusForRelease(ctx context.Context, release string, categories []string, from, to string) error
}

type ReleaseManager interface {
	CreateRelease(ctx context.Context, name string, categories []string) error
	CloseRelease(ctx context.Context, name string, categories []string) error
}

// API is the full connector surface. Hosts that only need one concern
// can depend on the narrow interfaces instead.
type API interface {
	Validate(ctx context.Context) error
	Capabilities() Capabilities
	IssueReader
	IssueEditor
	StatusUpdater
	ReleaseManager
}
