package fogbugz

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

const issueColumns = "ixBug,ixStatus,sTitle,sLatestTextSummary,ixPersonOpenedBy,dtOpened"

type caseNode struct {
	ID       int    `xml:"ixBug"`
	StatusID int    `xml:"ixStatus"`
	Title    string `xml:"sTitle"`
	Summary  string `xml:"sLatestTextSummary"`
	OpenedBy int    `xml:"ixPersonOpenedBy"`
	Opened   string `xml:"dtOpened"`
}

// Issues enumerates the cases targeting the named release. When a
// category filter is present its first entry scopes the search to that
// project. Results keep the server's order.
func (c *Client) Issues(ctx context.Context, release string, categories []string) ([]Issue, error) {
	var issues []Issue
	err := c.withSession(ctx, func(token string) error {
		statuses, err := c.statusTable(ctx, token)
		if err != nil {
			return err
		}
		people, err := c.peopleNames(ctx, token)
		if err != nil {
			return err
		}

		query := fmt.Sprintf("fixfor:%q", release)
		if len(categories) > 0 {
			name, err := c.projectName(ctx, token, categories[0])
			if err != nil {
				return err
			}
			query += fmt.Sprintf(" project:%q", name)
		}

		var resp struct {
			Cases []caseNode `xml:"cases>case"`
		}
		args := []param{
			{"token", token},
			{"q", query},
			{"cols", issueColumns},
		}
		if err := c.invoke(ctx, "search", args, &resp); err != nil {
			return err
		}

		endpoint, err := c.resolveEndpoint(ctx)
		if err != nil {
			return err
		}

		issues = make([]Issue, 0, len(resp.Cases))
		for _, node := range resp.Cases {
			id := strconv.Itoa(node.ID)
			status := statuses[node.StatusID]
			issues = append(issues, Issue{
				ID:          id,
				Status:      status.Name,
				Title:       node.Title,
				Description: node.Summary,
				Release:     release,
				Resolved:    bool(status.Resolved),
				Submitted:   node.Opened,
				Submitter:   people[node.OpenedBy],
				URL:         issueURL(endpoint, id),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return issues, nil
}

func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var out []Category
	err := c.withSession(ctx, func(token string) error {
		var resp struct {
			Projects []struct {
				ID   int    `xml:"ixProject"`
				Name string `xml:"sProject"`
			} `xml:"projects>project"`
		}
		if err := c.invoke(ctx, "listProjects", []param{{"token", token}}, &resp); err != nil {
			return err
		}
		out = make([]Category, 0, len(resp.Projects))
		for _, project := range resp.Projects {
			out = append(out, Category{ID: strconv.Itoa(project.ID), Name: project.Name})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) projectName(ctx context.Context, token, id string) (string, error) {
	var resp struct {
		Name string `xml:"project>sProject"`
	}
	args := []param{
		{"token", token},
		{"ixProject", id},
	}
	if err := c.invoke(ctx, "viewProject", args, &resp); err != nil {
		return "", err
	}
	if resp.Name == "" {
		return "", fmt.Errorf("%w: project %s has no sProject element", ErrMalformedResponse, id)
	}
	return resp.Name, nil
}

func (c *Client) CloseIssue(ctx context.Context, issueID string) error {
	return c.withSession(ctx, func(token string) error {
		args := []param{
			{"token", token},
			{"ixBug", issueID},
		}
		return c.invoke(ctx, "close", args, nil)
	})
}

func (c *Client) AppendComment(ctx context.Context, issueID, body string) error {
	return c.withSession(ctx, func(token string) error {
		args := []param{
			{"token", token},
			{"ixBug", issueID},
			{"sEvent", body},
		}
		return c.invoke(ctx, "edit", args, nil)
	})
}

// ChangeStatus resolves the named status against the remote table
// (case-insensitively) and issues a resolve command for the case.
func (c *Client) ChangeStatus(ctx context.Context, issueID, status string) error {
	return c.withSession(ctx, func(token string) error {
		ids, names, err := c.statusIDByName(ctx, token)
		if err != nil {
			return err
		}
		id, ok := ids[strings.ToLower(status)]
		if !ok {
			return UnknownStatusError{Name: status, Valid: names}
		}
		args := []param{
			{"token", token},
			{"ixBug", issueID},
			{"ixStatus", strconv.Itoa(id)},
		}
		return c.invoke(ctx, "resolve", args, nil)
	})
}

// ChangeStatusForRelease moves every issue in the release whose status
// equals from to the to status, one round trip per issue. A failure
// aborts the remainder; earlier changes stay applied.
func (c *Client) ChangeStatusForRelease(ctx context.Context, release string, categories []string, from, to string) error {
	issues, err := c.Issues(ctx, release, categories)
	if err != nil {
		return err
	}
	for _, issue := range issues {
		if !strings.EqualFold(issue.Status, from) {
			continue
		}
		if err := c.ChangeStatus(ctx, issue.ID, to); err != nil {
			return err
		}
	}
	return nil
}
