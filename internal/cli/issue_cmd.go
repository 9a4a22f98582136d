package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

type IssueCmd struct {
	List    IssueListCmd    `cmd:"" help:"List issues in a release"`
	Close   IssueCloseCmd   `cmd:"" help:"Close an issue"`
	Comment IssueCommentCmd `cmd:"" help:"Append a comment to an issue"`
	Status  IssueStatusCmd  `cmd:"" help:"Change an issue's status"`
}

type IssueListCmd struct {
	Release  string `arg:"" help:"Release (milestone) name"`
	Category string `help:"Category (project) id to filter by"`
}

type IssueCloseCmd struct {
	IssueID string `arg:"" name:"issue-id" help:"Issue (case) id"`
}

type IssueCommentCmd struct {
	IssueID string `arg:"" name:"issue-id" help:"Issue (case) id"`
	Body    string `help:"Comment body or '-' for stdin" required:""`
}

type IssueStatusCmd struct {
	IssueID string `arg:"" name:"issue-id" help:"Issue (case) id"`
	To      string `help:"Target status name" required:""`
}

func (c *IssueListCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
	client, err := cmdCtx.apiClient()
	if err != nil {
		return exitError(3, err)
	}

	issues, err := client.Issues(ctx, c.Release, categoryFilter(c.Category))
	if err != nil {
		return exitError(mapErrorToExitCode(err), err)
	}

	out := outputFor(cmdCtx)
	if out.JSON {
		return out.PrintJSON(issues)
	}
	rows := make([][]string, 0, len(issues))
	for _, issue := range issues {
		rows = append(rows, []string{
			issue.ID,
			issue.Status,
			strconv.FormatBool(issue.Resolved),
			issue.Title,
			issue.Submitter,
			issue.Submitted,
		})
	}
	if err := out.PrintTable([]string{"ID", "Status", "Resolved", "Title", "Submitter", "Submitted"}, rows); err != nil {
		return err
	}
	if len(issues) == 0 {
		out.Printf("No issues target release %s\n", c.Release)
	}
	return nil
}

func (c *IssueCloseCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
	client, err := cmdCtx.apiClient()
	if err != nil {
		return exitError(3, err)
	}
	if err := client.CloseIssue(ctx, c.IssueID); err != nil {
		return exitError(mapErrorToExitCode(err), err)
	}

	out := outputFor(cmdCtx)
	if out.JSON {
		return out.PrintJSON(map[string]any{"closed": true, "id": c.IssueID})
	}
	out.Printf("Closed issue %s\n", c.IssueID)
	return nil
}

func (c *IssueCommentCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
	body, err := readBody(c.Body, cmdCtx.deps.In)
	if err != nil {
		return exitError(1, err)
	}
	if strings.TrimSpace(body) == "" {
		return exitError(2, errors.New("comment body cannot be empty"))
	}

	client, err := cmdCtx.apiClient()
	if err != nil {
		return exitError(3, err)
	}
	if err := client.AppendComment(ctx, c.IssueID, body); err != nil {
		return exitError(mapErrorToExitCode(err), err)
	}

	out := outputFor(cmdCtx)
	if out.JSON {
		return out.PrintJSON(map[string]any{"commented": true, "id": c.IssueID})
	}
	out.Printf("Commented on issue %s\n", c.IssueID)
	return nil
}

func (c *IssueStatusCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
	client, err := cmdCtx.apiClient()
	if err != nil {
		return exitError(3, err)
	}
	if err := client.ChangeStatus(ctx, c.IssueID, c.To); err != nil {
		return exitError(mapErrorToExitCode(err), err)
	}

	out := outputFor(cmdCtx)
	if out.JSON {
		return out.PrintJSON(map[string]any{"id": c.IssueID, "status": c.To})
	}
	out.Printf("Issue %s moved to %s\n", c.IssueID, c.To)
	return nil
}

// readBody returns value as-is, or the whole of in when value is "-".
func readBody(value string, in io.Reader) (string, error) {
	if value != "-" {
		return value, nil
	}
	var b strings.Builder
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return b.String(), nil
}
