package cli

import (
	"context"
	"strconv"
)

type StatusCmd struct {
	List StatusListCmd `cmd:"" help:"List workflow statuses"`
}

type StatusListCmd struct{}

func (c *StatusListCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
	client, err := cmdCtx.apiClient()
	if err != nil {
		return exitError(3, err)
	}

	statuses, err := client.Statuses(ctx)
	if err != nil {
		return exitError(mapErrorToExitCode(err), err)
	}

	out := outputFor(cmdCtx)
	if out.JSON {
		return out.PrintJSON(statuses)
	}
	rows := make([][]string, 0, len(statuses))
	for _, status := range statuses {
		rows = append(rows, []string{strconv.Itoa(status.ID), status.Name, strconv.FormatBool(status.Resolved)})
	}
	return out.PrintTable([]string{"ID", "Name", "Resolved"}, rows)
}
