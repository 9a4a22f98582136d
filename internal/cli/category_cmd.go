package cli

import "context"

type CategoryCmd struct {
	List CategoryListCmd `cmd:"" help:"List categories"`
}

type CategoryListCmd struct{}

func (c *CategoryListCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
	client, err := cmdCtx.apiClient()
	if err != nil {
		return exitError(3, err)
	}

	categories, err := client.Categories(ctx)
	if err != nil {
		return exitError(mapErrorToExitCode(err), err)
	}

	out := outputFor(cmdCtx)
	if out.JSON {
		return out.PrintJSON(categories)
	}
	rows := make([][]string, 0, len(categories))
	for _, category := range categories {
		rows = append(rows, []string{category.ID, category.Name})
	}
	return out.PrintTable([]string{"ID", "Name"}, rows)
}
