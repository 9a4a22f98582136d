package cli

import "context"

type ReleaseCmd struct {
	Create       ReleaseCreateCmd       `cmd:"" help:"Create a release (milestone) in a category"`
	Close        ReleaseCloseCmd        `cmd:"" help:"Close a release (mark non-assignable)"`
	UpdateStatus ReleaseUpdateStatusCmd `cmd:"" name:"update-status" help:"Change status for all issues in a release"`
}

type ReleaseCreateCmd struct {
	Name     string `arg:"" help:"Release name"`
	Category string `help:"Category (project) id" required:""`
}

type ReleaseCloseCmd struct {
	Name     string `arg:"" help:"Release name"`
	Category string `help:"Category (project) id" required:""`
}

type ReleaseUpdateStatusCmd struct {
	Name     string `arg:"" help:"Release name"`
	Category string `help:"Category (project) id to filter by"`
	From     string `help:"Only issues currently in this status" required:""`
	To       string `help:"Target status name" required:""`
}

func (c *ReleaseCreateCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
	client, err := cmdCtx.apiClient()
	if err != nil {
		return exitError(3, err)
	}
	if err := client.CreateRelease(ctx, c.Name, categoryFilter(c.Category)); err != nil {
		return exitError(mapErrorToExitCode(err), err)
	}

	out := outputFor(cmdCtx)
	if out.JSON {
		return out.PrintJSON(map[string]any{"created": true, "name": c.Name, "category": c.Category})
	}
	out.Printf("Created release %s in category %s\n", c.Name, c.Category)
	return nil
}

func (c *ReleaseCloseCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
	client, err := cmdCtx.apiClient()
	if err != nil {
		return exitError(3, err)
	}
	if err := client.CloseRelease(ctx, c.Name, categoryFilter(c.Category)); err != nil {
		return exitError(mapErrorToExitCode(err), err)
	}

	out := outputFor(cmdCtx)
	if out.JSON {
		return out.PrintJSON(map[string]any{"closed": true, "name": c.Name, "category": c.Category})
	}
	out.Printf("Closed release %s\n", c.Name)
	return nil
}

func (c *ReleaseUpdateStatusCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
	client, err := cmdCtx.apiClient()
	if err != nil {
		return exitError(3, err)
	}
	err = client.ChangeStatusForRelease(ctx, c.Name, categoryFilter(c.Category), c.From, c.To)
	if err != nil {
		return exitError(mapErrorToExitCode(err), err)
	}

	out := outputFor(cmdCtx)
	if out.JSON {
		return out.PrintJSON(map[string]any{"release": c.Name, "from": c.From, "to": c.To})
	}
	out.Printf("Moved %s issues to %s in release %s\n", c.From, c.To, c.Name)
	return nil
}
