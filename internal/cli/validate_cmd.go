package cli

import "context"

type ValidateCmd struct{}

func (c *ValidateCmd) Run(ctx context.Context, cmdCtx *commandContext) error {
	creds, source, err := cmdCtx.resolveCredentials()
	if err != nil {
		return exitError(3, err)
	}
	client, err := cmdCtx.apiClient()
	if err != nil {
		return exitError(3, err)
	}

	if err := client.Validate(ctx); err != nil {
		return exitError(mapErrorToExitCode(err), err)
	}

	out := outputFor(cmdCtx)
	if out.JSON {
		return out.PrintJSON(map[string]any{
			"ok":           true,
			"url":          creds.BaseURL,
			"source":       source,
			"capabilities": client.Capabilities(),
		})
	}
	out.Printf("OK: authenticated against %s (credentials via %s)\n", creds.BaseURL, source)
	return nil
}
