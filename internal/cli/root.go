package cli

import "github.com/alecthomas/kong"

type CLI struct {
	GlobalOptions `embed:""`

	Version kong.VersionFlag `help:"Print version and exit"`

	Auth     AuthCmd     `cmd:"" help:"Manage stored FogBugz credentials"`
	Validate ValidateCmd `cmd:"" help:"Check connectivity and credentials"`
	Category CategoryCmd `cmd:"" help:"Manage categories (FogBugz projects)"`
	Status   StatusCmd   `cmd:"" help:"Inspect workflow statuses"`
	Issue    IssueCmd    `cmd:"" help:"Manage issues (FogBugz cases)"`
	Release  ReleaseCmd  `cmd:"" help:"Manage releases (FogBugz milestones)"`
}

func outputFor(ctx *commandContext) output {
	return output{Out: ctx.deps.Out, JSON: ctx.global.JSON, Quiet: ctx.global.Quiet}
}
