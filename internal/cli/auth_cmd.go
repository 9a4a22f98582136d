package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/kenny-evitt/bmx-fogbugz/internal/auth"
)

type AuthCmd struct {
	Login  AuthLoginCmd  `cmd:"" help:"Store FogBugz credentials"`
	Status AuthStatusCmd `cmd:"" help:"Show authentication status"`
	Logout AuthLogoutCmd `cmd:"" help:"Remove stored credentials"`
}

type AuthLoginCmd struct{}

type AuthStatusCmd struct{}

type AuthLogoutCmd struct{}

func (c *AuthLoginCmd) Run(ctx *commandContext) error {
	baseURL := strings.TrimSpace(ctx.global.URL)
	if baseURL == "" {
		return exitError(2, errors.New("--url is required for login"))
	}
	email := strings.TrimSpace(ctx.global.Email)
	if email == "" {
		return exitError(2, errors.New("--email is required for login"))
	}

	password := ctx.global.Password
	if password == "" {
		if ctx.global.NoInput {
			return exitError(2, errors.New("password required with --no-input"))
		}
		read, err := readPassword(ctx.deps.In)
		if err != nil {
			return exitError(1, err)
		}
		password = read
	}
	if strings.TrimSpace(password) == "" {
		return exitError(2, errors.New("password cannot be empty"))
	}

	if ctx.deps.AuthStore == nil {
		return exitError(1, errors.New("no auth store configured"))
	}
	data := auth.File{BaseURL: baseURL, Email: email, Password: password}
	if err := ctx.deps.AuthStore.Save(data, ctx.deps.Now()); err != nil {
		return exitError(1, err)
	}

	out := outputFor(ctx)
	if out.JSON {
		return out.PrintJSON(map[string]any{
			"saved": true,
			"path":  ctx.deps.AuthStore.Path,
		})
	}
	out.Printf("Saved credentials to %s\n", ctx.deps.AuthStore.Path)
	return nil
}

func (c *AuthStatusCmd) Run(ctx *commandContext) error {
	creds, source, err := ctx.resolveCredentials()
	configured := err == nil && creds.BaseURL != ""
	if !configured {
		source = "none"
	}
	out := outputFor(ctx)
	if out.JSON {
		return out.PrintJSON(map[string]any{
			"configured": configured,
			"source":     source,
		})
	}
	if configured {
		out.Printf("Configured via %s for %s\n", source, creds.BaseURL)
		return nil
	}
	out.Printf("No credentials configured\n")
	return exitError(3, errors.New("no FogBugz credentials configured"))
}

func (c *AuthLogoutCmd) Run(ctx *commandContext) error {
	if ctx.deps.AuthStore == nil {
		return exitError(1, errors.New("no auth store configured"))
	}
	if err := ctx.deps.AuthStore.Delete(); err != nil {
		return exitError(1, err)
	}
	out := outputFor(ctx)
	if out.JSON {
		return out.PrintJSON(map[string]any{
			"deleted": true,
			"path":    ctx.deps.AuthStore.Path,
		})
	}
	out.Printf("Logged out\n")
	return nil
}

func readPassword(r io.Reader) (string, error) {
	if file, ok := r.(*os.File); ok {
		if term.IsTerminal(int(file.Fd())) {
			_, _ = fmt.Fprint(os.Stdout, "FogBugz password: ")
			b, err := term.ReadPassword(int(file.Fd()))
			_, _ = fmt.Fprintln(os.Stdout)
			if err != nil {
				return "", fmt.Errorf("read password: %w", err)
			}
			return string(b), nil
		}
	}
	reader := bufio.NewReader(r)
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimSpace(line), nil
}
