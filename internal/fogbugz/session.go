package fogbugz

import (
	"context"
	"fmt"
)

// withSession brackets fn between logon and logoff. Logoff is attempted
// on every exit path and its own failure is discarded so that session
// cleanup never replaces fn's outcome.
func (c *Client) withSession(ctx context.Context, fn func(token string) error) error {
	token, err := c.logon(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = c.invoke(ctx, "logoff", []param{{"token", token}}, nil)
	}()
	return fn(token)
}

func (c *Client) logon(ctx context.Context) (string, error) {
	var resp struct {
		Token string `xml:"token"`
	}
	args := []param{
		{"email", c.creds.Email},
		{"password", c.creds.Password},
	}
	if err := c.invoke(ctx, "logon", args, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", fmt.Errorf("%w: logon response carries no token", ErrUnauthorized)
	}
	return resp.Token, nil
}

// Validate checks that the endpoint resolves and the credentials
// produce a usable session.
func (c *Client) Validate(ctx context.Context) error {
	return c.withSession(ctx, func(string) error { return nil })
}
