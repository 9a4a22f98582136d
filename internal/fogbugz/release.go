package fogbugz

import "context"

// CreateRelease adds an assignable milestone under the filtered
// category. Without a category filter there is nothing to scope the
// milestone to, so the call is a deliberate no-op.
func (c *Client) CreateRelease(ctx context.Context, name string, categories []string) error {
	if len(categories) == 0 {
		return nil
	}
	return c.withSession(ctx, func(token string) error {
		args := []param{
			{"token", token},
			{"ixProject", categories[0]},
			{"sFixFor", name},
			{"fAssignable", "1"},
		}
		return c.invoke(ctx, "newFixFor", args, nil)
	})
}

// CloseRelease marks the named milestone non-assignable. A milestone
// the server does not know about is treated as already closed.
func (c *Client) CloseRelease(ctx context.Context, name string, categories []string) error {
	if len(categories) == 0 {
		return nil
	}
	return c.withSession(ctx, func(token string) error {
		var resp struct {
			ID string `xml:"fixfor>ixFixFor"`
		}
		view := []param{
			{"token", token},
			{"sFixFor", name},
			{"ixProject", categories[0]},
		}
		if err := c.invoke(ctx, "viewFixFor", view, &resp); err != nil {
			return err
		}
		if resp.ID == "" {
			return nil
		}
		edit := []param{
			{"token", token},
			{"ixFixFor", resp.ID},
			{"sFixFor", name},
			{"fAssignable", "0"},
		}
		return c.invoke(ctx, "editFixFor", edit, nil)
	})
}
