package fogbugz

import (
	"context"
	"strings"
)

type statusNode struct {
	ID       int     `xml:"ixStatus"`
	Name     string  `xml:"sStatus"`
	Resolved boolish `xml:"fResolved"`
}

func (c *Client) listStatuses(ctx context.Context, token string) ([]statusNode, error) {
	var resp struct {
		Statuses []statusNode `xml:"statuses>status"`
	}
	if err := c.invoke(ctx, "listStatuses", []param{{"token", token}}, &resp); err != nil {
		return nil, err
	}
	return resp.Statuses, nil
}

// statusTable maps status ids to their name and resolved flag. Rebuilt
// per call; never cached across operations.
func (c *Client) statusTable(ctx context.Context, token string) (map[int]statusNode, error) {
	nodes, err := c.listStatuses(ctx, token)
	if err != nil {
		return nil, err
	}
	table := make(map[int]statusNode, len(nodes))
	for _, node := range nodes {
		table[node.ID] = node
	}
	return table, nil
}

// statusIDByName maps lowercased status names to ids. The returned
// names keep the server's order and casing for error messages.
func (c *Client) statusIDByName(ctx context.Context, token string) (map[string]int, []string, error) {
	nodes, err := c.listStatuses(ctx, token)
	if err != nil {
		return nil, nil, err
	}
	ids := make(map[string]int, len(nodes))
	names := make([]string, 0, len(nodes))
	for _, node := range nodes {
		ids[strings.ToLower(node.Name)] = node.ID
		names = append(names, node.Name)
	}
	return ids, names, nil
}

// peopleNames maps person ids to display names.
func (c *Client) peopleNames(ctx context.Context, token string) (map[int]string, error) {
	var resp struct {
		People []struct {
			ID   int    `xml:"ixPerson"`
			Name string `xml:"sFullName"`
		} `xml:"people>person"`
	}
	if err := c.invoke(ctx, "listPeople", []param{{"token", token}}, &resp); err != nil {
		return nil, err
	}
	table := make(map[int]string, len(resp.People))
	for _, person := range resp.People {
		table[person.ID] = person.Name
	}
	return table, nil
}

func (c *Client) Statuses(ctx context.Context) ([]Status, error) {
	var out []Status
	err := c.withSession(ctx, func(token string) error {
		nodes, err := c.listStatuses(ctx, token)
		if err != nil {
			return err
		}
		out = make([]Status, 0, len(nodes))
		for _, node := range nodes {
			out = append(out, Status{ID: node.ID, Name: node.Name, Resolved: bool(node.Resolved)})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
