package fogbugz

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	endpointFile     = "api.asp"
	supportedVersion = 8
)

// resolveEndpoint returns the command URL, discovering it on first use
// and caching it for the lifetime of the client.
func (c *Client) resolveEndpoint(ctx context.Context) (string, error) {
	c.mu.Lock()
	cached := c.endpoint
	c.mu.Unlock()
	if cached != "" {
		return cached, nil
	}

	endpoint, err := c.discoverEndpoint(ctx)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.endpoint = endpoint
	c.mu.Unlock()
	return endpoint, nil
}

// discoverEndpoint uses the configured URL directly when it already
// names api.asp; otherwise it fetches the discovery document, checks
// the advertised minimum API version and resolves the endpoint URL
// against the base.
func (c *Client) discoverEndpoint(ctx context.Context) (string, error) {
	if strings.HasSuffix(strings.ToLower(c.creds.BaseURL), endpointFile) {
		return c.creds.BaseURL, nil
	}

	body, err := c.get(ctx, c.creds.BaseURL)
	if err != nil {
		return "", err
	}

	var doc struct {
		Version    string `xml:"version"`
		MinVersion string `xml:"minversion"`
		URL        string `xml:"url"`
	}
	if err := xml.Unmarshal(body, &doc); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	minRaw := strings.TrimSpace(doc.MinVersion)
	if minRaw == "" {
		return "", fmt.Errorf("%w: discovery document has no minversion element", ErrMalformedResponse)
	}
	minVersion, err := strconv.Atoi(minRaw)
	if err != nil {
		return "", fmt.Errorf("%w: minversion %q is not a number", ErrMalformedResponse, doc.MinVersion)
	}
	if doc.URL == "" {
		return "", fmt.Errorf("%w: discovery document has no url element", ErrMalformedResponse)
	}
	if minVersion > supportedVersion {
		version, _ := strconv.Atoi(strings.TrimSpace(doc.Version))
		return "", VersionError{Version: version, MinVersion: minVersion, Supported: supportedVersion}
	}

	base, err := url.Parse(c.creds.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parse base URL: %w", err)
	}
	ref, err := url.Parse(strings.TrimSuffix(doc.URL, "?"))
	if err != nil {
		return "", fmt.Errorf("%w: bad endpoint url %q", ErrMalformedResponse, doc.URL)
	}
	return base.ResolveReference(ref).String(), nil
}

// issueURL derives the browser-facing case URL from the command
// endpoint: the api.asp suffix is replaced by default.asp?<id>.
func issueURL(endpoint, id string) string {
	base := endpoint
	if n := len(base) - len(endpointFile); n >= 0 && strings.EqualFold(base[n:], endpointFile) {
		base = base[:n]
	}
	return base + "default.asp?" + id
}
