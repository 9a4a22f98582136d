package fogbugz

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

var (
	ErrUnavailable       = errors.New("service unavailable")
	ErrMalformedResponse = errors.New("malformed response")
	ErrUnauthorized      = errors.New("authentication failed")
)

// RemoteError is the <error> element FogBugz returns in place of
// command output. The code and message are passed through verbatim.
type RemoteError struct {
	Code    int
	Message string
}

func (e RemoteError) Error() string {
	return fmt.Sprintf("fogbugz error %d: %s", e.Code, e.Message)
}

// VersionError means the server's minimum supported API version is
// newer than this client speaks.
type VersionError struct {
	Version    int
	MinVersion int
	Supported  int
}

func (e VersionError) Error() string {
	return fmt.Sprintf("server requires API version %d or newer (server version %d); this client supports %d",
		e.MinVersion, e.Version, e.Supported)
}

// UnknownStatusError reports a status name absent from the remote
// status table, along with every name the server does accept.
type UnknownStatusError struct {
	Name  string
	Valid []string
}

func (e UnknownStatusError) Error() string {
	return fmt.Sprintf("unknown status %q; valid statuses: %s", e.Name, strings.Join(e.Valid, "; "))
}

type Client struct {
	creds   Credentials
	timeout time.Duration

	mu       sync.Mutex
	http     *http.Client
	endpoint string
}

func NewClient(creds Credentials, timeout time.Duration) API {
	return &Client{creds: creds, timeout: timeout}
}

func (c *Client) Capabilities() Capabilities {
	return Capabilities{CloseIssues: true, ChangeStatus: true}
}

// httpClient returns the shared transport handle, creating it on first
// use. Only acquisition is serialized; the handle itself is safe for
// concurrent use.
func (c *Client) httpClient() *http.Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.http == nil {
		c.http = &http.Client{Timeout: c.timeout}
	}
	return c.http
}

type param struct {
	Key   string
	Value string
}

// buildQuery renders the command name and arguments in call order.
func buildQuery(cmd string, args []param) string {
	var b strings.Builder
	if cmd != "" {
		b.WriteString("cmd=")
		b.WriteString(url.QueryEscape(cmd))
	}
	for _, p := range args {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}

type remoteErrorNode struct {
	Code    string `xml:"code,attr"`
	Message string `xml:",chardata"`
}

// invoke issues one command against the resolved endpoint and decodes
// the XML response into out. A response carrying an <error> element
// fails regardless of HTTP status. Exactly one attempt, no retries.
func (c *Client) invoke(ctx context.Context, cmd string, args []param, out any) error {
	endpoint, err := c.resolveEndpoint(ctx)
	if err != nil {
		return err
	}

	body, err := c.get(ctx, endpoint+"?"+buildQuery(cmd, args))
	if err != nil {
		return err
	}

	var envelope struct {
		Error *remoteErrorNode `xml:"error"`
	}
	if err := xml.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if envelope.Error != nil {
		code, _ := strconv.Atoi(envelope.Error.Code)
		return RemoteError{Code: code, Message: strings.TrimSpace(envelope.Error.Message)}
	}

	if out == nil {
		return nil
	}
	if err := xml.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return body, nil
}

// boolish accepts both the 1/0 and true/false spellings FogBugz has
// used for flag elements.
type boolish bool

func (b *boolish) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "1", "true":
		*b = true
	default:
		*b = false
	}
	return nil
}
