// Package jmx queries metric beans from a JMX HTTP endpoint.
package jmx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/tidwall/gjson"
)

// userAgent is the fixed identifying client string sent with every request.
const userAgent = "check_yarn_rm"

// Client fetches beans from a single /jmx endpoint.
type Client struct {
	url        string
	user       string
	password   string
	httpClient *http.Client
}

// NewClient returns a client for the JMX servlet at http://host:port/jmx.
func NewClient(host string, port int) *Client {
	return &Client{
		url:        fmt.Sprintf("http://%s:%d/jmx", host, port),
		httpClient: http.DefaultClient,
	}
}

// SetBasicAuth enables HTTP basic authentication on subsequent requests.
func (c *Client) SetBasicAuth(user, password string) {
	c.user = user
	c.password = password
}

// URL returns the endpoint URL the client queries.
func (c *Client) URL() string {
	return c.url
}

// FindBean fetches the endpoint once and returns the single bean whose
// name field matches exactly. Zero matches and multiple matches are both
// errors; a missing beans array counts as zero matches.
func (c *Client) FindBean(ctx context.Context, name string) (*Bean, error) {
	body, err := c.fetch(ctx)
	if err != nil {
		return nil, err
	}

	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("invalid json returned by resource manager at '%s'", c.url)
	}

	var match *Bean
	count := 0
	beans := gjson.GetBytes(body, "beans")
	if beans.IsArray() {
		for _, raw := range beans.Array() {
			if raw.Get("name").String() != name {
				continue
			}
			count++
			bean := Bean{raw: raw}
			match = &bean
		}
	}

	switch {
	case count == 0:
		return nil, fmt.Errorf("failed to find mbean '%s' at '%s'", name, c.url)
	case count > 1:
		return nil, fmt.Errorf("more than one matching mbean found for '%s'", name)
	}

	slog.Debug("matched mbean", "name", name)
	return match, nil
}

func (c *Client) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if c.user != "" {
		req.SetBasicAuth(c.user, c.password)
	}

	slog.Debug("querying jmx endpoint", "url", c.url)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to '%s' failed: %w", c.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected response from '%s': %s", c.url, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response from '%s': %w", c.url, err)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("empty response from '%s'", c.url)
	}
	return body, nil
}
