package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// Fetcher retrieves endpoint payloads from the backend.
type Fetcher interface {
	FetchText(ctx context.Context, endpoint string) (string, error)
	FetchJSON(ctx context.Context, endpoint string) (any, error)
	FetchRaw(ctx context.Context, endpoint string) ([]byte, error)
}

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	Endpoint string
	Code     int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status code: %d", e.Endpoint, e.Code)
}

// Client issues unauthenticated GET requests against a fixed backend base
// address. There is no retry and no caching.
type Client struct {
	base    *url.URL
	http    *http.Client
	metrics *metrics
}

// NewClient returns a client for base, which may carry a path prefix such as
// http://localhost:3000/api. A zero timeout means none.
func NewClient(base string, timeout time.Duration, m *metrics) (*Client, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid backend URL %q", base)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.Newf("invalid backend URL %q: scheme and host required", base)
	}
	return &Client{
		base: u,
		http: &http.Client{
			Timeout:   timeout,
			Transport: http.DefaultTransport.(*http.Transport).Clone(),
		},
		metrics: m,
	}, nil
}

// Close releases idle backend connections.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

// URL returns the absolute address for endpoint, a path relative to the
// base that may be percent-encoded and carry a query. Fragments are dropped.
func (c *Client) URL(endpoint string) (string, error) {
	ref, err := url.Parse(endpoint)
	if err != nil {
		return "", errors.Wrapf(err, "invalid endpoint %q", endpoint)
	}
	if ref.Scheme != "" || ref.Host != "" {
		return "", errors.Newf("invalid endpoint %q: must be a path", endpoint)
	}
	u := *c.base
	u.Path = strings.TrimSuffix(c.base.Path, "/") + "/" + strings.TrimPrefix(ref.Path, "/")
	u.RawPath = strings.TrimSuffix(c.base.EscapedPath(), "/") + "/" + strings.TrimPrefix(ref.EscapedPath(), "/")
	u.RawQuery = ref.RawQuery
	u.Fragment = ""
	u.RawFragment = ""
	return u.String(), nil
}

func (c *Client) FetchText(ctx context.Context, endpoint string) (string, error) {
	body, err := c.FetchRaw(ctx, endpoint)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// FetchJSON decodes the endpoint body. Numbers are kept as json.Number so
// they print back unchanged.
func (c *Client) FetchJSON(ctx context.Context, endpoint string) (any, error) {
	body, err := c.FetchRaw(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var v any
	err = dec.Decode(&v)
	if err == nil {
		err = expectEOF(dec)
	}
	if err != nil {
		log.Printf("[%s] ERROR: failed to decode response: %v", endpoint, err)
		return nil, errors.Wrapf(err, "decode %s", endpoint)
	}
	return v, nil
}

func (c *Client) FetchRaw(ctx context.Context, endpoint string) ([]byte, error) {
	start := time.Now()
	body, err := c.get(ctx, endpoint)
	c.metrics.observeFetch(endpoint, err, time.Since(start))
	if err != nil {
		log.Printf("[%s] ERROR: %v", endpoint, err)
		return nil, err
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	target, err := c.URL(endpoint)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "create request for %s", endpoint)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch %s", endpoint)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{Endpoint: endpoint, Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", endpoint)
	}
	return body, nil
}
