// Package fetch binds reactive cells to HTTP resources: a configurable
// client carries the base URL and default headers, and Call runs one
// request per activation with bounded immediate retry, committing the
// decoded result through the activation guard so responses that land
// after teardown are discarded.
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"

	"github.com/goccy/go-json"
)

// Client issues requests against a base URL with default headers.
type Client struct {
	base   string
	header http.Header
	http   *http.Client
	log    *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithHeader adds a default header sent on every request.
func WithHeader(key, value string) ClientOption {
	return func(c *Client) {
		c.header.Add(key, value)
	}
}

// WithLogger sets the request logger.
func WithLogger(log *slog.Logger) ClientOption {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// NewClient creates a Client for the given base URL.
func NewClient(base string, opts ...ClientOption) *Client {
	c := &Client{
		base:   base,
		header: make(http.Header),
		http:   http.DefaultClient,
		log:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Request describes one HTTP call. For GET and HEAD requests the body is
// encoded into query parameters instead of a payload.
type Request struct {
	Method string
	Path   string
	Header http.Header
	Body   any
}

func (c *Client) do(ctx context.Context, req Request) ([]byte, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	target, err := url.JoinPath(c.base, req.Path)
	if err != nil {
		return nil, fmt.Errorf("join url: %w", err)
	}

	var payload io.Reader
	if req.Body != nil {
		if method == http.MethodGet || method == http.MethodHead {
			query, err := queryFromBody(req.Body)
			if err != nil {
				return nil, fmt.Errorf("encode query: %w", err)
			}
			target = target + "?" + query.Encode()
		} else {
			raw, err := json.Marshal(req.Body)
			if err != nil {
				return nil, fmt.Errorf("encode body: %w", err)
			}
			payload = bytes.NewReader(raw)
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, payload)
	if err != nil {
		return nil, err
	}
	for key, values := range c.header {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}
	for key, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}
	if payload != nil && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return data, nil
}

// queryFromBody flattens a request body into query parameters. Scalar
// fields become plain values; nested structures are JSON-encoded.
func queryFromBody(body any) (url.Values, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	fields := make(map[string]any)
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("body must encode to an object: %w", err)
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := make(url.Values, len(fields))
	for _, key := range keys {
		switch v := fields[key].(type) {
		case nil:
			continue
		case string:
			values.Set(key, v)
		case bool:
			values.Set(key, strconv.FormatBool(v))
		case float64:
			values.Set(key, strconv.FormatFloat(v, 'f', -1, 64))
		default:
			nested, err := json.Marshal(v)
			if err != nil {
				return nil, err
			}
			values.Set(key, string(nested))
		}
	}
	return values, nil
}
