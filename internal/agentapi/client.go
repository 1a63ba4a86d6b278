// internal/agentapi/client.go
package agentapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("not found")

// StatusError is returned for any non-2xx response
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("agent server returned HTTP %d", e.Code)
	}
	return fmt.Sprintf("agent server returned HTTP %d: %s", e.Code, e.Body)
}

func (e *StatusError) Unwrap() error {
	if e.Code == http.StatusNotFound {
		return ErrNotFound
	}
	return nil
}

// Client talks to a LangGraph-style agent server
type Client struct {
	baseURL    string
	apiKey     string
	pageSize   int
	httpClient *http.Client
}

type Option func(*Client)

// WithAPIKey sends key in the X-Api-Key header
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithPageSize sets how many threads a list call requests
func WithPageSize(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a client for the server at baseURL. timeout bounds each
// request; zero means no client-side limit.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		pageSize: 100,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   10 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout:   10 * time.Second,
				ResponseHeaderTimeout: 30 * time.Second,
				IdleConnTimeout:       90 * time.Second,
				MaxIdleConns:          10,
				MaxIdleConnsPerHost:   5,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListThreads returns the most recently updated threads
func (c *Client) ListThreads(ctx context.Context) ([]Thread, error) {
	body := searchRequest{
		Limit:     c.pageSize,
		Offset:    0,
		SortBy:    "updated_at",
		SortOrder: "desc",
	}
	var threads []Thread
	if err := c.do(ctx, http.MethodPost, "/threads/search", body, &threads); err != nil {
		return nil, fmt.Errorf("list threads: %w", err)
	}
	if threads == nil {
		threads = []Thread{}
	}
	return threads, nil
}

// DeleteThread removes a thread and all of its messages
func (c *Client) DeleteThread(ctx context.Context, threadID string) error {
	if err := c.do(ctx, http.MethodDelete, "/threads/"+url.PathEscape(threadID), nil, nil); err != nil {
		return fmt.Errorf("delete thread %s: %w", threadID, err)
	}
	return nil
}

// CreateThread creates an empty thread with a client-generated id
func (c *Client) CreateThread(ctx context.Context, metadata map[string]any) (Thread, error) {
	body := createThreadRequest{
		ThreadID: uuid.NewString(),
		Metadata: metadata,
	}
	var t Thread
	if err := c.do(ctx, http.MethodPost, "/threads", body, &t); err != nil {
		return Thread{}, fmt.Errorf("create thread: %w", err)
	}
	if t.ThreadID == "" {
		t.ThreadID = body.ThreadID
	}
	return t, nil
}

// RunWait starts a run on the thread and blocks until it finishes. The
// returned value is the thread's state values after the run.
func (c *Client) RunWait(ctx context.Context, threadID string, req RunRequest) (map[string]any, error) {
	var values map[string]any
	path := "/threads/" + url.PathEscape(threadID) + "/runs/wait"
	if err := c.do(ctx, http.MethodPost, path, req, &values); err != nil {
		return nil, fmt.Errorf("run on thread %s: %w", threadID, err)
	}
	return values, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}

	if out == nil {
		return nil
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}
