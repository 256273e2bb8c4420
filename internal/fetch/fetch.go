package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// ErrTooLarge is returned when a resource exceeds the configured size cap.
var ErrTooLarge = errors.New("resource exceeds download size cap")

// Client retrieves resource bytes.
type Client struct {
	httpClient *http.Client
	maxBytes   int64
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient constructs a fetch client. maxBytes <= 0 disables the size cap.
func NewClient(timeout time.Duration, maxBytes int64, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		maxBytes:   maxBytes,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch retrieves the bytes behind a URL. file:// URLs and bare local paths
// are read from disk; everything else goes over HTTP.
func (c *Client) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, errors.New("fetch: url required")
	}

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Scheme == "file" {
		path := rawURL
		if parsed != nil && parsed.Scheme == "file" {
			path = parsed.Path
		}
		return c.readLocal(path)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch: new request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch: unexpected status %d for %s", resp.StatusCode, rawURL)
	}
	return c.readCapped(resp.Body)
}

func (c *Client) readLocal(path string) ([]byte, error) {
	if c.maxBytes > 0 {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("fetch: stat local file: %w", err)
		}
		if info.Size() > c.maxBytes {
			return nil, fmt.Errorf("fetch: %s: %w", path, ErrTooLarge)
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fetch: read local file: %w", err)
	}
	return data, nil
}

func (c *Client) readCapped(r io.Reader) ([]byte, error) {
	if c.maxBytes <= 0 {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("fetch: read body: %w", err)
		}
		return data, nil
	}
	data, err := io.ReadAll(io.LimitReader(r, c.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("fetch: read body: %w", err)
	}
	if int64(len(data)) > c.maxBytes {
		return nil, ErrTooLarge
	}
	return data, nil
}
