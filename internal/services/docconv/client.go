package docconv

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultHTTPTimeout = 2 * time.Minute

// ErrNotConfigured is returned when no converter endpoint is configured.
var ErrNotConfigured = errors.New("document converter not configured")

// Config captures the runtime settings for the converter.
type Config struct {
	BaseURL        string
	TimeoutSeconds int
}

// Client wraps the document conversion API.
type Client struct {
	cfg        Config
	httpClient *http.Client
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

// NewClient constructs a converter client using the supplied configuration.
func NewClient(cfg Config, opts ...Option) *Client {
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Convert uploads document bytes and returns the extracted plain text.
// contentType tells the converter what it is receiving.
func (c *Client) Convert(ctx context.Context, document []byte, contentType string) (string, error) {
	if strings.TrimSpace(c.cfg.BaseURL) == "" {
		return "", ErrNotConfigured
	}
	if len(document) == 0 {
		return "", errors.New("convert: document required")
	}
	if strings.TrimSpace(contentType) == "" {
		contentType = "application/octet-stream"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.cfg.BaseURL, bytes.NewReader(document))
	if err != nil {
		return "", fmt.Errorf("convert: new request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "text/plain")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("convert: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("convert: read body: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("convert: http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	text := strings.TrimSpace(string(body))
	if text == "" {
		return "", errors.New("convert: empty conversion result")
	}
	return text, nil
}
