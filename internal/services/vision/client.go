package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultHTTPTimeout = 60 * time.Second
	defaultBaseURL     = "https://openrouter.ai/api/v1/chat/completions"
)

const describePrompt = `Describe the image for a text-only reader. Respond with JSON only:
{"title": "<short title, at most 10 words>", "description": "<one or two sentence description>"}`

// Config captures the runtime settings for the vision service.
type Config struct {
	APIKey         string
	BaseURL        string
	Model          string
	TimeoutSeconds int
}

// Client wraps the multimodal chat completion API.
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

// NewClient constructs a vision client using the supplied configuration.
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
	if strings.TrimSpace(client.cfg.BaseURL) == "" {
		client.cfg.BaseURL = defaultBaseURL
	}
	return client
}

// Description is the title/description pair produced for an image.
type Description struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type visionRequest struct {
	Model          string            `json:"model"`
	Messages       []visionMessage   `json:"messages"`
	Temperature    float64           `json:"temperature"`
	ResponseFormat map[string]string `json:"response_format"`
}

type visionMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type visionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Describe asks the vision model for a title and description of the image at
// url.
func (c *Client) Describe(ctx context.Context, url string) (Description, error) {
	var empty Description
	url = strings.TrimSpace(url)
	if url == "" {
		return empty, errors.New("describe: image url required")
	}
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return empty, errors.New("describe: api key required")
	}

	payload := visionRequest{
		Model: c.cfg.Model,
		Messages: []visionMessage{
			{
				Role: "user",
				Content: []contentPart{
					{Type: "text", Text: describePrompt},
					{Type: "image_url", ImageURL: &imageURL{URL: url}},
				},
			},
		},
		Temperature:    0,
		ResponseFormat: map[string]string{"type": "json_object"},
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return empty, fmt.Errorf("describe: encode body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL, bytes.NewReader(encoded))
	if err != nil {
		return empty, fmt.Errorf("describe: new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return empty, fmt.Errorf("describe: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return empty, fmt.Errorf("describe: read body: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return empty, fmt.Errorf("describe: http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var completion visionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return empty, fmt.Errorf("describe: decode response: %w", err)
	}
	if completion.Error != nil {
		return empty, fmt.Errorf("describe: api error: %s", strings.TrimSpace(completion.Error.Message))
	}

	var content string
	for _, choice := range completion.Choices {
		if trimmed := strings.TrimSpace(choice.Message.Content); trimmed != "" {
			content = trimmed
			break
		}
	}
	if content == "" {
		return empty, errors.New("describe: empty content")
	}

	var parsed Description
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		// Some models reply with plain prose despite JSON mode; use it as the
		// description rather than failing the image.
		return Description{Description: content}, nil
	}
	parsed.Title = strings.TrimSpace(parsed.Title)
	parsed.Description = strings.TrimSpace(parsed.Description)
	return parsed, nil
}
