package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"readiness-backend/internal/llm"
)

const (
	apiURL     = "https://api.anthropic.com/v1/messages"
	apiVersion = "2023-06-01"
)

// Client implements llm.Client using the Anthropic Messages API.
type Client struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient constructs a new Anthropic client.
func NewClient(apiKey, model string) (*Client, error) {
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required for Anthropic")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY is required")
	}
	timeout := 30 * time.Second
	if raw := strings.TrimSpace(os.Getenv("ANTHROPIC_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}
	return &Client{
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type messageRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messageResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// GenerateText performs a single messages call. Failures wrap
// llm.ErrUnavailable so callers fall back to catalog-only output.
func (c *Client) GenerateText(ctx context.Context, prompt llm.Prompt) (string, error) {
	payload, err := json.Marshal(messageRequest{
		Model:     c.model,
		MaxTokens: 1024,
		System:    prompt.System,
		Messages:  []message{{Role: "user", Content: prompt.User}},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", apiVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return "", fmt.Errorf("anthropic request timeout: %w", llm.ErrUnavailable)
		}
		return "", fmt.Errorf("anthropic request: %v: %w", err, llm.ErrUnavailable)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("anthropic response read: %v: %w", err, llm.ErrUnavailable)
	}

	var parsed messageResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("anthropic response parse: %v: %w", err, llm.ErrUnavailable)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("anthropic error: %s (%s): %w", parsed.Error.Message, parsed.Error.Type, llm.ErrUnavailable)
	}

	var b strings.Builder
	for _, block := range parsed.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	content := strings.TrimSpace(b.String())
	if content == "" {
		return "", fmt.Errorf("anthropic response empty content: %w", llm.ErrUnavailable)
	}
	return content, nil
}

var _ llm.Client = (*Client)(nil)
