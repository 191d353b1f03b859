// Package generation wraps the external text-generation provider behind a
// small client. The provider speaks the common chat-completions JSON shape;
// any upstream failure surfaces as an error and never as a partial result.
package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ContentType selects the voice of a generated post.
const (
	ContentPersonal    = "personal"
	ContentEducational = "educational"
)

// Params describes one generation request.
type Params struct {
	Age         string
	Gender      string
	Procedure   string
	Reason      string
	ContentType string
	Topic       string
}

// Result is a generated post before persistence. Tags come back lowercased
// with any leading '#' stripped.
type Result struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

type Client struct {
	apiURL string
	apiKey string
	model  string
	client *http.Client
}

func NewClient(apiURL, apiKey, model string, timeout time.Duration) *Client {
	return &Client{
		apiURL: apiURL,
		apiKey: apiKey,
		model:  model,
		client: &http.Client{Timeout: timeout},
	}
}

// IsAvailable checks whether the provider is configured.
func (c *Client) IsAvailable() bool {
	return c.apiKey != ""
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

const systemPrompt = `You are a writer for a cosmetic-procedure experiences blog. You write honest, empathetic, medically sensible posts in markdown. Never invent clinic names or prices. Return ONLY a valid JSON object, no markdown fences, no explanation.`

// Generate asks the provider for one post. The context bounds the whole
// call; a hung upstream cannot stall a batch past the deadline.
func (c *Client) Generate(ctx context.Context, p Params) (*Result, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("generation API key not configured")
	}

	voice := "a personal first-person experience story"
	if p.ContentType == ContentEducational {
		voice = "an educational, informative article"
	}

	userPrompt := fmt.Sprintf(`Write %s about the procedure %q.
Author persona: age %s, gender %s, motivation: %s.`, voice, p.Procedure, p.Age, p.Gender, p.Reason)
	if p.Topic != "" {
		userPrompt += fmt.Sprintf("\nFocus on the topic: %s.", p.Topic)
	}
	userPrompt += `

Return a JSON object with this exact shape:
{"title": "...", "content": "markdown body", "tags": ["tag1", "tag2", "tag3"]}`

	reqBody, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: 0.8,
		MaxTokens:   4096,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call generation API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("generation API returned status %d: %s", resp.StatusCode, string(body))
	}

	var chat chatResponse
	if err := json.Unmarshal(body, &chat); err != nil {
		return nil, fmt.Errorf("failed to parse generation response: %w", err)
	}
	if len(chat.Choices) == 0 {
		return nil, fmt.Errorf("no content in generation response")
	}

	content := strings.TrimSpace(chat.Choices[0].Message.Content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var result Result
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, fmt.Errorf("failed to parse generated post: %w", err)
	}
	if result.Title == "" || result.Content == "" {
		return nil, fmt.Errorf("generated post missing title or content")
	}

	cleaned := make([]string, 0, len(result.Tags))
	for _, t := range result.Tags {
		t = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(t, "#")))
		if t != "" {
			cleaned = append(cleaned, t)
		}
	}
	result.Tags = cleaned

	return &result, nil
}
