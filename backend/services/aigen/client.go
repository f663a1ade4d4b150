// Package aigen drafts course content through an external generative-AI
// HTTP endpoint. Drafts are suggestions for an admin to review, never
// published directly.
package aigen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"lms/backend/config"
)

type Client struct {
	endpoint string
	apiKey   string
	model    string
	httpc    *http.Client
	logger   *log.Logger
}

// ModuleDraft is one suggested course module.
type ModuleDraft struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
}

func NewClient(cfg *config.Config, logger *log.Logger) *Client {
	return &Client{
		endpoint: cfg.AIEndpoint,
		apiKey:   cfg.AIAPIKey,
		model:    cfg.AIModel,
		httpc:    &http.Client{Timeout: 60 * time.Second},
		logger:   logger,
	}
}

func (c *Client) Enabled() bool {
	return c.endpoint != ""
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
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

// GenerateModules asks the model for draft modules for a course topic.
func (c *Client) GenerateModules(ctx context.Context, courseTitle, topic string, count int) ([]ModuleDraft, error) {
	if count <= 0 {
		count = 3
	}

	prompt := fmt.Sprintf(
		"Draft %d training modules for a corporate course titled %q on %q. "+
			"Respond with a JSON array of objects with keys title, description, content. "+
			"No prose outside the JSON.", count, courseTitle, topic)

	content, err := c.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var drafts []ModuleDraft
	if err := json.Unmarshal([]byte(CleanJSON(content)), &drafts); err != nil {
		return nil, fmt.Errorf("decoding model output: %w", err)
	}
	return drafts, nil
}

func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	res, err := c.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
		c.logger.Printf("ai endpoint status %d: %s", res.StatusCode, payload)
		return "", fmt.Errorf("ai endpoint status %d", res.StatusCode)
	}

	var decoded chatResponse
	if err := json.NewDecoder(res.Body).Decode(&decoded); err != nil {
		return "", err
	}
	if len(decoded.Choices) == 0 {
		return "", fmt.Errorf("ai endpoint returned no choices")
	}
	return decoded.Choices[0].Message.Content, nil
}

// CleanJSON strips the markdown code fences and surrounding prose that
// models wrap around JSON output.
func CleanJSON(s string) string {
	s = strings.TrimSpace(s)

	if start := strings.Index(s, "```"); start != -1 {
		s = s[start+3:]
		s = strings.TrimPrefix(s, "json")
		if end := strings.Index(s, "```"); end != -1 {
			s = s[:end]
		}
		s = strings.TrimSpace(s)
	}

	// Trim any prose left outside the outermost JSON value.
	first := strings.IndexAny(s, "[{")
	if first == -1 {
		return s
	}
	last := strings.LastIndexAny(s, "]}")
	if last < first {
		return s
	}
	return s[first : last+1]
}
