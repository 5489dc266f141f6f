// Package openrouter is the completion transport: one blocking POST to an
// OpenAI-compatible chat endpoint per invocation, no retries.
package openrouter

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

const (
	DefaultEndpoint = "https://openrouter.ai/api/v1/chat/completions"

	requestTimeout = 40 * time.Second
)

type Client struct {
	Endpoint string
	client   *http.Client
}

func NewClient(endpoint string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		Endpoint: endpoint,
		client: &http.Client{
			Timeout: requestTimeout,
		},
	}
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

// Complete sends the system and user messages plus the configured model
// parameters, and returns the first choice's message content. Any non-2xx
// status or network failure is returned as an error; callers decide how
// to surface it.
func (c *Client) Complete(ctx context.Context, system, user string, headers map[string]string, params map[string]any) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	payload := map[string]any{
		"messages": []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}
	for key, value := range params {
		payload[key] = value
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("could not encode completion request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		detail := strings.TrimSpace(string(msg))
		if detail != "" {
			return "", fmt.Errorf("openrouter error: %s: %s", resp.Status, detail)
		}
		return "", fmt.Errorf("openrouter error: %s", resp.Status)
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("could not decode completion response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return "", fmt.Errorf("completion response contained no choices")
	}
	return decoded.Choices[0].Message.Content, nil
}

func (c *Client) httpClient() *http.Client {
	if c.client != nil {
		return c.client
	}
	c.client = &http.Client{Timeout: requestTimeout}
	return c.client
}
