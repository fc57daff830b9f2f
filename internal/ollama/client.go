// Package ollama is the client for the local Ollama inference backend.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/medo-health/assistant-api/internal/models"
)

// chatTimeout bounds a single inference call. Generation can be slow on
// local hardware, but a hung backend must not pin requests forever.
const chatTimeout = 60 * time.Second

type Client struct {
	baseURL string
	model   string
	client  *http.Client
}

func NewClient(baseURL, model string) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "llama3"
	}
	return &Client{
		baseURL: baseURL,
		model:   model,
		client: &http.Client{
			Timeout: chatTimeout,
		},
	}
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

type chatRequest struct {
	Model    string               `json:"model"`
	Messages []models.ChatMessage `json:"messages"`
	Stream   bool                 `json:"stream"`
}

type chatResponse struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
	Error string `json:"error,omitempty"`
}

// CheckHealth probes the backend's model list. A connection failure means
// the backend is unreachable; a reachable backend with the configured model
// absent from the list is reported but not treated as fatal. The probe runs
// fresh on every call, nothing is cached.
func (c *Client) CheckHealth(ctx context.Context) models.HealthStatus {
	status := models.HealthStatus{ModelName: c.model}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return status
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return status
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return status
	}
	status.BackendReachable = true

	var tags tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return status
	}
	for _, m := range tags.Models {
		if m.Name == c.model {
			status.ModelAvailable = true
			break
		}
	}
	return status
}

// Chat issues exactly one non-streaming inference call and returns the
// textual content of the reply.
func (c *Client) Chat(ctx context.Context, messages []models.ChatMessage) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: messages,
		Stream:   false,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling Ollama: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("Ollama returned status %d", resp.StatusCode)
	}

	var chat chatResponse
	if err := json.Unmarshal(respBody, &chat); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	if chat.Error != "" {
		return "", fmt.Errorf("Ollama error: %s", chat.Error)
	}
	if chat.Message.Content == "" {
		return "", fmt.Errorf("empty message content in response")
	}
	return chat.Message.Content, nil
}
