package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/medo-health/assistant-api/internal/models"
)

func TestCheckHealthModelAvailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"models": []map[string]string{{"name": "llama3"}, {"name": "mistral"}},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "llama3")
	status := client.CheckHealth(context.Background())

	if !status.BackendReachable {
		t.Errorf("backend should be reachable")
	}
	if !status.ModelAvailable {
		t.Errorf("model should be available")
	}
	if status.ModelName != "llama3" {
		t.Errorf("unexpected model name: %s", status.ModelName)
	}
}

func TestCheckHealthModelMissing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"models": []map[string]string{{"name": "mistral"}},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "llama3")
	status := client.CheckHealth(context.Background())

	if !status.BackendReachable {
		t.Errorf("backend should be reachable")
	}
	if status.ModelAvailable {
		t.Errorf("model should be reported missing")
	}
}

func TestCheckHealthUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // probe against a dead server

	client := NewClient(server.URL, "llama3")
	status := client.CheckHealth(context.Background())

	if status.BackendReachable || status.ModelAvailable {
		t.Errorf("dead backend must report unreachable, got %+v", status)
	}
}

func TestChat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}

		var req struct {
			Model    string               `json:"model"`
			Messages []models.ChatMessage `json:"messages"`
			Stream   bool                 `json:"stream"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		if req.Stream {
			t.Errorf("streaming must be disabled")
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" || req.Messages[1].Role != "user" {
			t.Errorf("expected one system and one user message, got %+v", req.Messages)
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"message": map[string]string{"content": "Drink plenty of water."},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "llama3")
	answer, err := client.Chat(context.Background(), []models.ChatMessage{
		{Role: "system", Content: "you are a health assistant"},
		{Role: "user", Content: "hydration tips?"},
	})

	if err != nil {
		t.Fatalf("Chat returned error: %v", err)
	}
	if answer != "Drink plenty of water." {
		t.Errorf("unexpected answer: %q", answer)
	}
}

func TestChatUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "llama3")
	if _, err := client.Chat(context.Background(), []models.ChatMessage{{Role: "user", Content: "hi"}}); err == nil {
		t.Errorf("expected error on non-200 status")
	}
}

func TestChatMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "llama3")
	if _, err := client.Chat(context.Background(), []models.ChatMessage{{Role: "user", Content: "hi"}}); err == nil {
		t.Errorf("expected error on malformed response body")
	}
}
