package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/campusbot/internal/domain"
	"github.com/kailas-cloud/campusbot/internal/domain/chat"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func completionServer(t *testing.T, content string, gotReq *chatRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("unexpected auth header: %s", r.Header.Get("Authorization"))
		}
		if gotReq != nil {
			_ = json.NewDecoder(r.Body).Decode(gotReq)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "cmpl-1",
			"object": "chat.completion",
			"model":  "test-model",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]string{"role": "assistant", "content": content},
				"finish_reason": "stop",
			}},
			"usage": map[string]int{"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15},
		})
	}))
}

func TestNewGenerators_SkipsBlankKeys(t *testing.T) {
	gens := NewGenerators(&Config{APIKeys: []string{"a", " ", "b"}, Model: "m"})
	if len(gens) != 2 {
		t.Fatalf("expected 2 generators, got %d", len(gens))
	}
	if gens[0].Label() != "key-0" || gens[1].Label() != "key-1" {
		t.Errorf("labels = %s, %s", gens[0].Label(), gens[1].Label())
	}
}

func TestGenerator_Complete(t *testing.T) {
	var req chatRequest
	server := completionServer(t, "  The Registrar is open 8AM-5PM.  ", &req)
	defer server.Close()

	gen := NewGenerators(&Config{
		APIKeys: []string{"test-key"},
		BaseURL: server.URL,
		Model:   "test-model",
		Logger:  zap.NewNop(),
	})[0]

	history := []chat.Turn{{Question: "hi", Answer: "hello"}}
	out, err := gen.Complete(context.Background(), "rephrase this", history)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if out != "The Registrar is open 8AM-5PM." {
		t.Errorf("unexpected output %q", out)
	}

	if req.Model != "test-model" || len(req.Messages) != 3 {
		t.Fatalf("unexpected request: %+v", req)
	}
	roles := []string{req.Messages[0].Role, req.Messages[1].Role, req.Messages[2].Role}
	if roles[0] != "user" || roles[1] != "assistant" || roles[2] != "user" {
		t.Errorf("roles = %v", roles)
	}
	if req.Messages[2].Content != "rephrase this" {
		t.Errorf("prompt = %q", req.Messages[2].Content)
	}
}

func TestGenerator_EmptyCompletion(t *testing.T) {
	server := completionServer(t, "   ", nil)
	defer server.Close()

	gen := NewGenerators(&Config{APIKeys: []string{"test-key"}, BaseURL: server.URL, Model: "m"})[0]
	if _, err := gen.Complete(context.Background(), "x", nil); !errors.Is(err, domain.ErrGenerativeProvider) {
		t.Errorf("expected ErrGenerativeProvider, got %v", err)
	}
}

func TestGenerator_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"quota exceeded","type":"rate_limit"}}`))
	}))
	defer server.Close()

	gen := NewGenerators(&Config{APIKeys: []string{"test-key"}, BaseURL: server.URL, Model: "m"})[0]
	_, err := gen.Complete(context.Background(), "x", nil)
	if !errors.Is(err, domain.ErrGenerativeProvider) {
		t.Fatalf("expected ErrGenerativeProvider, got %v", err)
	}
}

func TestExtractMessage(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{`{"error":{"message":"bad key"}}`, "bad key"},
		{`[{"error":{"message":"quota"}}]`, "quota"},
		{`{"detail":"nope"}`, "nope"},
		{`not json`, ""},
	}
	for _, tc := range tests {
		if got := extractMessage([]byte(tc.body)); got != tc.want {
			t.Errorf("extractMessage(%s) = %q, want %q", tc.body, got, tc.want)
		}
	}
}
