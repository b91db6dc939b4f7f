package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mikey/llm-triage/internal/core"
	"github.com/mikey/llm-triage/internal/utils"
	"go.uber.org/zap"
)

func newTestClient(endpoint, marker string) *OllamaClient {
	logger := zap.NewNop()
	return NewOllamaClient(endpoint, "deepseek-r1:latest", 5*time.Second, marker, 4096, logger, utils.NewTextProcessor(logger))
}

func TestClassifyStripsReasoning(t *testing.T) {
	var gotPath string
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		json.NewEncoder(w).Encode(chatResponse{
			Message: chatMessage{
				Role:    "assistant",
				Content: "Let me think about the symptoms...</think>\nemergency\n95%",
			},
		})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, "</think>")
	reply, err := client.Classify(context.Background(), "I have severe chest pain")
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}

	if reply != "\nemergency\n95%" {
		t.Fatalf("unexpected reply after reasoning strip: %q", reply)
	}
	if gotPath != "/api/chat" {
		t.Fatalf("expected request to /api/chat, got %s", gotPath)
	}
	if gotReq.Stream {
		t.Fatalf("expected stream to be disabled")
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" || gotReq.Messages[1].Role != "user" {
		t.Fatalf("unexpected message layout: %+v", gotReq.Messages)
	}
	if gotReq.Messages[1].Content != "I have severe chest pain" {
		t.Fatalf("unexpected user message: %q", gotReq.Messages[1].Content)
	}
}

func TestClassifyMissingMarker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(chatResponse{
			Message: chatMessage{Role: "assistant", Content: "emergency\n95%"},
		})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, "</think>")
	_, err := client.Classify(context.Background(), "I have severe chest pain")
	if !errors.Is(err, core.ErrMalformedReply) {
		t.Fatalf("expected ErrMalformedReply, got %v", err)
	}
}

func TestClassifyEmptyMarkerSkipsSplit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(chatResponse{
			Message: chatMessage{Role: "assistant", Content: "routine\n80%"},
		})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, "")
	reply, err := client.Classify(context.Background(), "need a prescription refill")
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}
	if reply != "routine\n80%" {
		t.Fatalf("unexpected reply: %q", reply)
	}
}

func TestClassifyBackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, "</think>")
	_, err := client.Classify(context.Background(), "I have severe chest pain")

	var backendErr *core.BackendError
	if !errors.As(err, &backendErr) {
		t.Fatalf("expected *core.BackendError, got %v", err)
	}
	if backendErr.Status != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", backendErr.Status)
	}
}

func TestClassifyBackendUnreachable(t *testing.T) {
	// Grab an address, then shut the server down so connections are refused
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := srv.URL
	srv.Close()

	client := newTestClient(endpoint, "</think>")
	_, err := client.Classify(context.Background(), "I have severe chest pain")
	if !errors.Is(err, core.ErrBackendUnreachable) {
		t.Fatalf("expected ErrBackendUnreachable, got %v", err)
	}
}
