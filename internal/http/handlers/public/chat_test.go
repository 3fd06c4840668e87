package public

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/patoekipa/internal/config"
	"github.com/patoekipa/internal/provider"
	"github.com/patoekipa/internal/service"

	"github.com/gin-gonic/gin"
)

func setupChatHandlerTest(t *testing.T) *Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return &Handler{Container: &provider.Container{
		ChatService: service.NewChatService(config.ChatConfig{}),
	}}
}

func TestChatFallbackStreamEndsWithDone(t *testing.T) {
	h := setupChatHandlerTest(t)

	raw, err := json.Marshal(ChatRequest{Messages: []service.ChatMessage{
		{Role: "user", Content: "hello"},
	}})
	if err != nil {
		t.Fatalf("marshal chat request failed: %v", err)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader(raw))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Chat(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if contentType := w.Header().Get("Content-Type"); contentType != "text/event-stream" {
		t.Fatalf("content-type want text/event-stream got %q", contentType)
	}

	body := w.Body.String()
	if !strings.HasSuffix(body, "data: [DONE]\n\n") {
		t.Fatalf("stream should end with done sentinel, got tail %q", body[max(0, len(body)-40):])
	}

	var joined strings.Builder
	for _, line := range strings.Split(body, "\n") {
		payload, ok := strings.CutPrefix(line, "data: ")
		if !ok || payload == "[DONE]" {
			continue
		}
		var frame chatFrame
		if err := json.Unmarshal([]byte(payload), &frame); err != nil {
			t.Fatalf("invalid frame %q: %v", payload, err)
		}
		joined.WriteString(frame.Content)
	}
	if !strings.Contains(joined.String(), "contact form") {
		t.Fatalf("fallback reply mismatch: %q", joined.String())
	}
}

func TestChatUpstreamErrorStillTerminatesStream(t *testing.T) {
	gin.SetMode(gin.TestMode)
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	h := &Handler{Container: &provider.Container{
		ChatService: service.NewChatService(config.ChatConfig{
			APIKey:  "sk-live-4f2c9",
			BaseURL: upstream.URL,
		}),
	}}

	raw, err := json.Marshal(ChatRequest{Messages: []service.ChatMessage{
		{Role: "user", Content: "hello"},
	}})
	if err != nil {
		t.Fatalf("marshal chat request failed: %v", err)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader(raw))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Chat(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.HasSuffix(body, "data: [DONE]\n\n") {
		t.Fatalf("stream must end with done sentinel even on upstream failure, got %q", body)
	}
	if !strings.Contains(body, `"error"`) {
		t.Fatalf("expected an error frame before the sentinel, got %q", body)
	}
}

func TestChatRejectsInvalidRole(t *testing.T) {
	h := setupChatHandlerTest(t)

	raw, err := json.Marshal(ChatRequest{Messages: []service.ChatMessage{
		{Role: "robot", Content: "hi"},
	}})
	if err != nil {
		t.Fatalf("marshal chat request failed: %v", err)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader(raw))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Chat(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status want 400 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestChatRejectsEmptyMessages(t *testing.T) {
	h := setupChatHandlerTest(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"messages":[]}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Chat(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status want 400 got %d body=%s", w.Code, w.Body.String())
	}
}
