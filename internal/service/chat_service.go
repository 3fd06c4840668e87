package service

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/patoekipa/internal/config"
	"github.com/patoekipa/internal/constants"
	"github.com/patoekipa/internal/logger"
)

// ChatService 聊天助手转发服务
// 配置了上游 API Key 时按流式转发，否则回落到本地应答。
type ChatService struct {
	cfg    config.ChatConfig
	client *http.Client
}

// NewChatService 创建聊天服务
func NewChatService(cfg config.ChatConfig) *ChatService {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &ChatService{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

// ChatMessage 单条对话消息
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// EmitFunc 逐块输出回调，返回错误时中止流
type EmitFunc func(content string) error

type chatCompletionRequest struct {
	Model     string        `json:"model"`
	Messages  []ChatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
	Stream    bool          `json:"stream"`
}

type chatCompletionChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

const fallbackReply = "Thanks for reaching out! The assistant is offline right now, " +
	"but you can browse our projects and team pages, or send us a message " +
	"through the contact form and we will get back to you."

// ValidateMessages 校验对话消息
func ValidateMessages(messages []ChatMessage) error {
	if len(messages) == 0 {
		return NewValidationError("messages is required")
	}
	for _, message := range messages {
		switch message.Role {
		case constants.ChatRoleSystem, constants.ChatRoleUser, constants.ChatRoleAssistant:
		default:
			return NewValidationError("invalid message role")
		}
		if strings.TrimSpace(message.Content) == "" {
			return NewValidationError("message content is required")
		}
	}
	return nil
}

// Stream 执行一次对话并逐块回调输出
func (s *ChatService) Stream(ctx context.Context, messages []ChatMessage, emit EmitFunc) error {
	if err := ValidateMessages(messages); err != nil {
		return err
	}
	if isPlaceholderAPIKey(s.cfg.APIKey) {
		return s.streamFallback(ctx, emit)
	}
	return s.streamUpstream(ctx, messages, emit)
}

// isPlaceholderAPIKey 识别未配置或模板残留的密钥
func isPlaceholderAPIKey(key string) bool {
	normalized := strings.ToLower(strings.TrimSpace(key))
	if normalized == "" {
		return true
	}
	return strings.Contains(normalized, "your-api-key") ||
		strings.Contains(normalized, "change-me") ||
		strings.Contains(normalized, "placeholder")
}

// streamFallback 无上游配置时逐词输出固定应答
func (s *ChatService) streamFallback(ctx context.Context, emit EmitFunc) error {
	delay := time.Duration(s.cfg.FallbackDelayMS) * time.Millisecond
	words := strings.Fields(fallbackReply)
	for i, word := range words {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		chunk := word
		if i < len(words)-1 {
			chunk += " "
		}
		if err := emit(chunk); err != nil {
			return err
		}
		if delay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return nil
}

// streamUpstream 转发到 OpenAI 兼容的流式对话接口
func (s *ChatService) streamUpstream(ctx context.Context, messages []ChatMessage, emit EmitFunc) error {
	payload := chatCompletionRequest{
		Model:     s.cfg.Model,
		Messages:  messages,
		MaxTokens: s.cfg.MaxTokens,
		Stream:    true,
	}
	if prompt := strings.TrimSpace(s.cfg.SystemPrompt); prompt != "" && payload.Messages[0].Role != constants.ChatRoleSystem {
		payload.Messages = append([]ChatMessage{{Role: constants.ChatRoleSystem, Content: prompt}}, payload.Messages...)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	endpoint := strings.TrimRight(s.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)
	req.Header.Set("Accept", "text/event-stream")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		logger.Errorw("chat_upstream_error", "status", resp.StatusCode, "body", string(snippet))
		return fmt.Errorf("chat upstream returned status %d", resp.StatusCode)
	}

	return s.relayEventStream(resp.Body, emit)
}

// relayEventStream 解析上游 SSE 并转发内容块
func (s *ChatService) relayEventStream(body io.Reader, emit EmitFunc) error {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "" {
			continue
		}
		if data == constants.ChatStreamDoneSentinel {
			return nil
		}
		var chunk chatCompletionChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			logger.Warnw("chat_chunk_decode_failed", "error", err)
			continue
		}
		for _, choice := range chunk.Choices {
			if choice.Delta.Content == "" {
				continue
			}
			if err := emit(choice.Delta.Content); err != nil {
				return err
			}
		}
	}
	return scanner.Err()
}
