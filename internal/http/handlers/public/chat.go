package public

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/patoekipa/internal/constants"
	"github.com/patoekipa/internal/service"

	"github.com/gin-gonic/gin"
)

// ChatRequest 对话请求
type ChatRequest struct {
	Messages []service.ChatMessage `json:"messages"`
}

type chatFrame struct {
	Content string `json:"content,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Chat 流式对话转发
// 每个内容块按 `data: {"content":...}` 帧输出，流末尾发送 [DONE] 哨兵。
func (h *Handler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := service.ValidateMessages(req.Messages); err != nil {
		respondServiceError(c, err, "invalid chat request")
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Writer.WriteHeader(http.StatusOK)
	flusher, _ := c.Writer.(http.Flusher)

	writeFrame := func(frame chatFrame) error {
		payload, err := json.Marshal(frame)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(c.Writer, "data: %s\n\n", payload); err != nil {
			return err
		}
		if flusher != nil {
			flusher.Flush()
		}
		return nil
	}

	if err := h.ChatService.Stream(c.Request.Context(), req.Messages, func(content string) error {
		return writeFrame(chatFrame{Content: content})
	}); err != nil {
		// 响应头已写出，补一帧错误并正常收尾，客户端才不会等哨兵等到超时
		requestLog(c).Errorw("chat_stream_failed", "error", err)
		_ = writeFrame(chatFrame{Error: "chat stream interrupted"})
	}

	fmt.Fprintf(c.Writer, "data: %s\n\n", constants.ChatStreamDoneSentinel)
	if flusher != nil {
		flusher.Flush()
	}
}
