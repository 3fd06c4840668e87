package public

import (
	"net/http"

	"github.com/patoekipa/internal/http/response"
	"github.com/patoekipa/internal/service"

	"github.com/gin-gonic/gin"
)

// ContactRequest 联系消息请求
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// SubmitContact 提交联系消息
func (h *Handler) SubmitContact(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	record, err := h.ContactService.Submit(service.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		respondServiceError(c, err, "failed to submit message")
		return
	}

	requestLog(c).Infow("contact_message_received", "contact_id", record.ID)
	response.Created(c, record)
}
