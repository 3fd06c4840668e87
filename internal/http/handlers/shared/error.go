package shared

import (
	"errors"
	"net/http"

	"github.com/patoekipa/internal/http/response"
	"github.com/patoekipa/internal/logger"
	"github.com/patoekipa/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondError 返回错误响应，并在有原始错误时记录日志。
func RespondError(c *gin.Context, status int, msg string, err error) {
	appErr := response.WrapError(status, msg, err)
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"status", appErr.Status,
			"message", appErr.Message,
			"error", err,
		)
	}
	response.Error(c, appErr.Status, appErr.Message)
}

// RespondServiceError 将 service 层错误映射为 HTTP 状态码。
// 校验与守卫类错误透出原始消息，其余返回通用消息并记录原始错误。
func RespondServiceError(c *gin.Context, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, service.ErrValidation):
		response.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrLastSuperAdmin):
		response.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		response.Error(c, http.StatusNotFound, "resource not found")
	case errors.Is(err, service.ErrDuplicate):
		response.Error(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrUploadTooLarge), errors.Is(err, service.ErrUploadUnsupported):
		response.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrSignatureInvalid):
		response.Error(c, http.StatusForbidden, err.Error())
	default:
		RespondError(c, http.StatusInternalServerError, fallbackMsg, err)
	}
}
