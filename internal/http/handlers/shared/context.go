package shared

import (
	"net/http"

	"github.com/patoekipa/internal/auth"
	"github.com/patoekipa/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ContextKeyAuthorization 中间件写入授权结果使用的上下文键
const ContextKeyAuthorization = "authorization"

// GetAuthorization 从上下文读取授权结果
func GetAuthorization(c *gin.Context) (auth.Authorization, bool) {
	value, exists := c.Get(ContextKeyAuthorization)
	if !exists {
		return auth.Authorization{}, false
	}
	result, ok := value.(auth.Authorization)
	return result, ok
}

// RequireAuthorization 读取授权结果，缺失时统一响应 401
func RequireAuthorization(c *gin.Context) (auth.Authorization, bool) {
	result, ok := GetAuthorization(c)
	if !ok || !result.Authenticated {
		response.Error(c, http.StatusUnauthorized, "authentication required")
		return auth.Authorization{}, false
	}
	return result, true
}
