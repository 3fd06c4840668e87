package router

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/patoekipa/internal/auth"
	"github.com/patoekipa/internal/cache"
	"github.com/patoekipa/internal/config"
	"github.com/patoekipa/internal/http/handlers/shared"
	"github.com/patoekipa/internal/http/response"
	"github.com/patoekipa/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDKey = "request_id"
const requestIDHeader = "X-Request-ID"

// CORSMiddleware 跨域中间件
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	allowedMethods := cfg.AllowedMethods
	if len(allowedMethods) == 0 {
		allowedMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	allowedHeaders := cfg.AllowedHeaders
	if len(allowedHeaders) == 0 {
		allowedHeaders = []string{
			"Content-Type",
			"Content-Length",
			"Accept-Encoding",
			"Authorization",
			"Cache-Control",
			"X-Requested-With",
			"X-MS-Client-Principal",
		}
	}
	methodsHeader := strings.Join(allowedMethods, ", ")
	headersHeader := strings.Join(allowedHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowedOrigin := resolveAllowedOrigin(origin, allowedOrigins, cfg.AllowCredentials)
		if allowedOrigin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			if allowedOrigin != "*" {
				c.Writer.Header().Add("Vary", "Origin")
			}
		}
		if cfg.AllowCredentials {
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", headersHeader)
		c.Writer.Header().Set("Access-Control-Allow-Methods", methodsHeader)
		if cfg.MaxAge > 0 {
			c.Writer.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func resolveAllowedOrigin(origin string, allowedOrigins []string, allowCredentials bool) string {
	if len(allowedOrigins) == 0 {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if allowed == "*" {
			if allowCredentials && origin != "" {
				return origin
			}
			return "*"
		}
	}
	if origin == "" {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if strings.EqualFold(allowed, origin) {
			return origin
		}
	}
	return ""
}

// RequestIDMiddleware 请求 ID 中间件
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

// LoggerMiddleware 结构化请求日志中间件
func LoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.L()
	}
	sugar := logger.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log := sugar.With(
			"request_id", getRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
		if len(c.Errors) > 0 {
			log.Errorw("request", "errors", c.Errors.String())
			return
		}
		log.Infow("request")
	}
}

func getRequestID(c *gin.Context) string {
	value, ok := c.Get(requestIDKey)
	if !ok {
		return ""
	}
	if requestID, ok := value.(string); ok {
		return requestID
	}
	return ""
}

// PrincipalAuthMiddleware 解析平台注入的身份断言并完成授权判定
// 结果写入上下文，是否放行由后续的 Require* 中间件决定。
func PrincipalAuthMiddleware(authService *auth.Service, headerName string) gin.HandlerFunc {
	if strings.TrimSpace(headerName) == "" {
		headerName = "x-ms-client-principal"
	}
	return func(c *gin.Context) {
		identity := auth.DecodePrincipal(c.GetHeader(headerName))

		if identity.Authenticated {
			if cached, hit, err := cache.GetAdminAuthState(c.Request.Context(), identity.GithubUserID, identity.GithubUsername); err == nil && hit && cached != nil {
				result := auth.Authorization{
					Authenticated: true,
					Authorized:    cached.Authorized,
					Legacy:        cached.Legacy,
					Role:          cached.Role,
					Permissions:   cached.Permissions,
					Identity:      identity,
				}
				if cached.RecordID != "" && cached.Authorized {
					if user, err := authService.LoadUser(cached.RecordID); err == nil && user != nil {
						result.User = user
					}
				}
				c.Set(shared.ContextKeyAuthorization, result)
				c.Next()
				return
			}
		}

		result := authService.Resolve(c.Request.Context(), identity)
		c.Set(shared.ContextKeyAuthorization, result)
		c.Next()
	}
}

// RequireAdmin 要求已认证且已授权的管理员
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		result, ok := shared.GetAuthorization(c)
		if !ok || !result.Authenticated {
			response.Unauthorized(c, "authentication required")
			c.Abort()
			return
		}
		if !result.Authorized {
			response.Forbidden(c, "admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequirePermission 要求具备指定权限
func RequirePermission(selector func(models.Permissions) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, ok := shared.GetAuthorization(c)
		if !ok || !result.Authenticated {
			response.Unauthorized(c, "authentication required")
			c.Abort()
			return
		}
		if !result.Authorized || !selector(result.Permissions) {
			response.Forbidden(c, "insufficient permissions")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RecoveryMiddleware 兜底异常恢复，统一返回 500 响应
func RecoveryMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.L()
	}
	sugar := logger.Sugar()
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		sugar.Errorw("panic_recovered",
			"request_id", getRequestID(c),
			"path", c.Request.URL.Path,
			"panic", recovered,
		)
		response.Error(c, http.StatusInternalServerError, "internal server error")
		c.Abort()
	})
}
