package admin

import (
	"github.com/patoekipa/internal/auth"
	handlershared "github.com/patoekipa/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func requireAuthorization(c *gin.Context) (auth.Authorization, bool) {
	return handlershared.RequireAuthorization(c)
}
