package admin

import (
	"net/http"

	"github.com/patoekipa/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetDashboard 获取仪表盘统计数据
func (h *Handler) GetDashboard(c *gin.Context) {
	data, err := h.DashboardService.GetDashboard()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to fetch dashboard", err)
		return
	}
	response.Success(c, data)
}
