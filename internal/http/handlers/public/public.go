package public

import (
	"net/http"
	"strconv"
	"time"

	"github.com/patoekipa/internal/cache"
	"github.com/patoekipa/internal/http/handlers/shared"
	"github.com/patoekipa/internal/http/response"
	"github.com/patoekipa/internal/models"
	"github.com/patoekipa/internal/repository"
	"github.com/patoekipa/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	siteDataCacheKey = "public:site_data"
	siteDataCacheTTL = 60 * time.Second
)

// Health 健康检查
func (h *Handler) Health(c *gin.Context) {
	response.Success(c, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthReady 就绪检查，确认数据库可访问
func (h *Handler) HealthReady(c *gin.Context) {
	sqlDB, err := models.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "database not ready", err)
		return
	}
	ready := gin.H{"status": "ready", "database": "ok"}
	if cache.Enabled() {
		if err := cache.Ping(c.Request.Context()); err != nil {
			ready["redis"] = "unavailable"
		} else {
			ready["redis"] = "ok"
		}
	}
	response.Success(c, ready)
}

// GetTeam 获取团队列表
// all=true 需要团队管理权限，返回含停用成员的完整列表。
func (h *Handler) GetTeam(c *gin.Context) {
	if wantsAll(c) {
		if !hasPermission(c, func(p models.Permissions) bool { return p.CanManageTeam }) {
			response.Forbidden(c, "insufficient permissions")
			return
		}
		members, err := h.TeamService.List(repository.TeamListFilter{Search: c.Query("search")})
		if err != nil {
			respondError(c, http.StatusInternalServerError, "failed to fetch team", err)
			return
		}
		response.Success(c, members)
		return
	}

	members, err := h.TeamService.ListPublic()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to fetch team", err)
		return
	}
	response.Success(c, members)
}

// GetProjects 获取项目列表
func (h *Handler) GetProjects(c *gin.Context) {
	filter := repository.ProjectListFilter{
		Category: c.Query("category"),
		Status:   c.Query("status"),
		Search:   c.Query("search"),
	}
	if raw := c.Query("featured"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid featured filter", err)
			return
		}
		filter.Featured = &parsed
	}
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			respondError(c, http.StatusBadRequest, "invalid limit", err)
			return
		}
		filter.Limit = parsed
	}

	projects, err := h.ProjectService.List(filter)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to fetch projects", err)
		return
	}
	response.Success(c, projects)
}

// GetProject 获取单个项目
func (h *Handler) GetProject(c *gin.Context) {
	project, err := h.ProjectService.GetByID(c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "failed to fetch project")
		return
	}
	response.Success(c, project)
}

// GetTestimonials 获取评价列表
// 默认只返回已审核条目；all=true 需要评价管理权限，可按 approved 过滤。
func (h *Handler) GetTestimonials(c *gin.Context) {
	filter := repository.TestimonialListFilter{}
	if raw := c.Query("featured"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid featured filter", err)
			return
		}
		filter.Featured = &parsed
	}
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			respondError(c, http.StatusBadRequest, "invalid limit", err)
			return
		}
		filter.Limit = parsed
	}

	if wantsAll(c) {
		if !hasPermission(c, func(p models.Permissions) bool { return p.CanManageTestimonials }) {
			response.Forbidden(c, "insufficient permissions")
			return
		}
		if raw := c.Query("approved"); raw != "" {
			parsed, err := strconv.ParseBool(raw)
			if err != nil {
				respondError(c, http.StatusBadRequest, "invalid approved filter", err)
				return
			}
			filter.Approved = &parsed
		}
		testimonials, err := h.TestimonialService.List(filter)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "failed to fetch testimonials", err)
			return
		}
		response.Success(c, testimonials)
		return
	}

	testimonials, err := h.TestimonialService.ListPublic(filter)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to fetch testimonials", err)
		return
	}
	response.Success(c, testimonials)
}

func wantsAll(c *gin.Context) bool {
	parsed, err := strconv.ParseBool(c.DefaultQuery("all", "false"))
	return err == nil && parsed
}

func hasPermission(c *gin.Context, selector func(models.Permissions) bool) bool {
	result, ok := shared.GetAuthorization(c)
	return ok && result.Authorized && selector(result.Permissions)
}

// GetSiteData 获取站点聚合数据，短缓存降低首页压力
func (h *Handler) GetSiteData(c *gin.Context) {
	var cached service.SiteData
	if hit, err := cache.GetJSON(c.Request.Context(), siteDataCacheKey, &cached); err == nil && hit {
		response.Success(c, cached)
		return
	}

	data, err := h.DashboardService.GetSiteData()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to fetch site data", err)
		return
	}
	if err := cache.SetJSON(c.Request.Context(), siteDataCacheKey, data, siteDataCacheTTL); err != nil {
		requestLog(c).Warnw("site_data_cache_store_failed", "error", err)
	}
	response.Success(c, data)
}
