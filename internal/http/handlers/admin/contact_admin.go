package admin

import (
	"net/http"
	"strconv"

	"github.com/patoekipa/internal/http/response"
	"github.com/patoekipa/internal/repository"

	"github.com/gin-gonic/gin"
)

// ContactStatusRequest 消息状态更新请求
type ContactStatusRequest struct {
	Status string `json:"status"`
}

// GetAdminContacts 分页获取联系消息
func (h *Handler) GetAdminContacts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	records, total, err := h.ContactService.List(repository.ContactListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   c.Query("status"),
		Search:   c.Query("search"),
	})
	if err != nil {
		respondServiceError(c, err, "failed to fetch contact messages")
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, records, pagination)
}

// GetAdminContact 获取单条消息
func (h *Handler) GetAdminContact(c *gin.Context) {
	record, err := h.ContactService.GetByID(c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "failed to fetch contact message")
		return
	}
	response.Success(c, record)
}

// UpdateContactStatus 更新消息处理状态
func (h *Handler) UpdateContactStatus(c *gin.Context) {
	var req ContactStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	record, err := h.ContactService.UpdateStatus(c.Param("id"), req.Status)
	if err != nil {
		respondServiceError(c, err, "failed to update contact message")
		return
	}
	response.Success(c, record)
}

// DeleteContact 删除消息
func (h *Handler) DeleteContact(c *gin.Context) {
	if err := h.ContactService.Delete(c.Param("id")); err != nil {
		respondServiceError(c, err, "failed to delete contact message")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
