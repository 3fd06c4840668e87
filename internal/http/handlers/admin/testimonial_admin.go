package admin

import (
	"net/http"

	"github.com/patoekipa/internal/http/response"
	"github.com/patoekipa/internal/service"

	"github.com/gin-gonic/gin"
)

// TestimonialRequest 评价创建/更新请求
type TestimonialRequest struct {
	Author    string `json:"author"`
	Company   string `json:"company"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	Rating    *int   `json:"rating"`
	AvatarURL string `json:"avatarUrl"`
	Approved  *bool  `json:"approved"`
	Featured  *bool  `json:"featured"`
}

func (r TestimonialRequest) toInput() service.TestimonialInput {
	return service.TestimonialInput{
		Author:    r.Author,
		Company:   r.Company,
		Title:     r.Role,
		Content:   r.Content,
		Rating:    r.Rating,
		AvatarURL: r.AvatarURL,
		Approved:  r.Approved,
		Featured:  r.Featured,
	}
}

// CreateTestimonial 创建评价
func (h *Handler) CreateTestimonial(c *gin.Context) {
	var req TestimonialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	testimonial, err := h.TestimonialService.Create(req.toInput())
	if err != nil {
		respondServiceError(c, err, "failed to create testimonial")
		return
	}
	response.Created(c, testimonial)
}

// UpdateTestimonial 更新评价
func (h *Handler) UpdateTestimonial(c *gin.Context) {
	var req TestimonialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	testimonial, err := h.TestimonialService.Update(c.Param("id"), req.toInput())
	if err != nil {
		respondServiceError(c, err, "failed to update testimonial")
		return
	}
	response.Success(c, testimonial)
}

// DeleteTestimonial 删除评价
func (h *Handler) DeleteTestimonial(c *gin.Context) {
	if err := h.TestimonialService.Delete(c.Param("id")); err != nil {
		respondServiceError(c, err, "failed to delete testimonial")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
