package admin

import (
	"net/http"

	"github.com/patoekipa/internal/http/response"

	"github.com/gin-gonic/gin"
)

// UploadAvatar 上传头像
func (h *Handler) UploadAvatar(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "file is required", err)
		return
	}

	saved, err := h.UploadService.SaveAvatar(file)
	if err != nil {
		respondServiceError(c, err, "failed to save avatar")
		return
	}
	requestLog(c).Infow("avatar_uploaded", "filename", saved.Filename, "size", saved.Size)
	response.Created(c, saved)
}

// GetAvatars 列出已上传头像
func (h *Handler) GetAvatars(c *gin.Context) {
	files, err := h.UploadService.ListAvatars()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to list avatars", err)
		return
	}
	response.Success(c, files)
}

// DeleteAvatar 删除头像
func (h *Handler) DeleteAvatar(c *gin.Context) {
	if err := h.UploadService.DeleteAvatar(c.Param("filename")); err != nil {
		respondServiceError(c, err, "failed to delete avatar")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
