package public

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// GetAvatar 返回头像文件
// 配置签名密钥后要求带有效 token 的签名 URL。
func (h *Handler) GetAvatar(c *gin.Context) {
	filename := c.Param("filename")
	if h.Config.Upload.SignSecret != "" {
		if err := h.UploadService.VerifySignedURL(c.Query("token"), filename); err != nil {
			respondServiceError(c, err, "failed to verify avatar url")
			return
		}
	}

	path := h.UploadService.AvatarPath(filename)
	if _, err := os.Stat(path); err != nil {
		respondError(c, http.StatusNotFound, "avatar not found", nil)
		return
	}
	c.File(path)
}
