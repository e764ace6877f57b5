package public

import (
	"github.com/wakaf-tunai/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetCaptcha 获取图片验证码挑战，未启用时仅返回开关状态
func (h *Handler) GetCaptcha(c *gin.Context) {
	if !h.CaptchaService.Enabled() {
		response.Success(c, gin.H{"enabled": false})
		return
	}

	challenge, err := h.CaptchaService.Generate()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.Success(c, gin.H{
		"enabled":    true,
		"captcha_id": challenge.CaptchaID,
		"image":      challenge.ImageBase64,
	})
}
