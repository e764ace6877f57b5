package admin

import (
	"io"

	"github.com/wakaf-tunai/internal/http/response"
	"github.com/wakaf-tunai/internal/i18n"
	"github.com/wakaf-tunai/internal/models"
	"github.com/wakaf-tunai/internal/service"

	"github.com/gin-gonic/gin"
)

const defaultTemplateMaxSize = 10 * 1024 * 1024

// DonationSettingRequest 捐赠设置请求
type DonationSettingRequest struct {
	VoucherPrice models.Money `json:"voucher_price"`
}

// GetDonationSettings 读取捐赠设置
func (h *Handler) GetDonationSettings(c *gin.Context) {
	setting, err := h.SettingService.GetDonationSetting()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, setting)
}

// UpdateDonationSettings 更新捐赠设置
func (h *Handler) UpdateDonationSettings(c *gin.Context) {
	var req DonationSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	setting, err := h.SettingService.UpdateDonationSetting(service.DonationSetting{VoucherPrice: req.VoucherPrice})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "setting.updated"), setting)
}

// UploadCertificateTemplate 上传证书模板图片
func (h *Handler) UploadCertificateTemplate(c *gin.Context) {
	maxSize := h.Config.Upload.TemplateMaxSize
	if maxSize <= 0 {
		maxSize = defaultTemplateMaxSize
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondServiceError(c, service.ErrInvalidTemplate)
		return
	}
	if fileHeader.Size > maxSize {
		respondServiceError(c, service.ErrInvalidTemplate)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(io.LimitReader(file, maxSize+1))
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	if int64(len(raw)) > maxSize {
		respondServiceError(c, service.ErrInvalidTemplate)
		return
	}

	if err := h.DonationService.UploadCertificateTemplate(raw); err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "template.updated"), gin.H{
		"size": len(raw),
	})
}
