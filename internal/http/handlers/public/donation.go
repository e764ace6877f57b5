package public

import (
	"strings"

	handlershared "github.com/wakaf-tunai/internal/http/handlers/shared"
	"github.com/wakaf-tunai/internal/http/response"
	"github.com/wakaf-tunai/internal/i18n"
	"github.com/wakaf-tunai/internal/models"
	"github.com/wakaf-tunai/internal/service"

	"github.com/gin-gonic/gin"
)

// SubmitDonationRequest 捐赠登记请求
type SubmitDonationRequest struct {
	Name       string        `json:"name"`
	Address    string        `json:"address"`
	Cellphone  string        `json:"cellphone"`
	Quantity   int           `json:"quantity"`
	GrandTotal *models.Money `json:"grand_total"`
	handlershared.CaptchaPayloadRequest
}

// SubmitDonation 登记捐赠承诺，返回登记码
func (h *Handler) SubmitDonation(c *gin.Context) {
	var req SubmitDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	captchaID, captchaCode := req.Normalize()
	if err := h.CaptchaService.Verify(captchaID, captchaCode); err != nil {
		respondServiceError(c, err)
		return
	}

	donation, err := h.DonationService.Submit(c.Request.Context(), service.SubmitDonationInput{
		Name:       req.Name,
		Address:    req.Address,
		Cellphone:  req.Cellphone,
		Quantity:   req.Quantity,
		GrandTotal: req.GrandTotal,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	msg := i18n.T(i18n.ResolveLocale(c), "donation.created")
	response.Created(c, msg, gin.H{
		"unique_code": donation.UniqueCode,
		"grand_total": donation.GrandTotal,
	})
}

// GetDonationByCode 捐赠人按登记码查询
func (h *Handler) GetDonationByCode(c *gin.Context) {
	donation, err := h.DonationService.GetByCode(c.Param("code"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, donation.PublicView())
}

// ConfirmDonation 上传转账凭证并确认捐赠
func (h *Handler) ConfirmDonation(c *gin.Context) {
	code := strings.TrimSpace(c.PostForm("unique_code"))
	if code == "" {
		respondServiceError(c, service.ErrCodeRequired)
		return
	}
	file, err := c.FormFile("proof_file")
	if err != nil {
		requestLog(c).Debugw("donation_confirm_proof_missing", "unique_code", code, "error", err)
		respondServiceError(c, service.ErrProofRequired)
		return
	}

	donation, err := h.DonationService.Confirm(c.Request.Context(), code, file)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	msg := i18n.T(i18n.ResolveLocale(c), "donation.confirmed")
	response.SuccessWithMsg(c, msg, donation.PublicView())
}
