package admin

import (
	"strings"

	handlershared "github.com/wakaf-tunai/internal/http/handlers/shared"
	"github.com/wakaf-tunai/internal/http/response"
	"github.com/wakaf-tunai/internal/i18n"
	"github.com/wakaf-tunai/internal/repository"
	"github.com/wakaf-tunai/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateDonationRequest 后台编辑请求，缺省字段不修改
type UpdateDonationRequest struct {
	Name      *string `json:"name"`
	Address   *string `json:"address"`
	Cellphone *string `json:"cellphone"`
	Quantity  *int    `json:"quantity"`
}

type listDonationsQuery struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Status   string `form:"status"`
	Keyword  string `form:"keyword"`
}

// GetAdminDonations 分页列表，按创建时间倒序
func (h *Handler) GetAdminDonations(c *gin.Context) {
	var query listDonationsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	page, pageSize := handlershared.NormalizePagination(query.Page, query.PageSize)

	items, total, err := h.DonationService.List(repository.DonationListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   strings.TrimSpace(query.Status),
		Keyword:  strings.TrimSpace(query.Keyword),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, items, response.NewPagination(page, pageSize, total))
}

// GetDonationSummary 按状态汇总
func (h *Handler) GetDonationSummary(c *gin.Context) {
	summary, err := h.DonationService.Summary()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, summary)
}

// GetAdminDonation 详情
func (h *Handler) GetAdminDonation(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	donation, err := h.DonationService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, donation)
}

// UpdateDonation 编辑捐赠人信息或数量
func (h *Handler) UpdateDonation(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req UpdateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	donation, err := h.DonationService.Update(id, service.UpdateDonationInput{
		Name:      req.Name,
		Address:   req.Address,
		Cellphone: req.Cellphone,
		Quantity:  req.Quantity,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "donation.updated"), donation)
}

// DeleteDonation 删除捐赠记录
func (h *Handler) DeleteDonation(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.DonationService.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "donation.deleted"), nil)
}

// ApproveDonation 审核通过；通知失败不影响结果，以提示文案返回
func (h *Handler) ApproveDonation(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	result, err := h.DonationService.Approve(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	locale := i18n.ResolveLocale(c)
	msgKey := "donation.approved"
	if !result.Notification.Sent {
		msgKey = "donation.notify_failed"
		requestLog(c).Warnw("admin_donation_approve_notify_warning",
			"donation_id", id,
			"warning", result.Notification.Warning,
		)
	}
	response.SuccessWithMsg(c, i18n.T(locale, msgKey), result)
}

// GenerateCertificate 渲染并保存证书
func (h *Handler) GenerateCertificate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	donation, err := h.DonationService.GenerateCertificate(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "donation.certificate"), gin.H{
		"certificate_url": donation.CertificateURL,
	})
}

// MarkDonationSent 标记证书已发送，重复调用无副作用
func (h *Handler) MarkDonationSent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	donation, err := h.DonationService.MarkSent(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "donation.sent"), donation)
}
