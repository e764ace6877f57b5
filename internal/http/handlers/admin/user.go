package admin

import (
	"github.com/wakaf-tunai/internal/http/response"
	"github.com/wakaf-tunai/internal/i18n"

	"github.com/gin-gonic/gin"
)

// GetAdminUsers 管理员列表
func (h *Handler) GetAdminUsers(c *gin.Context) {
	admins, err := h.AdminUserService.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, admins)
}

// CreateAdminUser 新建管理员
func (h *Handler) CreateAdminUser(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	admin, err := h.AdminUserService.Create(req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	operatorID, _ := c.Get("admin_id")
	requestLog(c).Infow("admin_user_created", "operator_id", operatorID, "admin_id", admin.ID)
	response.Created(c, i18n.T(i18n.ResolveLocale(c), "admin.created"), admin)
}

// DeleteAdminUser 删除管理员，禁止删除自身
func (h *Handler) DeleteAdminUser(c *gin.Context) {
	currentID, ok := getAdminID(c)
	if !ok {
		return
	}
	targetID, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.AdminUserService.Delete(currentID, targetID); err != nil {
		respondServiceError(c, err)
		return
	}
	requestLog(c).Infow("admin_user_deleted", "operator_id", currentID, "admin_id", targetID)
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "admin.deleted"), nil)
}
