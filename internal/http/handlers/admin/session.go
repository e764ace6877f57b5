package admin

import (
	"github.com/wakaf-tunai/internal/http/response"
	"github.com/wakaf-tunai/internal/i18n"

	"github.com/gin-gonic/gin"
)

// CredentialsRequest 邮箱密码请求
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AdminLogin 管理员登录
func (h *Handler) AdminLogin(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	admin, token, expiresAt, err := h.AuthService.Login(req.Email, req.Password)
	if err != nil {
		requestLog(c).Infow("admin_login_failed", "client_ip", c.ClientIP(), "error", err)
		respondServiceError(c, err)
		return
	}

	response.Success(c, gin.H{
		"token":      token,
		"expires_at": expiresAt,
		"admin":      admin,
	})
}

// AdminSetup 系统无管理员时创建首个账号
func (h *Handler) AdminSetup(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	admin, err := h.AdminUserService.Setup(req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	requestLog(c).Infow("admin_setup_completed", "admin_id", admin.ID)
	response.Created(c, i18n.T(i18n.ResolveLocale(c), "admin.created"), admin)
}

// GetCurrentAdmin 当前登录的管理员
func (h *Handler) GetCurrentAdmin(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	admin, err := h.AuthService.CurrentAdmin(adminID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	roles, err := h.AuthzService.GetAdminRoles(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{
		"admin": admin,
		"roles": roles,
	})
}
