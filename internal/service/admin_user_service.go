package service

import (
	"context"
	"net/mail"

	"github.com/wakaf-tunai/internal/cache"
	"github.com/wakaf-tunai/internal/constants"
	"github.com/wakaf-tunai/internal/logger"
	"github.com/wakaf-tunai/internal/models"
	"github.com/wakaf-tunai/internal/repository"
)

// AdminAuthorizer 管理员角色授权
type AdminAuthorizer interface {
	GrantRole(adminID uint, role string) error
	RevokeAdmin(adminID uint) error
}

// AdminUserService 管理员账号管理
type AdminUserService struct {
	adminRepo   repository.AdminRepository
	authService *AuthService
	authz       AdminAuthorizer
}

// NewAdminUserService 创建管理员账号服务
func NewAdminUserService(adminRepo repository.AdminRepository, authService *AuthService, authz AdminAuthorizer) *AdminUserService {
	return &AdminUserService{
		adminRepo:   adminRepo,
		authService: authService,
		authz:       authz,
	}
}

// List 全部管理员
func (s *AdminUserService) List() ([]models.Admin, error) {
	admins, err := s.adminRepo.List()
	if err != nil {
		return nil, wrapStorage("list admins", err)
	}
	return admins, nil
}

// Setup 仅在系统中没有任何管理员时创建首个账号
func (s *AdminUserService) Setup(email, password string) (*models.Admin, error) {
	count, err := s.adminRepo.Count()
	if err != nil {
		return nil, wrapStorage("count admins", err)
	}
	if count > 0 {
		return nil, ErrSetupDone
	}
	return s.Create(email, password)
}

// Create 新建管理员并授予操作员角色
func (s *AdminUserService) Create(email, password string) (*models.Admin, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrEmailRequired
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrEmailRequired
	}
	if err := s.authService.ValidatePassword(password); err != nil {
		return nil, err
	}

	existing, err := s.adminRepo.GetByEmail(email)
	if err != nil {
		return nil, wrapStorage("get admin", err)
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	hash, err := s.authService.HashPassword(password)
	if err != nil {
		return nil, err
	}
	admin := &models.Admin{Email: email, PasswordHash: hash}
	if err := s.adminRepo.Create(admin); err != nil {
		return nil, wrapStorage("create admin", err)
	}

	if s.authz != nil {
		if err := s.authz.GrantRole(admin.ID, constants.RoleOperator); err != nil {
			logger.Errorw("admin_grant_role_failed", "admin_id", admin.ID, "error", err)
			if _, delErr := s.adminRepo.Delete(admin.ID); delErr != nil {
				logger.Errorw("admin_rollback_failed", "admin_id", admin.ID, "error", delErr)
			}
			return nil, wrapStorage("grant operator role", err)
		}
	}
	logger.Infow("admin_created", "admin_id", admin.ID, "email", admin.Email)
	return admin, nil
}

// Delete 删除管理员，禁止删除自己
func (s *AdminUserService) Delete(currentAdminID, targetID uint) error {
	if currentAdminID == targetID {
		return ErrCannotDeleteSelf
	}
	rows, err := s.adminRepo.Delete(targetID)
	if err != nil {
		return wrapStorage("delete admin", err)
	}
	if rows == 0 {
		return ErrAdminNotFound
	}
	if s.authz != nil {
		if err := s.authz.RevokeAdmin(targetID); err != nil {
			logger.Warnw("admin_revoke_role_failed", "admin_id", targetID, "error", err)
		}
	}
	if err := cache.DelAdminAuthState(context.Background(), targetID); err != nil {
		logger.Warnw("admin_auth_state_cache_delete_failed", "admin_id", targetID, "error", err)
	}
	logger.Infow("admin_deleted", "admin_id", targetID, "deleted_by", currentAdminID)
	return nil
}
