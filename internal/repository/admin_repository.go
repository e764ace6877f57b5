package repository

import (
	"errors"
	"time"

	"github.com/wakaf-tunai/internal/models"

	"gorm.io/gorm"
)

// AdminRepository 管理员数据访问接口
type AdminRepository interface {
	GetByEmail(email string) (*models.Admin, error)
	GetByID(id uint) (*models.Admin, error)
	List() ([]models.Admin, error)
	ListIDs() ([]uint, error)
	Count() (int64, error)
	Create(admin *models.Admin) error
	TouchLogin(id uint, at time.Time) error
	Delete(id uint) (int64, error)
}

// GormAdminRepository GORM 实现
type GormAdminRepository struct {
	db *gorm.DB
}

// NewAdminRepository 创建管理员仓库
func NewAdminRepository(db *gorm.DB) *GormAdminRepository {
	return &GormAdminRepository{db: db}
}

// GetByEmail 按邮箱查询
func (r *GormAdminRepository) GetByEmail(email string) (*models.Admin, error) {
	var admin models.Admin
	if err := r.db.Where("email = ?", email).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}

// GetByID 按 ID 查询
func (r *GormAdminRepository) GetByID(id uint) (*models.Admin, error) {
	var admin models.Admin
	if err := r.db.First(&admin, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}

// List 按创建时间倒序
func (r *GormAdminRepository) List() ([]models.Admin, error) {
	admins := make([]models.Admin, 0)
	err := r.db.
		Select("id", "email", "last_login_at", "created_at", "updated_at").
		Order("created_at DESC").
		Order("id DESC").
		Find(&admins).Error
	if err != nil {
		return nil, err
	}
	return admins, nil
}

// ListIDs 全部管理员 ID
func (r *GormAdminRepository) ListIDs() ([]uint, error) {
	ids := make([]uint, 0)
	if err := r.db.Model(&models.Admin{}).Order("id ASC").Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// Count 管理员数量
func (r *GormAdminRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Admin{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create 新建管理员
func (r *GormAdminRepository) Create(admin *models.Admin) error {
	return r.db.Create(admin).Error
}

// TouchLogin 记录最近登录时间
func (r *GormAdminRepository) TouchLogin(id uint, at time.Time) error {
	return r.db.Model(&models.Admin{}).Where("id = ?", id).Update("last_login_at", at).Error
}

// Delete 物理删除，返回受影响行数
func (r *GormAdminRepository) Delete(id uint) (int64, error) {
	if id == 0 {
		return 0, nil
	}
	result := r.db.Delete(&models.Admin{}, id)
	return result.RowsAffected, result.Error
}
