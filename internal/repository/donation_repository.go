package repository

import (
	"errors"
	"strings"

	"github.com/wakaf-tunai/internal/constants"
	"github.com/wakaf-tunai/internal/models"

	"gorm.io/gorm"
)

// DonationRepository 捐赠记录数据访问接口
type DonationRepository interface {
	Create(donation *models.Donation) error
	GetByID(id uint) (*models.Donation, error)
	GetByCode(code string) (*models.Donation, error)
	ExistsByCode(code string) (bool, error)
	ListAdmin(filter DonationListFilter) ([]models.Donation, int64, error)
	Summary() ([]DonationStatusSummary, error)
	UpdateFields(id uint, updates map[string]interface{}) (int64, error)
	ConfirmByCode(code, proofURL string) (int64, error)
	Approve(id uint) (int64, error)
	MarkVoucherSent(id uint) (int64, error)
	Delete(id uint) (int64, error)
	WithTx(tx *gorm.DB) DonationRepository
}

// GormDonationRepository GORM 实现
type GormDonationRepository struct {
	db *gorm.DB
}

// NewDonationRepository 创建捐赠仓库
func NewDonationRepository(db *gorm.DB) *GormDonationRepository {
	return &GormDonationRepository{db: db}
}

// WithTx 绑定事务
func (r *GormDonationRepository) WithTx(tx *gorm.DB) DonationRepository {
	if tx == nil {
		return r
	}
	return &GormDonationRepository{db: tx}
}

// Create 新建捐赠记录
func (r *GormDonationRepository) Create(donation *models.Donation) error {
	return r.db.Create(donation).Error
}

// GetByID 按 ID 查询，不存在返回 nil
func (r *GormDonationRepository) GetByID(id uint) (*models.Donation, error) {
	var donation models.Donation
	if err := r.db.First(&donation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &donation, nil
}

// GetByCode 按登记码查询，不存在返回 nil
func (r *GormDonationRepository) GetByCode(code string) (*models.Donation, error) {
	var donation models.Donation
	if err := r.db.Where("unique_code = ?", code).First(&donation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &donation, nil
}

// ExistsByCode 登记码是否已被占用
func (r *GormDonationRepository) ExistsByCode(code string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Donation{}).Where("unique_code = ?", code).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListAdmin 后台分页列表，按创建时间倒序
func (r *GormDonationRepository) ListAdmin(filter DonationListFilter) ([]models.Donation, int64, error) {
	query := r.db.Model(&models.Donation{})
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}
	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		cond, args := keywordCondition(dialectName(r.db), keyword, "name", "unique_code", "cellphone")
		query = query.Where(cond, args...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	donations := make([]models.Donation, 0)
	query = applyPagination(query.Order("created_at DESC").Order("id DESC"), filter.Page, filter.PageSize)
	if err := query.Find(&donations).Error; err != nil {
		return nil, 0, err
	}
	return donations, total, nil
}

// Summary 按状态统计记录数、数量与金额，缺失的状态补零
func (r *GormDonationRepository) Summary() ([]DonationStatusSummary, error) {
	rows := make([]DonationStatusSummary, 0)
	err := r.db.Model(&models.Donation{}).
		Select("status, COUNT(*) AS records, COALESCE(SUM(quantity), 0) AS quantity, COALESCE(SUM(grand_total), 0) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	byStatus := make(map[string]DonationStatusSummary, len(rows))
	for _, row := range rows {
		byStatus[row.Status] = row
	}
	result := make([]DonationStatusSummary, 0, len(constants.DonationStatuses))
	for _, status := range constants.DonationStatuses {
		row, ok := byStatus[status]
		if !ok {
			row = DonationStatusSummary{Status: status, Total: models.NewMoneyFromInt(0)}
		}
		result = append(result, row)
	}
	return result, nil
}

// UpdateFields 按 ID 更新指定列，返回受影响行数
func (r *GormDonationRepository) UpdateFields(id uint, updates map[string]interface{}) (int64, error) {
	if id == 0 || len(updates) == 0 {
		return 0, nil
	}
	result := r.db.Model(&models.Donation{}).Where("id = ?", id).Updates(updates)
	return result.RowsAffected, result.Error
}

// ConfirmByCode 在同一条 UPDATE 中写入凭证地址并切换为 Confirmed，已完成的记录不受影响
func (r *GormDonationRepository) ConfirmByCode(code, proofURL string) (int64, error) {
	result := r.db.Model(&models.Donation{}).
		Where("unique_code = ? AND status IN ?", code, []string{constants.DonationStatusNew, constants.DonationStatusConfirmed}).
		Updates(map[string]interface{}{
			"status":                constants.DonationStatusConfirmed,
			"proof_of_transfer_url": proofURL,
		})
	return result.RowsAffected, result.Error
}

// Approve 将 Confirmed 记录置为 Done；已是 Done 的记录重复执行仍命中
func (r *GormDonationRepository) Approve(id uint) (int64, error) {
	result := r.db.Model(&models.Donation{}).
		Where("id = ? AND status IN ?", id, []string{constants.DonationStatusConfirmed, constants.DonationStatusDone}).
		Update("status", constants.DonationStatusDone)
	return result.RowsAffected, result.Error
}

// MarkVoucherSent 仅对 Done 状态且未标记的记录生效
func (r *GormDonationRepository) MarkVoucherSent(id uint) (int64, error) {
	result := r.db.Model(&models.Donation{}).
		Where("id = ? AND status = ? AND voucher_sent = ?", id, constants.DonationStatusDone, false).
		Update("voucher_sent", true)
	return result.RowsAffected, result.Error
}

// Delete 物理删除
func (r *GormDonationRepository) Delete(id uint) (int64, error) {
	if id == 0 {
		return 0, nil
	}
	result := r.db.Delete(&models.Donation{}, id)
	return result.RowsAffected, result.Error
}
