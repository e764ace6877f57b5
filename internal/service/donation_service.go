package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/wakaf-tunai/internal/certificate"
	"github.com/wakaf-tunai/internal/config"
	"github.com/wakaf-tunai/internal/constants"
	"github.com/wakaf-tunai/internal/logger"
	"github.com/wakaf-tunai/internal/models"
	"github.com/wakaf-tunai/internal/repository"
	"github.com/wakaf-tunai/internal/storage"
)

// CertificateRenderer 证书渲染
type CertificateRenderer interface {
	Render(data certificate.Data) ([]byte, error)
	SaveTemplate(raw []byte) error
}

// SubmitDonationInput 捐赠登记参数
type SubmitDonationInput struct {
	Name       string
	Address    string
	Cellphone  string
	Quantity   int
	GrandTotal *models.Money // 前端计算的总额，仅用于校验
}

// UpdateDonationInput 后台编辑参数，nil 表示不修改
type UpdateDonationInput struct {
	Name      *string
	Address   *string
	Cellphone *string
	Quantity  *int
}

// NotificationResult 通知投递结果
type NotificationResult struct {
	Sent    bool   `json:"sent"`
	Warning string `json:"warning,omitempty"`
}

// ApproveResult 审核结果，通知失败不影响状态变更
type ApproveResult struct {
	Donation     *models.Donation   `json:"donation"`
	Notification NotificationResult `json:"notification"`
}

// DonationSummaryItem 单个状态的统计
type DonationSummaryItem struct {
	repository.DonationStatusSummary
	Percentage float64 `json:"percentage"`
}

// DonationSummary 捐赠汇总
type DonationSummary struct {
	Statuses      []DonationSummaryItem `json:"statuses"`
	TotalRecords  int64                 `json:"total_records"`
	TotalQuantity int64                 `json:"total_quantity"`
	GrandTotal    models.Money          `json:"grand_total"`
}

// DonationService 捐赠生命周期：New -> Confirmed -> Done
type DonationService struct {
	donationRepo   repository.DonationRepository
	settingService *SettingService
	notifier       *NotificationService
	store          storage.FileStore
	renderer       CertificateRenderer
	codes          *codeGenerator
	proof          *proofValidator
	now            func() time.Time
}

// NewDonationService 创建捐赠服务
func NewDonationService(
	cfg *config.Config,
	donationRepo repository.DonationRepository,
	settingService *SettingService,
	notifier *NotificationService,
	store storage.FileStore,
	renderer CertificateRenderer,
) *DonationService {
	return &DonationService{
		donationRepo:   donationRepo,
		settingService: settingService,
		notifier:       notifier,
		store:          store,
		renderer:       renderer,
		codes:          newCodeGenerator(cfg.Donation.CodeLength, cfg.Donation.CodeMaxAttempts, donationRepo.ExistsByCode),
		proof:          newProofValidator(cfg.Upload),
		now:            time.Now,
	}
}

// Submit 登记捐赠承诺并返回登记码
func (s *DonationService) Submit(ctx context.Context, input SubmitDonationInput) (*models.Donation, error) {
	name := strings.TrimSpace(input.Name)
	address := strings.TrimSpace(input.Address)
	cellphone := strings.TrimSpace(input.Cellphone)
	if name == "" || address == "" || cellphone == "" {
		return nil, ErrMissingFields
	}
	if input.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	unitPrice, err := s.settingService.UnitPrice()
	if err != nil {
		return nil, err
	}
	grandTotal := unitPrice.Times(input.Quantity)
	if input.GrandTotal != nil && !input.GrandTotal.Decimal.Equal(grandTotal.Decimal) {
		return nil, ErrTotalMismatch
	}

	code, err := s.codes.Next()
	if err != nil {
		return nil, err
	}

	donation := &models.Donation{
		UniqueCode: code,
		Name:       name,
		Address:    address,
		Cellphone:  cellphone,
		Quantity:   input.Quantity,
		GrandTotal: grandTotal,
		Status:     constants.DonationStatusNew,
	}
	if err := s.donationRepo.Create(donation); err != nil {
		return nil, wrapStorage("create donation", err)
	}
	logger.Infow("donation_submitted",
		"donation_id", donation.ID,
		"unique_code", donation.UniqueCode,
		"quantity", donation.Quantity,
		"grand_total", donation.GrandTotal.String(),
	)

	if err := s.notifier.NotifyRegistration(ctx, donation); err != nil {
		logger.Warnw("donation_registration_notify_failed",
			"donation_id", donation.ID,
			"phone", logger.MaskPhone(donation.Cellphone),
			"error", err,
		)
	}
	return donation, nil
}

// GetByCode 按登记码查询
func (s *DonationService) GetByCode(code string) (*models.Donation, error) {
	code = normalizeCode(code)
	if code == "" {
		return nil, ErrCodeRequired
	}
	donation, err := s.donationRepo.GetByCode(code)
	if err != nil {
		return nil, wrapStorage("get donation by code", err)
	}
	if donation == nil {
		return nil, ErrDonationNotFound
	}
	return donation, nil
}

// Get 按 ID 查询
func (s *DonationService) Get(id uint) (*models.Donation, error) {
	donation, err := s.donationRepo.GetByID(id)
	if err != nil {
		return nil, wrapStorage("get donation", err)
	}
	if donation == nil {
		return nil, ErrDonationNotFound
	}
	return donation, nil
}

// Confirm 上传转账凭证并切换为 Confirmed
// 顺序：存在性与状态 -> 文件校验 -> 上传 -> 单条 UPDATE；上传后写库失败产生的孤儿文件不回收
func (s *DonationService) Confirm(ctx context.Context, code string, file *multipart.FileHeader) (*models.Donation, error) {
	donation, err := s.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if donation.IsDone() {
		return nil, ErrInvalidStateTransition
	}

	proof, err := s.proof.Validate(file)
	if err != nil {
		return nil, err
	}

	objectName := fmt.Sprintf("%s-%d-%s", donation.UniqueCode, s.now().UnixMilli(), proof.Name)
	url, err := s.store.Put(ctx, storage.Object{
		Container:   constants.ContainerProofOfTransfer,
		Name:        objectName,
		ContentType: proof.ContentType,
		Body:        proof.Body,
	})
	if err != nil {
		logger.Errorw("donation_confirm_upload_failed",
			"unique_code", donation.UniqueCode,
			"object", objectName,
			"error", err,
		)
		return nil, wrapStorage("upload proof of transfer", err)
	}

	rows, err := s.donationRepo.ConfirmByCode(donation.UniqueCode, url)
	if err != nil {
		logger.Errorw("donation_confirm_update_failed",
			"unique_code", donation.UniqueCode,
			"orphaned_url", url,
			"error", err,
		)
		return nil, wrapStorage("confirm donation", err)
	}
	if rows == 0 {
		// 上传期间记录被删除或已被审核
		logger.Warnw("donation_confirm_no_rows",
			"unique_code", donation.UniqueCode,
			"orphaned_url", url,
		)
		return nil, s.missingOrConflict(donation.ID)
	}

	donation.Status = constants.DonationStatusConfirmed
	donation.ProofOfTransferURL = url
	logger.Infow("donation_confirmed",
		"donation_id", donation.ID,
		"unique_code", donation.UniqueCode,
	)
	return donation, nil
}

// Approve 审核通过并尽力通知捐赠人，重复调用保持 Done
func (s *DonationService) Approve(ctx context.Context, id uint) (*ApproveResult, error) {
	donation, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if donation.Status == constants.DonationStatusNew {
		return nil, ErrInvalidStateTransition
	}

	rows, err := s.donationRepo.Approve(id)
	if err != nil {
		return nil, wrapStorage("approve donation", err)
	}
	if rows == 0 {
		return nil, s.missingOrConflict(id)
	}
	donation.Status = constants.DonationStatusDone
	logger.Infow("donation_approved",
		"donation_id", donation.ID,
		"unique_code", donation.UniqueCode,
	)

	result := &ApproveResult{Donation: donation}
	if err := s.notifier.NotifyApproval(ctx, donation); err != nil {
		logger.Warnw("donation_approval_notify_failed",
			"donation_id", donation.ID,
			"phone", logger.MaskPhone(donation.Cellphone),
			"error", err,
		)
		result.Notification.Warning = err.Error()
		return result, nil
	}
	result.Notification.Sent = true
	return result, nil
}

// GenerateCertificate 渲染证书并保存地址，不改变状态
func (s *DonationService) GenerateCertificate(ctx context.Context, id uint) (*models.Donation, error) {
	donation, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if donation.Status == constants.DonationStatusNew {
		return nil, ErrInvalidStateTransition
	}

	body, err := s.renderer.Render(certificate.Data{
		DonorName:  donation.Name,
		Quantity:   donation.Quantity,
		GrandTotal: donation.GrandTotal,
	})
	if err != nil {
		logger.Errorw("donation_certificate_render_failed", "donation_id", id, "error", err)
		return nil, wrapExternal("render certificate", err)
	}

	objectName := fmt.Sprintf("cert_%s_%d.jpg", donation.UniqueCode, s.now().UnixMilli())
	url, err := s.store.Put(ctx, storage.Object{
		Container:   constants.ContainerCertificates,
		Name:        objectName,
		ContentType: "image/jpeg",
		Body:        body,
	})
	if err != nil {
		logger.Errorw("donation_certificate_upload_failed", "donation_id", id, "error", err)
		return nil, wrapStorage("upload certificate", err)
	}

	rows, err := s.donationRepo.UpdateFields(id, map[string]interface{}{"certificate_url": url})
	if err != nil {
		logger.Errorw("donation_certificate_update_failed", "donation_id", id, "orphaned_url", url, "error", err)
		return nil, wrapStorage("save certificate url", err)
	}
	if rows == 0 {
		return nil, ErrDonationNotFound
	}
	donation.CertificateURL = url
	logger.Infow("donation_certificate_generated", "donation_id", id, "url", url)
	return donation, nil
}

// MarkSent 标记证书/凭证已送达，仅 Done 可用，重复调用不报错
func (s *DonationService) MarkSent(id uint) (*models.Donation, error) {
	donation, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if !donation.IsDone() {
		return nil, ErrInvalidStateTransition
	}
	if donation.VoucherSent {
		return donation, nil
	}
	rows, err := s.donationRepo.MarkVoucherSent(id)
	if err != nil {
		return nil, wrapStorage("mark voucher sent", err)
	}
	if rows > 0 {
		logger.Infow("donation_voucher_sent", "donation_id", id)
	}
	return s.Get(id)
}

// Update 后台编辑，数量变化时按当前单价重算总额
func (s *DonationService) Update(id uint, input UpdateDonationInput) (*models.Donation, error) {
	donation, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	setText := func(column string, value *string) error {
		if value == nil {
			return nil
		}
		trimmed := strings.TrimSpace(*value)
		if trimmed == "" {
			return ErrMissingFields
		}
		updates[column] = trimmed
		return nil
	}
	if err := setText("name", input.Name); err != nil {
		return nil, err
	}
	if err := setText("address", input.Address); err != nil {
		return nil, err
	}
	if err := setText("cellphone", input.Cellphone); err != nil {
		return nil, err
	}
	if input.Quantity != nil {
		if *input.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		if *input.Quantity != donation.Quantity {
			unitPrice, err := s.settingService.UnitPrice()
			if err != nil {
				return nil, err
			}
			updates["quantity"] = *input.Quantity
			updates["grand_total"] = unitPrice.Times(*input.Quantity)
		}
	}
	if len(updates) == 0 {
		return donation, nil
	}

	rows, err := s.donationRepo.UpdateFields(id, updates)
	if err != nil {
		return nil, wrapStorage("update donation", err)
	}
	if rows == 0 {
		return nil, ErrDonationNotFound
	}
	return s.Get(id)
}

// Delete 物理删除，任意状态均可
func (s *DonationService) Delete(id uint) error {
	rows, err := s.donationRepo.Delete(id)
	if err != nil {
		return wrapStorage("delete donation", err)
	}
	if rows == 0 {
		return ErrDonationNotFound
	}
	logger.Infow("donation_deleted", "donation_id", id)
	return nil
}

// List 后台分页列表
func (s *DonationService) List(filter repository.DonationListFilter) ([]models.Donation, int64, error) {
	if status := strings.TrimSpace(filter.Status); status != "" && !isDonationStatus(status) {
		return nil, 0, ErrValidation
	}
	items, total, err := s.donationRepo.ListAdmin(filter)
	if err != nil {
		return nil, 0, wrapStorage("list donations", err)
	}
	return items, total, nil
}

// Summary 按状态汇总，百分比为金额占比
func (s *DonationService) Summary() (*DonationSummary, error) {
	rows, err := s.donationRepo.Summary()
	if err != nil {
		return nil, wrapStorage("summarize donations", err)
	}
	summary := &DonationSummary{
		Statuses:   make([]DonationSummaryItem, 0, len(rows)),
		GrandTotal: models.NewMoneyFromInt(0),
	}
	for _, row := range rows {
		summary.TotalRecords += row.Records
		summary.TotalQuantity += row.Quantity
		summary.GrandTotal = models.NewMoneyFromDecimal(summary.GrandTotal.Add(row.Total.Decimal))
	}
	for _, row := range rows {
		item := DonationSummaryItem{DonationStatusSummary: row}
		if summary.GrandTotal.IsPositive() {
			item.Percentage = row.Total.Div(summary.GrandTotal.Decimal).Shift(2).Round(1).InexactFloat64()
		}
		summary.Statuses = append(summary.Statuses, item)
	}
	return summary, nil
}

// UploadCertificateTemplate 替换证书模板
func (s *DonationService) UploadCertificateTemplate(raw []byte) error {
	if len(raw) == 0 {
		return ErrInvalidTemplate
	}
	if err := s.renderer.SaveTemplate(raw); err != nil {
		if errors.Is(err, certificate.ErrInvalidTemplate) {
			return ErrInvalidTemplate
		}
		return wrapStorage("save certificate template", err)
	}
	logger.Infow("certificate_template_updated", "size", len(raw))
	return nil
}

func (s *DonationService) missingOrConflict(id uint) error {
	current, err := s.donationRepo.GetByID(id)
	if err != nil {
		return wrapStorage("reload donation", err)
	}
	if current == nil {
		return ErrDonationNotFound
	}
	return ErrInvalidStateTransition
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func isDonationStatus(status string) bool {
	for _, item := range constants.DonationStatuses {
		if item == status {
			return true
		}
	}
	return false
}
