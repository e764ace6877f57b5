package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/wakaf-tunai/internal/constants"
	"github.com/wakaf-tunai/internal/models"
	"github.com/wakaf-tunai/internal/repository"

	"github.com/shopspring/decimal"
)

const settingFieldVoucherPrice = "voucher_price"

// DonationSetting 捐赠业务设置
type DonationSetting struct {
	VoucherPrice models.Money `json:"voucher_price"`
}

// SettingService 设置业务服务
type SettingService struct {
	repo                repository.SettingRepository
	defaultVoucherPrice int64
}

// NewSettingService 创建设置服务
func NewSettingService(repo repository.SettingRepository, defaultVoucherPrice int64) *SettingService {
	return &SettingService{repo: repo, defaultVoucherPrice: defaultVoucherPrice}
}

// GetDonationSetting 读取捐赠设置，未保存时回落到配置默认值
func (s *SettingService) GetDonationSetting() (DonationSetting, error) {
	result := DonationSetting{VoucherPrice: models.NewMoneyFromInt(s.defaultVoucherPrice)}
	setting, err := s.repo.GetByKey(constants.SettingKeyDonation)
	if err != nil {
		return result, wrapStorage("load donation setting", err)
	}
	if setting == nil {
		return result, nil
	}
	raw, ok := setting.ValueJSON[settingFieldVoucherPrice]
	if !ok {
		return result, nil
	}
	price, err := parseSettingDecimal(raw)
	if err != nil || !price.IsPositive() {
		return result, nil
	}
	result.VoucherPrice = models.NewMoneyFromDecimal(price)
	return result, nil
}

// UnitPrice 当前单价
func (s *SettingService) UnitPrice() (models.Money, error) {
	setting, err := s.GetDonationSetting()
	return setting.VoucherPrice, err
}

// UpdateDonationSetting 保存捐赠设置
func (s *SettingService) UpdateDonationSetting(input DonationSetting) (DonationSetting, error) {
	if !input.VoucherPrice.IsPositive() {
		return DonationSetting{}, ErrInvalidPrice
	}
	value := models.JSON{settingFieldVoucherPrice: input.VoucherPrice.StringFixed(2)}
	if _, err := s.repo.Upsert(constants.SettingKeyDonation, value); err != nil {
		return DonationSetting{}, wrapStorage("save donation setting", err)
	}
	return DonationSetting{VoucherPrice: models.NewMoneyFromDecimal(input.VoucherPrice.Round(2))}, nil
}

func parseSettingDecimal(value interface{}) (decimal.Decimal, error) {
	switch v := value.(type) {
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case float64:
		return decimal.NewFromFloat(v), nil
	case json.Number:
		return decimal.NewFromString(v.String())
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return decimal.Zero, fmt.Errorf("empty string")
		}
		return decimal.NewFromString(trimmed)
	default:
		return decimal.Zero, fmt.Errorf("unsupported value type")
	}
}
