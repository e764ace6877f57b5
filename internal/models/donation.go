package models

import (
	"time"

	"github.com/wakaf-tunai/internal/constants"
)

// Donation 现金 Wakaf 捐赠记录
type Donation struct {
	ID                 uint      `gorm:"primarykey" json:"id"`
	UniqueCode         string    `gorm:"uniqueIndex;size:16;not null" json:"unique_code"` // 捐赠人登记码，创建后不可变
	Name               string    `gorm:"size:191;not null" json:"name"`
	Address            string    `gorm:"size:512;not null" json:"address"`
	Cellphone          string    `gorm:"size:32;not null;index" json:"cellphone"`
	Quantity           int       `gorm:"not null" json:"quantity"`
	GrandTotal         Money     `gorm:"type:decimal(20,2);not null" json:"grand_total"`
	Status             string    `gorm:"size:16;not null;index" json:"status"`
	ProofOfTransferURL string    `gorm:"size:1024" json:"proof_of_transfer_url"`
	CertificateURL     string    `gorm:"size:1024" json:"certificate_url"`
	VoucherSent        bool      `gorm:"not null;default:false" json:"voucher_sent"`
	CreatedAt          time.Time `gorm:"index" json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// TableName 指定表名
func (Donation) TableName() string {
	return "donations"
}

// HasProof 是否已上传转账凭证
func (d *Donation) HasProof() bool {
	return d != nil && d.ProofOfTransferURL != ""
}

// IsDone 是否已审核完成
func (d *Donation) IsDone() bool {
	return d != nil && d.Status == constants.DonationStatusDone
}

// DonationPublicView 捐赠人查询可见字段
type DonationPublicView struct {
	UniqueCode string    `json:"unique_code"`
	Name       string    `json:"name"`
	Address    string    `json:"address"`
	Cellphone  string    `json:"cellphone"`
	Quantity   int       `json:"quantity"`
	GrandTotal Money     `json:"grand_total"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// PublicView 转换为公开视图
func (d *Donation) PublicView() DonationPublicView {
	return DonationPublicView{
		UniqueCode: d.UniqueCode,
		Name:       d.Name,
		Address:    d.Address,
		Cellphone:  d.Cellphone,
		Quantity:   d.Quantity,
		GrandTotal: d.GrandTotal,
		Status:     d.Status,
		CreatedAt:  d.CreatedAt,
	}
}
