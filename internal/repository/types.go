package repository

import "github.com/wakaf-tunai/internal/models"

// DonationListFilter 后台捐赠列表过滤条件
type DonationListFilter struct {
	Page     int
	PageSize int
	Status   string
	Keyword  string // 匹配姓名、登记码、手机号
}

// DonationStatusSummary 按状态聚合的统计行
type DonationStatusSummary struct {
	Status   string       `json:"status"`
	Records  int64        `json:"records"`
	Quantity int64        `json:"quantity"`
	Total    models.Money `json:"total"`
}
