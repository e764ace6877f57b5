package main

import (
	"errors"

	"github.com/wakaf-tunai/internal/config"
	"github.com/wakaf-tunai/internal/constants"
	"github.com/wakaf-tunai/internal/logger"
	"github.com/wakaf-tunai/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// demoDonation 本地演示数据
type demoDonation struct {
	code      string
	name      string
	address   string
	cellphone string
	quantity  int
	status    string
	sent      bool
}

var demoDonations = []demoDonation{
	{code: "DEMO0001", name: "Ahmad Fauzi", address: "Jl. Melati No. 3, Bekasi", cellphone: "081200000001", quantity: 1, status: constants.DonationStatusNew},
	{code: "DEMO0002", name: "Siti Aminah", address: "Jl. Kenanga No. 7, Bekasi", cellphone: "081200000002", quantity: 5, status: constants.DonationStatusConfirmed},
	{code: "DEMO0003", name: "Hj. Maryam", address: "Perum Qoryatussalam Blok B2", cellphone: "081200000003", quantity: 10, status: constants.DonationStatusDone, sent: true},
}

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	unitPrice := decimal.NewFromInt(cfg.Donation.VoucherPrice)
	created := 0
	for _, demo := range demoDonations {
		var existing models.Donation
		err := models.DB.Where("unique_code = ?", demo.code).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			stdLog.Fatalf("Failed to query donation %s: %v", demo.code, err)
		}

		donation := models.Donation{
			UniqueCode:  demo.code,
			Name:        demo.name,
			Address:     demo.address,
			Cellphone:   demo.cellphone,
			Quantity:    demo.quantity,
			GrandTotal:  models.NewMoneyFromDecimal(unitPrice.Mul(decimal.NewFromInt(int64(demo.quantity)))),
			Status:      demo.status,
			VoucherSent: demo.sent,
		}
		if err := models.DB.Create(&donation).Error; err != nil {
			stdLog.Fatalf("Failed to create donation %s: %v", demo.code, err)
		}
		created++
	}

	logger.Infow("seed_completed", "donations_created", created, "donations_total", len(demoDonations))
}
