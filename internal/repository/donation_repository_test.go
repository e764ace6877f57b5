package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/wakaf-tunai/internal/constants"
	"github.com/wakaf-tunai/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupDonationRepositoryTest(t *testing.T) (*GormDonationRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return NewDonationRepository(db), db
}

func createDonation(t *testing.T, repo *GormDonationRepository, code, name, status string, qty int) *models.Donation {
	t.Helper()
	donation := &models.Donation{
		UniqueCode: code,
		Name:       name,
		Address:    "Jl. Masjid No. 1",
		Cellphone:  "0812" + code,
		Quantity:   qty,
		GrandTotal: models.NewMoneyFromInt(100000).Times(qty),
		Status:     status,
	}
	if err := repo.Create(donation); err != nil {
		t.Fatalf("create donation failed: %v", err)
	}
	return donation
}

func TestDonationRepositoryLookup(t *testing.T) {
	repo, _ := setupDonationRepositoryTest(t)
	created := createDonation(t, repo, "AB12CD34", "Ahmad", constants.DonationStatusNew, 2)

	byCode, err := repo.GetByCode("AB12CD34")
	if err != nil || byCode == nil {
		t.Fatalf("get by code failed: %v", err)
	}
	if byCode.ID != created.ID || byCode.GrandTotal.String() != "200000.00" {
		t.Fatalf("unexpected donation: %+v", byCode)
	}

	missing, err := repo.GetByCode("ZZZZZZZZ")
	if err != nil || missing != nil {
		t.Fatalf("missing code should return nil,nil got %v %v", missing, err)
	}
	missingID, err := repo.GetByID(9999)
	if err != nil || missingID != nil {
		t.Fatalf("missing id should return nil,nil got %v %v", missingID, err)
	}

	exists, err := repo.ExistsByCode("AB12CD34")
	if err != nil || !exists {
		t.Fatalf("code should exist, got %v %v", exists, err)
	}
}

func TestDonationRepositoryUniqueCode(t *testing.T) {
	repo, _ := setupDonationRepositoryTest(t)
	createDonation(t, repo, "DUPL1234", "A", constants.DonationStatusNew, 1)
	dup := &models.Donation{
		UniqueCode: "DUPL1234",
		Name:       "B",
		Address:    "x",
		Cellphone:  "1",
		Quantity:   1,
		GrandTotal: models.NewMoneyFromInt(100000),
		Status:     constants.DonationStatusNew,
	}
	if err := repo.Create(dup); err == nil {
		t.Fatalf("duplicate unique code should be rejected")
	}
}

func TestDonationRepositoryConfirmAndMarkSent(t *testing.T) {
	repo, _ := setupDonationRepositoryTest(t)
	d := createDonation(t, repo, "CONF0001", "Fatimah", constants.DonationStatusNew, 1)

	rows, err := repo.ConfirmByCode("CONF0001", "/uploads/proof-of-transfer/CONF0001-1-a.png")
	if err != nil || rows != 1 {
		t.Fatalf("confirm failed rows=%d err=%v", rows, err)
	}
	got, _ := repo.GetByID(d.ID)
	if got.Status != constants.DonationStatusConfirmed || !got.HasProof() {
		t.Fatalf("confirm not applied: %+v", got)
	}

	rows, err = repo.MarkVoucherSent(d.ID)
	if err != nil || rows != 0 {
		t.Fatalf("mark sent must not apply before Done, rows=%d err=%v", rows, err)
	}

	for i := 0; i < 2; i++ {
		rows, err = repo.Approve(d.ID)
		if err != nil || rows != 1 {
			t.Fatalf("approve #%d want 1 row got %d err=%v", i+1, rows, err)
		}
	}
	rows, err = repo.MarkVoucherSent(d.ID)
	if err != nil || rows != 1 {
		t.Fatalf("mark sent want 1 row got %d err=%v", rows, err)
	}
	rows, err = repo.MarkVoucherSent(d.ID)
	if err != nil || rows != 0 {
		t.Fatalf("second mark sent want 0 rows got %d err=%v", rows, err)
	}
	got, _ = repo.GetByID(d.ID)
	if !got.VoucherSent {
		t.Fatalf("voucher_sent should be true")
	}

	rows, err = repo.ConfirmByCode("CONF0001", "/uploads/proof-of-transfer/late.png")
	if err != nil || rows != 0 {
		t.Fatalf("confirm must not move Done backwards, rows=%d err=%v", rows, err)
	}
}

func TestDonationRepositoryApproveRequiresConfirmed(t *testing.T) {
	repo, _ := setupDonationRepositoryTest(t)
	d := createDonation(t, repo, "APPR0001", "Umar", constants.DonationStatusNew, 1)
	rows, err := repo.Approve(d.ID)
	if err != nil || rows != 0 {
		t.Fatalf("approve on New want 0 rows got %d err=%v", rows, err)
	}
	got, _ := repo.GetByID(d.ID)
	if got.Status != constants.DonationStatusNew {
		t.Fatalf("status want New got %s", got.Status)
	}
}

func TestDonationRepositoryListAdminAndSummary(t *testing.T) {
	repo, db := setupDonationRepositoryTest(t)
	first := createDonation(t, repo, "LIST0001", "Budi Santoso", constants.DonationStatusNew, 1)
	createDonation(t, repo, "LIST0002", "Siti Aminah", constants.DonationStatusConfirmed, 2)
	third := createDonation(t, repo, "LIST0003", "Budi Hartono", constants.DonationStatusConfirmed, 3)
	// 保证排序稳定
	db.Model(&models.Donation{}).Where("id = ?", first.ID).Update("created_at", first.CreatedAt.Add(-time.Second))

	items, total, err := repo.ListAdmin(DonationListFilter{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 3 || len(items) != 3 {
		t.Fatalf("want 3 items got total=%d len=%d", total, len(items))
	}
	if items[len(items)-1].ID != first.ID {
		t.Fatalf("oldest donation should be last, got id=%d", items[len(items)-1].ID)
	}

	items, total, err = repo.ListAdmin(DonationListFilter{Page: 1, PageSize: 10, Keyword: "budi", Status: constants.DonationStatusConfirmed})
	if err != nil {
		t.Fatalf("filtered list failed: %v", err)
	}
	if total != 1 || items[0].ID != third.ID {
		t.Fatalf("want only LIST0003, got total=%d items=%+v", total, items)
	}

	summary, err := repo.Summary()
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if len(summary) != 3 {
		t.Fatalf("summary should list all statuses, got %d", len(summary))
	}
	confirmed := summary[1]
	if confirmed.Status != constants.DonationStatusConfirmed || confirmed.Records != 2 || confirmed.Quantity != 5 {
		t.Fatalf("unexpected confirmed summary: %+v", confirmed)
	}
	if confirmed.Total.String() != "500000.00" {
		t.Fatalf("confirmed total want 500000.00 got %s", confirmed.Total.String())
	}
	if summary[2].Records != 0 {
		t.Fatalf("done summary should be zero, got %+v", summary[2])
	}
}

func TestDonationRepositoryDelete(t *testing.T) {
	repo, _ := setupDonationRepositoryTest(t)
	d := createDonation(t, repo, "DEL00001", "X", constants.DonationStatusDone, 1)
	rows, err := repo.Delete(d.ID)
	if err != nil || rows != 1 {
		t.Fatalf("delete failed rows=%d err=%v", rows, err)
	}
	rows, err = repo.Delete(d.ID)
	if err != nil || rows != 0 {
		t.Fatalf("second delete want 0 rows got %d err=%v", rows, err)
	}
}
