package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"sync"
	"testing"

	"github.com/wakaf-tunai/internal/certificate"
	"github.com/wakaf-tunai/internal/config"
	"github.com/wakaf-tunai/internal/models"
	"github.com/wakaf-tunai/internal/repository"
	"github.com/wakaf-tunai/internal/storage"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

type fakeStore struct {
	mu   sync.Mutex
	puts []storage.Object
	err  error
}

func (s *fakeStore) Put(_ context.Context, obj storage.Object) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	s.puts = append(s.puts, obj)
	return fmt.Sprintf("https://files.example.com/%s/%s", obj.Container, obj.Name), nil
}

func (s *fakeStore) Driver() string { return "fake" }

func (s *fakeStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.puts)
}

type sentMessage struct {
	Phone    string
	Message  string
	ImageURL string
}

type fakeSender struct {
	mu   sync.Mutex
	sent []sentMessage
	err  error
}

func (s *fakeSender) SendMessage(_ context.Context, phone, message string) error {
	return s.record(sentMessage{Phone: phone, Message: message})
}

func (s *fakeSender) SendImage(_ context.Context, phone, caption, imageURL string) error {
	return s.record(sentMessage{Phone: phone, Message: caption, ImageURL: imageURL})
}

func (s *fakeSender) record(msg sentMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, msg)
	return nil
}

func (s *fakeSender) messages() []sentMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]sentMessage(nil), s.sent...)
}

type fakeRenderer struct {
	err      error
	rendered []certificate.Data
	template []byte
}

func (r *fakeRenderer) Render(data certificate.Data) ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.rendered = append(r.rendered, data)
	return []byte{0xff, 0xd8, 0xff}, nil
}

func (r *fakeRenderer) SaveTemplate(raw []byte) error {
	if !bytes.HasPrefix(raw, pngHeader[:8]) {
		return certificate.ErrInvalidTemplate
	}
	r.template = raw
	return nil
}

type donationFixture struct {
	db       *gorm.DB
	cfg      *config.Config
	repo     *repository.GormDonationRepository
	settings *SettingService
	store    *fakeStore
	sender   *fakeSender
	renderer *fakeRenderer
	svc      *DonationService
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{SecretKey: "test-secret", ExpireHours: 1},
		Upload: config.UploadConfig{
			ProofMaxSize:      1024 * 1024,
			AllowedTypes:      []string{"image/png", "image/jpeg", "image/gif", "image/webp", "application/pdf"},
			AllowedExtensions: []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".pdf"},
		},
		Donation: config.DonationConfig{
			VoucherPrice:       100000,
			CodeLength:         8,
			CodeMaxAttempts:    10,
			ConfirmLink:        "https://s.id/WakafTunaiQS",
			BankName:           "Bank Syariah Indonesia (BSI)",
			BankAccount:        "7251571346",
			BankAccountHolder:  "Pembangunan Masjid Qoryatussalam",
			CommitteeSignature: "Panitia Pembangunan Masjid Qoryatussalam",
		},
		Security: config.SecurityConfig{
			PasswordPolicy: config.PasswordPolicyConfig{MinLength: 8, RequireNumber: true},
		},
	}
}

func setupDonationServiceTest(t *testing.T) *donationFixture {
	t.Helper()
	db := openTestDB(t)
	cfg := testConfig()
	f := &donationFixture{
		db:       db,
		cfg:      cfg,
		repo:     repository.NewDonationRepository(db),
		store:    &fakeStore{},
		sender:   &fakeSender{},
		renderer: &fakeRenderer{},
	}
	f.settings = NewSettingService(repository.NewSettingRepository(db), cfg.Donation.VoucherPrice)
	notifier := NewNotificationService(cfg.Donation, f.sender, nil, false)
	f.svc = NewDonationService(cfg, f.repo, f.settings, notifier, f.store, f.renderer)
	return f
}

func (f *donationFixture) submit(t *testing.T, name string, qty int) *models.Donation {
	t.Helper()
	donation, err := f.svc.Submit(context.Background(), SubmitDonationInput{
		Name:      name,
		Address:   "Jl. Masjid No. 1",
		Cellphone: "081234567890",
		Quantity:  qty,
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	return donation
}

func (f *donationFixture) confirm(t *testing.T, code string) *models.Donation {
	t.Helper()
	donation, err := f.svc.Confirm(context.Background(), code, newFileHeader(t, "bukti transfer.png", pngBody(64)))
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	return donation
}

func newFileHeader(t *testing.T, filename string, body []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("proof_file", filename)
	if err != nil {
		t.Fatalf("create form file failed: %v", err)
	}
	if _, err := part.Write(body); err != nil {
		t.Fatalf("write form file failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer failed: %v", err)
	}
	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("read form failed: %v", err)
	}
	files := form.File["proof_file"]
	if len(files) != 1 {
		t.Fatalf("want 1 file got %d", len(files))
	}
	return files[0]
}

func pngBody(extra int) []byte {
	body := make([]byte, 0, len(pngHeader)+extra)
	body = append(body, pngHeader...)
	return append(body, make([]byte, extra)...)
}

var errGatewayDown = errors.New("dial tcp 127.0.0.1:1799: connection refused")
