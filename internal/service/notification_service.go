package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/wakaf-tunai/internal/config"
	"github.com/wakaf-tunai/internal/constants"
	"github.com/wakaf-tunai/internal/logger"
	"github.com/wakaf-tunai/internal/models"
	"github.com/wakaf-tunai/internal/notify"
	"github.com/wakaf-tunai/internal/queue"
)

var notificationTemplateVarPattern = regexp.MustCompile(`\{\{\s*([a-zA-Z0-9_]+)\s*\}\}`)

const (
	greetingOpen  = "السَّلاَمُ عَلَيْكُمْ وَرَحْمَةُ اللهِ وَبَرَكَاتُهُ"
	greetingClose = "وَالسَّلَامُ عَلَيْكُمْ وَرَحْمَةُاللَّهِ وَبَرَكَاتُهُ"
	autoReplyNote = "_This is an automated message system. Please do not reply._"
)

const registrationTemplate = greetingOpen + `

Alhamdulillaah, *Komitmen Wakaf* Anda sudah kami catat sebagai berikut:
   Nama: {{name}}
   Alamat: {{address}}
   No. HP: {{cellphone}}
   Jml Voucher: {{quantity}}
   Total: *Rp {{grand_total}}*

Silakan *Transfer* ke:

🏦 *{{bank_name}}*
🧾 *{{bank_account}}*
a.n. {{bank_account_holder}}

kemudian 📤 *Konfirmasi Transfer* ke: {{confirm_link}}
dengan 🔒 *Kode Registrasi*: *{{unique_code}}*

` + greetingClose + `

*{{signature}}*
` + autoReplyNote

const approvalTemplate = greetingOpen + `

Bapak/Ibu *{{name_upper}}* yang dirahmati Allah,

Atas nama {{signature}} kami mengucapkan,

جَزَاك اللهُ خَيْرًا كَثِيْرًا وَجَزَاك اللهُ اَحْسَنَ الْجَزَاء

بَارَكَ اللهُ لَك فِيْ أَهْلِك وَمَالِك
_"Semoga Allah memberkahimu dalam keluarga dan hartamu."_

آمِيْن يَا رَبَّ العَالَمِيْنَ 🤲

` + greetingClose + `

*{{signature}}*
` + autoReplyNote

// NotificationService 捐赠人 WhatsApp 通知
// 同步模式直接调用网关；开启异步且队列可用时改为入队，由 worker 投递并重试
type NotificationService struct {
	cfg         config.DonationConfig
	sender      notify.Sender
	queueClient *queue.Client
	async       bool
}

// NewNotificationService 创建通知服务
func NewNotificationService(cfg config.DonationConfig, sender notify.Sender, queueClient *queue.Client, async bool) *NotificationService {
	return &NotificationService{
		cfg:         cfg,
		sender:      sender,
		queueClient: queueClient,
		async:       async,
	}
}

// RegistrationMessage 渲染登记成功通知
func (s *NotificationService) RegistrationMessage(donation *models.Donation) string {
	return renderNotificationTemplate(registrationTemplate, map[string]interface{}{
		"name":                donation.Name,
		"address":             donation.Address,
		"cellphone":           donation.Cellphone,
		"quantity":            donation.Quantity,
		"grand_total":         donation.GrandTotal.Rupiah(),
		"bank_name":           s.cfg.BankName,
		"bank_account":        s.cfg.BankAccount,
		"bank_account_holder": s.cfg.BankAccountHolder,
		"confirm_link":        s.cfg.ConfirmLink,
		"unique_code":         donation.UniqueCode,
		"signature":           s.cfg.CommitteeSignature,
	})
}

// ApprovalCaption 渲染审核通过通知
func (s *NotificationService) ApprovalCaption(donation *models.Donation) string {
	return renderNotificationTemplate(approvalTemplate, map[string]interface{}{
		"name_upper": strings.ToUpper(strings.TrimSpace(donation.Name)),
		"signature":  s.cfg.CommitteeSignature,
	})
}

// NotifyRegistration 发送登记通知
func (s *NotificationService) NotifyRegistration(ctx context.Context, donation *models.Donation) error {
	return s.dispatch(ctx, queue.WhatsAppNotifyPayload{
		DonationID: donation.ID,
		Kind:       constants.NotifyKindRegistration,
		Phone:      donation.Cellphone,
		Message:    s.RegistrationMessage(donation),
	})
}

// NotifyApproval 发送审核通过通知，有证书时以图片形式附带
func (s *NotificationService) NotifyApproval(ctx context.Context, donation *models.Donation) error {
	return s.dispatch(ctx, queue.WhatsAppNotifyPayload{
		DonationID: donation.ID,
		Kind:       constants.NotifyKindApproval,
		Phone:      donation.Cellphone,
		Message:    s.ApprovalCaption(donation),
		ImageURL:   strings.TrimSpace(donation.CertificateURL),
	})
}

// Deliver 调用网关发送一条通知，worker 与同步模式共用
func (s *NotificationService) Deliver(ctx context.Context, payload queue.WhatsAppNotifyPayload) error {
	if s == nil || s.sender == nil {
		return wrapExternal("whatsapp send", notify.ErrGatewayDisabled)
	}
	phone := strings.TrimSpace(payload.Phone)
	if phone == "" {
		return wrapExternal("whatsapp send", fmt.Errorf("empty phone"))
	}
	var err error
	if payload.ImageURL != "" {
		err = s.sender.SendImage(ctx, phone, payload.Message, payload.ImageURL)
	} else {
		err = s.sender.SendMessage(ctx, phone, payload.Message)
	}
	if err != nil {
		return wrapExternal("whatsapp send", err)
	}
	logger.Infow("whatsapp_notify_sent",
		"donation_id", payload.DonationID,
		"kind", payload.Kind,
		"phone", logger.MaskPhone(phone),
	)
	return nil
}

func (s *NotificationService) dispatch(ctx context.Context, payload queue.WhatsAppNotifyPayload) error {
	if s.async && s.queueClient.Enabled() {
		err := s.queueClient.EnqueueWhatsAppNotify(payload)
		if err == nil {
			return nil
		}
		logger.Warnw("whatsapp_notify_enqueue_failed",
			"donation_id", payload.DonationID,
			"kind", payload.Kind,
			"error", err,
		)
	}
	return s.Deliver(ctx, payload)
}

func renderNotificationTemplate(template string, variables map[string]interface{}) string {
	return notificationTemplateVarPattern.ReplaceAllStringFunc(template, func(matched string) string {
		parts := notificationTemplateVarPattern.FindStringSubmatch(matched)
		if len(parts) < 2 {
			return matched
		}
		value, ok := variables[parts[1]]
		if !ok || value == nil {
			return ""
		}
		return strings.TrimSpace(fmt.Sprintf("%v", value))
	})
}
