package queue

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	// TaskWhatsAppNotify 向捐赠人发送 WhatsApp 通知
	TaskWhatsAppNotify = "notify:whatsapp"
)

// WhatsAppNotifyPayload 通知任务载荷，消息内容在入队时已渲染
type WhatsAppNotifyPayload struct {
	DonationID uint   `json:"donation_id"`
	Kind       string `json:"kind"` // registration / approval
	Phone      string `json:"phone"`
	Message    string `json:"message"`
	ImageURL   string `json:"image_url,omitempty"`
}

// DedupeKey 同一捐赠同一类通知只保留一个待执行任务
func (p WhatsAppNotifyPayload) DedupeKey() string {
	return fmt.Sprintf("%d:%s", p.DonationID, p.Kind)
}

// NewWhatsAppNotifyTask 构造通知任务
func NewWhatsAppNotifyTask(payload WhatsAppNotifyPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskWhatsAppNotify, body), nil
}

// ParseWhatsAppNotifyPayload 解析任务载荷
func ParseWhatsAppNotifyPayload(task *asynq.Task) (WhatsAppNotifyPayload, error) {
	var payload WhatsAppNotifyPayload
	if task == nil {
		return payload, fmt.Errorf("nil task")
	}
	err := json.Unmarshal(task.Payload(), &payload)
	return payload, err
}
