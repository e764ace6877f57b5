package worker

import (
	"context"
	"errors"

	"github.com/wakaf-tunai/internal/logger"
	"github.com/wakaf-tunai/internal/queue"
	"github.com/wakaf-tunai/internal/service"

	"github.com/hibiken/asynq"
)

// Deliverer 通知投递
type Deliverer interface {
	Deliver(ctx context.Context, payload queue.WhatsAppNotifyPayload) error
}

// Consumer 异步任务消费者
type Consumer struct {
	Notifier Deliverer
}

// NewConsumer 创建消费者
func NewConsumer(notifier Deliverer) *Consumer {
	return &Consumer{Notifier: notifier}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskWhatsAppNotify, c.handleWhatsAppNotify)
}

func (c *Consumer) handleWhatsAppNotify(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_whatsapp_notify_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseWhatsAppNotifyPayload(task)
	if err != nil {
		logger.Warnw("worker_whatsapp_notify_unmarshal_failed", "error", err)
		// 载荷损坏重试无意义
		return errors.Join(err, asynq.SkipRetry)
	}
	if payload.Phone == "" || payload.Message == "" {
		logger.Debugw("worker_whatsapp_notify_skip_invalid_payload", "donation_id", payload.DonationID, "kind", payload.Kind)
		return nil
	}
	if c.Notifier == nil {
		logger.Warnw("worker_whatsapp_notify_skip_notifier_nil", "donation_id", payload.DonationID)
		return nil
	}
	if err := c.Notifier.Deliver(ctx, payload); err != nil {
		logger.Warnw("worker_whatsapp_notify_failed",
			"donation_id", payload.DonationID,
			"kind", payload.Kind,
			"phone", logger.MaskPhone(payload.Phone),
			"error", err,
		)
		return err
	}
	return nil
}

var _ Deliverer = (*service.NotificationService)(nil)
