package queue

import (
	"errors"
	"fmt"
	"strings"

	"github.com/wakaf-tunai/internal/config"

	"github.com/hibiken/asynq"
)

const (
	// DefaultQueue 默认队列
	DefaultQueue = "default"
	// NotifyQueue 通知队列
	NotifyQueue = "notify"

	defaultMaxRetry = 5
)

// Client asynq 客户端封装，未启用时所有入队操作返回 ErrDisabled
type Client struct {
	client   *asynq.Client
	enabled  bool
	maxRetry int
}

// ErrDisabled 队列未启用
var ErrDisabled = errors.New("queue disabled")

// NewClient 创建队列客户端
func NewClient(cfg *config.QueueConfig) *Client {
	if cfg == nil || !cfg.Enabled {
		return &Client{}
	}
	maxRetry := cfg.MaxRetry
	if maxRetry <= 0 {
		maxRetry = defaultMaxRetry
	}
	return &Client{
		client:   asynq.NewClient(buildRedisOpt(cfg)),
		enabled:  true,
		maxRetry: maxRetry,
	}
}

// Enabled 是否启用
func (c *Client) Enabled() bool {
	return c != nil && c.enabled && c.client != nil
}

// Close 关闭连接
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// EnqueueWhatsAppNotify 投递通知任务；同一去重键已在队列中时视为成功
func (c *Client) EnqueueWhatsAppNotify(payload WhatsAppNotifyPayload) error {
	if !c.Enabled() {
		return ErrDisabled
	}
	task, err := NewWhatsAppNotifyTask(payload)
	if err != nil {
		return err
	}
	_, err = c.client.Enqueue(task,
		asynq.Queue(NotifyQueue),
		asynq.MaxRetry(c.maxRetry),
		asynq.TaskID(payload.DedupeKey()),
	)
	if errors.Is(err, asynq.ErrTaskIDConflict) || errors.Is(err, asynq.ErrDuplicateTask) {
		return nil
	}
	return err
}

// BuildServerConfig 生成 worker 配置
func BuildServerConfig(cfg *config.QueueConfig) (asynq.RedisClientOpt, asynq.Config) {
	concurrency := 5
	queues := map[string]int{DefaultQueue: 1, NotifyQueue: 2}
	if cfg != nil {
		if cfg.Concurrency > 0 {
			concurrency = cfg.Concurrency
		}
		if len(cfg.Queues) > 0 {
			queues = cfg.Queues
		}
	}
	return buildRedisOpt(cfg), asynq.Config{
		Concurrency: concurrency,
		Queues:      queues,
	}
}

func buildRedisOpt(cfg *config.QueueConfig) asynq.RedisClientOpt {
	host, port := "127.0.0.1", 6379
	opt := asynq.RedisClientOpt{}
	if cfg != nil {
		if h := strings.TrimSpace(cfg.Host); h != "" {
			host = h
		}
		if cfg.Port > 0 {
			port = cfg.Port
		}
		opt.Password = cfg.Password
		opt.DB = cfg.DB
	}
	opt.Addr = fmt.Sprintf("%s:%d", host, port)
	return opt
}
