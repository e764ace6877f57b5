package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/wakaf-tunai/internal/config"
)

var (
	// ErrGatewayDisabled 网关未启用
	ErrGatewayDisabled = errors.New("whatsapp gateway disabled")
	// ErrGatewayRejected 网关返回非 2xx
	ErrGatewayRejected = errors.New("whatsapp gateway rejected request")
)

// Sender WhatsApp 消息发送接口
type Sender interface {
	SendMessage(ctx context.Context, phone, message string) error
	SendImage(ctx context.Context, phone, caption, imageURL string) error
}

// WhatsAppClient 对接 /send/message 与 /send/image 的网关客户端
type WhatsAppClient struct {
	baseURL    string
	enabled    bool
	httpClient *http.Client
}

type messageRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

type imageRequest struct {
	Phone    string `json:"phone"`
	Caption  string `json:"caption"`
	ImageURL string `json:"image_url"`
}

// NewWhatsAppClient 创建网关客户端
func NewWhatsAppClient(cfg config.NotifyConfig) *WhatsAppClient {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 || timeout > 60 {
		timeout = 10
	}
	return &WhatsAppClient{
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.GatewayBaseURL), "/"),
		enabled:    cfg.Enabled,
		httpClient: &http.Client{Timeout: time.Duration(timeout) * time.Second},
	}
}

// SendMessage 发送文本消息
func (c *WhatsAppClient) SendMessage(ctx context.Context, phone, message string) error {
	return c.post(ctx, "/send/message", messageRequest{Phone: phone, Message: message})
}

// SendImage 发送带说明的图片消息
func (c *WhatsAppClient) SendImage(ctx context.Context, phone, caption, imageURL string) error {
	return c.post(ctx, "/send/image", imageRequest{Phone: phone, Caption: caption, ImageURL: imageURL})
}

func (c *WhatsAppClient) post(ctx context.Context, path string, payload interface{}) error {
	if c == nil || !c.enabled || c.baseURL == "" {
		return ErrGatewayDisabled
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp gateway %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: %s status=%d body=%s", ErrGatewayRejected, path, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
