package public

import "github.com/wakaf-tunai/internal/provider"

// Handler 公开接口处理器入口
// 说明：该处理器仅用于捐赠人侧 API。
type Handler struct {
	*provider.Container
}

// New 创建公开处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
