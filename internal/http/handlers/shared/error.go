package shared

import (
	"errors"

	"github.com/wakaf-tunai/internal/http/response"
	"github.com/wakaf-tunai/internal/i18n"
	"github.com/wakaf-tunai/internal/logger"
	"github.com/wakaf-tunai/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// localizedError 业务错误携带的文案键与参数
type localizedError interface {
	Key() string
	Args() []interface{}
}

// serviceErrorKind 错误类别到业务码与兜底文案的映射
type serviceErrorKind struct {
	target error
	code   int
	key    string
}

var serviceErrorKinds = []serviceErrorKind{
	{target: service.ErrValidation, code: response.CodeBadRequest, key: "error.bad_request"},
	{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.not_found"},
	{target: service.ErrUnauthorized, code: response.CodeUnauthorized, key: "error.unauthorized"},
	{target: service.ErrConflict, code: response.CodeConflict, key: "error.invalid_state"},
	{target: service.ErrStorage, code: response.CodeInternal, key: "error.storage"},
	{target: service.ErrExternalService, code: response.CodeBadGateway, key: "error.external"},
}

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondError 返回国际化错误响应，并在有原始错误时记录日志。
func RespondError(c *gin.Context, code int, key string, err error) {
	locale := i18n.ResolveLocale(c)
	msg := i18n.T(locale, key)
	RespondErrorWithMsg(c, code, msg, err)
}

// RespondErrorWithMsg 返回自定义消息错误响应，并在有原始错误时记录日志。
func RespondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	appErr := response.WrapError(code, msg, err)
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"message", appErr.Message,
			"error", err,
		)
	}
	response.Error(c, appErr.Code, appErr.Message)
}

// RespondServiceError 按错误类别映射业务码，文案优先取错误自带的 i18n 键。
// 仅存储与外部服务类错误记录 error 日志，其余属于调用方输入问题。
func RespondServiceError(c *gin.Context, err error) {
	code, key := ResolveServiceError(err)
	locale := i18n.ResolveLocale(c)

	var args []interface{}
	var localized localizedError
	if errors.As(err, &localized) && localized.Key() != "" {
		key = localized.Key()
		args = localized.Args()
	}
	msg := i18n.T(locale, key)
	if len(args) > 0 {
		msg = i18n.Sprintf(locale, key, args...)
	}

	if code >= response.CodeInternal {
		RespondErrorWithMsg(c, code, msg, err)
		return
	}
	if err != nil {
		RequestLog(c).Debugw("handler_rejected", "code", code, "error", err)
	}
	response.Error(c, code, msg)
}

// ResolveServiceError 返回错误对应的业务码与兜底文案键
func ResolveServiceError(err error) (int, string) {
	for _, kind := range serviceErrorKinds {
		if errors.Is(err, kind.target) {
			return kind.code, kind.key
		}
	}
	return response.CodeInternal, "error.internal"
}
