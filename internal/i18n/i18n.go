package i18n

import (
	"fmt"
	"strings"

	"github.com/wakaf-tunai/internal/constants"

	"github.com/gin-gonic/gin"
)

// DefaultLocale 默认语言（印尼语）
const DefaultLocale = constants.LocaleID

var catalogs = map[string]map[string]string{
	constants.LocaleID: messagesID,
	constants.LocaleEN: messagesEN,
}

// ResolveLocale 依次读取 lang 查询参数与 Accept-Language 头
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return DefaultLocale
	}
	if locale := Normalize(c.Query("lang")); locale != "" {
		return locale
	}
	header := c.GetHeader("Accept-Language")
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if locale := Normalize(tag); locale != "" {
			return locale
		}
	}
	return DefaultLocale
}

// Normalize 将语言标签归一为受支持的 locale，不支持时返回空串
func Normalize(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	switch {
	case tag == "":
		return ""
	case tag == "id" || strings.HasPrefix(tag, "id-") || tag == "in":
		return constants.LocaleID
	case tag == "en" || strings.HasPrefix(tag, "en-"):
		return constants.LocaleEN
	}
	return ""
}

// T 翻译文案，缺失时回退到默认语言，再回退到 key 本身
func T(locale, key string) string {
	if msg, ok := catalogs[locale][key]; ok {
		return msg
	}
	if msg, ok := catalogs[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 翻译并格式化
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}
