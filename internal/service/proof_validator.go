package service

import (
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/wakaf-tunai/internal/config"
)

const maxProofNameLength = 80

// proofFile 已校验的凭证内容
type proofFile struct {
	Name        string
	ContentType string
	Body        []byte
}

// proofValidator 校验转账凭证的扩展名、嗅探类型与大小
type proofValidator struct {
	maxSize           int64
	allowedTypes      []string
	allowedExtensions []string
}

func newProofValidator(cfg config.UploadConfig) *proofValidator {
	maxSize := cfg.ProofMaxSize
	if maxSize <= 0 {
		maxSize = 5 * 1024 * 1024
	}
	return &proofValidator{
		maxSize:           maxSize,
		allowedTypes:      cfg.AllowedTypes,
		allowedExtensions: cfg.AllowedExtensions,
	}
}

// Validate 读取并校验上传文件，不通过时不产生任何存储写入
func (v *proofValidator) Validate(file *multipart.FileHeader) (*proofFile, error) {
	if file == nil {
		return nil, ErrProofRequired
	}
	if file.Size > v.maxSize {
		return nil, proofTooLargeError{limitMB: v.maxSize / 1024 / 1024}
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if len(v.allowedExtensions) > 0 {
		if ext == "" || !isAllowedExtension(ext, v.allowedExtensions) {
			return nil, ErrProofTypeNotAllowed
		}
	}

	src, err := file.Open()
	if err != nil {
		return nil, wrapStorage("open proof file", err)
	}
	defer src.Close()

	// 多读一个字节用于识别超限
	body, err := io.ReadAll(io.LimitReader(src, v.maxSize+1))
	if err != nil {
		return nil, wrapStorage("read proof file", err)
	}
	if int64(len(body)) > v.maxSize {
		return nil, proofTooLargeError{limitMB: v.maxSize / 1024 / 1024}
	}
	if len(body) == 0 {
		return nil, ErrProofRequired
	}

	contentType := sniffContentType(body)
	if len(v.allowedTypes) > 0 && !isAllowedType(contentType, v.allowedTypes) {
		return nil, ErrProofTypeNotAllowed
	}

	return &proofFile{
		Name:        sanitizeFilename(file.Filename),
		ContentType: contentType,
		Body:        body,
	}, nil
}

func sniffContentType(body []byte) string {
	head := body
	if len(head) > 512 {
		head = head[:512]
	}
	contentType := http.DetectContentType(head)
	if idx := strings.Index(contentType, ";"); idx >= 0 {
		contentType = contentType[:idx]
	}
	return strings.TrimSpace(contentType)
}

func isAllowedType(contentType string, allowed []string) bool {
	for _, t := range allowed {
		if strings.EqualFold(contentType, strings.TrimSpace(t)) {
			return true
		}
	}
	return false
}

func isAllowedExtension(ext string, allowed []string) bool {
	for _, allowedExt := range allowed {
		normalized := strings.ToLower(strings.TrimSpace(allowedExt))
		if normalized == "" {
			continue
		}
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		if strings.EqualFold(ext, normalized) {
			return true
		}
	}
	return false
}

// sanitizeFilename 去除路径与特殊字符，仅保留字母数字及 .-_
func sanitizeFilename(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	var b strings.Builder
	for _, r := range base {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune('_')
		}
	}
	cleaned := strings.Trim(b.String(), ".")
	if cleaned == "" {
		cleaned = "proof"
	}
	if len(cleaned) > maxProofNameLength {
		cleaned = cleaned[len(cleaned)-maxProofNameLength:]
	}
	return cleaned
}
