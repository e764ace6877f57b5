package storage

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/wakaf-tunai/internal/config"
)

// LocalStore 本地磁盘存储，由 HTTP 服务在 URLPrefix 下静态暴露
type LocalStore struct {
	dir       string
	urlPrefix string
}

// NewLocalStore 创建本地存储
func NewLocalStore(cfg config.LocalStorageConfig) *LocalStore {
	dir := strings.TrimSpace(cfg.Dir)
	if dir == "" {
		dir = "./uploads"
	}
	prefix := strings.TrimRight(strings.TrimSpace(cfg.URLPrefix), "/")
	if prefix == "" {
		prefix = "/uploads"
	}
	return &LocalStore{dir: dir, urlPrefix: prefix}
}

// Driver 驱动名
func (s *LocalStore) Driver() string { return "local" }

// Dir 根目录
func (s *LocalStore) Dir() string { return s.dir }

// Put 写入文件，同名文件不覆盖
func (s *LocalStore) Put(ctx context.Context, obj Object) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	key, err := objectKey(obj)
	if err != nil {
		return "", err
	}
	fullPath := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("create storage dir: %w", err)
	}

	f, err := os.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create object: %w", err)
	}
	if _, err := f.Write(obj.Body); err != nil {
		_ = f.Close()
		_ = os.Remove(fullPath)
		return "", fmt.Errorf("write object: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close object: %w", err)
	}
	return s.urlPrefix + "/" + strings.Trim(obj.Container, "/") + "/" + url.PathEscape(obj.Name), nil
}
