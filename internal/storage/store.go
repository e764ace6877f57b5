package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/wakaf-tunai/internal/config"
)

// ErrInvalidObjectName 容器或文件名非法
var ErrInvalidObjectName = errors.New("invalid object name")

// Object 待写入的对象
type Object struct {
	Container   string // proof-of-transfer / certificates
	Name        string
	ContentType string
	Body        []byte
}

// FileStore 可公开访问的文件存储
type FileStore interface {
	// Put 写入对象并返回公开 URL
	Put(ctx context.Context, obj Object) (string, error)
	Driver() string
}

// New 按配置创建存储实现
func New(ctx context.Context, cfg config.StorageConfig) (FileStore, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", "local":
		return NewLocalStore(cfg.Local), nil
	case "s3":
		return NewS3Store(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Driver)
	}
}

// objectKey 校验并拼接 <container>/<name>
func objectKey(obj Object) (string, error) {
	container := strings.Trim(strings.TrimSpace(obj.Container), "/")
	name := strings.TrimSpace(obj.Name)
	if container == "" || name == "" {
		return "", ErrInvalidObjectName
	}
	if strings.Contains(name, "/") || strings.Contains(name, `\`) || name == "." || name == ".." {
		return "", ErrInvalidObjectName
	}
	if strings.Contains(container, "..") {
		return "", ErrInvalidObjectName
	}
	return path.Join(container, name), nil
}
