package models

import (
	"strings"

	"github.com/wakaf-tunai/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

// InitDefaultAdmin 在管理员表为空时按环境变量创建首个管理员
func InitDefaultAdmin(email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		logger.Infow("default_admin_skipped", "reason", "credentials_not_configured")
		return nil
	}

	var count int64
	if err := DB.Model(&Admin{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := DB.Create(&Admin{Email: email, PasswordHash: string(hash)}).Error; err != nil {
		return err
	}
	logger.Warnw("default_admin_created", "email", email, "password_hidden", true)
	return nil
}
