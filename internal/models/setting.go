package models

import "time"

// Setting 键值设置表
type Setting struct {
	Key       string    `gorm:"primarykey;size:64" json:"key"`
	ValueJSON JSON      `gorm:"type:json" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName 指定表名
func (Setting) TableName() string {
	return "settings"
}
