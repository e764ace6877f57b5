package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// dialectName 返回数据库方言名称，缺省视为 sqlite
func dialectName(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return "sqlite"
	}
	if name := strings.ToLower(strings.TrimSpace(db.Dialector.Name())); name != "" {
		return name
	}
	return "sqlite"
}

// likeOperator postgres 使用 ILIKE 保持与 sqlite LIKE 一致的大小写不敏感
func likeOperator(dialect string) string {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "postgres", "postgresql":
		return "ILIKE"
	default:
		return "LIKE"
	}
}

// keywordCondition 构建多列 OR LIKE 条件及其参数
func keywordCondition(dialect, keyword string, columns ...string) (string, []interface{}) {
	op := likeOperator(dialect)
	like := "%" + escapeLike(strings.TrimSpace(keyword)) + "%"
	parts := make([]string, 0, len(columns))
	args := make([]interface{}, 0, len(columns))
	for _, column := range columns {
		column = strings.TrimSpace(column)
		if column == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %s ? ESCAPE '\\'", column, op))
		args = append(args, like)
	}
	return strings.Join(parts, " OR "), args
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
