package model

import "github.com/google/uuid"

// newID 生成实体主键（不透明字符串）
func newID() string {
	return uuid.NewString()
}

// All 返回需要迁移的全部模型
func All() []interface{} {
	return []interface{}{
		&User{},
		&Channel{},
		&Subscription{},
		&Video{},
		&Reaction{},
		&Comment{},
	}
}
