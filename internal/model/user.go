package model

import (
	"time"

	"gorm.io/gorm"
)

// User 用户模型
type User struct {
	ID        string    `gorm:"type:varchar(36);primaryKey;comment:用户标识" json:"id"`
	Username  string    `gorm:"size:255;not null;comment:用户名" json:"username"`
	Email     string    `gorm:"size:255;not null;uniqueIndex:uq_users_email;comment:登录邮箱" json:"email"`
	Password  string    `gorm:"size:255;not null;comment:密码哈希" json:"-"`
	Avatar    *string   `gorm:"size:500;comment:用户头像" json:"avatar"`
	CreatedAt time.Time `gorm:"autoCreateTime;comment:注册时间" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;comment:更新时间" json:"updatedAt"`

	// 关联关系
	Channels []Channel `gorm:"foreignKey:OwnerID" json:"channels,omitempty"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = newID()
	}
	return nil
}
