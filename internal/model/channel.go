package model

import (
	"time"

	"gorm.io/gorm"
)

// Channel 频道模型，频道名全局唯一，owner 创建后不可变
type Channel struct {
	ID              string    `gorm:"type:varchar(36);primaryKey;comment:频道标识" json:"id"`
	ChannelName     string    `gorm:"size:100;not null;uniqueIndex:uq_channels_name;comment:频道名" json:"channelName"`
	OwnerID         string    `gorm:"type:varchar(36);not null;index:idx_channels_owner_id;comment:频道所有者" json:"owner"`
	Description     string    `gorm:"type:text;comment:频道简介" json:"description"`
	ChannelBanner   string    `gorm:"size:500;comment:频道横幅" json:"channelBanner"`
	SubscriberCount int64     `gorm:"not null;default:0;comment:订阅数" json:"subscriberCount"`
	VideoCount      int64     `gorm:"not null;default:0;comment:视频数" json:"videoCount"`
	CreatedAt       time.Time `gorm:"autoCreateTime;index:idx_channels_created_at;comment:创建时间" json:"createdAt"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime;comment:更新时间" json:"updatedAt"`

	// 关联关系
	Owner  User    `gorm:"foreignKey:OwnerID" json:"-"`
	Videos []Video `gorm:"foreignKey:ChannelID" json:"videos,omitempty"`
}

func (Channel) TableName() string {
	return "channels"
}

func (c *Channel) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = newID()
	}
	return nil
}

// ResourceOwner 频道的可修改者
func (c *Channel) ResourceOwner() string {
	return c.OwnerID
}
