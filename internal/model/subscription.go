package model

import (
	"time"

	"gorm.io/gorm"
)

// Subscription 频道订阅关系，(channel_id, user_id) 唯一
type Subscription struct {
	ID        string    `gorm:"type:varchar(36);primaryKey;comment:订阅记录ID" json:"id"`
	ChannelID string    `gorm:"type:varchar(36);not null;uniqueIndex:uq_channel_subscriber;index:idx_subscriptions_channel_id;comment:被订阅频道" json:"channelId"`
	UserID    string    `gorm:"type:varchar(36);not null;uniqueIndex:uq_channel_subscriber;index:idx_subscriptions_user_id;comment:订阅用户" json:"userId"`
	CreatedAt time.Time `gorm:"autoCreateTime;comment:订阅时间" json:"createdAt"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

func (s *Subscription) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = newID()
	}
	return nil
}
